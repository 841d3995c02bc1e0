package main

import (
	"net"
	"testing"
)

func TestZoneTableLookup(t *testing.T) {
	table, err := newZoneTable(defaultSubnets)
	if err != nil {
		t.Fatalf("failed to build zone table: %v", err)
	}

	tests := []struct {
		name       string
		ip         string
		wantZone   string
		wantZoneID string
		wantOK     bool
	}{
		{"first host of 192.168.0.0/19", "192.168.0.1", "eu-central-1b", "euc1-az3", true},
		{"first host of 192.168.32.0/19", "192.168.32.1", "eu-central-1a", "euc1-az2", true},
		{"first host of 192.168.64.0/19", "192.168.64.1", "eu-central-1c", "euc1-az1", true},
		{"first host of 192.168.96.0/19", "192.168.96.1", "eu-central-1b", "euc1-az3", true},
		{"first host of 192.168.128.0/19", "192.168.128.1", "eu-central-1a", "euc1-az2", true},
		{"first host of 192.168.160.0/19", "192.168.160.1", "eu-central-1c", "euc1-az1", true},
		{"inside third block", "192.168.64.5", "eu-central-1c", "euc1-az1", true},
		{"outside all blocks", "10.0.0.1", "", "", false},
		{"just above covered space", "192.168.192.1", "", "", false},
		{"ipv6 address", "2001:db8::1", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ip := net.ParseIP(tt.ip)
			if ip == nil {
				t.Fatalf("invalid test IP %q", tt.ip)
			}

			zone, zoneID, ok := table.lookup(ip)
			if ok != tt.wantOK {
				t.Fatalf("lookup(%s) ok = %v, want %v", tt.ip, ok, tt.wantOK)
			}
			if zone != tt.wantZone {
				t.Errorf("lookup(%s) zone = %q, want %q", tt.ip, zone, tt.wantZone)
			}
			if zoneID != tt.wantZoneID {
				t.Errorf("lookup(%s) zoneID = %q, want %q", tt.ip, zoneID, tt.wantZoneID)
			}
		})
	}
}

func TestNewZoneTableInvalidCIDR(t *testing.T) {
	_, err := newZoneTable([]subnet{
		{CIDR: "not-a-cidr", Zone: "eu-central-1a", ZoneID: "euc1-az2"},
	})
	if err == nil {
		t.Error("expected error for malformed CIDR block")
	}
}
