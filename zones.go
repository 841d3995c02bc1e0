package main

import (
	"fmt"
	"net"
)

// subnet is one row of the compiled-in CIDR-to-zone table.
type subnet struct {
	CIDR   string
	Zone   string
	ZoneID string
}

// defaultSubnets maps a /19-subdivided 192.168.0.0/16 block across three
// availability zones. The ranges do not overlap; lookup takes the first match.
var defaultSubnets = []subnet{
	{CIDR: "192.168.0.0/19", Zone: "eu-central-1b", ZoneID: "euc1-az3"},
	{CIDR: "192.168.32.0/19", Zone: "eu-central-1a", ZoneID: "euc1-az2"},
	{CIDR: "192.168.64.0/19", Zone: "eu-central-1c", ZoneID: "euc1-az1"},
	{CIDR: "192.168.96.0/19", Zone: "eu-central-1b", ZoneID: "euc1-az3"},
	{CIDR: "192.168.128.0/19", Zone: "eu-central-1a", ZoneID: "euc1-az2"},
	{CIDR: "192.168.160.0/19", Zone: "eu-central-1c", ZoneID: "euc1-az1"},
}

type zoneEntry struct {
	network *net.IPNet
	zone    string
	zoneID  string
}

// zoneTable is built once at startup and never mutated afterwards, so it can
// be shared between request goroutines without locking.
type zoneTable struct {
	entries []zoneEntry
}

func newZoneTable(subnets []subnet) (*zoneTable, error) {
	t := &zoneTable{entries: make([]zoneEntry, 0, len(subnets))}

	for _, s := range subnets {
		_, network, err := net.ParseCIDR(s.CIDR)
		if err != nil {
			return nil, fmt.Errorf("invalid CIDR block %q for zone %s: %w", s.CIDR, s.Zone, err)
		}

		t.entries = append(t.entries, zoneEntry{
			network: network,
			zone:    s.Zone,
			zoneID:  s.ZoneID,
		})
	}

	return t, nil
}

// lookup returns the zone and zone ID of the first configured subnet
// containing ip.
func (t *zoneTable) lookup(ip net.IP) (zone, zoneID string, ok bool) {
	for _, e := range t.entries {
		if e.network.Contains(ip) {
			return e.zone, e.zoneID, true
		}
	}

	return "", "", false
}
