package main

import (
	"context"
	"net"
	"strings"
)

type Resolver interface {
	// LookupIPAddr resolves a host to its IP addresses.
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// setupResolver returns the resolver used for FQDN lookups. Without an
// explicit nameserver the host's standard resolver is used.
func setupResolver(nameserver string) *net.Resolver {
	if nameserver == "" {
		return net.DefaultResolver
	}

	if !strings.HasSuffix(nameserver, ":53") {
		nameserver += ":53"
	}
	dialer := func(ctx context.Context, network, address string) (net.Conn, error) {
		d := net.Dialer{}

		return d.DialContext(ctx, "udp", nameserver)
	}

	return &net.Resolver{PreferGo: true, Dial: dialer}
}
