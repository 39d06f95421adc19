package fetcher

import (
	"net/netip"
	"strings"
)

// cgnat is the carrier-grade NAT block 100.64.0.0/10.
var cgnat = netip.MustParsePrefix("100.64.0.0/10")

// isBlockedHostname rejects names that can never be a legitimate public
// recipe site: localhost and mDNS-style .local names.
func isBlockedHostname(host string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if host == "localhost" || host == "local" {
		return true
	}
	return strings.HasSuffix(host, ".localhost") || strings.HasSuffix(host, ".local")
}

// isDisallowedIP reports whether addr belongs to a private or reserved
// range that must never be fetched: loopback, RFC1918, link-local
// 169.254/16 (covers cloud metadata endpoints), CGNAT 100.64/10,
// multicast and reserved >= 224, and the IPv6 equivalents. IPv4-mapped
// IPv6 addresses are unmapped and re-checked against the IPv4 rules.
func isDisallowedIP(addr netip.Addr) bool {
	addr = addr.Unmap()

	if addr.IsLoopback() || addr.IsUnspecified() || addr.IsPrivate() ||
		addr.IsLinkLocalUnicast() || addr.IsLinkLocalMulticast() || addr.IsMulticast() {
		return true
	}

	if addr.Is4() {
		if cgnat.Contains(addr) {
			return true
		}
		// Everything from 224.0.0.0 up is multicast or reserved.
		if addr.As4()[0] >= 224 {
			return true
		}
	}

	return false
}
