package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"os"
	"strings"
)

// UnknownIdentifier is used when no client identifier can be determined.
// All such clients share one rate-limit bucket.
const UnknownIdentifier = "unknown"

// IdentifierExtractor resolves the identifier a request is rate limited and
// logged under, typically the client IP.
type IdentifierExtractor interface {
	// Extract returns the client identifier for an HTTP request.
	Extract(r *http.Request) string
}

// RemoteAddrExtractor derives the identifier from the TCP connection address.
// This is the default: RemoteAddr cannot be spoofed by the client, so it is
// the safe choice when no trusted reverse proxy sits in front of the service.
type RemoteAddrExtractor struct{}

// Extract strips the port from r.RemoteAddr. Handles both IPv4 and IPv6.
func (e *RemoteAddrExtractor) Extract(r *http.Request) string {
	ip, err := ipFromAddr(r.RemoteAddr)
	if err != nil {
		return UnknownIdentifier
	}
	return ip
}

// TrustedProxyConfig controls whether proxy-supplied headers may be used to
// identify clients, and which proxy addresses are allowed to supply them.
type TrustedProxyConfig struct {
	// Enabled gates all header-based extraction. When false, headers are
	// ignored entirely.
	Enabled bool

	// AllowedCIDRs lists trusted proxy ranges. Single IPs are stored as
	// /32 or /128 prefixes.
	AllowedCIDRs []netip.Prefix
}

// IsTrusted reports whether remoteAddr belongs to a trusted proxy.
func (c *TrustedProxyConfig) IsTrusted(remoteAddr string) bool {
	ip, err := ipFromAddr(remoteAddr)
	if err != nil {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	for _, prefix := range c.AllowedCIDRs {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// LoadTrustedProxyConfig loads the proxy trust settings from
// RATE_LIMIT_TRUST_PROXY and RATE_LIMIT_TRUSTED_PROXIES (a comma-separated
// list of IPs or CIDR ranges).
//
// Fail-closed: enabling trust without a valid proxy list is a startup error,
// since a permissive default would let any client spoof its identity.
func LoadTrustedProxyConfig() (*TrustedProxyConfig, error) {
	config := &TrustedProxyConfig{
		Enabled:      os.Getenv("RATE_LIMIT_TRUST_PROXY") == "true",
		AllowedCIDRs: []netip.Prefix{},
	}
	if !config.Enabled {
		return config, nil
	}

	proxiesStr := strings.TrimSpace(os.Getenv("RATE_LIMIT_TRUSTED_PROXIES"))
	if proxiesStr == "" {
		return nil, fmt.Errorf("RATE_LIMIT_TRUST_PROXY is enabled but RATE_LIMIT_TRUSTED_PROXIES is empty")
	}

	for _, proxyStr := range strings.Split(proxiesStr, ",") {
		proxyStr = strings.TrimSpace(proxyStr)
		if proxyStr == "" {
			continue
		}

		prefix, err := netip.ParsePrefix(proxyStr)
		if err != nil {
			ip, ipErr := netip.ParseAddr(proxyStr)
			if ipErr != nil {
				return nil, fmt.Errorf("invalid IP or CIDR %q: must be an IP address or CIDR notation such as 10.0.0.0/8", proxyStr)
			}
			bits := 32
			if ip.Is6() {
				bits = 128
			}
			prefix = netip.PrefixFrom(ip, bits)
		}
		config.AllowedCIDRs = append(config.AllowedCIDRs, prefix)
	}

	if len(config.AllowedCIDRs) == 0 {
		return nil, fmt.Errorf("RATE_LIMIT_TRUST_PROXY is enabled but no valid proxies found in RATE_LIMIT_TRUSTED_PROXIES")
	}
	return config, nil
}

// TrustedProxyExtractor reads proxy-supplied identity headers, but only when
// the request arrives from a trusted proxy. Header priority:
//
//  1. CF-Connecting-IP
//  2. X-Real-IP
//  3. X-Forwarded-For (first entry)
//  4. RemoteAddr
//
// Requests from untrusted addresses fall back to RemoteAddr regardless of
// headers, which blocks identifier rotation via spoofed headers.
type TrustedProxyExtractor struct {
	config TrustedProxyConfig
}

// NewTrustedProxyExtractor creates an extractor with the given trust config.
func NewTrustedProxyExtractor(config TrustedProxyConfig) *TrustedProxyExtractor {
	return &TrustedProxyExtractor{config: config}
}

// Extract returns the client identifier for r per the header priority above.
// It never fails: requests whose address cannot be parsed and that carry no
// usable header are identified as UnknownIdentifier.
func (e *TrustedProxyExtractor) Extract(r *http.Request) string {
	if !e.config.Enabled {
		return (&RemoteAddrExtractor{}).Extract(r)
	}

	if !e.config.IsTrusted(r.RemoteAddr) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			slog.Warn("untrusted source attempting to set X-Forwarded-For",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_forwarded_for", xff),
			)
		}
		return (&RemoteAddrExtractor{}).Extract(r)
	}

	if cf := strings.TrimSpace(r.Header.Get("CF-Connecting-IP")); cf != "" {
		if ip := net.ParseIP(cf); ip != nil {
			return ip.String()
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		if ip := net.ParseIP(xri); ip != nil {
			return ip.String()
		}
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := firstForwardedIP(xff); ip != "" {
			return ip
		}
	}

	return (&RemoteAddrExtractor{}).Extract(r)
}

// ipFromAddr extracts the IP from a "host:port" or bare IP string.
func ipFromAddr(addr string) (string, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		if ip := net.ParseIP(addr); ip != nil {
			return ip.String(), nil
		}
		return "", fmt.Errorf("invalid address format: %s", addr)
	}
	return host, nil
}

// firstForwardedIP parses the first entry of an X-Forwarded-For list, which
// has the form "client, proxy1, proxy2". Returns "" if the first entry is
// not a valid IP.
func firstForwardedIP(s string) string {
	first, _, _ := strings.Cut(s, ",")
	if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
		return ip.String()
	}
	return ""
}
