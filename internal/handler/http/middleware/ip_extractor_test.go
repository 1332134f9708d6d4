package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
)

func newRequestFrom(remoteAddr string, headers map[string]string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

func trustAll(t *testing.T) TrustedProxyConfig {
	t.Helper()
	return TrustedProxyConfig{
		Enabled: true,
		AllowedCIDRs: []netip.Prefix{
			netip.MustParsePrefix("0.0.0.0/0"),
			netip.MustParsePrefix("::/0"),
		},
	}
}

func TestRemoteAddrExtractor(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		want       string
	}{
		{"ipv4 with port", "192.168.1.1:54321", "192.168.1.1"},
		{"ipv6 with port", "[2001:db8::1]:8080", "2001:db8::1"},
		{"bare ipv4", "127.0.0.1", "127.0.0.1"},
		{"garbage", "not-an-address", UnknownIdentifier},
	}

	e := &RemoteAddrExtractor{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Extract(newRequestFrom(tt.remoteAddr, nil)); got != tt.want {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTrustedProxyExtractorHeaderPriority(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{
			name: "cf-connecting-ip wins",
			headers: map[string]string{
				"CF-Connecting-IP": "203.0.113.7",
				"X-Real-IP":        "198.51.100.2",
				"X-Forwarded-For":  "192.0.2.3, 10.0.0.1",
			},
			want: "203.0.113.7",
		},
		{
			name: "x-real-ip second",
			headers: map[string]string{
				"X-Real-IP":       "198.51.100.2",
				"X-Forwarded-For": "192.0.2.3",
			},
			want: "198.51.100.2",
		},
		{
			name:    "xff first entry third",
			headers: map[string]string{"X-Forwarded-For": "192.0.2.3, 10.0.0.1"},
			want:    "192.0.2.3",
		},
		{
			name:    "invalid headers fall back to remote addr",
			headers: map[string]string{"CF-Connecting-IP": "bogus", "X-Forwarded-For": "also-bogus"},
			want:    "10.9.9.9",
		},
		{
			name:    "no headers fall back to remote addr",
			headers: nil,
			want:    "10.9.9.9",
		},
	}

	e := NewTrustedProxyExtractor(trustAll(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(newRequestFrom("10.9.9.9:4444", tt.headers))
			if got != tt.want {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTrustedProxyExtractorIgnoresHeadersFromUntrustedSource(t *testing.T) {
	e := NewTrustedProxyExtractor(TrustedProxyConfig{
		Enabled:      true,
		AllowedCIDRs: []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")},
	})

	req := newRequestFrom("203.0.113.50:1234", map[string]string{
		"CF-Connecting-IP": "1.2.3.4",
		"X-Forwarded-For":  "1.2.3.4",
	})
	if got := e.Extract(req); got != "203.0.113.50" {
		t.Errorf("Extract() = %q, want remote addr for untrusted source", got)
	}
}

func TestTrustedProxyExtractorDisabledIgnoresHeaders(t *testing.T) {
	e := NewTrustedProxyExtractor(TrustedProxyConfig{Enabled: false})

	req := newRequestFrom("192.168.0.5:1234", map[string]string{"CF-Connecting-IP": "1.2.3.4"})
	if got := e.Extract(req); got != "192.168.0.5" {
		t.Errorf("Extract() = %q, want remote addr when trust disabled", got)
	}
}

func TestLoadTrustedProxyConfig(t *testing.T) {
	t.Run("disabled by default", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_TRUST_PROXY", "")
		t.Setenv("RATE_LIMIT_TRUSTED_PROXIES", "")

		config, err := LoadTrustedProxyConfig()
		if err != nil {
			t.Fatalf("LoadTrustedProxyConfig() error = %v", err)
		}
		if config.Enabled {
			t.Error("Enabled = true, want false")
		}
	})

	t.Run("enabled with mixed list", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_TRUST_PROXY", "true")
		t.Setenv("RATE_LIMIT_TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.1, 2001:db8::/32")

		config, err := LoadTrustedProxyConfig()
		if err != nil {
			t.Fatalf("LoadTrustedProxyConfig() error = %v", err)
		}
		if len(config.AllowedCIDRs) != 3 {
			t.Fatalf("len(AllowedCIDRs) = %d, want 3", len(config.AllowedCIDRs))
		}
		if !config.IsTrusted("10.1.2.3:80") {
			t.Error("10.1.2.3 should be trusted via 10.0.0.0/8")
		}
		if !config.IsTrusted("192.168.1.1:80") {
			t.Error("192.168.1.1 should be trusted via single-IP entry")
		}
		if config.IsTrusted("8.8.8.8:80") {
			t.Error("8.8.8.8 should not be trusted")
		}
	})

	t.Run("enabled without proxies fails closed", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_TRUST_PROXY", "true")
		t.Setenv("RATE_LIMIT_TRUSTED_PROXIES", "")

		if _, err := LoadTrustedProxyConfig(); err == nil {
			t.Error("expected error for empty proxy list")
		}
	})

	t.Run("invalid entry fails closed", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_TRUST_PROXY", "true")
		t.Setenv("RATE_LIMIT_TRUSTED_PROXIES", "10.0.0.0/8, not-an-ip")

		if _, err := LoadTrustedProxyConfig(); err == nil {
			t.Error("expected error for invalid entry")
		}
	})
}
