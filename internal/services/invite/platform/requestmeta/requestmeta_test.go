package requestmeta

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSchemeDefaultsToHTTP(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := Scheme(req, SchemePolicy{}); got != "http" {
		t.Fatalf("Scheme() = %q, want http", got)
	}
	if got := Scheme(nil, SchemePolicy{}); got != "http" {
		t.Fatalf("Scheme(nil) = %q, want http", got)
	}
}

func TestSchemeFromTLS(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.TLS = &tls.ConnectionState{}
	if got := Scheme(req, SchemePolicy{}); got != "https" {
		t.Fatalf("Scheme() = %q, want https", got)
	}
}

func TestSchemeForwardedProtoRequiresTrust(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	if got := Scheme(req, SchemePolicy{}); got != "http" {
		t.Fatalf("untrusted Scheme() = %q, want http", got)
	}
	if got := Scheme(req, SchemePolicy{TrustForwardedProto: true}); got != "https" {
		t.Fatalf("trusted Scheme() = %q, want https", got)
	}
}

func TestSchemeForwardedProtoUsesFirstHop(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "HTTPS, http")
	if got := Scheme(req, SchemePolicy{TrustForwardedProto: true}); got != "https" {
		t.Fatalf("Scheme() = %q, want https", got)
	}
}

func TestSchemeIgnoresInvalidForwardedProto(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "gopher")
	if got := Scheme(req, SchemePolicy{TrustForwardedProto: true}); got != "http" {
		t.Fatalf("Scheme() = %q, want http", got)
	}
}

func TestBaseURL(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "https://example.com/qr/savings-circle/xyz", nil)
	if got := BaseURL(req, SchemePolicy{}); got != "https://example.com" {
		t.Fatalf("BaseURL() = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "localhost:3001"
	if got := BaseURL(req, SchemePolicy{}); got != "http://localhost:3001" {
		t.Fatalf("BaseURL() = %q", got)
	}
}
