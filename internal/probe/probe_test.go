package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newHardenedServer serves HTTPS with the given hardening headers and
// returns a prober wired to trust its self-signed certificate
func newHardenedServer(t *testing.T, headers map[string]string, status int) (*Prober, string) {
	t.Helper()

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range headers {
			w.Header().Set(k, v)
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)

	hostname := strings.TrimPrefix(srv.URL, "https://")

	// trusts the test server's cert; no-follow matches the prober's default
	client := srv.Client()
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	prober := New(
		WithHTTPClient(client),
		WithDeepProbe(false),
	)

	return prober, hostname
}

func TestProbeHardenedTarget(t *testing.T) {
	prober, hostname := newHardenedServer(t, map[string]string{
		"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
		"Expect-CT":                 "max-age=86400, enforce",
	}, http.StatusOK)

	features := prober.Probe(context.Background(), hostname)

	assert.True(t, features.CertificateValid)
	assert.True(t, features.HSTSEnabled)
	assert.True(t, features.CertificateTransparency)
}

func TestProbeBareTarget(t *testing.T) {
	prober, hostname := newHardenedServer(t, nil, http.StatusOK)

	features := prober.Probe(context.Background(), hostname)

	assert.True(t, features.CertificateValid)
	assert.False(t, features.HSTSEnabled)
	assert.False(t, features.CertificateTransparency)
}

func TestProbeRedirectStillValid(t *testing.T) {
	// a 3xx answer proves the certificate even when it points off-host;
	// the redirect itself must not be followed
	prober, hostname := newHardenedServer(t, map[string]string{
		"Location":                  "https://elsewhere.test/",
		"Strict-Transport-Security": "max-age=31536000",
	}, http.StatusMovedPermanently)

	features := prober.Probe(context.Background(), hostname)

	assert.True(t, features.CertificateValid)
	assert.True(t, features.HSTSEnabled)
}

func TestProbeServerError(t *testing.T) {
	prober, hostname := newHardenedServer(t, map[string]string{
		"Strict-Transport-Security": "max-age=31536000",
	}, http.StatusInternalServerError)

	features := prober.Probe(context.Background(), hostname)

	// 5xx does not confirm anything, headers included
	assert.False(t, features.CertificateValid)
	assert.False(t, features.HSTSEnabled)
}

func TestProbeUnreachableTarget(t *testing.T) {
	prober := New(WithDeepProbe(false))

	features := prober.Probe(context.Background(), "unreachable.invalid")

	assert.Equal(t, false, features.CertificateValid)
	assert.Equal(t, false, features.HSTSEnabled)
	assert.Equal(t, false, features.CertificateTransparency)
	assert.Equal(t, false, features.SupportsTLS13)
	assert.Equal(t, false, features.PerfectForwardSecrecy)
}

func TestProbeUntrustedCertificate(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	hostname := strings.TrimPrefix(srv.URL, "https://")

	// default client does not trust the test server's self-signed cert
	prober := New(WithDeepProbe(false))

	features := prober.Probe(context.Background(), hostname)

	assert.False(t, features.CertificateValid)
}

func TestProbeSendsUserAgent(t *testing.T) {
	var gotUA string

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	hostname := strings.TrimPrefix(srv.URL, "https://")

	prober := New(WithHTTPClient(srv.Client()), WithDeepProbe(false))

	_ = prober.Probe(context.Background(), hostname)

	require.NotEmpty(t, gotUA)
	assert.Contains(t, gotUA, "SSLAnalyzer")
}
