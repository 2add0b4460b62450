// Package probe performs a cheap live HTTPS check against the target,
// independent of the grading vendor. It confirms the certificate is
// usable in practice and inspects hardening headers the vendor may not
// surface. Best-effort by contract: every failure yields all-false flags.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sunnybai72592/eternyx-haunted-hollow-sub002/internal/types"
)

const (
	// defaultTimeout bounds the HEAD request
	defaultTimeout = 10 * time.Second
	// userAgent identifies the probe to the target server
	userAgent = "Mozilla/5.0 (compatible; SSLAnalyzer/1.0)"

	headerHSTS     = "Strict-Transport-Security"
	headerExpectCT = "Expect-CT"
)

// Prober checks live HTTPS behavior of an analysis target
type Prober struct {
	httpClient *http.Client
	deepProbe  bool
}

// Option configures the Prober
type Option func(*Prober)

// WithHTTPClient sets a custom HTTP client for the HEAD probe
func WithHTTPClient(client *http.Client) Option {
	return func(p *Prober) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// WithDeepProbe toggles the TLS handshake probe that detects TLS 1.3 and
// forward-secrecy support
func WithDeepProbe(enabled bool) Option {
	return func(p *Prober) {
		p.deepProbe = enabled
	}
}

// New creates a prober
func New(opts ...Option) *Prober {
	p := &Prober{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			// a redirect response already proves the certificate; following
			// it would probe a different host
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		deepProbe: true,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Probe inspects the target over HTTPS and returns the observed hardening
// flags. Connection, handshake, and timeout failures are swallowed: each
// flag stays false unless positively confirmed.
func (p *Prober) Probe(ctx context.Context, hostname string) types.TLSFeatures {
	features := types.TLSFeatures{}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, fmt.Sprintf("https://%s", hostname), nil)
	if err != nil {
		return features
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("hostname", hostname).Msg("https probe failed")
	} else {
		_ = resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 400 {
			features.CertificateValid = true
			features.HSTSEnabled = resp.Header.Get(headerHSTS) != ""
			features.CertificateTransparency = resp.Header.Get(headerExpectCT) != ""
		}
	}

	if p.deepProbe {
		p.probeHandshake(hostname, &features)
	}

	return features
}
