// Package grading wraps the external SSL grading vendor behind a
// fail-closed client: any vendor error, malformed response, or exhausted
// polling budget degrades into the "T" sentinel result instead of an
// error, so a flaky vendor degrades analysis quality, never availability.
package grading

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/theopenlane/httpsling"

	"github.com/sunnybai72592/eternyx-haunted-hollow-sub002/internal/types"
)

const (
	// defaultBaseURL is the root endpoint of the grading vendor API
	defaultBaseURL = "https://api.ssllabs.com/api/v3"
	// defaultPollInterval is the fixed wait between readiness polls
	defaultPollInterval = 10 * time.Second
	// defaultMaxAttempts caps the polling loop; with the default interval
	// the total wall-clock wait stays under five minutes
	defaultMaxAttempts = 30
	// defaultRequestTimeout bounds each individual vendor call
	defaultRequestTimeout = 30 * time.Second

	// statusReady is the vendor status marking a completed analysis
	statusReady = "READY"
	// statusError is the vendor status marking a failed analysis
	statusError = "ERROR"
)

// Client polls the grading vendor for a hostname analysis
type Client struct {
	baseURL      string
	httpClient   *http.Client
	pollInterval time.Duration
	maxAttempts  int
}

// Option configures the Client
type Option func(*Client)

// WithBaseURL overrides the vendor API base URL
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithHTTPClient sets a custom HTTP client for vendor calls
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithPollInterval overrides the wait between readiness polls
func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.pollInterval = interval
		}
	}
}

// WithMaxAttempts overrides the polling attempt cap
func WithMaxAttempts(attempts int) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.maxAttempts = attempts
		}
	}
}

// New creates a grading client
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:      defaultBaseURL,
		httpClient:   &http.Client{Timeout: defaultRequestTimeout},
		pollInterval: defaultPollInterval,
		maxAttempts:  defaultMaxAttempts,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Analyze starts a vendor analysis for hostname and polls until the vendor
// reports readiness or the polling budget runs out. It never returns an
// error: every failure mode collapses into the sentinel result so callers
// can always proceed to scoring.
func (c *Client) Analyze(ctx context.Context, hostname string) types.GradingResult {
	payload, err := c.fetch(ctx, hostname, true)
	if err != nil {
		log.Warn().Err(err).Str("hostname", hostname).Msg("grading start request failed")
		return sentinelResult()
	}

	attempts := 0
	for payload.Status != statusReady && payload.Status != statusError && attempts < c.maxAttempts {
		if err := sleepCtx(ctx, c.pollInterval); err != nil {
			log.Warn().Err(err).Str("hostname", hostname).Msg("grading poll canceled")
			return sentinelResult()
		}

		if next, err := c.fetch(ctx, hostname, false); err == nil {
			payload = next
		} else {
			log.Debug().Err(err).Str("hostname", hostname).Msg("grading poll failed, retrying")
		}

		attempts++
	}

	if payload.Status != statusReady {
		err := fmt.Errorf("%w: %s", ErrUnexpectedStatus, payload.Status)
		if attempts >= c.maxAttempts {
			err = ErrPollBudgetExhausted
		}

		log.Warn().Err(err).Str("hostname", hostname).Int("attempts", attempts).Msg("grading analysis never became ready")

		return sentinelResult()
	}

	return normalize(payload)
}

// fetch issues one analyze call, optionally requesting a fresh analysis
func (c *Client) fetch(ctx context.Context, hostname string, startNew bool) (vendorPayload, error) {
	reqURL := fmt.Sprintf("%s/analyze?host=%s&all=done", c.baseURL, url.QueryEscape(hostname))
	if startNew {
		reqURL += "&startNew=on"
	}

	requester := httpsling.MustNew(
		httpsling.URL(reqURL),
		httpsling.Method(http.MethodGet),
		httpsling.WithDoer(c.httpClient),
	)

	var payload vendorPayload

	resp, err := requester.ReceiveWithContext(ctx, &payload)
	if err != nil {
		return vendorPayload{}, fmt.Errorf("%w: %v", ErrStartFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	if resp.StatusCode != http.StatusOK {
		return vendorPayload{}, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return payload, nil
}

// sentinelResult is the worst-case grading result used when the vendor
// could not complete the analysis
func sentinelResult() types.GradingResult {
	return types.GradingResult{
		Grade:           types.GradeTimeout,
		HasWarnings:     true,
		Progress:        100,
		ServerSignature: "Analysis failed",
		AnalysisFailed:  true,
	}
}

// sleepCtx waits for d or until the context is done
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
