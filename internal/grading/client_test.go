package grading

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunnybai72592/eternyx-haunted-hollow-sub002/internal/types"
)

// vendorStub serves canned analyze payloads, one per request, repeating
// the last payload once the script runs out
type vendorStub struct {
	t        *testing.T
	payloads []map[string]any
	calls    atomic.Int64
}

func (v *vendorStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(v.t, "/analyze", r.URL.Path)

		idx := int(v.calls.Add(1)) - 1
		if idx >= len(v.payloads) {
			idx = len(v.payloads) - 1
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(v.t, json.NewEncoder(w).Encode(v.payloads[idx]))
	}
}

func readyPayload(grade string) map[string]any {
	return map[string]any{
		"status": "READY",
		"endpoints": []map[string]any{{
			"grade":           grade,
			"hasWarnings":     false,
			"progress":        100,
			"serverSignature": "nginx",
			"details": map[string]any{
				"protocols": []map[string]any{
					{"name": "TLS", "version": "1.3"},
					{"name": "TLS", "version": "1.2"},
				},
				"suites": map[string]any{
					"list": []map[string]any{
						{"name": "TLS_AES_256_GCM_SHA384", "cipherStrength": 256},
					},
				},
				"cert": map[string]any{"notAfter": int64(1790000000)},
			},
		}},
	}
}

func newTestClient(t *testing.T, stub *vendorStub, opts ...Option) *Client {
	t.Helper()

	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)

	base := []Option{
		WithBaseURL(srv.URL),
		WithPollInterval(time.Millisecond),
		WithMaxAttempts(5),
	}

	return New(append(base, opts...)...)
}

func TestAnalyzePollsUntilReady(t *testing.T) {
	stub := &vendorStub{t: t, payloads: []map[string]any{
		{"status": "DNS"},
		{"status": "IN_PROGRESS"},
		readyPayload("A+"),
	}}

	client := newTestClient(t, stub)

	result := client.Analyze(context.Background(), "example.com")

	assert.Equal(t, "A+", result.Grade)
	assert.False(t, result.AnalysisFailed)
	assert.Equal(t, "nginx", result.ServerSignature)
	require.Len(t, result.Protocols, 2)
	assert.Equal(t, "1.3", result.Protocols[0].Version)
	require.Len(t, result.Suites, 1)
	assert.Equal(t, 256, result.Suites[0].CipherStrength)
	assert.Equal(t, int64(1790000000), result.Certificate.NotAfter)
	assert.EqualValues(t, 3, stub.calls.Load())
}

func TestAnalyzeVendorError(t *testing.T) {
	stub := &vendorStub{t: t, payloads: []map[string]any{
		{"status": "ERROR", "statusMessage": "Unable to resolve domain name"},
	}}

	client := newTestClient(t, stub)

	result := client.Analyze(context.Background(), "nxdomain.test")

	assert.Equal(t, types.GradeTimeout, result.Grade)
	assert.True(t, result.AnalysisFailed)
	assert.True(t, result.HasWarnings)
	assert.Equal(t, "Analysis failed", result.ServerSignature)
}

func TestAnalyzePollBudgetExhausted(t *testing.T) {
	stub := &vendorStub{t: t, payloads: []map[string]any{
		{"status": "IN_PROGRESS"},
	}}

	client := newTestClient(t, stub, WithMaxAttempts(3))

	result := client.Analyze(context.Background(), "slow.test")

	assert.Equal(t, types.GradeTimeout, result.Grade)
	assert.True(t, result.AnalysisFailed)
	// initial start call plus each budgeted poll
	assert.EqualValues(t, 4, stub.calls.Load())
}

func TestAnalyzeUnreachableVendor(t *testing.T) {
	client := New(
		WithBaseURL("http://127.0.0.1:0"),
		WithPollInterval(time.Millisecond),
	)

	result := client.Analyze(context.Background(), "example.com")

	assert.Equal(t, types.GradeTimeout, result.Grade)
	assert.True(t, result.AnalysisFailed)
}

func TestAnalyzeContextCanceled(t *testing.T) {
	stub := &vendorStub{t: t, payloads: []map[string]any{
		{"status": "IN_PROGRESS"},
	}}

	client := newTestClient(t, stub, WithPollInterval(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := client.Analyze(ctx, "example.com")

	assert.True(t, result.AnalysisFailed)
}

func TestAnalyzeReadyWithoutEndpoints(t *testing.T) {
	stub := &vendorStub{t: t, payloads: []map[string]any{
		{"status": "READY", "endpoints": []map[string]any{}},
	}}

	client := newTestClient(t, stub)

	result := client.Analyze(context.Background(), "example.com")

	assert.Equal(t, types.GradeTimeout, result.Grade)
	assert.True(t, result.AnalysisFailed)
}

func TestNormalizeDefaults(t *testing.T) {
	// a ready endpoint with no grade and no details degrades gracefully
	result := normalize(vendorPayload{
		Status:    statusReady,
		Endpoints: []vendorEndpoint{{}},
	})

	assert.Equal(t, types.GradeTimeout, result.Grade)
	assert.Equal(t, 100, result.Progress)
	assert.Empty(t, result.Protocols)
	assert.Empty(t, result.Suites)
}

func TestStartNewRequestedOnce(t *testing.T) {
	var startNewCalls, pollCalls atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("startNew") == "on" {
			startNewCalls.Add(1)

			w.Header().Set("Content-Type", "application/json")
			require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"status": "IN_PROGRESS"}))

			return
		}

		pollCalls.Add(1)

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(readyPayload("B")))
	}))
	t.Cleanup(srv.Close)

	client := New(
		WithBaseURL(srv.URL),
		WithPollInterval(time.Millisecond),
		WithMaxAttempts(5),
	)

	result := client.Analyze(context.Background(), "example.com")

	assert.Equal(t, "B", result.Grade)
	assert.EqualValues(t, 1, startNewCalls.Load())
	assert.EqualValues(t, 1, pollCalls.Load())
}
