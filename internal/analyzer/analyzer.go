// Package analyzer orchestrates a single analysis request: evidence
// gathering, vulnerability extraction, scoring, recommendation synthesis,
// and persistence, in that strict order. Each dependency sits behind an
// interface so handlers and tests can inject fakes.
package analyzer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sunnybai72592/eternyx-haunted-hollow-sub002/internal/store"
	"github.com/sunnybai72592/eternyx-haunted-hollow-sub002/internal/types"
)

// GradingClient retrieves a graded result from the external vendor.
// Implementations fail closed: they return the sentinel grade rather
// than an error.
type GradingClient interface {
	Analyze(ctx context.Context, hostname string) types.GradingResult
}

// Prober performs the supplementary live HTTPS check
type Prober interface {
	Probe(ctx context.Context, hostname string) types.TLSFeatures
}

// Collector gathers the DNS evidence snapshot for a domain
type Collector interface {
	Collect(ctx context.Context, domain string) (types.DNSSnapshot, error)
}

// RecordStore persists immutable analysis records
type RecordStore interface {
	Save(ctx context.Context, record *store.AnalysisRecord) error
}

// percentDivisor converts a 0-100 score into a 0-1 confidence value
const percentDivisor = 100

// toJSONMap flattens a typed value into the JSON column shape
func toJSONMap(v any) store.JSON {
	raw, err := json.Marshal(v)
	if err != nil {
		return store.JSON{}
	}

	m := store.JSON{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return store.JSON{}
	}

	return m
}

// toJSONList flattens a typed slice into the JSON column shape
func toJSONList(v any) []any {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}

	var list []any
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}

	return list
}

// severitySummary counts vulnerabilities per severity level
func severitySummary(vulns []types.Vulnerability) map[string]int {
	summary := map[string]int{
		types.SeverityCritical: 0,
		types.SeverityHigh:     0,
		types.SeverityMedium:   0,
		types.SeverityLow:      0,
	}

	for _, v := range vulns {
		summary[v.Severity]++
	}

	return summary
}

// durationSeconds converts an elapsed duration into whole seconds
func durationSeconds(elapsed time.Duration) int {
	return int(elapsed / time.Second)
}
