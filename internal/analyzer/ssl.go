package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sunnybai72592/eternyx-haunted-hollow-sub002/internal/scoring"
	"github.com/sunnybai72592/eternyx-haunted-hollow-sub002/internal/store"
	"github.com/sunnybai72592/eternyx-haunted-hollow-sub002/internal/types"
)

// SSLReport is the full outcome of one SSL analysis, mirroring the
// persisted record
type SSLReport struct {
	AnalysisID   string `json:"analysis_id"`
	Hostname     string `json:"hostname"`
	OverallGrade string `json:"overall_grade"`
	// SecurityScore is in [0,100], higher is more secure
	SecurityScore int `json:"security_score"`
	// AnalysisTime is the analysis duration in whole seconds
	AnalysisTime    int                   `json:"analysis_time"`
	Result          types.GradingResult   `json:"ssl_result"`
	Features        types.TLSFeatures     `json:"additional_checks"`
	Vulnerabilities []types.Vulnerability `json:"vulnerabilities"`
	Recommendations []string              `json:"recommendations"`
}

// SSLAnalyzer runs the SSL analysis pipeline
type SSLAnalyzer struct {
	grading GradingClient
	prober  Prober
	records RecordStore
	now     func() time.Time
}

// NewSSLAnalyzer wires the SSL analysis pipeline
func NewSSLAnalyzer(grading GradingClient, prober Prober, records RecordStore) *SSLAnalyzer {
	return &SSLAnalyzer{
		grading: grading,
		prober:  prober,
		records: records,
		now:     time.Now,
	}
}

// WithClock overrides the analyzer's clock for deterministic tests
func (a *SSLAnalyzer) WithClock(now func() time.Time) *SSLAnalyzer {
	a.now = now
	return a
}

// Analyze runs the full pipeline for a hostname: grading, supplementary
// probe, extraction, scoring, recommendations, persistence. Vendor and
// probe failures degrade into sentinel data; only persistence failure is
// returned as an error.
func (a *SSLAnalyzer) Analyze(ctx context.Context, hostname, userID string) (*SSLReport, error) {
	started := a.now()

	result := a.grading.Analyze(ctx, hostname)
	features := a.prober.Probe(ctx, hostname)

	vulns := scoring.ExtractTLS(result, a.now())
	score := scoring.ScoreTLS(result, vulns, features)
	recommendations := scoring.RecommendTLS(result, vulns, features)

	elapsed := a.now().Sub(started)

	log.Info().
		Str("hostname", hostname).
		Str("grade", result.Grade).
		Int("security_score", score).
		Int("vulnerabilities", len(vulns)).
		Msg("ssl analysis complete")

	record := &store.AnalysisRecord{
		UserID:       userID,
		AnalysisType: store.AnalysisTypeSSL,
		InputData: store.JSON{
			"hostname":  hostname,
			"timestamp": started.UTC().Format(time.RFC3339),
		},
		Results: store.JSON{
			"ssl_labs_result":   toJSONMap(result),
			"additional_checks": toJSONMap(features),
			"vulnerabilities":   toJSONList(vulns),
			"security_score":    score,
			"analysis_duration": durationSeconds(elapsed),
			"summary": store.JSON{
				"overall_grade":         result.Grade,
				"has_warnings":          result.HasWarnings,
				"certificate_valid":     features.CertificateValid,
				"supports_tls13":        features.SupportsTLS13,
				"hsts_enabled":          features.HSTSEnabled,
				"vulnerabilities_found": len(vulns),
			},
		},
		ConfidenceScore:  float64(score) / percentDivisor,
		ProcessingTimeMs: elapsed.Milliseconds(),
	}

	if err := a.records.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("persisting ssl analysis: %w", err)
	}

	return &SSLReport{
		AnalysisID:      record.ID,
		Hostname:        hostname,
		OverallGrade:    result.Grade,
		SecurityScore:   score,
		AnalysisTime:    durationSeconds(elapsed),
		Result:          result,
		Features:        features,
		Vulnerabilities: vulns,
		Recommendations: recommendations,
	}, nil
}
