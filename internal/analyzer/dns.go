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

// maxVulnerabilityPreview caps the vulnerabilities echoed in the API
// response; the persisted record always carries the full list
const maxVulnerabilityPreview = 10

// DNSReport is the full outcome of one DNS analysis, mirroring the
// persisted record
type DNSReport struct {
	AnalysisID           string `json:"analysis_id"`
	Domain               string `json:"domain"`
	VulnerabilitiesFound int    `json:"vulnerabilities_found"`
	// RiskScore is in [0,100], higher is riskier
	RiskScore int `json:"risk_score"`
	// SecurityScore is the inverted risk score under the unified
	// convention where higher always means more secure
	SecurityScore int `json:"security_score"`
	// AnalysisDuration is the analysis duration in whole seconds
	AnalysisDuration int               `json:"analysis_duration"`
	RecordCount      int               `json:"dns_records"`
	Features         types.DNSFeatures `json:"security_features"`
	Nameservers      []string          `json:"nameservers"`
	// Summary counts vulnerabilities per severity
	Summary         map[string]int        `json:"summary"`
	Vulnerabilities []types.Vulnerability `json:"vulnerabilities"`
	Recommendations []string              `json:"recommendations"`
}

// DNSAnalyzer runs the DNS analysis pipeline
type DNSAnalyzer struct {
	collector Collector
	records   RecordStore
	now       func() time.Time
}

// NewDNSAnalyzer wires the DNS analysis pipeline
func NewDNSAnalyzer(collector Collector, records RecordStore) *DNSAnalyzer {
	return &DNSAnalyzer{
		collector: collector,
		records:   records,
		now:       time.Now,
	}
}

// WithClock overrides the analyzer's clock for deterministic tests
func (a *DNSAnalyzer) WithClock(now func() time.Time) *DNSAnalyzer {
	a.now = now
	return a
}

// Analyze runs the full pipeline for a domain: collection, extraction,
// scoring, recommendations, persistence. Only persistence failure is
// returned as an error.
func (a *DNSAnalyzer) Analyze(ctx context.Context, domain, userID string) (*DNSReport, error) {
	started := a.now()

	snap, err := a.collector.Collect(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("collecting dns snapshot: %w", err)
	}

	vulns := scoring.ExtractDNS(snap)
	riskScore := scoring.ScoreDNSRisk(vulns, snap.Features)
	securityScore := scoring.InvertRisk(riskScore)
	recommendations := scoring.RecommendDNS(vulns, snap.Features)

	elapsed := a.now().Sub(started)

	log.Info().
		Str("domain", domain).
		Int("risk_score", riskScore).
		Int("vulnerabilities", len(vulns)).
		Msg("dns analysis complete")

	record := &store.AnalysisRecord{
		UserID:       userID,
		AnalysisType: store.AnalysisTypeDNS,
		InputData: store.JSON{
			"domain":    domain,
			"timestamp": started.UTC().Format(time.RFC3339),
		},
		Results: store.JSON{
			"domain":            domain,
			"dns_records":       toJSONList(snap.Records),
			"vulnerabilities":   toJSONList(vulns),
			"security_features": toJSONMap(snap.Features),
			"nameservers":       snap.Nameservers,
			"analysis_duration": durationSeconds(elapsed),
			"risk_score":        riskScore,
			"security_score":    securityScore,
		},
		ConfidenceScore:  float64(securityScore) / percentDivisor,
		ProcessingTimeMs: elapsed.Milliseconds(),
	}

	if err := a.records.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("persisting dns analysis: %w", err)
	}

	preview := vulns
	if len(preview) > maxVulnerabilityPreview {
		preview = preview[:maxVulnerabilityPreview]
	}

	return &DNSReport{
		AnalysisID:           record.ID,
		Domain:               domain,
		VulnerabilitiesFound: len(vulns),
		RiskScore:            riskScore,
		SecurityScore:        securityScore,
		AnalysisDuration:     durationSeconds(elapsed),
		RecordCount:          len(snap.Records),
		Features:             snap.Features,
		Nameservers:          snap.Nameservers,
		Summary:              severitySummary(vulns),
		Vulnerabilities:      preview,
		Recommendations:      recommendations,
	}, nil
}
