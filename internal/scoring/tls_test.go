package scoring

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunnybai72592/eternyx-haunted-hollow-sub002/internal/types"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestScoreTLSGradeTable(t *testing.T) {
	cases := []struct {
		grade string
		want  int
	}{
		{"A+", 95},
		{"A", 90},
		{"A-", 85},
		{"B", 75},
		{"C", 60},
		{"D", 40},
		{"E", 20},
		{"F", 10},
		{"T", 5},
		{"", 0},
		{"Z", 0},
	}

	for _, tc := range cases {
		t.Run("grade "+tc.grade, func(t *testing.T) {
			got := ScoreTLS(types.GradingResult{Grade: tc.grade}, nil, types.TLSFeatures{})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestScoreTLSSentinelGrade(t *testing.T) {
	// T with zero vulnerabilities and all flags false scores exactly 5
	got := ScoreTLS(types.GradingResult{Grade: types.GradeTimeout}, nil, types.TLSFeatures{})
	assert.Equal(t, 5, got)
}

func TestScoreTLSWithBonuses(t *testing.T) {
	// grade B plus TLS 1.3 only, no vulnerabilities
	features := types.TLSFeatures{SupportsTLS13: true}

	got := ScoreTLS(types.GradingResult{Grade: "B"}, nil, features)
	assert.Equal(t, 80, got)
}

func TestScoreTLSAllBonuses(t *testing.T) {
	features := types.TLSFeatures{
		CertificateValid:        true,
		SupportsTLS13:           true,
		HSTSEnabled:             true,
		CertificateTransparency: true,
		OCSPStapling:            true,
		PerfectForwardSecrecy:   true,
	}

	// 95 + 5 + 3 + 2 + 2 + 3 = 110, clamped to 100
	got := ScoreTLS(types.GradingResult{Grade: "A+"}, nil, features)
	assert.Equal(t, 100, got)
}

func TestScoreTLSBounded(t *testing.T) {
	severities := []string{
		types.SeverityCritical,
		types.SeverityHigh,
		types.SeverityMedium,
		types.SeverityLow,
	}

	var vulns []types.Vulnerability
	for i := 0; i < 100; i++ {
		vulns = append(vulns, types.Vulnerability{
			Type:     "FUZZ",
			Severity: severities[i%len(severities)],
		})
	}

	for _, grade := range []string{"A+", "B", "T", ""} {
		got := ScoreTLS(types.GradingResult{Grade: grade}, vulns, types.TLSFeatures{})
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
	}
}

func TestScoreTLSMonotonicity(t *testing.T) {
	base := []types.Vulnerability{
		{Type: VulnWeakProtocol, Severity: types.SeverityMedium},
	}
	features := types.TLSFeatures{HSTSEnabled: true}
	result := types.GradingResult{Grade: "B"}

	before := ScoreTLS(result, base, features)

	// one more high-severity vulnerability never increases the score
	withExtra := append(append([]types.Vulnerability{}, base...), types.Vulnerability{
		Type:     VulnWeakCipher,
		Severity: types.SeverityHigh,
	})
	assert.LessOrEqual(t, ScoreTLS(result, withExtra, features), before)

	// one more true hardening flag never decreases the score
	hardened := features
	hardened.SupportsTLS13 = true
	assert.GreaterOrEqual(t, ScoreTLS(result, base, hardened), before)
}

func TestExtractTLSWeakProtocols(t *testing.T) {
	result := types.GradingResult{
		Grade: "C",
		Protocols: []types.Protocol{
			{Name: "SSL", Version: "3.0"},
			{Name: "TLS", Version: "1.0"},
			{Name: "TLS", Version: "1.2"},
			{Name: "TLS", Version: "1.3"},
		},
	}

	vulns := ExtractTLS(result, testNow)

	require.Len(t, vulns, 2)
	for _, v := range vulns {
		assert.Equal(t, VulnWeakProtocol, v.Type)
		assert.Equal(t, types.SeverityMedium, v.Severity)
	}
}

func TestExtractTLSWeakCiphers(t *testing.T) {
	result := types.GradingResult{
		Grade: "B",
		Suites: []types.CipherSuite{
			{Name: "TLS_RSA_WITH_RC4_128_SHA", CipherStrength: 128},
			{Name: "TLS_RSA_WITH_3DES_EDE_CBC_SHA", CipherStrength: 112},
			{Name: "TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256", CipherStrength: 128},
			{Name: "EXPORT_WEAK", CipherStrength: 40},
		},
	}

	vulns := ExtractTLS(result, testNow)

	require.Len(t, vulns, 1)
	assert.Equal(t, VulnWeakCipher, vulns[0].Type)
	assert.Equal(t, types.SeverityHigh, vulns[0].Severity)
	assert.Equal(t, "3 weak cipher suites detected", vulns[0].Description)
}

func TestExtractTLSCertExpiry(t *testing.T) {
	cases := []struct {
		name         string
		daysFromNow  int
		wantFinding  bool
		wantSeverity string
	}{
		{"expires in 90 days", 90, false, ""},
		{"expires in 29 days", 29, true, types.SeverityMedium},
		{"expires in 8 days", 8, true, types.SeverityMedium},
		{"expires in 6 days", 6, true, types.SeverityHigh},
		{"already expired", -3, true, types.SeverityHigh},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := types.GradingResult{
				Grade: "A",
				Certificate: types.Certificate{
					NotAfter: testNow.AddDate(0, 0, tc.daysFromNow).Unix(),
				},
			}

			vulns := ExtractTLS(result, testNow)

			if !tc.wantFinding {
				assert.Empty(t, vulns)
				return
			}

			// escalation supersedes: exactly one finding, never both
			require.Len(t, vulns, 1)
			assert.Equal(t, VulnCertExpiring, vulns[0].Type)
			assert.Equal(t, tc.wantSeverity, vulns[0].Severity)
		})
	}
}

func TestExtractTLSMissingSignals(t *testing.T) {
	// no protocols, no suites, no certificate: zero findings, no panic
	vulns := ExtractTLS(types.GradingResult{Grade: "A"}, testNow)
	assert.Empty(t, vulns)
}

func TestExtractTLSAnalysisFailed(t *testing.T) {
	result := types.GradingResult{
		Grade:          types.GradeTimeout,
		AnalysisFailed: true,
	}

	vulns := ExtractTLS(result, testNow)

	require.Len(t, vulns, 1)
	assert.Equal(t, VulnAnalysisFailed, vulns[0].Type)
	assert.Equal(t, types.SeverityHigh, vulns[0].Severity)

	// sentinel inputs still score as a valid bounded number
	score := ScoreTLS(result, vulns, types.TLSFeatures{})
	assert.GreaterOrEqual(t, score, 0)
	assert.LessOrEqual(t, score, 100)
}

func TestExtractTLSIdempotent(t *testing.T) {
	result := types.GradingResult{
		Grade: "C",
		Protocols: []types.Protocol{
			{Name: "TLS", Version: "1.0"},
		},
		Suites: []types.CipherSuite{
			{Name: "TLS_RSA_WITH_RC4_128_SHA", CipherStrength: 128},
		},
		Certificate: types.Certificate{
			NotAfter: testNow.AddDate(0, 0, 10).Unix(),
		},
	}

	first := ExtractTLS(result, testNow)
	second := ExtractTLS(result, testNow)

	assert.Equal(t, first, second)
}

func TestRecommendTLSFallback(t *testing.T) {
	features := types.TLSFeatures{
		SupportsTLS13:           true,
		HSTSEnabled:             true,
		CertificateTransparency: true,
	}

	recs := RecommendTLS(types.GradingResult{Grade: "A+"}, nil, features)

	require.Len(t, recs, 1)
	assert.Equal(t, "SSL/TLS configuration appears to be well-configured", recs[0])
}

func TestRecommendTLSRules(t *testing.T) {
	vulns := []types.Vulnerability{
		{Type: VulnWeakProtocol, Severity: types.SeverityMedium},
		{Type: VulnWeakCipher, Severity: types.SeverityHigh},
	}

	recs := RecommendTLS(types.GradingResult{Grade: "F"}, vulns, types.TLSFeatures{})

	require.NotEmpty(t, recs)
	assert.Contains(t, recs[0], "Critical:")
	assert.Contains(t, recs, "Enable TLS 1.3 support for improved security and performance")
	assert.Contains(t, recs, fmt.Sprintf("Address %d SSL/TLS vulnerabilities found", len(vulns)))
}
