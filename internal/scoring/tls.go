// Package scoring turns heterogeneous security findings into bounded
// numeric scores and prioritized remediation recommendations. Every
// function in this package is pure: all inputs arrive as arguments,
// including the clock, so results are deterministic and trivially
// testable.
package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/sunnybai72592/eternyx-haunted-hollow-sub002/internal/types"
)

// TLS vulnerability taxonomy keys
const (
	VulnWeakProtocol   = "WEAK_PROTOCOL"
	VulnWeakCipher     = "WEAK_CIPHER"
	VulnCertExpiring   = "CERT_EXPIRING"
	VulnAnalysisFailed = "ANALYSIS_FAILED"
)

const (
	// minCipherStrength is the weakest acceptable cipher strength in bits
	minCipherStrength = 128
	// certExpiryWarnDays triggers a medium finding for an expiring certificate
	certExpiryWarnDays = 30
	// certExpiryCritDays escalates an expiring certificate to high severity
	certExpiryCritDays = 7
	// hoursPerDay converts hours to days for expiry math
	hoursPerDay = 24
)

// gradeScores maps a vendor letter grade to its base security score
var gradeScores = map[string]int{
	"A+": 95,
	"A":  90,
	"A-": 85,
	"B":  75,
	"C":  60,
	"D":  40,
	"E":  20,
	"F":  10,
	"T":  5,
}

// Bonus points per confirmed hardening feature
const (
	bonusTLS13 = 5
	bonusHSTS  = 3
	bonusCT    = 2
	bonusOCSP  = 2
	bonusPFS   = 3
)

// Penalty points per vulnerability severity. The critical tier is scored
// at least as harshly as high even though the TLS extractor does not
// currently emit critical findings.
var tlsSeverityPenalty = map[string]int{
	types.SeverityCritical: 20,
	types.SeverityHigh:     10,
	types.SeverityMedium:   5,
	types.SeverityLow:      2,
}

// ExtractTLS inspects a normalized grading result and emits severity-tagged
// vulnerability findings. Missing protocol or cipher lists contribute zero
// findings of that category. The caller supplies now so extraction stays
// deterministic under test.
func ExtractTLS(result types.GradingResult, now time.Time) []types.Vulnerability {
	var vulns []types.Vulnerability

	if result.AnalysisFailed {
		vulns = append(vulns, types.Vulnerability{
			Type:        VulnAnalysisFailed,
			Severity:    types.SeverityHigh,
			Description: "SSL/TLS grading analysis could not be completed",
			Location:    "Grading Service",
			Remediation: "Verify the hostname is reachable over HTTPS and retry the analysis",
		})
	}

	for _, proto := range result.Protocols {
		if proto.Name == "SSL" || (proto.Name == "TLS" && proto.Version == "1.0") {
			vulns = append(vulns, types.Vulnerability{
				Type:        VulnWeakProtocol,
				Severity:    types.SeverityMedium,
				Description: fmt.Sprintf("Supports weak protocol: %s %s", proto.Name, proto.Version),
				Location:    "Protocol Negotiation",
				Remediation: "Disable SSL and TLS 1.0; offer TLS 1.2 and 1.3 only",
			})
		}
	}

	weakCiphers := lo.CountBy(result.Suites, isWeakCipher)
	if weakCiphers > 0 {
		vulns = append(vulns, types.Vulnerability{
			Type:        VulnWeakCipher,
			Severity:    types.SeverityHigh,
			Description: fmt.Sprintf("%d weak cipher suites detected", weakCiphers),
			Location:    "Cipher Configuration",
			Remediation: "Remove RC4, DES, and sub-128-bit cipher suites from the server configuration",
		})
	}

	if v, ok := certExpiryFinding(result.Certificate, now); ok {
		vulns = append(vulns, v)
	}

	return vulns
}

// isWeakCipher reports whether a cipher suite is below the strength floor
// or carries a legacy algorithm marker in its name
func isWeakCipher(suite types.CipherSuite) bool {
	return suite.CipherStrength < minCipherStrength ||
		strings.Contains(suite.Name, "RC4") ||
		strings.Contains(suite.Name, "DES")
}

// certExpiryFinding emits a single finding for a certificate nearing
// expiry. Within 7 days the severity escalates to high, superseding the
// 30-day medium classification.
func certExpiryFinding(cert types.Certificate, now time.Time) (types.Vulnerability, bool) {
	if cert.NotAfter == 0 {
		return types.Vulnerability{}, false
	}

	daysUntilExpiry := int(time.Unix(cert.NotAfter, 0).Sub(now).Hours() / hoursPerDay)
	if daysUntilExpiry >= certExpiryWarnDays {
		return types.Vulnerability{}, false
	}

	severity := types.SeverityMedium
	if daysUntilExpiry < certExpiryCritDays {
		severity = types.SeverityHigh
	}

	return types.Vulnerability{
		Type:        VulnCertExpiring,
		Severity:    severity,
		Description: fmt.Sprintf("Certificate expires in %d days", daysUntilExpiry),
		Location:    "Certificate",
		Remediation: "Renew the certificate before it expires",
	}, true
}

// ScoreTLS computes the TLS security score: grade base score, plus bonuses
// for confirmed hardening features, minus per-vulnerability penalties,
// clamped to [0,100] as the final step. Higher is more secure.
func ScoreTLS(result types.GradingResult, vulns []types.Vulnerability, features types.TLSFeatures) int {
	score := gradeScores[result.Grade]

	if features.SupportsTLS13 {
		score += bonusTLS13
	}
	if features.HSTSEnabled {
		score += bonusHSTS
	}
	if features.CertificateTransparency {
		score += bonusCT
	}
	if features.OCSPStapling {
		score += bonusOCSP
	}
	if features.PerfectForwardSecrecy {
		score += bonusPFS
	}

	for _, v := range vulns {
		score -= tlsSeverityPenalty[v.Severity]
	}

	return clampScore(score)
}

// RecommendTLS maps vulnerability and feature-flag state to an ordered,
// deduplicated list of remediation messages. Rules are keyed on flags and
// on the set of vulnerability types, so a cause appearing at multiple
// locations yields a single message. The result is never empty.
func RecommendTLS(result types.GradingResult, vulns []types.Vulnerability, features types.TLSFeatures) []string {
	var recommendations []string

	if result.Grade == "F" || result.Grade == types.GradeTimeout {
		recommendations = append(recommendations, "Critical: SSL/TLS configuration has serious security issues that need immediate attention")
	}

	if !features.SupportsTLS13 {
		recommendations = append(recommendations, "Enable TLS 1.3 support for improved security and performance")
	}

	if !features.HSTSEnabled {
		recommendations = append(recommendations, "Implement HTTP Strict Transport Security (HSTS) headers")
	}

	if !features.CertificateTransparency {
		recommendations = append(recommendations, "Enable Certificate Transparency monitoring")
	}

	if len(vulns) > 0 {
		recommendations = append(recommendations, fmt.Sprintf("Address %d SSL/TLS vulnerabilities found", len(vulns)))
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "SSL/TLS configuration appears to be well-configured")
	}

	return recommendations
}

// clampScore bounds a score to [0,100]
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
