package scoring

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/sunnybai72592/eternyx-haunted-hollow-sub002/internal/types"
)

// DNS vulnerability taxonomy keys
const (
	VulnDNSSECNotConfigured  = "DNSSEC Not Configured"
	VulnMissingSPF           = "Missing SPF Record"
	VulnMultipleSPF          = "Multiple SPF Records"
	VulnWeakSPF              = "Weak SPF Policy"
	VulnMissingDMARC         = "Missing DMARC Record"
	VulnWeakDMARC            = "Weak DMARC Policy"
	VulnZoneTransfer         = "Zone Transfer Allowed"
	VulnWildcardRecords      = "Wildcard DNS Records"
	VulnHighTTL              = "High TTL Values"
	VulnNameserverRedundancy = "Insufficient Nameserver Redundancy"
)

const (
	// highTTLThreshold flags records cached longer than 24 hours
	highTTLThreshold = 86400
	// minNameservers is the redundancy floor for NS records
	minNameservers = 2
)

// Risk points per vulnerability severity for the DNS risk score
var dnsSeverityRisk = map[string]int{
	types.SeverityCritical: 25,
	types.SeverityHigh:     15,
	types.SeverityMedium:   8,
	types.SeverityLow:      3,
}

// Risk credits per confirmed DNS security feature
const (
	creditDNSSEC = 5
	creditSPF    = 3
	creditDMARC  = 3
	creditDKIM   = 2
	creditCAA    = 2
)

// ExtractDNS inspects a DNS snapshot and emits severity-tagged
// vulnerability findings. Deterministic for a fixed snapshot: everything
// clock- or network-dependent happened during collection.
func ExtractDNS(snap types.DNSSnapshot) []types.Vulnerability {
	var vulns []types.Vulnerability

	if !snap.Features.DNSSECEnabled {
		vulns = append(vulns, types.Vulnerability{
			Type:        VulnDNSSECNotConfigured,
			Severity:    types.SeverityMedium,
			Description: "Domain does not have DNSSEC enabled",
			Location:    "DNS Configuration",
			Remediation: "Enable DNSSEC to prevent DNS spoofing and cache poisoning attacks",
		})
	}

	vulns = append(vulns, extractSPF(snap)...)
	vulns = append(vulns, extractDMARC(snap)...)

	if snap.ZoneTransferOpen {
		vulns = append(vulns, types.Vulnerability{
			Type:        VulnZoneTransfer,
			Severity:    types.SeverityHigh,
			Description: "DNS zone transfer is allowed from unauthorized sources",
			Location:    "DNS Server Configuration",
			Remediation: "Restrict zone transfers to authorized secondary nameservers only",
		})
	}

	if len(snap.Nameservers) < minNameservers {
		vulns = append(vulns, types.Vulnerability{
			Type:        VulnNameserverRedundancy,
			Severity:    types.SeverityMedium,
			Description: "Domain has insufficient nameserver redundancy",
			Location:    "NS Records",
			Remediation: "Configure at least 2 nameservers for redundancy",
		})
	}

	if v, ok := wildcardFinding(snap); ok {
		vulns = append(vulns, v)
	}

	if v, ok := highTTLFinding(snap.Records); ok {
		vulns = append(vulns, v)
	}

	return vulns
}

// extractSPF applies the SPF rules: missing record, multiple records, and
// the permissive +all mechanism
func extractSPF(snap types.DNSSnapshot) []types.Vulnerability {
	switch {
	case len(snap.SPFRecords) == 0:
		return []types.Vulnerability{{
			Type:        VulnMissingSPF,
			Severity:    types.SeverityMedium,
			Description: "Domain lacks SPF record for email authentication",
			Location:    "TXT Records",
			Remediation: "Configure SPF record to prevent email spoofing",
		}}
	case len(snap.SPFRecords) > 1:
		return []types.Vulnerability{{
			Type:           VulnMultipleSPF,
			Severity:       types.SeverityHigh,
			Description:    "Multiple SPF records found, which can cause authentication failures",
			Location:       "TXT Records",
			ProofOfConcept: strings.Join(snap.SPFRecords, ", "),
			Remediation:    "Consolidate into a single SPF record",
		}}
	case strings.Contains(strings.ToLower(snap.SPFRecords[0]), "+all"):
		return []types.Vulnerability{{
			Type:           VulnWeakSPF,
			Severity:       types.SeverityHigh,
			Description:    "SPF record uses +all which allows any server to send email",
			Location:       "SPF Record",
			ProofOfConcept: snap.SPFRecords[0],
			Remediation:    "Change +all to ~all or -all for stricter policy",
		}}
	}

	return nil
}

// extractDMARC applies the DMARC rules: missing record and the p=none
// monitoring-only policy
func extractDMARC(snap types.DNSSnapshot) []types.Vulnerability {
	if snap.DMARCRecord == "" {
		return []types.Vulnerability{{
			Type:        VulnMissingDMARC,
			Severity:    types.SeverityMedium,
			Description: "Domain lacks DMARC record for email policy enforcement",
			Location:    "_dmarc subdomain",
			Remediation: "Configure DMARC record to enforce email authentication policies",
		}}
	}

	if strings.Contains(strings.ToLower(snap.DMARCRecord), "p=none") {
		return []types.Vulnerability{{
			Type:           VulnWeakDMARC,
			Severity:       types.SeverityLow,
			Description:    "DMARC policy is set to none, providing no protection",
			Location:       "DMARC Record",
			ProofOfConcept: snap.DMARCRecord,
			Remediation:    "Strengthen DMARC policy to quarantine or reject",
		}}
	}

	return nil
}

// wildcardFinding reports wildcard DNS records, either probed during
// collection or visible as *-labelled records in the snapshot
func wildcardFinding(snap types.DNSSnapshot) (types.Vulnerability, bool) {
	wildcards := lo.Filter(snap.Records, func(r types.DNSRecord, _ int) bool {
		return strings.Contains(r.Name, "*")
	})

	if !snap.WildcardDetected && len(wildcards) == 0 {
		return types.Vulnerability{}, false
	}

	poc := strings.Join(lo.Map(wildcards, func(r types.DNSRecord, _ int) string {
		return fmt.Sprintf("%s -> %s", r.Name, r.Value)
	}), ", ")

	return types.Vulnerability{
		Type:           VulnWildcardRecords,
		Severity:       types.SeverityLow,
		Description:    "Wildcard DNS records detected, which may expose internal structure",
		Location:       "DNS Records",
		ProofOfConcept: poc,
		Remediation:    "Review wildcard records and remove if unnecessary",
	}, true
}

// highTTLFinding reports records cached beyond the 24 hour threshold
func highTTLFinding(records []types.DNSRecord) (types.Vulnerability, bool) {
	high := lo.CountBy(records, func(r types.DNSRecord) bool {
		return r.TTL > highTTLThreshold
	})

	if high == 0 {
		return types.Vulnerability{}, false
	}

	return types.Vulnerability{
		Type:        VulnHighTTL,
		Severity:    types.SeverityLow,
		Description: "Some DNS records have very high TTL values",
		Location:    "DNS Records",
		Remediation: "Consider reducing TTL values for faster updates during incidents",
	}, true
}

// ScoreDNSRisk computes the DNS risk score: per-vulnerability risk points
// minus credits for confirmed security features, clamped to [0,100] as the
// final step. Higher is riskier.
func ScoreDNSRisk(vulns []types.Vulnerability, features types.DNSFeatures) int {
	score := 0

	for _, v := range vulns {
		score += dnsSeverityRisk[v.Severity]
	}

	if features.DNSSECEnabled {
		score -= creditDNSSEC
	}
	if features.SPFConfigured {
		score -= creditSPF
	}
	if features.DMARCConfigured {
		score -= creditDMARC
	}
	if features.DKIMConfigured {
		score -= creditDKIM
	}
	if features.CAAConfigured {
		score -= creditCAA
	}

	return clampScore(score)
}

// InvertRisk converts a risk score into the unified security score
// convention used across analyzers, where higher always means more secure.
func InvertRisk(riskScore int) int {
	return clampScore(100 - riskScore)
}

// RecommendDNS maps feature-flag state and the set of observed
// vulnerability types to an ordered, deduplicated list of remediation
// messages. The result is never empty.
func RecommendDNS(vulns []types.Vulnerability, features types.DNSFeatures) []string {
	var recommendations []string

	if !features.DNSSECEnabled {
		recommendations = append(recommendations, "Enable DNSSEC to protect against DNS spoofing and cache poisoning")
	}

	if !features.SPFConfigured {
		recommendations = append(recommendations, "Configure SPF records to prevent email spoofing")
	}

	if !features.DMARCConfigured {
		recommendations = append(recommendations, "Implement DMARC policy for email authentication enforcement")
	}

	if !features.DKIMConfigured {
		recommendations = append(recommendations, "Set up DKIM signing for email authentication")
	}

	if !features.CAAConfigured {
		recommendations = append(recommendations, "Configure CAA records to control certificate issuance")
	}

	vulnTypes := make(map[string]struct{}, len(vulns))
	for _, v := range vulns {
		vulnTypes[v.Type] = struct{}{}
	}

	if _, ok := vulnTypes[VulnZoneTransfer]; ok {
		recommendations = append(recommendations, "Restrict DNS zone transfers to authorized servers only")
	}

	if _, ok := vulnTypes[VulnMultipleSPF]; ok {
		recommendations = append(recommendations, "Consolidate multiple SPF records into a single record")
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "DNS configuration appears secure, continue monitoring for changes")
	}

	return recommendations
}
