// Package types holds the shared data shapes exchanged between the
// analyzers, the scoring engine, and the API layer.
package types

// Severity levels for vulnerability findings
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// GradeTimeout is the sentinel grade returned when the grading vendor
// could not complete the analysis. It is scored as a worst-case input,
// never treated as an error.
const GradeTimeout = "T"

// Vulnerability is a single typed, severity-tagged security finding
type Vulnerability struct {
	// Type is the taxonomy key for the finding (e.g. "WEAK_CIPHER")
	Type string `json:"type"`
	// Severity is one of critical/high/medium/low
	Severity string `json:"severity"`
	// Description is a human-readable summary of the finding
	Description string `json:"description"`
	// Location names where the finding was observed
	Location string `json:"location,omitempty"`
	// Remediation is a short hint on how to fix the finding
	Remediation string `json:"remediation,omitempty"`
	// ProofOfConcept holds supporting evidence, if any
	ProofOfConcept string `json:"proof_of_concept,omitempty"`
}

// Protocol is a protocol version offered by the target server
type Protocol struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// CipherSuite is a cipher suite offered by the target server
type CipherSuite struct {
	Name string `json:"name"`
	// CipherStrength is the effective key strength in bits
	CipherStrength int `json:"cipher_strength"`
}

// Certificate holds the certificate fields the scoring engine reads
type Certificate struct {
	// NotAfter is the expiry time as Unix epoch seconds, zero when unknown
	NotAfter int64 `json:"not_after"`
}

// GradingResult is the normalized output of the external grading vendor
type GradingResult struct {
	// Grade is the vendor letter grade (A+ through F, or T on failure)
	Grade       string `json:"grade"`
	HasWarnings bool   `json:"has_warnings"`
	// Progress is the vendor-reported completion percentage
	Progress        int           `json:"progress"`
	Protocols       []Protocol    `json:"protocols"`
	Suites          []CipherSuite `json:"suites"`
	Certificate     Certificate   `json:"certificate"`
	ServerSignature string        `json:"server_signature,omitempty"`
	// AnalysisFailed is set when the vendor never reached a ready state;
	// the extractor converts it into an ANALYSIS_FAILED finding
	AnalysisFailed bool `json:"analysis_failed,omitempty"`
}

// TLSFeatures are the supplementary hardening signals probed live over
// HTTPS, independent of the grading vendor. Each flag defaults to false
// when undetermined; absence of evidence is never presence of the feature.
type TLSFeatures struct {
	CertificateValid        bool `json:"certificate_valid"`
	SupportsTLS13           bool `json:"supports_tls13"`
	HSTSEnabled             bool `json:"hsts_enabled"`
	CertificateTransparency bool `json:"certificate_transparency"`
	OCSPStapling            bool `json:"ocsp_stapling"`
	PerfectForwardSecrecy   bool `json:"perfect_forward_secrecy"`
}

// DNSFeatures are the security features detected from the DNS record set
type DNSFeatures struct {
	DNSSECEnabled   bool `json:"dnssec_enabled"`
	SPFConfigured   bool `json:"spf_configured"`
	DMARCConfigured bool `json:"dmarc_configured"`
	DKIMConfigured  bool `json:"dkim_configured"`
	CAAConfigured   bool `json:"caa_configured"`
}

// DNSRecord is a single DNS record observed during collection
type DNSRecord struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
	TTL   uint32 `json:"ttl,omitempty"`
}

// DNSSnapshot is everything the collector observed about a domain. It is
// the sole input to DNS vulnerability extraction, which keeps extraction
// a pure function over a fixed snapshot.
type DNSSnapshot struct {
	Domain      string      `json:"domain"`
	Records     []DNSRecord `json:"dns_records"`
	Nameservers []string    `json:"nameservers"`
	Features    DNSFeatures `json:"security_features"`
	// SPFRecords holds every v=spf1 TXT value found at the apex
	SPFRecords []string `json:"spf_records,omitempty"`
	// DMARCRecord is the raw _dmarc TXT value, empty if not found
	DMARCRecord string `json:"dmarc_record,omitempty"`
	// ZoneTransferOpen is set when any nameserver answered an AXFR
	ZoneTransferOpen bool `json:"zone_transfer_open"`
	// WildcardDetected is set when a random label resolved
	WildcardDetected bool `json:"wildcard_detected"`
}
