package grading

import "github.com/sunnybai72592/eternyx-haunted-hollow-sub002/internal/types"

// vendorPayload mirrors the loosely-typed vendor JSON. Every field is
// optional; normalization applies safe defaults so the raw payload never
// travels past this boundary.
type vendorPayload struct {
	Status    string           `json:"status"`
	Endpoints []vendorEndpoint `json:"endpoints"`
}

type vendorEndpoint struct {
	Grade           string         `json:"grade"`
	HasWarnings     bool           `json:"hasWarnings"`
	Progress        int            `json:"progress"`
	ServerSignature string         `json:"serverSignature"`
	Details         *vendorDetails `json:"details"`
}

type vendorDetails struct {
	Protocols []vendorProtocol `json:"protocols"`
	Suites    *vendorSuites    `json:"suites"`
	Cert      *vendorCert      `json:"cert"`
}

type vendorProtocol struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type vendorSuites struct {
	List []vendorSuite `json:"list"`
}

type vendorSuite struct {
	Name           string `json:"name"`
	CipherStrength int    `json:"cipherStrength"`
}

type vendorCert struct {
	// NotAfter is expiry as Unix epoch seconds
	NotAfter int64 `json:"notAfter"`
}

// normalize maps a ready vendor payload onto the internal result shape.
// Vendor analyses grade per endpoint; the first endpoint is authoritative.
// A ready payload with no endpoints still degrades to the sentinel grade.
func normalize(payload vendorPayload) types.GradingResult {
	if len(payload.Endpoints) == 0 {
		return sentinelResult()
	}

	ep := payload.Endpoints[0]

	result := types.GradingResult{
		Grade:           ep.Grade,
		HasWarnings:     ep.HasWarnings,
		Progress:        ep.Progress,
		ServerSignature: ep.ServerSignature,
	}

	if result.Grade == "" {
		result.Grade = types.GradeTimeout
	}

	if result.Progress == 0 {
		result.Progress = 100
	}

	if ep.Details == nil {
		return result
	}

	for _, p := range ep.Details.Protocols {
		result.Protocols = append(result.Protocols, types.Protocol{
			Name:    p.Name,
			Version: p.Version,
		})
	}

	if ep.Details.Suites != nil {
		for _, s := range ep.Details.Suites.List {
			result.Suites = append(result.Suites, types.CipherSuite{
				Name:           s.Name,
				CipherStrength: s.CipherStrength,
			})
		}
	}

	if ep.Details.Cert != nil {
		result.Certificate = types.Certificate{NotAfter: ep.Details.Cert.NotAfter}
	}

	return result
}
