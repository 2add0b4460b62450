// Package domain validates and normalizes analysis targets before any
// external calls are made on their behalf.
package domain

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Info contains the parsed parts of an analysis target
type Info struct {
	// Hostname is the normalized full hostname
	Hostname string `json:"hostname"`
	// Subdomain is the part left of the registrable domain, if any
	Subdomain string `json:"subdomain,omitempty"`
	// Registrable is the effective TLD plus one label (e.g. example.com)
	Registrable string `json:"registrable"`
	// TLD is the effective top-level domain (public suffix)
	TLD string `json:"tld"`
}

// Parse normalizes a hostname for analysis. It tolerates full URLs and
// host:port inputs since dashboard callers paste both, and rejects
// anything that does not resolve to a registrable domain.
func Parse(input string) (*Info, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	if strings.Contains(input, "://") {
		u, err := url.Parse(input)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
		}

		input = u.Host
	}

	if idx := strings.LastIndex(input, ":"); idx != -1 {
		input = input[:idx]
	}

	if input == "" || !strings.Contains(input, ".") {
		return nil, ErrInvalidDomain
	}

	registrable, err := publicsuffix.EffectiveTLDPlusOne(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDomain, err)
	}

	tld, _ := publicsuffix.PublicSuffix(input)

	subdomain := ""
	if registrable != input {
		subdomain = strings.TrimSuffix(input, "."+registrable)
	}

	return &Info{
		Hostname:    input,
		Subdomain:   subdomain,
		Registrable: registrable,
		TLD:         tld,
	}, nil
}
