package dnscheck

import (
	"context"
	"fmt"
	"strings"

	"github.com/miekg/dns"

	"github.com/sunnybai72592/eternyx-haunted-hollow-sub002/internal/types"
)

const (
	dmarcPrefix      = "_dmarc."
	domainKeySuffix  = "._domainkey."
	spfVersionPrefix = "v=spf1"
	dmarcVersionTag  = "v=dmarc1"
)

// commonSelectors are well-known DKIM selectors probed during collection
var commonSelectors = []string{
	"google",
	"default",
	"selector1",
	"selector2",
	"k1",
	"mandrill",
	"dkim",
	"mail",
	"s1",
	"s2",
}

// detectFeatures fills in the security feature flags and the raw SPF and
// DMARC records on the snapshot
func (c *Collector) detectFeatures(ctx context.Context, domain string, snap *types.DNSSnapshot) {
	for _, r := range snap.Records {
		switch r.Type {
		case "TXT":
			if strings.HasPrefix(strings.ToLower(r.Value), spfVersionPrefix) {
				snap.SPFRecords = append(snap.SPFRecords, r.Value)
			}
		case "CAA":
			snap.Features.CAAConfigured = true
		}
	}

	snap.Features.SPFConfigured = len(snap.SPFRecords) > 0
	snap.DMARCRecord = c.lookupDMARC(ctx, domain)
	snap.Features.DMARCConfigured = snap.DMARCRecord != ""
	snap.Features.DKIMConfigured = c.probeDKIM(ctx, domain)
	snap.Features.DNSSECEnabled = c.lookupDS(ctx, domain)
}

// lookupDMARC queries TXT records at _dmarc.<domain> and returns the raw
// DMARC record, empty if none exists
func (c *Collector) lookupDMARC(ctx context.Context, domain string) string {
	resp := c.query(ctx, dmarcPrefix+domain, dns.TypeTXT)
	if resp == nil {
		return ""
	}

	for _, rr := range resp.Answer {
		txt, ok := rr.(*dns.TXT)
		if !ok {
			continue
		}

		record := strings.Join(txt.Txt, "")
		if strings.HasPrefix(strings.ToLower(record), dmarcVersionTag) {
			return record
		}
	}

	return ""
}

// probeDKIM queries TXT records for each configured DKIM selector and
// reports whether at least one published key was found
func (c *Collector) probeDKIM(ctx context.Context, domain string) bool {
	for _, selector := range c.dkimSelectors {
		if ctx.Err() != nil {
			return false
		}

		qname := fmt.Sprintf("%s%s%s", selector, domainKeySuffix, domain)

		resp := c.query(ctx, qname, dns.TypeTXT)
		if resp == nil {
			continue
		}

		for _, rr := range resp.Answer {
			txt, ok := rr.(*dns.TXT)
			if !ok {
				continue
			}

			record := strings.ToLower(strings.Join(txt.Txt, ""))
			if strings.Contains(record, "v=dkim1") || strings.Contains(record, "p=") {
				return true
			}
		}
	}

	return false
}

// lookupDS reports whether DS records exist for the domain, the signal
// used for DNSSEC delegation
func (c *Collector) lookupDS(ctx context.Context, domain string) bool {
	resp := c.query(ctx, domain, dns.TypeDS)
	if resp == nil {
		return false
	}

	for _, rr := range resp.Answer {
		if _, ok := rr.(*dns.DS); ok {
			return true
		}
	}

	return false
}
