// Package dnscheck collects the DNS evidence the scoring engine consumes:
// the record set, detected security features, and the results of the
// zone-transfer and wildcard probes. Every sub-check is best-effort; a
// failed lookup leaves the corresponding flag false rather than erroring,
// since absence of evidence is never treated as presence of a feature.
package dnscheck

import (
	"context"
	"strings"
	"time"

	"github.com/miekg/dns"

	"github.com/sunnybai72592/eternyx-haunted-hollow-sub002/internal/types"
)

const (
	// defaultDNSServer is the resolver used when none is configured
	defaultDNSServer = "8.8.8.8:53"
	// defaultTimeout is the per-query timeout for DNS lookups
	defaultTimeout = 5 * time.Second
)

// recordTypes enumerated for the snapshot, in collection order
var recordTypes = []uint16{
	dns.TypeA,
	dns.TypeAAAA,
	dns.TypeMX,
	dns.TypeNS,
	dns.TypeTXT,
	dns.TypeCNAME,
	dns.TypeSOA,
	dns.TypeCAA,
}

// Collector gathers DNS evidence for a domain
type Collector struct {
	client        *dns.Client
	server        string
	dkimSelectors []string
	axfr          bool
}

// Option configures the Collector
type Option func(*Collector)

// WithDNSServer overrides the DNS server used for lookups
func WithDNSServer(server string) Option {
	return func(c *Collector) {
		if server != "" {
			c.server = server
		}
	}
}

// WithTimeout overrides the per-query DNS timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Collector) {
		if timeout > 0 {
			c.client.Timeout = timeout
		}
	}
}

// WithDKIMSelectors overrides the DKIM selectors probed during collection
func WithDKIMSelectors(selectors []string) Option {
	return func(c *Collector) {
		if len(selectors) > 0 {
			c.dkimSelectors = selectors
		}
	}
}

// WithZoneTransferProbe toggles the AXFR probe against each nameserver
func WithZoneTransferProbe(enabled bool) Option {
	return func(c *Collector) {
		c.axfr = enabled
	}
}

// New creates a collector
func New(opts ...Option) *Collector {
	c := &Collector{
		client: &dns.Client{
			Timeout: defaultTimeout,
		},
		server:        defaultDNSServer,
		dkimSelectors: commonSelectors,
		axfr:          true,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Collect builds a complete DNS snapshot for the domain
func (c *Collector) Collect(ctx context.Context, domain string) (types.DNSSnapshot, error) {
	domain = strings.TrimSpace(strings.ToLower(domain))
	if domain == "" {
		return types.DNSSnapshot{}, ErrEmptyDomain
	}

	snap := types.DNSSnapshot{Domain: domain}

	for _, qtype := range recordTypes {
		if ctx.Err() != nil {
			break
		}

		snap.Records = append(snap.Records, c.lookupRecords(ctx, domain, qtype)...)
	}

	for _, r := range snap.Records {
		if r.Type == "NS" {
			snap.Nameservers = append(snap.Nameservers, r.Value)
		}
	}

	c.detectFeatures(ctx, domain, &snap)

	if c.axfr {
		snap.ZoneTransferOpen = c.probeZoneTransfer(ctx, domain, snap.Nameservers)
	}

	snap.WildcardDetected = c.probeWildcard(ctx, domain)

	return snap, nil
}

// query issues a single DNS question against the configured server
func (c *Collector) query(ctx context.Context, name string, qtype uint16) *dns.Msg {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), qtype)
	msg.RecursionDesired = true

	resp, _, err := c.client.ExchangeContext(ctx, msg, c.server)
	if err != nil {
		return nil
	}

	return resp
}

// lookupRecords queries one record type and converts the answers into
// snapshot records
func (c *Collector) lookupRecords(ctx context.Context, domain string, qtype uint16) []types.DNSRecord {
	resp := c.query(ctx, domain, qtype)
	if resp == nil {
		return nil
	}

	var records []types.DNSRecord

	for _, rr := range resp.Answer {
		// Resolvers answer CNAME-chased queries with extra record types;
		// keep only answers of the requested type.
		if rr.Header().Rrtype != qtype {
			continue
		}

		value := recordValue(rr)
		if value == "" {
			continue
		}

		records = append(records, types.DNSRecord{
			Type:  dns.TypeToString[qtype],
			Name:  strings.TrimSuffix(rr.Header().Name, "."),
			Value: value,
			TTL:   rr.Header().Ttl,
		})
	}

	return records
}

// recordValue renders a resource record's data as a display string
func recordValue(rr dns.RR) string {
	switch r := rr.(type) {
	case *dns.A:
		return r.A.String()
	case *dns.AAAA:
		return r.AAAA.String()
	case *dns.MX:
		return strings.TrimSuffix(r.Mx, ".")
	case *dns.NS:
		return strings.TrimSuffix(r.Ns, ".")
	case *dns.TXT:
		return strings.Join(r.Txt, "")
	case *dns.CNAME:
		return strings.TrimSuffix(r.Target, ".")
	case *dns.SOA:
		return strings.TrimSuffix(r.Ns, ".")
	case *dns.CAA:
		return r.Tag + " " + r.Value
	default:
		return ""
	}
}
