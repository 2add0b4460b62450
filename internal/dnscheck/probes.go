package dnscheck

import (
	"context"
	"net"

	"github.com/google/uuid"
	"github.com/miekg/dns"
	"github.com/rs/zerolog/log"
)

const dnsPort = "53"

// probeZoneTransfer attempts an AXFR against each nameserver. Any
// nameserver that answers with zone data leaves the domain open to full
// zone enumeration.
func (c *Collector) probeZoneTransfer(ctx context.Context, domain string, nameservers []string) bool {
	for _, ns := range nameservers {
		if ctx.Err() != nil {
			return false
		}

		if c.tryAXFR(domain, ns) {
			log.Warn().Str("domain", domain).Str("nameserver", ns).Msg("zone transfer allowed")
			return true
		}
	}

	return false
}

// tryAXFR performs one zone transfer attempt against a single nameserver
func (c *Collector) tryAXFR(domain, nameserver string) bool {
	transfer := &dns.Transfer{
		DialTimeout:  c.client.Timeout,
		ReadTimeout:  c.client.Timeout,
		WriteTimeout: c.client.Timeout,
	}

	msg := new(dns.Msg)
	msg.SetAxfr(dns.Fqdn(domain))

	envelopes, err := transfer.In(msg, net.JoinHostPort(nameserver, dnsPort))
	if err != nil {
		return false
	}

	for envelope := range envelopes {
		if envelope.Error == nil && len(envelope.RR) > 0 {
			return true
		}
	}

	return false
}

// probeWildcard queries an A record for a label that cannot exist; an
// answer means the zone resolves arbitrary names
func (c *Collector) probeWildcard(ctx context.Context, domain string) bool {
	probe := uuid.NewString() + "." + domain

	resp := c.query(ctx, probe, dns.TypeA)
	if resp == nil {
		return false
	}

	for _, rr := range resp.Answer {
		if _, ok := rr.(*dns.A); ok {
			return true
		}
	}

	return false
}
