package dnscheck

import (
	"context"
	"fmt"
	"net"
	"sort"
	"time"

	mdns "github.com/miekg/dns"

	"github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/valueobject"
)

// Checker queries a nameserver directly to see whether published records
// already answer with the expected addresses.
type Checker struct {
	server string
	client *mdns.Client
}

// New targets server, given as host or host:port.
func New(server string, timeout time.Duration) *Checker {
	if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "53")
	}
	if timeout <= 0 {
		timeout = domain.CredentialTimeout
	}
	return &Checker{server: server, client: &mdns.Client{Net: "udp", Timeout: timeout}}
}

// Lookup returns the addresses name resolves to for recordType, sorted.
func (c *Checker) Lookup(ctx context.Context, name string, recordType valueobject.RecordType) ([]string, error) {
	qtype := mdns.TypeA
	if recordType == valueobject.RecordTypeAAAA {
		qtype = mdns.TypeAAAA
	}

	req := new(mdns.Msg)
	req.SetQuestion(mdns.Fqdn(name), qtype)
	req.RecursionDesired = true

	resp, _, err := c.client.ExchangeContext(ctx, req, c.server)
	if err != nil {
		return nil, fmt.Errorf("query %s %s at %s: %w", recordType, name, c.server, err)
	}
	if resp.Rcode != mdns.RcodeSuccess && resp.Rcode != mdns.RcodeNameError {
		return nil, fmt.Errorf("query %s %s at %s: %s", recordType, name, c.server, mdns.RcodeToString[resp.Rcode])
	}

	var out []string
	for _, rr := range resp.Answer {
		switch v := rr.(type) {
		case *mdns.A:
			out = append(out, v.A.String())
		case *mdns.AAAA:
			out = append(out, v.AAAA.String())
		}
	}
	sort.Strings(out)
	return out, nil
}

// Missing reports which of want name does not resolve to yet.
func (c *Checker) Missing(ctx context.Context, name string, recordType valueobject.RecordType, want []string) ([]string, error) {
	got, err := c.Lookup(ctx, name, recordType)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(got))
	for _, a := range got {
		seen[a] = true
	}
	var missing []string
	for _, a := range want {
		if ip := net.ParseIP(a); ip != nil {
			a = ip.String()
		}
		if !seen[a] {
			missing = append(missing, a)
		}
	}
	return missing, nil
}
