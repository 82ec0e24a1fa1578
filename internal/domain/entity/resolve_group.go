package entity

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/valueobject"
)

var domainPattern = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

// ResolveGroup binds a set of hostnames to an account, candidate sources and
// notification channels. Zero quotas for both families select passthrough mode.
type ResolveGroup struct {
	Name       string `yaml:"name"`
	Account    string `yaml:"account"`
	Domain     string `yaml:"domain,omitempty"`
	Subdomains string `yaml:"subdomains,omitempty"`
	V4Quota    int    `yaml:"v4_quota"`
	V6Quota    int    `yaml:"v6_quota"`
	ProberArgs string `yaml:"prober_args,omitempty"`
	V4URL      string `yaml:"v4_url,omitempty"`
	V6URL      string `yaml:"v6_url,omitempty"`
	Channels   string `yaml:"channels,omitempty"`
}

func (g *ResolveGroup) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("%w: group name is required", domain.ErrInvalidName)
	}
	if g.Account == "" {
		return domain.RequiredField("account")
	}
	if g.V4Quota < 0 || g.V6Quota < 0 {
		return fmt.Errorf("%w: quotas must be non-negative", domain.ErrInvalidQuota)
	}
	if g.HasAccount() {
		if !domainPattern.MatchString(g.Domain) {
			return fmt.Errorf("%w: %q", domain.ErrInvalidDomain, g.Domain)
		}
		if len(strings.Fields(g.Subdomains)) == 0 {
			return domain.RequiredField("subdomains")
		}
	}
	for _, raw := range []string{g.V4URL, g.V6URL} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %s", domain.ErrInvalidURL, raw)
		}
	}
	return nil
}

// HasAccount reports whether the group may mutate DNS records.
func (g *ResolveGroup) HasAccount() bool {
	return g.Account != "" && g.Account != domain.UnspecifiedAccount
}

func (g *ResolveGroup) IsPassthrough() bool {
	return g.V4Quota == 0 && g.V6Quota == 0
}

func (g *ResolveGroup) Quota(f valueobject.Family) int {
	if f == valueobject.FamilyIPv6 {
		return g.V6Quota
	}
	return g.V4Quota
}

func (g *ResolveGroup) SourceURL(f valueobject.Family) string {
	if f == valueobject.FamilyIPv6 {
		return g.V6URL
	}
	return g.V4URL
}

// Hostnames expands the subdomain list against the apex domain. Groups
// without an account have no hostnames.
func (g *ResolveGroup) Hostnames() []string {
	if !g.HasAccount() {
		return nil
	}
	var names []string
	seen := make(map[string]bool)
	for _, sub := range strings.Fields(g.Subdomains) {
		full := FullDomain(sub, g.Domain)
		if seen[full] {
			continue
		}
		seen[full] = true
		names = append(names, full)
	}
	return names
}

// ChannelNames returns the enabled channel names in configured order.
func (g *ResolveGroup) ChannelNames() []string {
	fields := strings.Fields(g.Channels)
	if len(fields) == 0 {
		return nil
	}
	if len(fields) == 1 && strings.EqualFold(fields[0], domain.DisabledChannels) {
		return nil
	}
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.EqualFold(f, domain.DisabledChannels) {
			continue
		}
		names = append(names, strings.ToLower(f))
	}
	return names
}

func FullDomain(sub, apex string) string {
	if sub == "@" || sub == "" {
		return apex
	}
	return sub + "." + apex
}
