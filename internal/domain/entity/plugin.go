package entity

import (
	"fmt"
	"time"

	"github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/valueobject"
)

type PausePolicy string

const (
	// PauseOnMutation stops the plugin only for runs that change DNS.
	PauseOnMutation PausePolicy = "mutation"
	PauseAlways     PausePolicy = "always"
)

// Plugin is the traffic-shaping service paused around measurement and DNS
// mutation. It is controlled through /etc/init.d/<name>.
type Plugin struct {
	Name        string        `yaml:"name"`
	PausePolicy PausePolicy   `yaml:"pause_policy,omitempty"`
	SettleDelay time.Duration `yaml:"settle_delay,omitempty"`
	SSH         *SSHTarget    `yaml:"ssh,omitempty"`
}

type SSHTarget struct {
	Host       string                `yaml:"host"`
	Port       int                   `yaml:"port,omitempty"`
	User       string                `yaml:"user"`
	Password   valueobject.SecretRef `yaml:"password"`
	KnownHosts string                `yaml:"known_hosts,omitempty"`
}

func (t *SSHTarget) PortOrDefault() int {
	if t.Port == 0 {
		return 22
	}
	return t.Port
}

func (p *Plugin) Enabled() bool {
	return p != nil && p.Name != "" && p.Name != domain.UnspecifiedAccount
}

func (p *Plugin) Policy() PausePolicy {
	if p == nil || p.PausePolicy == "" {
		return PauseOnMutation
	}
	return p.PausePolicy
}

func (p *Plugin) Settle() time.Duration {
	if p == nil || p.SettleDelay <= 0 {
		return domain.PluginSettleDelay
	}
	return p.SettleDelay
}

// ShouldPause decides whether a run of g stops the plugin.
func (p *Plugin) ShouldPause(g *ResolveGroup) bool {
	if !p.Enabled() {
		return false
	}
	if p.Policy() == PauseAlways {
		return true
	}
	return g.HasAccount() && !g.IsPassthrough()
}

func (p *Plugin) Validate() error {
	switch p.Policy() {
	case PauseOnMutation, PauseAlways:
	default:
		return fmt.Errorf("%w: pause_policy %q", domain.ErrInvalidType, p.PausePolicy)
	}
	if p.SSH != nil {
		if p.SSH.Host == "" {
			return domain.RequiredField("ssh.host")
		}
		if p.SSH.User == "" {
			return domain.RequiredField("ssh.user")
		}
		if p.SSH.Port < 0 || p.SSH.Port > 65535 {
			return fmt.Errorf("%w: ssh.port %d", domain.ErrInvalidPort, p.SSH.Port)
		}
	}
	return nil
}
