package entity

import (
	"fmt"
	"net/url"
	"time"

	"github.com/lite-lake/ipsync/internal/domain"
)

type Prober struct {
	Binary  string `yaml:"binary,omitempty"`
	WorkDir string `yaml:"workdir,omitempty"`
}

func (p Prober) BinaryOrDefault() string {
	if p.Binary == "" {
		return domain.DefaultProberBinary
	}
	return p.Binary
}

// Metrics enables pushing run metrics to a Prometheus Pushgateway.
type Metrics struct {
	Pushgateway string `yaml:"pushgateway,omitempty"`
	Job         string `yaml:"job,omitempty"`
}

func (m Metrics) Enabled() bool { return m.Pushgateway != "" }

func (m Metrics) JobName() string {
	if m.Job == "" {
		return "ipsync"
	}
	return m.Job
}

func (m Metrics) Validate() error {
	if m.Pushgateway == "" {
		return nil
	}
	if _, err := url.ParseRequestURI(m.Pushgateway); err != nil {
		return fmt.Errorf("%w: pushgateway %s", domain.ErrInvalidURL, m.Pushgateway)
	}
	return nil
}

// Verify resolves the hostnames after reconciliation against Nameserver.
type Verify struct {
	Nameserver string        `yaml:"nameserver,omitempty"`
	Timeout    time.Duration `yaml:"timeout,omitempty"`
}

func (v Verify) Enabled() bool { return v.Nameserver != "" }

func (v Verify) TimeoutOrDefault() time.Duration {
	if v.Timeout <= 0 {
		return 5 * time.Second
	}
	return v.Timeout
}
