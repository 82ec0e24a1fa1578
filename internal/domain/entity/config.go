package entity

import (
	"fmt"

	"github.com/lite-lake/ipsync/internal/domain"
)

type Config struct {
	Secrets        []Secret        `yaml:"secrets,omitempty"`
	Accounts       []Account       `yaml:"accounts,omitempty"`
	Resolves       []ResolveGroup  `yaml:"resolves,omitempty"`
	Push           []Channel       `yaml:"push,omitempty"`
	ListPublishers []ListPublisher `yaml:"list_publishers,omitempty"`
	Plugin         *Plugin         `yaml:"plugin,omitempty"`
	Prober         Prober          `yaml:"prober,omitempty"`
	Metrics        Metrics         `yaml:"metrics,omitempty"`
	Verify         Verify          `yaml:"verify,omitempty"`
}

func (c *Config) Validate() error {
	for i, s := range c.Secrets {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("secrets[%d]: %w", i, err)
		}
	}
	for i, a := range c.Accounts {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("accounts[%d]: %w", i, err)
		}
	}
	if err := uniqueNames(c.Accounts, func(a Account) string { return a.Name }); err != nil {
		return fmt.Errorf("accounts: %w", err)
	}
	for i, g := range c.Resolves {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("resolves[%d]: %w", i, err)
		}
	}
	if err := uniqueNames(c.Resolves, func(g ResolveGroup) string { return g.Name }); err != nil {
		return fmt.Errorf("resolves: %w", err)
	}
	for i, ch := range c.Push {
		if err := ch.Validate(); err != nil {
			return fmt.Errorf("push[%d]: %w", i, err)
		}
	}
	for i, p := range c.ListPublishers {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("list_publishers[%d]: %w", i, err)
		}
	}
	if c.Plugin != nil {
		if err := c.Plugin.Validate(); err != nil {
			return fmt.Errorf("plugin: %w", err)
		}
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	return nil
}

func uniqueNames[T any](items []T, getName func(T) string) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		name := getName(item)
		if seen[name] {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateName, name)
		}
		seen[name] = true
	}
	return nil
}

func toMapPtr[T any](items []T, getName func(T) string) map[string]*T {
	m := make(map[string]*T)
	for i := range items {
		m[getName(items[i])] = &items[i]
	}
	return m
}

func (c *Config) GetSecretsMap() map[string]string {
	m := make(map[string]string)
	for _, s := range c.Secrets {
		m[s.Name] = s.Value
	}
	return m
}

func (c *Config) GetAccountMap() map[string]*Account {
	return toMapPtr(c.Accounts, func(a Account) string { return a.Name })
}

func (c *Config) GetResolveMap() map[string]*ResolveGroup {
	return toMapPtr(c.Resolves, func(g ResolveGroup) string { return g.Name })
}

func (c *Config) FindResolve(name string) (*ResolveGroup, error) {
	g, ok := c.GetResolveMap()[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownGroup, name)
	}
	return g, nil
}

// FindAccount returns nil without error for the unspecified account.
func (c *Config) FindAccount(name string) (*Account, error) {
	if name == "" || name == domain.UnspecifiedAccount {
		return nil, nil
	}
	a, ok := c.GetAccountMap()[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAccount, name)
	}
	return a, nil
}

func (c *Config) ChannelsOfKind(kind ChannelKind) []Channel {
	var out []Channel
	for _, ch := range c.Push {
		if ch.Kind == kind {
			out = append(out, ch)
		}
	}
	return out
}

func (c *Config) PublishersFor(group string, kind ChannelKind) []ListPublisher {
	var out []ListPublisher
	for _, p := range c.ListPublishers {
		if p.Group == group && p.Kind() == kind {
			out = append(out, p)
		}
	}
	return out
}
