package service

import (
	"fmt"
	"strings"

	"github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/entity"
	"github.com/lite-lake/ipsync/internal/domain/valueobject"
)

type Validator struct {
	cfg *entity.Config

	secrets  map[string]string
	accounts map[string]*entity.Account
	resolves map[string]*entity.ResolveGroup
}

func NewValidator(cfg *entity.Config) *Validator {
	if cfg == nil {
		return &Validator{cfg: nil}
	}
	return &Validator{
		cfg:      cfg,
		secrets:  cfg.GetSecretsMap(),
		accounts: cfg.GetAccountMap(),
		resolves: cfg.GetResolveMap(),
	}
}

func (v *Validator) Validate() error {
	if v.cfg == nil {
		return domain.ErrConfigNotLoaded
	}

	if err := v.cfg.Validate(); err != nil {
		return err
	}

	if err := v.validateAccountReferences(); err != nil {
		return err
	}

	if err := v.validateResolveReferences(); err != nil {
		return err
	}

	if err := v.validateChannelReferences(); err != nil {
		return err
	}

	if err := v.validatePublisherReferences(); err != nil {
		return err
	}

	if err := v.validateHostnameConflicts(); err != nil {
		return err
	}

	return nil
}

func (v *Validator) checkSecret(ref valueobject.SecretRef, owner string) error {
	if ref.Secret == "" {
		return nil
	}
	if _, ok := v.secrets[ref.Secret]; !ok {
		return fmt.Errorf("%w: secret '%s' referenced by %s does not exist", domain.ErrMissingReference, ref.Secret, owner)
	}
	return nil
}

func (v *Validator) validateAccountReferences() error {
	for _, a := range v.cfg.Accounts {
		for key, ref := range a.Credentials {
			if err := v.checkSecret(ref, fmt.Sprintf("account '%s' credential '%s'", a.Name, key)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (v *Validator) validateResolveReferences() error {
	for _, g := range v.cfg.Resolves {
		if !g.HasAccount() {
			continue
		}
		if _, ok := v.accounts[g.Account]; !ok {
			return fmt.Errorf("%w: account '%s' referenced by resolve '%s' does not exist", domain.ErrMissingReference, g.Account, g.Name)
		}
	}
	return nil
}

func (v *Validator) validateChannelReferences() error {
	for _, ch := range v.cfg.Push {
		owner := fmt.Sprintf("push channel '%s'", ch.Label())
		for _, ref := range []valueobject.SecretRef{ch.BotToken, ch.Token, ch.SendKey, ch.PushKey, ch.CorpSecret, ch.WebhookURL} {
			if err := v.checkSecret(ref, owner); err != nil {
				return err
			}
		}
	}
	if v.cfg.Plugin != nil && v.cfg.Plugin.SSH != nil {
		if err := v.checkSecret(v.cfg.Plugin.SSH.Password, "plugin ssh password"); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) validatePublisherReferences() error {
	for _, p := range v.cfg.ListPublishers {
		if _, ok := v.resolves[p.Group]; !ok {
			return fmt.Errorf("%w: resolve '%s' referenced by list publisher does not exist", domain.ErrMissingReference, p.Group)
		}
		owner := fmt.Sprintf("list publisher of '%s'", p.Group)
		if err := v.checkSecret(p.FileURL, owner); err != nil {
			return err
		}
		if p.SFTP != nil {
			if err := v.checkSecret(p.SFTP.Password, owner); err != nil {
				return err
			}
		}
	}
	return nil
}

// Two groups on one account writing the same record type for a hostname
// would delete each other's records. Groups without an account never write.
func (v *Validator) validateHostnameConflicts() error {
	owners := make(map[string]string)
	for _, g := range v.cfg.Resolves {
		if !g.HasAccount() {
			continue
		}
		for _, family := range valueobject.Families {
			if g.Quota(family) <= 0 {
				continue
			}
			for _, host := range g.Hostnames() {
				key := g.Account + "/" + strings.ToLower(host) + "/" + family.Key()
				if existing, ok := owners[key]; ok && existing != g.Name {
					return fmt.Errorf("%w: %s hostname '%s' is managed by both resolves '%s' and '%s'", domain.ErrHostnameConflict, family, host, existing, g.Name)
				}
				owners[key] = g.Name
			}
		}
	}
	return nil
}
