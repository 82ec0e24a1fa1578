package secrets

import (
	"fmt"

	"github.com/lite-lake/ipsync/internal/domain/entity"
	"github.com/lite-lake/ipsync/internal/domain/valueobject"
)

type SecretResolver struct {
	secrets map[string]string
}

func NewSecretResolver(secrets []entity.Secret) *SecretResolver {
	s := &SecretResolver{secrets: make(map[string]string, len(secrets))}
	for _, secret := range secrets {
		s.secrets[secret.Name] = secret.Value
	}
	return s
}

func (r *SecretResolver) Resolve(ref valueobject.SecretRef) (string, error) {
	return ref.Resolve(r.secrets)
}

// ResolveAll checks that every credential reference in cfg can be resolved
// without keeping the values.
func (r *SecretResolver) ResolveAll(cfg *entity.Config) error {
	for _, a := range cfg.Accounts {
		for key, ref := range a.Credentials {
			if _, err := r.Resolve(ref); err != nil {
				return fmt.Errorf("accounts[%s].credentials[%s]: %w", a.Name, key, err)
			}
		}
	}

	for i, ch := range cfg.Push {
		refs := map[string]valueobject.SecretRef{
			"bot_token":   ch.BotToken,
			"token":       ch.Token,
			"send_key":    ch.SendKey,
			"push_key":    ch.PushKey,
			"corp_secret": ch.CorpSecret,
			"webhook_url": ch.WebhookURL,
		}
		for field, ref := range refs {
			if ref.IsZero() {
				continue
			}
			if _, err := r.Resolve(ref); err != nil {
				return fmt.Errorf("push[%d].%s: %w", i, field, err)
			}
		}
	}

	for i, p := range cfg.ListPublishers {
		if !p.FileURL.IsZero() {
			raw, err := r.Resolve(p.FileURL)
			if err != nil {
				return fmt.Errorf("list_publishers[%d].file_url: %w", i, err)
			}
			if _, err := entity.ParseFileURL(raw); err != nil {
				return fmt.Errorf("list_publishers[%d].file_url: %w", i, err)
			}
		}
		if p.SFTP != nil && !p.SFTP.Password.IsZero() {
			if _, err := r.Resolve(p.SFTP.Password); err != nil {
				return fmt.Errorf("list_publishers[%d].sftp.password: %w", i, err)
			}
		}
	}

	if cfg.Plugin != nil && cfg.Plugin.SSH != nil && !cfg.Plugin.SSH.Password.IsZero() {
		if _, err := r.Resolve(cfg.Plugin.SSH.Password); err != nil {
			return fmt.Errorf("plugin.ssh.password: %w", err)
		}
	}
	return nil
}

// Credentials resolves every credential of an account.
func (r *SecretResolver) Credentials(a *entity.Account) (map[string]string, error) {
	out := make(map[string]string, len(a.Credentials))
	for key, ref := range a.Credentials {
		val, err := r.Resolve(ref)
		if err != nil {
			return nil, fmt.Errorf("accounts[%s].credentials[%s]: %w", a.Name, key, err)
		}
		out[key] = val
	}
	return out, nil
}
