package entity

import (
	"fmt"

	"github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/valueobject"
)

type ProviderType string

const (
	ProviderCloudflare ProviderType = "cloudflare"
	ProviderAliyun     ProviderType = "aliyun"
	ProviderTencent    ProviderType = "tencent"
)

// Account is the credential set of one DNS zone.
//
// Cloudflare accounts authenticate with email + api_key and address the
// zone by zone_id. Aliyun and Tencent accounts use their key pair and
// address the zone by its apex name.
type Account struct {
	Name        string                           `yaml:"name"`
	Provider    ProviderType                     `yaml:"provider,omitempty"`
	Email       string                           `yaml:"email,omitempty"`
	ZoneID      string                           `yaml:"zone_id,omitempty"`
	Zone        string                           `yaml:"zone,omitempty"`
	Credentials map[string]valueobject.SecretRef `yaml:"credentials"`
}

func RequiredCredentials(p ProviderType) []string {
	switch p {
	case ProviderCloudflare:
		return []string{"api_key"}
	case ProviderAliyun:
		return []string{"access_key_id", "access_key_secret"}
	case ProviderTencent:
		return []string{"secret_id", "secret_key"}
	default:
		return nil
	}
}

func (a *Account) ProviderType() ProviderType {
	if a.Provider == "" {
		return ProviderCloudflare
	}
	return a.Provider
}

func (a *Account) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("%w: account name is required", domain.ErrInvalidName)
	}
	if a.Name == domain.UnspecifiedAccount {
		return fmt.Errorf("%w: %q is reserved", domain.ErrInvalidName, a.Name)
	}

	switch a.ProviderType() {
	case ProviderCloudflare:
		if a.Email == "" {
			return domain.RequiredField("email")
		}
		if a.ZoneID == "" {
			return domain.RequiredField("zone_id")
		}
	case ProviderAliyun, ProviderTencent:
		if a.Zone == "" {
			return domain.RequiredField("zone")
		}
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, a.Provider)
	}

	for _, key := range RequiredCredentials(a.ProviderType()) {
		ref, ok := a.Credentials[key]
		if !ok {
			return domain.RequiredField("credentials." + key)
		}
		if err := ref.Validate(); err != nil {
			return fmt.Errorf("credential %s: %w", key, err)
		}
	}
	return nil
}

// ZoneKey identifies the zone for locking and logging.
func (a *Account) ZoneKey() string {
	if a.ProviderType() == ProviderCloudflare {
		return string(ProviderCloudflare) + ":" + a.ZoneID
	}
	return string(a.ProviderType()) + ":" + a.Zone
}
