package dns

import (
	"fmt"

	domainerr "github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/entity"
)

// CreatorFunc builds a provider for account from its resolved credentials.
type CreatorFunc func(account *entity.Account, creds map[string]string) (Provider, error)

type Factory struct {
	creators map[entity.ProviderType]CreatorFunc
}

func NewFactory() *Factory {
	return &Factory{
		creators: map[entity.ProviderType]CreatorFunc{
			entity.ProviderCloudflare: createCloudflare,
			entity.ProviderAliyun:     createAliyun,
			entity.ProviderTencent:    createTencent,
		},
	}
}

func (f *Factory) Create(account *entity.Account, creds map[string]string) (Provider, error) {
	creator, ok := f.creators[account.ProviderType()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domainerr.ErrUnsupportedProvider, account.Provider)
	}
	return creator(account, creds)
}

func createCloudflare(account *entity.Account, creds map[string]string) (Provider, error) {
	apiKey, err := requireCredential(creds, "api_key")
	if err != nil {
		return nil, err
	}
	return NewCloudflareProvider(account.Email, apiKey, account.ZoneID), nil
}

func createAliyun(account *entity.Account, creds map[string]string) (Provider, error) {
	id, err := requireCredential(creds, "access_key_id")
	if err != nil {
		return nil, err
	}
	secret, err := requireCredential(creds, "access_key_secret")
	if err != nil {
		return nil, err
	}
	return NewAliyunProvider(id, secret, account.Zone)
}

func createTencent(account *entity.Account, creds map[string]string) (Provider, error) {
	id, err := requireCredential(creds, "secret_id")
	if err != nil {
		return nil, err
	}
	key, err := requireCredential(creds, "secret_key")
	if err != nil {
		return nil, err
	}
	return NewTencentProvider(id, key, account.Zone)
}
