package entity

import (
	"errors"
	"testing"

	"github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/valueobject"
)

func TestAccount_Validate(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		wantErr error
	}{
		{
			name:    "missing name",
			account: Account{},
			wantErr: domain.ErrInvalidName,
		},
		{
			name:    "reserved name",
			account: Account{Name: domain.UnspecifiedAccount},
			wantErr: domain.ErrInvalidName,
		},
		{
			name:    "cloudflare missing email",
			account: Account{Name: "cf", ZoneID: "z"},
			wantErr: domain.ErrRequired,
		},
		{
			name:    "cloudflare missing api_key",
			account: Account{Name: "cf", Email: "a@example.com", ZoneID: "z"},
			wantErr: domain.ErrRequired,
		},
		{
			name: "cloudflare empty api_key",
			account: Account{
				Name: "cf", Email: "a@example.com", ZoneID: "z",
				Credentials: map[string]valueobject.SecretRef{"api_key": {}},
			},
			wantErr: domain.ErrEmptyValue,
		},
		{
			name: "valid cloudflare with implicit provider",
			account: Account{
				Name: "cf", Email: "a@example.com", ZoneID: "z",
				Credentials: map[string]valueobject.SecretRef{"api_key": {Secret: "cf_key"}},
			},
		},
		{
			name:    "aliyun missing zone",
			account: Account{Name: "ali", Provider: ProviderAliyun},
			wantErr: domain.ErrRequired,
		},
		{
			name: "valid tencent",
			account: Account{
				Name: "tx", Provider: ProviderTencent, Zone: "example.com",
				Credentials: map[string]valueobject.SecretRef{
					"secret_id":  {Plain: "id"},
					"secret_key": {Env: "TX_KEY"},
				},
			},
		},
		{
			name:    "unsupported provider",
			account: Account{Name: "x", Provider: "route53"},
			wantErr: domain.ErrUnsupportedProvider,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
		})
	}
}

func TestAccount_ZoneKey(t *testing.T) {
	cf := Account{Name: "cf", ZoneID: "abc"}
	if got := cf.ZoneKey(); got != "cloudflare:abc" {
		t.Errorf("ZoneKey() = %q", got)
	}
	ali := Account{Name: "ali", Provider: ProviderAliyun, Zone: "example.com"}
	if got := ali.ZoneKey(); got != "aliyun:example.com" {
		t.Errorf("ZoneKey() = %q", got)
	}
}
