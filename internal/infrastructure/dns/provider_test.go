package dns

import (
	"errors"
	"fmt"
	"testing"

	"github.com/alibabacloud-go/tea/tea"
	"github.com/cloudflare/cloudflare-go/v2"
	"github.com/cloudflare/cloudflare-go/v2/shared"
	domainerr "github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/entity"
	sdkerrors "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/errors"
)

func TestSubDomainRoundTrip(t *testing.T) {
	tests := []struct {
		full string
		sub  string
	}{
		{"example.com", "@"},
		{"a.example.com", "a"},
		{"x.y.example.com", "x.y"},
	}
	for _, tt := range tests {
		if got := GetSubDomain(tt.full, "example.com"); got != tt.sub {
			t.Errorf("GetSubDomain(%q) = %q, want %q", tt.full, got, tt.sub)
		}
		if got := GetFullDomain(tt.sub, "example.com"); got != tt.full {
			t.Errorf("GetFullDomain(%q) = %q, want %q", tt.sub, got, tt.full)
		}
	}
}

func TestDuplicateClassification(t *testing.T) {
	aliDup := &tea.SDKError{Code: tea.String("DomainRecordDuplicate"), Message: tea.String("dup")}
	if !isAliyunDuplicate(fmt.Errorf("wrapped: %w", aliDup)) {
		t.Error("expected aliyun duplicate to be detected")
	}
	if isAliyunDuplicate(&tea.SDKError{Code: tea.String("Forbidden")}) {
		t.Error("unexpected aliyun duplicate")
	}

	txDup := sdkerrors.NewTencentCloudSDKError("InvalidParameter.DomainRecordExist", "exists", "req-1")
	if tencentCode(txDup) != tencentRecordExists {
		t.Errorf("tencentCode() = %q", tencentCode(txDup))
	}
	if tencentCode(errors.New("plain")) != "" {
		t.Error("expected empty code for non-sdk error")
	}
	cfDup := &cloudflare.Error{Errors: []shared.ErrorData{{Code: 81057, Message: "Record already exists."}}}
	if !isCloudflareDuplicate(fmt.Errorf("wrapped: %w", cfDup)) {
		t.Error("expected cloudflare duplicate to be detected")
	}
	cfOther := &cloudflare.Error{Errors: []shared.ErrorData{{Code: 9005, Message: "content 81057 is invalid"}}}
	if isCloudflareDuplicate(cfOther) {
		t.Error("message text must not classify as duplicate")
	}
	if isCloudflareDuplicate(errors.New("81057")) {
		t.Error("unexpected duplicate for non-api error")
	}
}

func TestFactory_Create(t *testing.T) {
	f := NewFactory()

	cf := &entity.Account{Name: "cf", Email: "a@example.com", ZoneID: "z"}
	p, err := f.Create(cf, map[string]string{"api_key": "k"})
	if err != nil {
		t.Fatalf("Create(cloudflare) error = %v", err)
	}
	if p.Name() != "cloudflare" {
		t.Errorf("Name() = %q", p.Name())
	}

	if _, err := f.Create(cf, map[string]string{}); !errors.Is(err, domainerr.ErrMissingCredential) {
		t.Errorf("expected ErrMissingCredential, got %v", err)
	}

	tx := &entity.Account{Name: "tx", Provider: entity.ProviderTencent, Zone: "example.com"}
	p, err = f.Create(tx, map[string]string{"secret_id": "id", "secret_key": "key"})
	if err != nil || p.Name() != "tencent" {
		t.Errorf("Create(tencent) = %v, %v", p, err)
	}

	ali := &entity.Account{Name: "ali", Provider: entity.ProviderAliyun, Zone: "example.com"}
	p, err = f.Create(ali, map[string]string{"access_key_id": "id", "access_key_secret": "secret"})
	if err != nil || p.Name() != "aliyun" {
		t.Errorf("Create(aliyun) = %v, %v", p, err)
	}

	if _, err := f.Create(&entity.Account{Provider: "route53"}, nil); !errors.Is(err, domainerr.ErrUnsupportedProvider) {
		t.Errorf("expected ErrUnsupportedProvider, got %v", err)
	}
}
