package entity

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/valueobject"
)

func TestResolveGroup_Validate(t *testing.T) {
	tests := []struct {
		name    string
		group   ResolveGroup
		wantErr error
	}{
		{"missing name", ResolveGroup{Account: "cf"}, domain.ErrInvalidName},
		{"missing account", ResolveGroup{Name: "g"}, domain.ErrRequired},
		{"negative quota", ResolveGroup{Name: "g", Account: "unspecified", V4Quota: -1}, domain.ErrInvalidQuota},
		{"bad domain", ResolveGroup{Name: "g", Account: "cf", Domain: "nodot", Subdomains: "a"}, domain.ErrInvalidDomain},
		{"no subdomains", ResolveGroup{Name: "g", Account: "cf", Domain: "example.com"}, domain.ErrRequired},
		{"bad url", ResolveGroup{Name: "g", Account: "unspecified", V4URL: "ftp://x/list"}, domain.ErrInvalidURL},
		{"unspecified needs no domain", ResolveGroup{Name: "g", Account: "unspecified", V4Quota: 3}, nil},
		{"valid", ResolveGroup{Name: "g", Account: "cf", Domain: "example.com", Subdomains: "a b", V4Quota: 2, V4URL: "https://example.com/ips.txt"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.group.Validate()
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

func TestResolveGroup_Hostnames(t *testing.T) {
	g := ResolveGroup{Name: "g", Account: "cf", Domain: "example.com", Subdomains: " a  @ b a "}
	want := []string{"a.example.com", "example.com", "b.example.com"}
	if got := g.Hostnames(); !reflect.DeepEqual(got, want) {
		t.Errorf("Hostnames() = %v, want %v", got, want)
	}

	g.Account = domain.UnspecifiedAccount
	if got := g.Hostnames(); got != nil {
		t.Errorf("Hostnames() for unspecified account = %v, want nil", got)
	}
}

func TestResolveGroup_ChannelNames(t *testing.T) {
	tests := []struct {
		channels string
		want     []string
	}{
		{"", nil},
		{"none", nil},
		{"NONE", nil},
		{"telegram GitHub", []string{"telegram", "github"}},
		{"  pushplus\twecom ", []string{"pushplus", "wecom"}},
	}
	for _, tt := range tests {
		g := ResolveGroup{Channels: tt.channels}
		if got := g.ChannelNames(); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ChannelNames(%q) = %v, want %v", tt.channels, got, tt.want)
		}
	}
}

func TestResolveGroup_Modes(t *testing.T) {
	g := ResolveGroup{V4Quota: 0, V6Quota: 0}
	if !g.IsPassthrough() {
		t.Error("expected passthrough for zero quotas")
	}
	g.V6Quota = 4
	g.V6URL = "https://example.com/v6"
	if g.IsPassthrough() {
		t.Error("unexpected passthrough")
	}
	if g.Quota(valueobject.FamilyIPv6) != 4 || g.Quota(valueobject.FamilyIPv4) != 0 {
		t.Error("Quota() returned wrong family value")
	}
	if g.SourceURL(valueobject.FamilyIPv6) != "https://example.com/v6" {
		t.Error("SourceURL() returned wrong family value")
	}
}
