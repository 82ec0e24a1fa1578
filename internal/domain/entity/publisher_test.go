package entity

import (
	"errors"
	"testing"

	"github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/valueobject"
)

func TestParseFileURL(t *testing.T) {
	loc, err := ParseFileURL("https://raw.githubusercontent.com/alice/ips/refs/heads/main/lists/best.txt?token=ghp_x")
	if err != nil {
		t.Fatalf("ParseFileURL() error = %v", err)
	}
	want := FileLocation{Owner: "alice", Repo: "ips", Branch: "main", Path: "lists/best.txt", Token: "ghp_x"}
	if loc != want {
		t.Errorf("ParseFileURL() = %+v, want %+v", loc, want)
	}

	bad := []string{
		"https://github.com/alice/ips/blob/main/best.txt?token=x",
		"https://raw.githubusercontent.com/alice/ips/main/best.txt?token=x",
		"https://raw.githubusercontent.com/alice/ips/refs/heads/main/best.txt",
	}
	for _, raw := range bad {
		if _, err := ParseFileURL(raw); !errors.Is(err, domain.ErrInvalidFileURL) {
			t.Errorf("ParseFileURL(%q) error = %v, want ErrInvalidFileURL", raw, err)
		}
	}
}

func TestListPublisher_Validate(t *testing.T) {
	fileURL := valueobject.NewSecretRefPlain("https://raw.githubusercontent.com/a/b/refs/heads/main/x.txt?token=t")
	tests := []struct {
		name    string
		pub     ListPublisher
		wantErr error
	}{
		{"missing group", ListPublisher{FileURL: fileURL}, domain.ErrRequired},
		{"missing target", ListPublisher{Group: "g"}, domain.ErrRequired},
		{"both targets", ListPublisher{Group: "g", FileURL: fileURL, SFTP: &SFTPTarget{}}, domain.ErrInvalidType},
		{"remark needs port", ListPublisher{Group: "g", FileURL: fileURL, Remark: "hk"}, domain.ErrInvalidPort},
		{"sftp missing path", ListPublisher{Group: "g", SFTP: &SFTPTarget{Host: "h", User: "u"}}, domain.ErrRequired},
		{"github", ListPublisher{Group: "g", FileURL: fileURL, Port: 443, Remark: "hk"}, nil},
		{"secret file url", ListPublisher{Group: "g", FileURL: valueobject.NewSecretRefSecret("list_url")}, nil},
		{"sftp", ListPublisher{Group: "g", SFTP: &SFTPTarget{Host: "h", User: "u", Path: "/srv/ips.txt"}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pub.Validate()
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
