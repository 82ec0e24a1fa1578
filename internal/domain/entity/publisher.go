package entity

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/valueobject"
)

var rawFileURLPattern = regexp.MustCompile(`^https://raw\.githubusercontent\.com/([^/]+)/([^/]+)/refs/heads/([^/]+)/(.+)$`)

// ListPublisher is a shared IP list file that one group writes its tagged
// lines into. Exactly one of FileURL and SFTP is set.
type ListPublisher struct {
	Group   string                `yaml:"group"`
	FileURL valueobject.SecretRef `yaml:"file_url,omitempty"`
	SFTP    *SFTPTarget           `yaml:"sftp,omitempty"`
	Port    int                   `yaml:"port,omitempty"`
	Remark  string                `yaml:"remark,omitempty"`
	Remark6 string                `yaml:"remark6,omitempty"`
}

type SFTPTarget struct {
	Host       string                `yaml:"host"`
	Port       int                   `yaml:"port,omitempty"`
	User       string                `yaml:"user"`
	Password   valueobject.SecretRef `yaml:"password"`
	KnownHosts string                `yaml:"known_hosts,omitempty"`
	Path       string                `yaml:"path"`
}

func (t *SFTPTarget) Addr() string {
	port := t.Port
	if port == 0 {
		port = 22
	}
	return fmt.Sprintf("%s:%d", t.Host, port)
}

func (p *ListPublisher) Kind() ChannelKind {
	if p.SFTP != nil {
		return ChannelSFTP
	}
	return ChannelGitHub
}

func (p *ListPublisher) Validate() error {
	if p.Group == "" {
		return domain.RequiredField("group")
	}
	if p.SFTP != nil && !p.FileURL.IsZero() {
		return fmt.Errorf("%w: file_url and sftp are exclusive", domain.ErrInvalidType)
	}
	if p.SFTP == nil && p.FileURL.IsZero() {
		return domain.RequiredField("file_url")
	}
	if p.SFTP != nil {
		if p.SFTP.Host == "" {
			return domain.RequiredField("sftp.host")
		}
		if p.SFTP.User == "" {
			return domain.RequiredField("sftp.user")
		}
		if p.SFTP.Path == "" {
			return domain.RequiredField("sftp.path")
		}
		if p.SFTP.Port < 0 || p.SFTP.Port > 65535 {
			return fmt.Errorf("%w: sftp.port %d", domain.ErrInvalidPort, p.SFTP.Port)
		}
	}
	if p.FileURL.Plain != "" {
		if _, err := ParseFileURL(p.FileURL.Plain); err != nil {
			return err
		}
	}
	if (p.Remark != "" || p.Remark6 != "") && (p.Port <= 0 || p.Port > 65535) {
		return fmt.Errorf("%w: %d", domain.ErrInvalidPort, p.Port)
	}
	return nil
}

// FileLocation addresses one file in a GitHub repository branch.
type FileLocation struct {
	Owner  string
	Repo   string
	Branch string
	Path   string
	Token  string
}

// ParseFileURL splits a raw.githubusercontent.com URL whose query carries the
// access token.
func ParseFileURL(raw string) (FileLocation, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return FileLocation{}, fmt.Errorf("%w: %v", domain.ErrInvalidFileURL, err)
	}
	token := u.Query().Get("token")
	u.RawQuery = ""
	m := rawFileURLPattern.FindStringSubmatch(u.String())
	if m == nil {
		return FileLocation{}, fmt.Errorf("%w: expected https://raw.githubusercontent.com/<owner>/<repo>/refs/heads/<branch>/<path>", domain.ErrInvalidFileURL)
	}
	if token == "" {
		return FileLocation{}, fmt.Errorf("%w: token query parameter is missing", domain.ErrInvalidFileURL)
	}
	return FileLocation{Owner: m[1], Repo: m[2], Branch: m[3], Path: m[4], Token: token}, nil
}
