package liststore

import (
	"net/http"

	"github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/contract"
	"github.com/lite-lake/ipsync/internal/domain/entity"
	"github.com/lite-lake/ipsync/internal/domain/valueobject"
	"github.com/lite-lake/ipsync/internal/infrastructure/ssh"
)

type ResolveFunc func(valueobject.SecretRef) (string, error)

// New builds the store behind one list publisher. SFTP stores share
// connections through pool when it is set.
func New(pub *entity.ListPublisher, resolve ResolveFunc, hc *http.Client, pool *ssh.Pool) (contract.ListStore, error) {
	if pub.SFTP != nil {
		password, err := resolve(pub.SFTP.Password)
		if err != nil {
			return nil, domain.WrapOp("sftp.password", err)
		}
		cfg := ssh.Config{
			Host:       pub.SFTP.Host,
			Port:       pub.SFTP.Port,
			User:       pub.SFTP.User,
			Password:   password,
			KnownHosts: pub.SFTP.KnownHosts,
		}
		return NewSFTPStore(pub.SFTP.Addr(), pub.SFTP.Path, SSHDialer(pool, cfg)), nil
	}

	raw, err := resolve(pub.FileURL)
	if err != nil {
		return nil, domain.WrapOp("file_url", err)
	}
	loc, err := entity.ParseFileURL(raw)
	if err != nil {
		return nil, err
	}
	return NewGitHubStore(loc, hc), nil
}
