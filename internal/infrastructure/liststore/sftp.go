package liststore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/contract"
	"github.com/lite-lake/ipsync/internal/infrastructure/ssh"
)

// RemoteFS is the file access an SFTP list store needs.
type RemoteFS interface {
	ReadFile(path string) ([]byte, bool, error)
	WriteFileAtomic(path string, content []byte) error
	Close() error
}

type DialFunc func() (RemoteFS, error)

// SSHDialer takes an SFTP capable connection for cfg from pool.
func SSHDialer(pool *ssh.Pool, cfg ssh.Config) DialFunc {
	return func() (RemoteFS, error) {
		return pool.Get(cfg)
	}
}

// SFTPStore mirrors a list file on a host reachable over SSH. The write token
// is the content hash seen by Fetch, checked again right before the rename.
type SFTPStore struct {
	name string
	path string
	dial DialFunc
}

func NewSFTPStore(addr, path string, dial DialFunc) *SFTPStore {
	return &SFTPStore{name: "sftp:" + addr + ":" + path, path: path, dial: dial}
}

func (s *SFTPStore) Name() string { return s.name }

func (s *SFTPStore) Fetch(ctx context.Context) (contract.ListFile, error) {
	if err := ctx.Err(); err != nil {
		return contract.ListFile{}, err
	}
	fs, err := s.dial()
	if err != nil {
		return contract.ListFile{}, domain.WrapOp("connect "+s.name, err)
	}
	defer fs.Close()

	data, exists, err := fs.ReadFile(s.path)
	if err != nil {
		return contract.ListFile{}, domain.WrapOp("fetch "+s.name, err)
	}
	if !exists {
		return contract.ListFile{}, nil
	}
	return contract.ListFile{Content: string(data), Token: contentToken(data), Exists: true}, nil
}

func (s *SFTPStore) Store(ctx context.Context, content string, previous contract.ListFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fs, err := s.dial()
	if err != nil {
		return domain.WrapOp("connect "+s.name, err)
	}
	defer fs.Close()

	data, exists, err := fs.ReadFile(s.path)
	if err != nil {
		return domain.WrapOp("recheck "+s.name, err)
	}
	if exists != previous.Exists || (exists && contentToken(data) != previous.Token) {
		return fmt.Errorf("%w: %s", domain.ErrListConflict, s.name)
	}

	if err := fs.WriteFileAtomic(s.path, []byte(content)); err != nil {
		return domain.WrapOp("store "+s.name, err)
	}
	return nil
}

func contentToken(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
