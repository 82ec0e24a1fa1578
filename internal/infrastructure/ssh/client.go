package ssh

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/lite-lake/ipsync/internal/domain"
)

type Config struct {
	Host       string
	Port       int
	User       string
	Password   string
	KnownHosts string
}

func (c Config) addr() string {
	port := c.Port
	if port == 0 {
		port = 22
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}

type Client struct {
	client *ssh.Client
	user   string
}

func NewClient(cfg Config) (*Client, error) {
	knownHostsPath := cfg.KnownHosts
	if knownHostsPath == "" {
		knownHostsPath = defaultKnownHosts()
	}

	hostKeyCallback, err := createHostKeyCallback(knownHostsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create host key callback: %w", err)
	}

	config := &ssh.ClientConfig{
		User: cfg.User,
		Auth: []ssh.AuthMethod{
			ssh.Password(cfg.Password),
		},
		HostKeyCallback: hostKeyCallback,
		Timeout:         domain.CredentialTimeout,
	}

	client, err := ssh.Dial("tcp", cfg.addr(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", cfg.addr(), err)
	}

	return &Client{client: client, user: cfg.User}, nil
}

func defaultKnownHosts() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv("HOME")
	}
	return filepath.Join(homeDir, ".ssh", "known_hosts")
}

// createHostKeyCallback trusts unknown hosts on first use and records them,
// but refuses a host whose recorded key differs.
func createHostKeyCallback(knownHostsPath string) (ssh.HostKeyCallback, error) {
	if _, err := os.Stat(knownHostsPath); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(knownHostsPath), 0700); err != nil {
			return nil, err
		}
		if err := os.WriteFile(knownHostsPath, []byte{}, 0600); err != nil {
			return nil, err
		}
	}

	callback, err := knownhosts.New(knownHostsPath)
	if err != nil {
		return nil, err
	}

	return func(hostname string, remote net.Addr, key ssh.PublicKey) error {
		err := callback(hostname, remote, key)
		if err == nil {
			return nil
		}

		var keyErr *knownhosts.KeyError
		if !errors.As(err, &keyErr) {
			return err
		}
		if len(keyErr.Want) > 0 {
			return fmt.Errorf("host key mismatch for %s: possible MITM attack", hostname)
		}

		line := knownhosts.Line([]string{knownhosts.Normalize(hostname)}, key)
		f, err := os.OpenFile(knownHostsPath, os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return fmt.Errorf("failed to open known_hosts: %w", err)
		}
		defer f.Close()
		if _, err := fmt.Fprintln(f, line); err != nil {
			return fmt.Errorf("failed to write to known_hosts: %w", err)
		}
		return nil
	}, nil
}

func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Alive sends an OpenSSH keepalive request over the connection.
func (c *Client) Alive() bool {
	if c.client == nil {
		return false
	}
	_, _, err := c.client.SendRequest("keepalive@openssh.com", true, nil)
	return err == nil
}

func (c *Client) Run(cmd string) (stdout, stderr string, err error) {
	session, err := c.client.NewSession()
	if err != nil {
		return "", "", fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()

	var stdoutBuf, stderrBuf bytes.Buffer
	session.Stdout = &stdoutBuf
	session.Stderr = &stderrBuf

	err = session.Run(cmd)
	return stdoutBuf.String(), stderrBuf.String(), err
}

// ReadFile returns the remote file content. A missing file is reported with
// exists=false and no error.
func (c *Client) ReadFile(remotePath string) (content []byte, exists bool, err error) {
	sftpClient, err := sftp.NewClient(c.client)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open sftp session: %w", err)
	}
	defer sftpClient.Close()

	f, err := sftpClient.Open(remotePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to open remote file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read remote file: %w", err)
	}
	return data, true, nil
}

// WriteFileAtomic uploads content next to remotePath and renames it into
// place.
func (c *Client) WriteFileAtomic(remotePath string, content []byte) error {
	sftpClient, err := sftp.NewClient(c.client)
	if err != nil {
		return fmt.Errorf("failed to open sftp session: %w", err)
	}
	defer sftpClient.Close()

	if err := sftpClient.MkdirAll(path.Dir(remotePath)); err != nil {
		return fmt.Errorf("failed to create remote dir: %w", err)
	}

	tmpPath := fmt.Sprintf("%s.%d.tmp", remotePath, os.Getpid())
	tmpFile, err := sftpClient.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmpFile.Write(content); err != nil {
		tmpFile.Close()
		_ = sftpClient.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		_ = sftpClient.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := sftpClient.PosixRename(tmpPath, remotePath); err != nil {
		_ = sftpClient.Remove(tmpPath)
		return fmt.Errorf("failed to rename %s: %w", tmpPath, err)
	}
	return nil
}
