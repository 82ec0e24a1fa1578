package plugin

import (
	"context"
	"fmt"
	"strings"

	"github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/contract"
	"github.com/lite-lake/ipsync/internal/infrastructure/logger"
	"github.com/lite-lake/ipsync/internal/infrastructure/ssh"
)

type DialFunc func() (contract.SSHRunner, error)

// RemoteRunner drives init scripts on a router over SSH. A session is opened
// per action.
type RemoteRunner struct {
	dial DialFunc
}

func NewRemoteRunner(dial DialFunc) *RemoteRunner {
	return &RemoteRunner{dial: dial}
}

// SSHDialer takes the connection for cfg from pool. A nil pool dials a
// fresh connection per action.
func SSHDialer(pool *ssh.Pool, cfg ssh.Config) DialFunc {
	return func() (contract.SSHRunner, error) {
		return pool.Get(cfg)
	}
}

func (r *RemoteRunner) Run(ctx context.Context, service string, action contract.ServiceAction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	client, err := r.dial()
	if err != nil {
		return fmt.Errorf("%w: connect: %v", domain.ErrPluginAction, err)
	}
	defer client.Close()

	cmd := ssh.InitScript(service, string(action))
	logger.FromContext(ctx).Info("remote plugin action", "service", service, "action", string(action))

	stdout, stderr, err := client.Run(cmd)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v, stderr: %s", domain.ErrPluginAction, service, action, err, strings.TrimSpace(stderr))
	}
	if out := strings.TrimSpace(stdout); out != "" {
		logger.FromContext(ctx).Debug("remote plugin output", "output", out)
	}
	return nil
}
