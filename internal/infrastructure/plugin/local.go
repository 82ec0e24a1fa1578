package plugin

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/contract"
	"github.com/lite-lake/ipsync/internal/infrastructure/logger"
)

const DefaultScriptDir = "/etc/init.d"

// LocalRunner drives init scripts on this host.
type LocalRunner struct {
	ScriptDir string
}

func NewLocalRunner() *LocalRunner {
	return &LocalRunner{ScriptDir: DefaultScriptDir}
}

func (r *LocalRunner) Run(ctx context.Context, service string, action contract.ServiceAction) error {
	script := filepath.Join(r.ScriptDir, service)
	logger.FromContext(ctx).Info("plugin action", "service", service, "action", string(action))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, script, string(action))
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s %s: %v: %s", domain.ErrPluginAction, service, action, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
