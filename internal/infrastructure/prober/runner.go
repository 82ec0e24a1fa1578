package prober

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/infrastructure/logger"
)

// ExecRunner starts the prober binary inside WorkDir and streams its output.
type ExecRunner struct {
	Binary  string
	WorkDir string
	Stdout  io.Writer
	Stderr  io.Writer
}

func NewExecRunner(binary, workDir string) *ExecRunner {
	return &ExecRunner{Binary: binary, WorkDir: workDir, Stdout: os.Stdout, Stderr: os.Stderr}
}

func (r *ExecRunner) Run(ctx context.Context, args []string) error {
	binary, err := r.resolveBinary()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrProberFailed, r.Binary, err)
	}

	logger.FromContext(ctx).Info("running prober", "binary", binary, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = r.WorkDir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrProberFailed, r.Binary, err)
	}
	return nil
}

// resolveBinary anchors a path-like binary to WorkDir and makes it absolute,
// since exec resolves relative names against cmd.Dir or $PATH.
func (r *ExecRunner) resolveBinary() (string, error) {
	binary := r.Binary
	if filepath.IsAbs(binary) || !strings.ContainsRune(binary, filepath.Separator) {
		return binary, nil
	}
	return filepath.Abs(filepath.Join(r.WorkDir, binary))
}
