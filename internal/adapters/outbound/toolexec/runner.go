// Package toolexec runs external tools such as javadoc, mvn and plantuml.
package toolexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/docforge/docforge/internal/domain"
	"go.uber.org/zap"
)

// Runner implements domain.CommandRunner with os/exec.
type Runner struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{log: log}
}

// Run starts the command and waits for it. A non-zero exit is reported through
// CommandResult.ExitCode; an error means the process could not run to completion.
func (r *Runner) Run(ctx context.Context, cmd domain.Command) (*domain.CommandResult, error) {
	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if cmd.Stdin != "" {
		c.Stdin = strings.NewReader(cmd.Stdin)
	}
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	r.log.Debug("running command",
		zap.String("name", cmd.Name),
		zap.Strings("args", cmd.Args),
		zap.String("dir", cmd.Dir))

	err := c.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s timed out after %s", cmd.Name, cmd.Timeout)
		}
		return nil, fmt.Errorf("%s: %w", cmd.Name, ctxErr)
	}

	result := &domain.CommandResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			r.log.Debug("command failed", zap.String("name", cmd.Name), zap.Int("exit_code", result.ExitCode))
			return result, nil
		}
		return nil, fmt.Errorf("running %s: %w", cmd.Name, err)
	}
	return result, nil
}

// LookPath reports whether name resolves to an executable.
func LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
