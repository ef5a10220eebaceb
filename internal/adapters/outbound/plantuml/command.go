package plantuml

import (
	"context"
	"fmt"
	"time"

	"github.com/docforge/docforge/internal/domain"
)

// CommandRenderer implements domain.DiagramRenderer by piping diagram text
// through a local plantuml executable.
type CommandRenderer struct {
	command string
	timeout time.Duration
	runner  domain.CommandRunner
}

func NewCommandRenderer(command string, timeout time.Duration, runner domain.CommandRunner) *CommandRenderer {
	return &CommandRenderer{command: command, timeout: timeout, runner: runner}
}

func (r *CommandRenderer) Render(ctx context.Context, source string, format domain.ImageFormat) ([]byte, error) {
	res, err := r.runner.Run(ctx, domain.Command{
		Name:    r.command,
		Args:    []string{"-t" + string(format), "-pipe"},
		Timeout: r.timeout,
		Stdin:   source,
	})
	if err != nil {
		return nil, &domain.RenderingError{Format: string(format), Err: err}
	}
	if res.ExitCode != 0 {
		return nil, &domain.RenderingError{
			Format: string(format),
			Err:    fmt.Errorf("%s exited with code %d: %s", r.command, res.ExitCode, res.Stderr),
		}
	}
	return []byte(res.Stdout), nil
}

// NewRenderer picks the renderer configured in settings.
func NewRenderer(s domain.RendererSettings, runner domain.CommandRunner) domain.DiagramRenderer {
	if s.Mode == domain.RendererModeCommand {
		return NewCommandRenderer(s.Command, s.Timeout, runner)
	}
	return NewServerRenderer(s.URL, s.Timeout)
}
