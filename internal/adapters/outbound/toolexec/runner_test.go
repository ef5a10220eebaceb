package toolexec_test

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/docforge/docforge/internal/adapters/outbound/toolexec"
	"github.com/docforge/docforge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" || !toolexec.LookPath("sh") {
		t.Skip("requires sh")
	}
}

func TestRunner_CapturesOutput(t *testing.T) {
	requireShell(t)
	r := toolexec.New(nil)

	res, err := r.Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo out; echo err 1>&2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
	assert.Equal(t, "out\nerr\n", res.Combined())
}

func TestRunner_Stdin(t *testing.T) {
	requireShell(t)
	res, err := toolexec.New(nil).Run(context.Background(), domain.Command{
		Name:  "sh",
		Args:  []string{"-c", "cat"},
		Stdin: "@startuml\n@enduml\n",
	})
	require.NoError(t, err)
	assert.Equal(t, "@startuml\n@enduml\n", res.Stdout)
}

func TestRunner_NonZeroExit(t *testing.T) {
	requireShell(t)
	res, err := toolexec.New(nil).Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "exit 3"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
}

func TestRunner_WorkingDirectory(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	res, err := toolexec.New(nil).Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "pwd"},
		Dir:  dir,
	})
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, dir[len(dir)-8:])
}

func TestRunner_Timeout(t *testing.T) {
	requireShell(t)
	_, err := toolexec.New(nil).Run(context.Background(), domain.Command{
		Name:    "sh",
		Args:    []string{"-c", "sleep 5"},
		Timeout: 50 * time.Millisecond,
	})
	assert.ErrorContains(t, err, "timed out")
}

func TestRunner_MissingExecutable(t *testing.T) {
	_, err := toolexec.New(nil).Run(context.Background(), domain.Command{Name: "docforge-no-such-tool"})
	assert.Error(t, err)
}
