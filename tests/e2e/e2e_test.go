package e2e_test

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docforge/docforge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary before running tests
	dir, err := os.MkdirTemp("", "docforge-e2e")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	binaryPath = filepath.Join(dir, "docforge")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/docforge")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("build failed: " + string(out))
	}

	os.Exit(m.Run())
}

func fixturePath(name string) string {
	abs, _ := filepath.Abs(filepath.Join("../../testdata/java", name))
	return abs
}

// run executes the binary and returns stdout and the exit code. Logs go to stderr.
func run(t *testing.T, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(binaryPath, append([]string{"--log-level", "error"}, args...)...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}
	return stdout.String(), exitCode
}

// --- Diagram Tests ---

func TestE2E_DiagramShop(t *testing.T) {
	out, code := run(t, "diagram", fixturePath("shop"))
	defer os.RemoveAll(filepath.Join(fixturePath("shop"), ".docforge"))
	assert.Equal(t, 0, code)
	assert.Equal(t, `@startuml
class shop.Customer {
}
class shop.Order {
  - customer : Customer
  + getId() : String
}
shop.Order --> shop.Customer : customer
@enduml
`, out)
}

func TestE2E_DiagramHierarchy(t *testing.T) {
	out, code := run(t, "diagram", fixturePath("hierarchy"))
	defer os.RemoveAll(filepath.Join(fixturePath("hierarchy"), ".docforge"))
	require.Equal(t, 0, code)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "@startuml", lines[0])
	assert.Equal(t, "@enduml", lines[len(lines)-1])
	assert.Contains(t, out, "zoo.Dog <|.. zoo.Animal\n")
	assert.Contains(t, out, "zoo.Dog <|.. zoo.Pet\n")
	assert.Contains(t, out, "zoo.Keeper ..> zoo.Animal\n")
	assert.NotContains(t, out, "Cloneable")
}

func TestE2E_DiagramIsDeterministic(t *testing.T) {
	defer os.RemoveAll(filepath.Join(fixturePath("features"), ".docforge"))
	first, code := run(t, "diagram", fixturePath("features"))
	require.Equal(t, 0, code)
	second, _ := run(t, "diagram", fixturePath("features"))
	assert.Equal(t, first, second)
}

func TestE2E_DiagramJSON(t *testing.T) {
	out, code := run(t, "diagram", fixturePath("broken"), "--json")
	defer os.RemoveAll(filepath.Join(fixturePath("broken"), ".docforge"))
	require.Equal(t, 0, code)

	var res struct {
		Files    int                     `json:"files"`
		Document *domain.DiagramDocument `json:"document"`
		Warnings []map[string]string     `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res), "output should be valid JSON")
	assert.Equal(t, 2, res.Files)
	require.Len(t, res.Document.Types, 1)
	assert.Equal(t, "broken.Valid", res.Document.Types[0].QualifiedName)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "Broken.java", res.Warnings[0]["file"])
}

func TestE2E_DiagramInvalidPath(t *testing.T) {
	_, code := run(t, "diagram", fixturePath("does-not-exist"))
	assert.Equal(t, 1, code)
}

func TestE2E_Types(t *testing.T) {
	out, code := run(t, "types", fixturePath("defaultpkg"), "--json")
	require.Equal(t, 0, code)
	assert.Contains(t, out, `"qualified_name": "Main"`)
	assert.Contains(t, out, `"qualified_name": "Helper"`)
}

func TestE2E_Version(t *testing.T) {
	out, code := run(t, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "docforge")
}
