package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	appconfig "github.com/docforge/docforge/internal/adapters/outbound/config"
	"github.com/docforge/docforge/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docforge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSettings_File(t *testing.T) {
	path := writeSettings(t, `
server:
  addr: ":9090"
  allowed_base_directory: /srv/code
renderer:
  mode: command
  command: /opt/plantuml/bin/plantuml
  timeout: 5s
javadoc:
  doclint: false
logging:
  level: debug
  format: json
`)
	s, err := appconfig.LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", s.Server.Addr)
	assert.Equal(t, "/srv/code", s.Server.AllowedBaseDirectory)
	assert.Equal(t, domain.RendererModeCommand, s.Renderer.Mode)
	assert.Equal(t, "/opt/plantuml/bin/plantuml", s.Renderer.Command)
	assert.Equal(t, 5*time.Second, s.Renderer.Timeout)
	assert.False(t, s.Javadoc.Doclint)
	assert.Equal(t, "debug", s.Logging.Level)

	// Untouched keys keep their defaults.
	assert.Equal(t, "javadoc", s.Javadoc.Command)
	assert.Equal(t, 10*time.Minute, s.Maven.Timeout)
}

func TestLoadSettings_MissingExplicitFile(t *testing.T) {
	_, err := appconfig.LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoadSettings_EnvOverride(t *testing.T) {
	t.Setenv("DOCFORGE_SERVER_ADDR", ":7000")
	t.Setenv("DOCFORGE_RENDERER_TIMEOUT", "45s")

	path := writeSettings(t, "server:\n  addr: \":9090\"\n")
	s, err := appconfig.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", s.Server.Addr)
	assert.Equal(t, 45*time.Second, s.Renderer.Timeout)
}

func TestLoadSettings_ExpandsVariables(t *testing.T) {
	t.Setenv("CODE_ROOT", "/data/code")
	path := writeSettings(t, "server:\n  allowed_base_directory: ${CODE_ROOT}/java\n")

	s, err := appconfig.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/code/java", s.Server.AllowedBaseDirectory)
}

func TestLoadSettings_UnknownVariableLeftAsIs(t *testing.T) {
	path := writeSettings(t, "javadoc:\n  output_base_dir: ${DOCFORGE_TEST_UNSET_VAR}/out\n")

	s, err := appconfig.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "${DOCFORGE_TEST_UNSET_VAR}/out", s.Javadoc.OutputBaseDir)
}

func TestLoadSettings_Invalid(t *testing.T) {
	path := writeSettings(t, "renderer:\n  mode: browser\n")
	_, err := appconfig.LoadSettings(path)
	assert.ErrorContains(t, err, "invalid settings")
}

func TestLoadSettingsFromViper(t *testing.T) {
	v := viper.New()
	v.Set("renderer.url", "http://plantuml.internal:8080")

	s, err := appconfig.LoadSettingsFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "http://plantuml.internal:8080", s.Renderer.URL)
	assert.Equal(t, domain.RendererModeServer, s.Renderer.Mode)

	_, err = appconfig.LoadSettingsFromViper(nil)
	assert.Error(t, err)
}
