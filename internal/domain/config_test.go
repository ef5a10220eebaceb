package domain_test

import (
	"testing"
	"time"

	"github.com/docforge/docforge/internal/domain"
	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestDefaultConfig_ChangesNothing(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Empty(t, cfg.ExcludePaths)
	assert.Nil(t, cfg.RespectGitignore)
	assert.Zero(t, cfg.Parallelism)
	assert.False(t, cfg.ResolveImports)
	assert.NoError(t, cfg.Validate())
}

func TestGitignoreEnabled(t *testing.T) {
	assert.False(t, domain.ProjectConfig{}.GitignoreEnabled())
	assert.True(t, domain.ProjectConfig{RespectGitignore: boolPtr(true)}.GitignoreEnabled())
	assert.False(t, domain.ProjectConfig{RespectGitignore: boolPtr(false)}.GitignoreEnabled())
}

func TestEffectiveParallelism(t *testing.T) {
	assert.Equal(t, 4, domain.ProjectConfig{Parallelism: 4}.EffectiveParallelism(16))
	assert.Equal(t, 16, domain.ProjectConfig{}.EffectiveParallelism(16))
	assert.Equal(t, 1, domain.ProjectConfig{}.EffectiveParallelism(0))
}

func TestScanOptions(t *testing.T) {
	cfg := domain.ProjectConfig{ExcludePaths: []string{"generated"}, RespectGitignore: boolPtr(false)}
	opts := cfg.ScanOptions()
	assert.Equal(t, domain.JavaExtension, opts.Extension)
	assert.Equal(t, []string{"generated"}, opts.ExcludePaths)
	assert.False(t, opts.RespectGitignore)

	assert.False(t, domain.DefaultConfig().ScanOptions().RespectGitignore)
}

func TestProjectConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     domain.ProjectConfig
		wantErr string
	}{
		{"valid", domain.ProjectConfig{Parallelism: 8, ExcludePaths: []string{"target"}}, ""},
		{"negative parallelism", domain.ProjectConfig{Parallelism: -1}, "parallelism must be between"},
		{"parallelism over cap", domain.ProjectConfig{Parallelism: domain.MaxParallelism + 1}, "parallelism must be between"},
		{"empty exclude path", domain.ProjectConfig{ExcludePaths: []string{"a", ""}}, "exclude_paths[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDefaultSettings_Valid(t *testing.T) {
	s := domain.DefaultSettings()
	assert.NoError(t, s.Validate())
	assert.Equal(t, ":8080", s.Server.Addr)
	assert.Equal(t, domain.RendererModeServer, s.Renderer.Mode)
	assert.True(t, s.Javadoc.Doclint)
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Settings)
		wantErr string
	}{
		{"unknown renderer mode", func(s *domain.Settings) { s.Renderer.Mode = "local" }, "unknown renderer.mode"},
		{"server mode without url", func(s *domain.Settings) { s.Renderer.URL = "" }, "renderer.url is required"},
		{"command mode without command", func(s *domain.Settings) {
			s.Renderer.Mode = domain.RendererModeCommand
			s.Renderer.Command = ""
		}, "renderer.command is required"},
		{"empty javadoc command", func(s *domain.Settings) { s.Javadoc.Command = "" }, "javadoc.command"},
		{"empty maven command", func(s *domain.Settings) { s.Maven.Command = "" }, "maven.command"},
		{"bad log format", func(s *domain.Settings) { s.Logging.Format = "xml" }, "logging.format"},
		{"negative timeout", func(s *domain.Settings) { s.Git.Timeout = -time.Second }, "git.timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.DefaultSettings()
			tt.mutate(&s)
			assert.ErrorContains(t, s.Validate(), tt.wantErr)
		})
	}
}
