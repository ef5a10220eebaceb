package domain

import "fmt"

// MaxParallelism caps the number of files parsed concurrently within one pass.
const MaxParallelism = 64

// ProjectConfig holds project-level configuration loaded from .docforge.yaml.
type ProjectConfig struct {
	ExcludePaths     []string `yaml:"exclude_paths"               json:"exclude_paths,omitempty"`
	RespectGitignore *bool    `yaml:"respect_gitignore,omitempty" json:"respect_gitignore,omitempty"`
	Parallelism      int      `yaml:"parallelism,omitempty"       json:"parallelism,omitempty"`
	ResolveImports   bool     `yaml:"resolve_imports,omitempty"   json:"resolve_imports,omitempty"`
}

// DefaultConfig returns a zero-value config that changes nothing.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{}
}

// GitignoreEnabled reports whether .gitignore rules apply. Off unless set.
func (c ProjectConfig) GitignoreEnabled() bool {
	if c.RespectGitignore == nil {
		return false
	}
	return *c.RespectGitignore
}

// EffectiveParallelism returns the number of concurrent parses per pass.
func (c ProjectConfig) EffectiveParallelism(fallback int) int {
	if c.Parallelism > 0 {
		return c.Parallelism
	}
	if fallback < 1 {
		return 1
	}
	return fallback
}

// ScanOptions derives scanner options for Java sources.
func (c ProjectConfig) ScanOptions() ScanOptions {
	return ScanOptions{
		Extension:        JavaExtension,
		ExcludePaths:     c.ExcludePaths,
		RespectGitignore: c.GitignoreEnabled(),
	}
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	if c.Parallelism < 0 || c.Parallelism > MaxParallelism {
		return fmt.Errorf("parallelism must be between 0 and %d (got %d)", MaxParallelism, c.Parallelism)
	}
	for i, p := range c.ExcludePaths {
		if p == "" {
			return fmt.Errorf("exclude_paths[%d] must not be empty", i)
		}
	}
	return nil
}
