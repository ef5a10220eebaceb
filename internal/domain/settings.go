package domain

import (
	"fmt"
	"time"
)

// Settings is the application configuration shared by the CLI, HTTP and MCP surfaces.
type Settings struct {
	Server   ServerSettings   `yaml:"server" mapstructure:"server"`
	Javadoc  JavadocSettings  `yaml:"javadoc" mapstructure:"javadoc"`
	Maven    MavenSettings    `yaml:"maven" mapstructure:"maven"`
	Renderer RendererSettings `yaml:"renderer" mapstructure:"renderer"`
	Git      GitSettings      `yaml:"git" mapstructure:"git"`
	Logging  LoggingConfig    `yaml:"logging" mapstructure:"logging"`
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Addr                 string `yaml:"addr" mapstructure:"addr"`
	AllowedBaseDirectory string `yaml:"allowed_base_directory" mapstructure:"allowed_base_directory"`
}

// JavadocSettings configures the javadoc invocation.
type JavadocSettings struct {
	Command       string        `yaml:"command" mapstructure:"command"`
	OutputBaseDir string        `yaml:"output_base_dir" mapstructure:"output_base_dir"`
	Doclint       bool          `yaml:"doclint" mapstructure:"doclint"`
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// MavenSettings configures classpath resolution through Maven.
type MavenSettings struct {
	Command string        `yaml:"command" mapstructure:"command"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// RendererSettings selects and configures the PlantUML renderer.
type RendererSettings struct {
	Mode    string        `yaml:"mode" mapstructure:"mode"` // server or command
	URL     string        `yaml:"url" mapstructure:"url"`
	Command string        `yaml:"command" mapstructure:"command"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// GitSettings configures repository cloning.
type GitSettings struct {
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

const (
	RendererModeServer  = "server"
	RendererModeCommand = "command"
)

// DefaultSettings returns the settings used when no file or environment overrides exist.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Addr:                 ":8080",
			AllowedBaseDirectory: ".",
		},
		Javadoc: JavadocSettings{
			Command:       "javadoc",
			OutputBaseDir: "generated-javadoc",
			Doclint:       true,
			Timeout:       10 * time.Minute,
		},
		Maven: MavenSettings{
			Command: "mvn",
			Timeout: 10 * time.Minute,
		},
		Renderer: RendererSettings{
			Mode:    RendererModeServer,
			URL:     "https://www.plantuml.com/plantuml",
			Command: "plantuml",
			Timeout: 30 * time.Second,
		},
		Git: GitSettings{
			Timeout: 5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Validate checks settings for values no component can work with.
func (s Settings) Validate() error {
	switch s.Renderer.Mode {
	case RendererModeServer:
		if s.Renderer.URL == "" {
			return fmt.Errorf("renderer.url is required when renderer.mode is %q", RendererModeServer)
		}
	case RendererModeCommand:
		if s.Renderer.Command == "" {
			return fmt.Errorf("renderer.command is required when renderer.mode is %q", RendererModeCommand)
		}
	default:
		return fmt.Errorf("unknown renderer.mode %q (valid: server, command)", s.Renderer.Mode)
	}

	if s.Javadoc.Command == "" {
		return fmt.Errorf("javadoc.command must not be empty")
	}
	if s.Maven.Command == "" {
		return fmt.Errorf("maven.command must not be empty")
	}

	switch s.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown logging.format %q (valid: text, json)", s.Logging.Format)
	}

	timeouts := map[string]time.Duration{
		"javadoc.timeout":  s.Javadoc.Timeout,
		"maven.timeout":    s.Maven.Timeout,
		"renderer.timeout": s.Renderer.Timeout,
		"git.timeout":      s.Git.Timeout,
	}
	for name, d := range timeouts {
		if d < 0 {
			return fmt.Errorf("%s must not be negative (got %s)", name, d)
		}
	}
	return nil
}
