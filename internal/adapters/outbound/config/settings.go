package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/docforge/docforge/internal/domain"
	"github.com/spf13/viper"
)

// SettingsFile is the application settings file looked up in the working
// directory when no explicit path is given.
const SettingsFile = "docforge.yaml"

// EnvPrefix prefixes environment overrides, e.g. DOCFORGE_RENDERER_MODE.
const EnvPrefix = "DOCFORGE"

// LoadSettings reads application settings from path. An empty path falls back
// to docforge.yaml in the working directory if present. Environment variables
// override file values, and ${VAR} references in string values are expanded.
func LoadSettings(path string) (domain.Settings, error) {
	v := viper.New()
	setDefaults(v, domain.DefaultSettings())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		if _, err := os.Stat(SettingsFile); err == nil {
			path = SettingsFile
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return domain.Settings{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return fromViper(v)
}

// LoadSettingsFromViper builds settings from an existing Viper instance.
func LoadSettingsFromViper(v *viper.Viper) (domain.Settings, error) {
	if v == nil {
		return domain.Settings{}, errors.New("nil viper instance")
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (domain.Settings, error) {
	s := domain.DefaultSettings()
	if err := v.Unmarshal(&s); err != nil {
		return domain.Settings{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	substituteEnvVars(&s)

	if err := s.Validate(); err != nil {
		return domain.Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d domain.Settings) {
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.allowed_base_directory", d.Server.AllowedBaseDirectory)

	v.SetDefault("javadoc.command", d.Javadoc.Command)
	v.SetDefault("javadoc.output_base_dir", d.Javadoc.OutputBaseDir)
	v.SetDefault("javadoc.doclint", d.Javadoc.Doclint)
	v.SetDefault("javadoc.timeout", d.Javadoc.Timeout)

	v.SetDefault("maven.command", d.Maven.Command)
	v.SetDefault("maven.timeout", d.Maven.Timeout)

	v.SetDefault("renderer.mode", d.Renderer.Mode)
	v.SetDefault("renderer.url", d.Renderer.URL)
	v.SetDefault("renderer.command", d.Renderer.Command)
	v.SetDefault("renderer.timeout", d.Renderer.Timeout)

	v.SetDefault("git.timeout", d.Git.Timeout)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

func substituteEnvVars(s *domain.Settings) {
	s.Server.AllowedBaseDirectory = expandEnvVar(s.Server.AllowedBaseDirectory)
	s.Javadoc.OutputBaseDir = expandEnvVar(s.Javadoc.OutputBaseDir)
	s.Javadoc.Command = expandEnvVar(s.Javadoc.Command)
	s.Maven.Command = expandEnvVar(s.Maven.Command)
	s.Renderer.URL = expandEnvVar(s.Renderer.URL)
	s.Renderer.Command = expandEnvVar(s.Renderer.Command)
	s.Logging.Output = expandEnvVar(s.Logging.Output)
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
// Unknown variables are left as written.
func expandEnvVar(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		return match
	})
}
