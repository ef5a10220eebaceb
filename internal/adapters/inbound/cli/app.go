package cli

import (
	"fmt"
	"path/filepath"

	"github.com/docforge/docforge/internal/adapters/outbound/config"
	"github.com/docforge/docforge/internal/adapters/outbound/gitinfo"
	"github.com/docforge/docforge/internal/adapters/outbound/logger"
	"github.com/docforge/docforge/internal/adapters/outbound/parser"
	"github.com/docforge/docforge/internal/adapters/outbound/plantuml"
	"github.com/docforge/docforge/internal/adapters/outbound/scanner"
	"github.com/docforge/docforge/internal/adapters/outbound/toolexec"
	"github.com/docforge/docforge/internal/application"
	"github.com/docforge/docforge/internal/domain"
)

type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

// app holds the wired adapters and services for one command invocation.
type app struct {
	settings domain.Settings
	log      *logger.Logger
	diagrams *application.DiagramService
	javadocs *application.JavadocService
	parser   *parser.JavaParser
}

// newApp loads settings, applies overrides in order and wires the services.
func newApp(flags *globalFlags, overrides ...func(*domain.Settings)) (*app, error) {
	settings, err := config.LoadSettings(flags.configPath)
	if err != nil {
		return nil, err
	}
	for _, o := range overrides {
		o(&settings)
	}
	if flags.logLevel != "" {
		settings.Logging.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		settings.Logging.Format = flags.logFormat
	}

	log, err := logger.New(settings.Logging)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	p, err := parser.New()
	if err != nil {
		return nil, err
	}

	zl := log.Zap()
	runner := toolexec.New(zl.Named("exec"))
	fs := scanner.New()

	return &app{
		settings: settings,
		log:      log,
		parser:   p,
		diagrams: application.NewDiagramService(fs, p, config.New(),
			plantuml.NewRenderer(settings.Renderer, runner), zl.Named("diagram")),
		javadocs: application.NewJavadocService(fs, runner, gitinfo.New(), settings, zl.Named("javadoc")),
	}, nil
}

func (a *app) close() {
	a.parser.Close()
	_ = a.log.Sync()
}

// pathArg returns the absolute form of the optional path argument.
func pathArg(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}
