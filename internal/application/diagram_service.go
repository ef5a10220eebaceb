package application

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/docforge/docforge/internal/domain"
	"github.com/docforge/docforge/internal/domain/diagram"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DiagramService orchestrates diagram generation:
// load config → scan → parse (pass 1) → registry → parse (pass 2) → extract → assemble.
// Each pass re-parses the tree so a failure in one cannot corrupt the other.
type DiagramService struct {
	scanner      domain.SourceScanner
	parser       domain.SourceParser
	configLoader domain.ConfigLoader
	renderer     domain.DiagramRenderer
	log          *zap.Logger
}

func NewDiagramService(
	scanner domain.SourceScanner,
	parser domain.SourceParser,
	configLoader domain.ConfigLoader,
	renderer domain.DiagramRenderer,
	log *zap.Logger,
) *DiagramService {
	if log == nil {
		log = zap.NewNop()
	}
	return &DiagramService{
		scanner:      scanner,
		parser:       parser,
		configLoader: configLoader,
		renderer:     renderer,
		log:          log,
	}
}

// pass is the parsed state of one walk over the tree.
type pass struct {
	cfg      domain.ProjectConfig
	scan     *domain.ScanResult
	units    []*domain.SourceUnit
	warnings []domain.FileParseWarning
}

// ScanDeclarations runs the first pass and returns the registry of declared types.
func (s *DiagramService) ScanDeclarations(ctx context.Context, rootPath string) (*domain.TypeRegistry, []domain.FileParseWarning, error) {
	p, err := s.parseTree(ctx, rootPath)
	if err != nil {
		return nil, nil, err
	}

	entries := diagram.Declarations(p.units)
	for _, e := range entries {
		s.log.Debug("found declaration",
			zap.String("qualified_name", e.QualifiedName),
			zap.String("kind", string(e.Kind)),
			zap.String("file", e.File))
	}
	return domain.NewTypeRegistry(entries...), p.warnings, nil
}

// ExtractDiagram runs the second pass against a completed registry.
func (s *DiagramService) ExtractDiagram(ctx context.Context, rootPath string, registry *domain.TypeRegistry) (*domain.DiagramDocument, []domain.FileParseWarning, error) {
	p, err := s.parseTree(ctx, rootPath)
	if err != nil {
		return nil, nil, err
	}
	doc := diagram.Extract(p.units, registry, diagram.ExtractOptions{ResolveImports: p.cfg.ResolveImports})
	return doc, p.warnings, nil
}

// Generate runs both passes over rootPath. Warnings from the second pass are
// reported; the first pass sees the same files.
func (s *DiagramService) Generate(ctx context.Context, rootPath string) (*domain.DiagramResult, error) {
	registry, _, err := s.ScanDeclarations(ctx, rootPath)
	if err != nil {
		return nil, err
	}

	p, err := s.parseTree(ctx, rootPath)
	if err != nil {
		return nil, err
	}
	doc := diagram.Extract(p.units, registry, diagram.ExtractOptions{ResolveImports: p.cfg.ResolveImports})

	s.log.Info("diagram generated",
		zap.String("root", p.scan.RootPath),
		zap.Int("files", len(p.scan.SourceFiles)),
		zap.Int("types", len(doc.Types)),
		zap.Int("edges", len(doc.Edges)),
		zap.Int("skipped", len(p.warnings)))

	return &domain.DiagramResult{
		RootPath: p.scan.RootPath,
		Files:    len(p.scan.SourceFiles),
		Document: doc,
		Registry: registry,
		Warnings: p.warnings,
	}, nil
}

// GenerateSource returns the diagram text for rootPath.
func (s *DiagramService) GenerateSource(ctx context.Context, rootPath string) (string, error) {
	res, err := s.Generate(ctx, rootPath)
	if err != nil {
		return "", err
	}
	return diagram.Assemble(res.Document), nil
}

// RenderDiagram hands the document text to the configured renderer.
func (s *DiagramService) RenderDiagram(ctx context.Context, doc *domain.DiagramDocument, format domain.ImageFormat) ([]byte, error) {
	if s.renderer == nil {
		return nil, &domain.RenderingError{Format: string(format), Err: errors.New("no renderer configured")}
	}
	return s.renderer.Render(ctx, diagram.Assemble(doc), format)
}

// parseTree scans rootPath and parses every source file with bounded
// parallelism. Units keep scan order regardless of completion order.
func (s *DiagramService) parseTree(ctx context.Context, rootPath string) (*pass, error) {
	if err := checkRoot(rootPath); err != nil {
		return nil, err
	}

	cfg, err := s.configLoader.Load(rootPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	scan, err := s.scanner.Scan(rootPath, cfg.ScanOptions())
	if err != nil {
		var invalid *domain.InvalidInputError
		if errors.As(err, &invalid) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning %s: %w", rootPath, err)
	}

	units := make([]*domain.SourceUnit, len(scan.SourceFiles))
	failures := make([]error, len(scan.SourceFiles))

	limit := min(cfg.EffectiveParallelism(runtime.GOMAXPROCS(0)), domain.MaxParallelism)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, rel := range scan.SourceFiles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			unit, err := s.parser.ParseFile(filepath.Join(scan.RootPath, filepath.FromSlash(rel)))
			if err != nil {
				failures[i] = err
				return nil
			}
			unit.Path = rel
			units[i] = unit
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p := &pass{cfg: cfg, scan: scan}
	for i, u := range units {
		if failures[i] != nil {
			w := domain.FileParseWarning{File: scan.SourceFiles[i], Cause: failures[i]}
			s.log.Warn("skipping unparseable file", zap.String("file", w.File), zap.Error(w.Cause))
			p.warnings = append(p.warnings, w)
			continue
		}
		p.units = append(p.units, u)
	}
	return p, nil
}

// checkRoot rejects a root that is missing or not a directory before any
// file under it is read.
func checkRoot(rootPath string) error {
	info, err := os.Stat(rootPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &domain.InvalidInputError{Path: rootPath, Reason: "does not exist"}
	case err != nil:
		return &domain.InvalidInputError{Path: rootPath, Reason: err.Error()}
	case !info.IsDir():
		return &domain.InvalidInputError{Path: rootPath, Reason: "not a directory"}
	}
	return nil
}
