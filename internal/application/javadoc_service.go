package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/docforge/docforge/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const classpathFile = "javadoc_classpath.txt"

// JavadocService runs the javadoc tool over a source tree, resolving the
// Maven classpath when the tree is a Maven project.
type JavadocService struct {
	scanner  domain.SourceScanner
	runner   domain.CommandRunner
	fetcher  domain.RepositoryFetcher
	settings domain.Settings
	log      *zap.Logger
	newID    func() string
}

func NewJavadocService(
	scanner domain.SourceScanner,
	runner domain.CommandRunner,
	fetcher domain.RepositoryFetcher,
	settings domain.Settings,
	log *zap.Logger,
) *JavadocService {
	if log == nil {
		log = zap.NewNop()
	}
	return &JavadocService{
		scanner:  scanner,
		runner:   runner,
		fetcher:  fetcher,
		settings: settings,
		log:      log,
		newID:    uuid.NewString,
	}
}

// GenerateDocs writes javadoc for sourceDir into a fresh directory under the
// configured output base. customClasspath uses the OS list separator.
func (s *JavadocService) GenerateDocs(ctx context.Context, sourceDir, customClasspath string) (*domain.JavadocResult, error) {
	return s.generate(ctx, sourceDir, customClasspath, s.settings.Javadoc.OutputBaseDir)
}

// GenerateFromRepository clones req.RepoURL, documents it, and removes the clone.
func (s *JavadocService) GenerateFromRepository(ctx context.Context, req domain.RepositoryRequest) (*domain.JavadocResult, error) {
	if strings.TrimSpace(req.RepoURL) == "" {
		return nil, &domain.InvalidInputError{Path: req.RepoURL, Reason: "repository URL is required"}
	}
	if s.fetcher == nil {
		return nil, errors.New("repository cloning is not available")
	}

	tmp, err := os.MkdirTemp("", "docforge-clone-*")
	if err != nil {
		return nil, fmt.Errorf("creating clone directory: %w", err)
	}
	defer os.RemoveAll(tmp)

	cloneCtx := ctx
	if s.settings.Git.Timeout > 0 {
		var cancel context.CancelFunc
		cloneCtx, cancel = context.WithTimeout(ctx, s.settings.Git.Timeout)
		defer cancel()
	}

	dest := filepath.Join(tmp, "repo")
	s.log.Info("cloning repository", zap.String("url", req.RepoURL), zap.String("branch", req.Branch))
	hash, err := s.fetcher.Clone(cloneCtx, req.RepoURL, req.Branch, dest)
	if err != nil {
		return nil, err
	}

	base := s.settings.Javadoc.OutputBaseDir
	if req.OutputDir != "" {
		base = req.OutputDir
	}
	res, err := s.generate(ctx, dest, req.Classpath, base)
	if err != nil {
		return nil, err
	}
	res.SourceDir = req.RepoURL
	res.CommitHash = hash
	return res, nil
}

func (s *JavadocService) generate(ctx context.Context, sourceDir, customClasspath, outputBase string) (*domain.JavadocResult, error) {
	scan, err := s.scanner.Scan(sourceDir, domain.ScanOptions{Extension: domain.JavaExtension})
	if err != nil {
		return nil, err
	}

	outDir, err := filepath.Abs(filepath.Join(outputBase, "docs-"+s.newID()[:8]))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	log := s.log.With(zap.String("source", scan.RootPath), zap.String("output", outDir))
	res := &domain.JavadocResult{SourceDir: scan.RootPath, Files: len(scan.SourceFiles)}

	if len(scan.SourceFiles) == 0 {
		log.Warn("no .java files found")
		res.Message = fmt.Sprintf("No .java files found in %s. No Javadoc generated.", sourceDir)
		return res, nil
	}
	res.OutputDir = outDir
	log.Info("documenting sources", zap.Int("files", len(scan.SourceFiles)))

	res.Classpath = s.effectiveClasspath(ctx, scan, customClasspath)
	if res.Classpath == "" {
		log.Warn("no classpath provided or determined; javadoc may miss dependencies")
	}

	args := []string{"-d", outDir, "-sourcepath", scan.RootPath}
	if res.Classpath != "" {
		args = append(args, "-classpath", res.Classpath)
	}
	args = append(args, "-encoding", "UTF-8", "-docencoding", "UTF-8", "-charset", "UTF-8")
	if !s.settings.Javadoc.Doclint {
		args = append(args, "-Xdoclint:none")
	}
	for _, f := range scan.SourceFiles {
		args = append(args, filepath.Join(scan.RootPath, filepath.FromSlash(f)))
	}

	out, err := s.runner.Run(ctx, domain.Command{
		Name:    s.settings.Javadoc.Command,
		Args:    args,
		Dir:     scan.RootPath,
		Timeout: s.settings.Javadoc.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("running javadoc: %w", err)
	}
	if out.ExitCode != 0 {
		log.Error("javadoc failed", zap.Int("exit_code", out.ExitCode), zap.String("output", out.Combined()))
		return nil, &domain.ToolError{Tool: "javadoc", ExitCode: out.ExitCode, Output: out.Combined()}
	}

	if _, err := os.Stat(filepath.Join(outDir, "index.html")); err == nil {
		res.IndexFound = true
		res.Message = "Javadoc generated successfully at: " + outDir
		log.Info("javadoc generated")
	} else {
		res.Message = "Javadoc process completed, but main index file might be missing. Check logs and output at: " + outDir
		log.Warn("javadoc exited successfully but index.html is missing", zap.String("output", out.Combined()))
	}
	return res, nil
}

// effectiveClasspath joins the custom classpath with the Maven classpath,
// dropping duplicates and keeping first occurrence order.
func (s *JavadocService) effectiveClasspath(ctx context.Context, scan *domain.ScanResult, custom string) string {
	var elements []string
	elements = append(elements, filepath.SplitList(custom)...)

	if scan.HasPOM {
		if cp, err := s.mavenClasspath(ctx, scan); err != nil {
			s.log.Warn("failed to determine Maven classpath", zap.String("root", scan.RootPath), zap.Error(err))
		} else {
			elements = append(elements, filepath.SplitList(cp)...)
		}
	}

	seen := make(map[string]bool, len(elements))
	var out []string
	for _, e := range elements {
		e = strings.TrimSpace(e)
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return strings.Join(out, string(os.PathListSeparator))
}

func (s *JavadocService) mavenClasspath(ctx context.Context, scan *domain.ScanResult) (string, error) {
	outFile := filepath.Join(scan.RootPath, classpathFile)
	defer os.Remove(outFile)

	res, err := s.runner.Run(ctx, domain.Command{
		Name: s.mavenCommand(scan.RootPath),
		Args: []string{
			"dependency:build-classpath",
			"-Dmdep.outputFile=" + outFile,
			"-DincludeScope=compile",
		},
		Dir:     scan.RootPath,
		Timeout: s.settings.Maven.Timeout,
	})
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", &domain.ToolError{Tool: "mvn", ExitCode: res.ExitCode, Output: res.Combined()}
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", classpathFile, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// mavenCommand prefers an executable Maven wrapper in root.
func (s *JavadocService) mavenCommand(root string) string {
	candidates := []string{"mvnw"}
	if runtime.GOOS == "windows" {
		candidates = []string{"mvnw.cmd", "mvnw"}
	}
	for _, name := range candidates {
		path := filepath.Join(root, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		if runtime.GOOS == "windows" || info.Mode()&0111 != 0 {
			s.log.Info("using Maven wrapper", zap.String("path", path))
			return path
		}
	}
	return s.settings.Maven.Command
}
