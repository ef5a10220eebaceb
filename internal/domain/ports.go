package domain

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"
)

// JavaExtension is the source-file extension recognised by the scanner.
const JavaExtension = ".java"

// SourceScanner lists the source files under a root directory.
type SourceScanner interface {
	Scan(rootPath string, opts ScanOptions) (*ScanResult, error)
}

// ScanOptions tunes a scan.
type ScanOptions struct {
	Extension        string
	ExcludePaths     []string
	RespectGitignore bool
}

// ScanResult holds the files found under a root directory.
// SourceFiles are relative to RootPath, slash-separated, in lexicographic walk order.
type ScanResult struct {
	RootPath        string   `json:"root_path"`
	SourceFiles     []string `json:"source_files"`
	HasPOM          bool     `json:"has_pom"`
	HasMavenWrapper bool     `json:"has_maven_wrapper"`
}

// AddFile records a slash-separated path relative to RootPath. Files with
// extension ext become source files; build markers at the root are noted.
func (s *ScanResult) AddFile(rel, ext string) {
	switch rel {
	case "pom.xml":
		s.HasPOM = true
	case "mvnw", "mvnw.cmd":
		s.HasMavenWrapper = true
	}
	if path.Ext(rel) == ext {
		s.SourceFiles = append(s.SourceFiles, rel)
	}
}

// SourceParser turns a source file into a SourceUnit.
type SourceParser interface {
	ParseFile(path string) (*SourceUnit, error)
}

// ImageFormat is an output format accepted by a DiagramRenderer.
type ImageFormat string

const (
	FormatPNG ImageFormat = "png"
	FormatSVG ImageFormat = "svg"
)

// ParseImageFormat validates a user-supplied format name. Empty means PNG.
func ParseImageFormat(s string) (ImageFormat, error) {
	switch ImageFormat(s) {
	case "", FormatPNG:
		return FormatPNG, nil
	case FormatSVG:
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("unsupported image format %q (valid: png, svg)", s)
	}
}

// ContentType returns the MIME type of the format.
func (f ImageFormat) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// DiagramRenderer turns diagram text into image bytes.
type DiagramRenderer interface {
	Render(ctx context.Context, source string, format ImageFormat) ([]byte, error)
}

// ConfigLoader loads the per-project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// Command describes an external process invocation.
type Command struct {
	Name    string
	Args    []string
	Dir     string
	Stdin   string
	Timeout time.Duration
}

// CommandResult is the outcome of a process that ran to completion.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Combined returns stdout followed by stderr.
func (r *CommandResult) Combined() string {
	switch {
	case r.Stderr == "":
		return r.Stdout
	case r.Stdout == "":
		return r.Stderr
	default:
		return strings.TrimRight(r.Stdout, "\n") + "\n" + r.Stderr
	}
}

// CommandRunner runs external processes.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) (*CommandResult, error)
}

// RepositoryFetcher clones remote repositories.
type RepositoryFetcher interface {
	Clone(ctx context.Context, url, branch, dest string) (commitHash string, err error)
}

// RunHistory persists diagram runs per project.
type RunHistory interface {
	Save(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
	Recent(projectPath string, n int) ([]RunEntry, error)
}

// RunEntry is one recorded diagram run.
type RunEntry struct {
	Timestamp  string `json:"timestamp"`
	CommitHash string `json:"commit_hash,omitempty"`
	Types      int    `json:"types"`
	Edges      int    `json:"edges"`
	Warnings   int    `json:"warnings"`
}
