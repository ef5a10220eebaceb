package scanner

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/docforge/docforge/internal/domain"
	ignore "github.com/sabhiram/go-gitignore"
)

// skipDirs holds VCS metadata directories. Everything else is scanned unless
// excluded by config or an opted-in .gitignore.
var skipDirs = map[string]bool{
	".git": true,
	".svn": true,
	".hg":  true,
}

// FileScanner implements domain.SourceScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

func (s *FileScanner) Scan(rootPath string, opts domain.ScanOptions) (*domain.ScanResult, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, &domain.InvalidInputError{Path: rootPath, Reason: err.Error()}
	}

	info, err := os.Stat(absPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, &domain.InvalidInputError{Path: rootPath, Reason: "does not exist"}
	case err != nil:
		return nil, &domain.InvalidInputError{Path: rootPath, Reason: err.Error()}
	case !info.IsDir():
		return nil, &domain.InvalidInputError{Path: rootPath, Reason: "not a directory"}
	}

	ext := opts.Extension
	if ext == "" {
		ext = domain.JavaExtension
	}

	// Excludes match either a directory name anywhere or a path relative to the root.
	extraSkip := make(map[string]bool, len(opts.ExcludePaths))
	for _, p := range opts.ExcludePaths {
		extraSkip[strings.TrimSuffix(filepath.ToSlash(p), "/")] = true
	}

	var gitignore *ignore.GitIgnore
	if opts.RespectGitignore {
		gitignore = loadGitignore(absPath)
	}

	result := &domain.ScanResult{
		RootPath: absPath,
	}

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == absPath {
			return nil
		}

		relPath, _ := filepath.Rel(absPath, path)
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if skipDirs[d.Name()] || extraSkip[d.Name()] || extraSkip[relPath] {
				return filepath.SkipDir
			}
			if gitignore != nil && gitignore.MatchesPath(relPath+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if extraSkip[relPath] {
			return nil
		}
		if gitignore != nil && gitignore.MatchesPath(relPath) {
			return nil
		}

		result.AddFile(relPath, ext)
		return nil
	})

	return result, err
}

// loadGitignore compiles the root .gitignore, or returns nil when there is none.
func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
