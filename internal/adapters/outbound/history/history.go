package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/docforge/docforge/internal/domain"
)

const runsFile = ".docforge/history/runs.json"

// DefaultMaxRuns is how many runs a project keeps before the oldest are dropped.
const DefaultMaxRuns = 100

// FileHistory implements domain.RunHistory as a capped JSON log under the
// scanned project. Only the newest MaxRuns entries survive a Save.
type FileHistory struct {
	MaxRuns int
}

func New() *FileHistory {
	return &FileHistory{MaxRuns: DefaultMaxRuns}
}

// Save appends run and rotates out the oldest entries beyond MaxRuns.
// The file is replaced atomically so a crashed run never leaves partial JSON.
func (h *FileHistory) Save(projectPath string, run domain.RunEntry) error {
	runs, err := h.Load(projectPath)
	if err != nil {
		return err
	}
	runs = keepLast(append(runs, run), h.MaxRuns)

	fp := filepath.Join(projectPath, runsFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(fp), "runs-*.json")
	if err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return os.Rename(tmp.Name(), fp)
}

// Load returns every recorded run, oldest first. A project without history
// yields nil.
func (h *FileHistory) Load(projectPath string) ([]domain.RunEntry, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, runsFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var runs []domain.RunEntry
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", runsFile, err)
	}
	return runs, nil
}

// Recent returns the newest n runs in chronological order, or all of them
// when n <= 0.
func (h *FileHistory) Recent(projectPath string, n int) ([]domain.RunEntry, error) {
	runs, err := h.Load(projectPath)
	if err != nil {
		return nil, err
	}
	return keepLast(runs, n), nil
}

// ForCommit returns the runs recorded at commits starting with hashPrefix.
func (h *FileHistory) ForCommit(projectPath, hashPrefix string) ([]domain.RunEntry, error) {
	runs, err := h.Load(projectPath)
	if err != nil {
		return nil, err
	}
	var out []domain.RunEntry
	for _, r := range runs {
		if r.CommitHash != "" && strings.HasPrefix(r.CommitHash, hashPrefix) {
			out = append(out, r)
		}
	}
	return out, nil
}

func keepLast(runs []domain.RunEntry, n int) []domain.RunEntry {
	if n <= 0 || len(runs) <= n {
		return runs
	}
	return runs[len(runs)-n:]
}
