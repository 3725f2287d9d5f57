package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/pyforge/internal/errors"
	"github.com/toyz/pyforge/internal/generator"
	"github.com/toyz/pyforge/internal/utils"
)

// Cleaner removes forged test files from an output directory
type Cleaner struct {
	diag *utils.DiagnosticSystem
}

// NewCleaner creates a new cleaner
func NewCleaner(diag *utils.DiagnosticSystem) *Cleaner {
	return &Cleaner{diag: diag}
}

// Clean removes the tool's own output from dir and returns how many files it
// removed. Only files named test_*.py whose content starts with the
// generator's header marker are touched; hand-written tests stay.
func (c *Cleaner) Clean(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, errors.WrapReadError(dir, err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, "test_") || !strings.HasSuffix(name, ".py") {
			continue
		}

		path := filepath.Join(dir, name)
		content, err := os.ReadFile(path)
		if err != nil {
			c.diag.Warn("could not read %s: %v", path, err)
			continue
		}
		if !strings.HasPrefix(string(content), generator.HeaderMarker) {
			c.diag.Verbose("keeping %s (not generated by pyforge)", path)
			continue
		}

		if err := os.Remove(path); err != nil {
			return removed, errors.WrapWriteError(path, err)
		}
		removed++
		c.diag.Verbose("removed %s", path)
	}

	return removed, nil
}
