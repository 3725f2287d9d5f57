package cli

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/toyz/pyforge/internal/errors"
	"github.com/toyz/pyforge/internal/utils"
)

// DefaultOutputDir is where forged tests land when neither the command line
// nor pyproject.toml names a directory
const DefaultOutputDir = "tests"

// ProjectConfig holds the [tool.pyforge] table of a pyproject.toml
type ProjectConfig struct {
	Output    string `toml:"output"`
	Overwrite bool   `toml:"overwrite"`
}

type pyprojectFile struct {
	Tool struct {
		Pyforge ProjectConfig `toml:"pyforge"`
	} `toml:"tool"`
}

// ProjectResolver locates and reads project-level defaults from the
// pyproject.toml nearest to the analyzed source file
type ProjectResolver struct {
	fileReader *utils.FileReader
}

// NewProjectResolver creates a new project configuration resolver
func NewProjectResolver() *ProjectResolver {
	return &ProjectResolver{
		fileReader: utils.NewFileReader(),
	}
}

// FindProjectFile walks up from startDir looking for a pyproject.toml,
// stopping at the filesystem root
func (r *ProjectResolver) FindProjectFile(startDir string) (string, bool) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(dir, "pyproject.toml")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load parses the [tool.pyforge] table from the given pyproject.toml. A file
// without that table yields a zero-valued config, not an error.
func (r *ProjectResolver) Load(path string) (*ProjectConfig, error) {
	content, err := r.fileReader.ReadFile(path)
	if err != nil {
		return nil, errors.WrapReadError(path, err)
	}

	var parsed pyprojectFile
	if err := toml.Unmarshal(content, &parsed); err != nil {
		return nil, errors.Wrapf(errors.ParseErrorCode, err, "malformed pyproject.toml '%s'", path).
			WithContext("path", path).
			WithSuggestion("Check the TOML syntax of the [tool.pyforge] table")
	}
	return &parsed.Tool.Pyforge, nil
}

// ResolveOutputDir picks the destination directory for a source file:
// an explicit flag value wins; otherwise the nearest pyproject.toml's
// [tool.pyforge] output; otherwise DefaultOutputDir. Relative pyproject
// values resolve against the pyproject's own directory.
func (r *ProjectResolver) ResolveOutputDir(sourcePath, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	projectFile, found := r.FindProjectFile(filepath.Dir(sourcePath))
	if !found {
		return DefaultOutputDir, nil
	}

	config, err := r.Load(projectFile)
	if err != nil {
		return DefaultOutputDir, err
	}
	if config.Output == "" {
		return DefaultOutputDir, nil
	}
	if filepath.IsAbs(config.Output) {
		return config.Output, nil
	}
	return filepath.Join(filepath.Dir(projectFile), config.Output), nil
}

// ResolveOverwrite reports whether the project configuration enables
// overwriting when the flag itself was not set
func (r *ProjectResolver) ResolveOverwrite(sourcePath string, flagValue bool) bool {
	if flagValue {
		return true
	}

	projectFile, found := r.FindProjectFile(filepath.Dir(sourcePath))
	if !found {
		return false
	}

	config, err := r.Load(projectFile)
	if err != nil {
		return false
	}
	return config.Overwrite
}
