// Package cli orchestrates the forge pipeline: validate the source path,
// analyze, filter, generate, and write the test file.
package cli

// Config carries one forge invocation's settings. All configuration is
// explicit; nothing is read from process globals.
type Config struct {
	SourcePath   string // Python file to analyze
	FunctionName string // only forge the callable with this name, empty for all
	OutputDir    string // destination directory, empty to resolve from pyproject.toml
	Overwrite    bool   // replace an existing test file instead of skipping
}
