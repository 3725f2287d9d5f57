package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/pyforge/internal/analyzer"
	"github.com/toyz/pyforge/internal/errors"
	"github.com/toyz/pyforge/internal/generator"
	"github.com/toyz/pyforge/internal/models"
	"github.com/toyz/pyforge/internal/utils"
)

// Forger runs the full pipeline for one source file
type Forger struct {
	analyzer  *analyzer.Analyzer
	generator *generator.Generator
	resolver  *ProjectResolver
	diag      *utils.DiagnosticSystem
}

// NewForger creates a forger that reports through the given diagnostics
func NewForger(diag *utils.DiagnosticSystem) *Forger {
	return &Forger{
		analyzer:  analyzer.NewAnalyzer(),
		generator: generator.NewGenerator(),
		resolver:  NewProjectResolver(),
		diag:      diag,
	}
}

// Run analyzes the configured source file and writes its test scaffold.
// A present destination without overwrite enabled is a deliberate safety
// default: the run warns, skips writing, and still reports success. A filter
// that matches nothing warns and forges a header-only file.
func (f *Forger) Run(config *Config) (*models.ForgeSummary, error) {
	summary := &models.ForgeSummary{SourcePath: config.SourcePath}

	if err := f.validateSource(config.SourcePath); err != nil {
		return nil, err
	}

	f.diag.ForgeHeader(fmt.Sprintf("forging tests for %s", config.SourcePath))

	descriptors, err := f.analyzer.ExtractFunctions(config.SourcePath)
	if err != nil {
		return nil, err
	}
	summary.CallablesFound = len(descriptors)
	f.diag.Verbose("discovered %d callable(s) in %s", len(descriptors), config.SourcePath)

	var kept []models.CallableDescriptor
	for _, desc := range descriptors {
		if desc.Skip {
			summary.Skipped++
			f.diag.Verbose("skipping %s (forge::skip at line %d)", desc.QualifiedName(), desc.Lineno)
			continue
		}
		kept = append(kept, desc)
	}

	if config.FunctionName != "" {
		var matched []models.CallableDescriptor
		for _, desc := range kept {
			if desc.Name == config.FunctionName || desc.QualifiedName() == config.FunctionName {
				matched = append(matched, desc)
			} else {
				summary.Filtered++
			}
		}
		if len(matched) == 0 {
			notFound := errors.NewNotFoundError(config.FunctionName, config.SourcePath)
			f.diag.Warn("%s", notFound.Error())
		}
		kept = matched
	}

	outputDir, err := f.resolver.ResolveOutputDir(config.SourcePath, config.OutputDir)
	if err != nil {
		f.diag.Warn("ignoring project configuration: %v", err)
	}
	overwrite := f.resolver.ResolveOverwrite(config.SourcePath, config.Overwrite)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, errors.WrapWriteError(outputDir, err)
	}

	destination := filepath.Join(outputDir, generator.TestFileName(config.SourcePath))
	summary.OutputPath = destination

	if _, statErr := os.Stat(destination); statErr == nil && !overwrite {
		exists := errors.NewAlreadyExistsError(destination)
		f.diag.Warn("%s", exists.Error())
		f.diag.Suggestions(exists.Suggestions())
		return summary, nil
	}

	content, err := f.generator.GenerateTestContent(config.SourcePath, kept)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(destination, []byte(content), 0644); err != nil {
		return nil, errors.WrapWriteError(destination, err)
	}

	summary.TestsForged = len(kept)
	summary.Written = true
	for _, desc := range kept {
		summary.ForgedNames = append(summary.ForgedNames, desc.QualifiedName())
	}

	f.diag.Success("forged %d test(s) into %s", summary.TestsForged, destination)
	return summary, nil
}

// validateSource checks the source path before analysis so callers get an
// IOError or ValidationError instead of a confusing ParseError
func (f *Forger) validateSource(path string) error {
	if path == "" {
		return errors.New(errors.ValidationErrorCode, "no source file given")
	}

	info, err := os.Stat(path)
	if err != nil {
		return errors.WrapReadError(path, err)
	}
	if info.IsDir() {
		return errors.Newf(errors.ValidationErrorCode, "'%s' is a directory, not a Python file", path).
			WithContext("path", path)
	}
	if strings.ToLower(filepath.Ext(path)) != ".py" {
		return errors.Newf(errors.ValidationErrorCode, "'%s' is not a Python source file", path).
			WithContext("path", path).
			WithSuggestion("pyforge analyzes .py files only")
	}
	return nil
}
