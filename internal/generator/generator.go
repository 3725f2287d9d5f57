// Package generator renders callable descriptors into pytest scaffold text.
// Generation is pure: same descriptors in, same text out, no file I/O.
package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/toyz/pyforge/internal/errors"
	"github.com/toyz/pyforge/internal/models"
)

// HeaderMarker opens every forged file. The cleaner only removes files that
// start with it, so hand-written tests are never touched.
const HeaderMarker = "# Generated by pyforge"

// Generator renders test file content from callable descriptors
type Generator struct{}

// NewGenerator creates a new test content generator
func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateTestContent renders a complete test file for the given descriptors.
// The header imports pytest and star-imports the source module by its
// filename stem; each descriptor becomes exactly one test definition,
// separated by single blank lines. An empty descriptor set yields a valid
// header-only file.
func (g *Generator) GenerateTestContent(sourcePath string, descriptors []models.CallableDescriptor) (string, error) {
	for _, desc := range descriptors {
		if err := desc.Validate(); err != nil {
			return "", errors.WrapValidationError(desc.QualifiedName(), err)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s from %s\n", HeaderMarker, filepath.Base(sourcePath))
	b.WriteString("\n")
	b.WriteString("import pytest\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "from %s import *\n", ModuleStem(sourcePath))

	names := newNameAllocator()
	for _, desc := range descriptors {
		b.WriteString("\n")
		g.writeTest(&b, names.testName(desc), desc)
	}

	return b.String(), nil
}

// writeTest emits one test definition: an optional fixture placeholder for
// methods, the placeholder invocation, and a failing assertion so the stub
// never passes silently.
func (g *Generator) writeTest(b *strings.Builder, testName string, desc models.CallableDescriptor) {
	if desc.IsAsync {
		b.WriteString("@pytest.mark.asyncio\n")
		fmt.Fprintf(b, "async def %s():\n", testName)
	} else {
		fmt.Fprintf(b, "def %s():\n", testName)
	}

	if desc.IsMethod {
		fmt.Fprintf(b, "    instance = None  # TODO: supply a %s fixture\n", desc.ClassName)
	}

	call := g.callExpression(desc)
	if desc.IsAsync {
		fmt.Fprintf(b, "    await %s\n", call)
	} else {
		fmt.Fprintf(b, "    %s\n", call)
	}

	fmt.Fprintf(b, "    assert False, \"TODO: implement test for %s\"\n", desc.QualifiedName())
}

// callExpression builds the placeholder invocation: one positional None per
// required parameter, name=None for declared defaults and required
// keyword-only parameters, nothing for variadics. Positional-only parameters
// cannot be passed by name, so their defaults render positionally; Python
// forbids a required parameter after a defaulted one, which keeps that
// ordering valid. Methods are called through the class with the fixture
// placeholder as the receiver.
func (g *Generator) callExpression(desc models.CallableDescriptor) string {
	var positional, keyword []string
	if desc.IsMethod {
		positional = append(positional, "instance")
	}
	for _, p := range desc.RequiredParameters() {
		if p.Kind == models.ParameterKindKeywordOnly {
			keyword = append(keyword, p.Name+"=None")
		} else {
			positional = append(positional, "None")
		}
	}
	for _, p := range desc.DefaultedParameters() {
		if p.Kind == models.ParameterKindPositionalOnly {
			positional = append(positional, "None")
		} else {
			keyword = append(keyword, p.Name+"=None")
		}
	}

	args := append(positional, keyword...)
	return fmt.Sprintf("%s(%s)", desc.QualifiedName(), strings.Join(args, ", "))
}

// ModuleStem derives the importable module name from a source path: the
// filename with its extension removed, independent of directory depth
func ModuleStem(sourcePath string) string {
	base := filepath.Base(sourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// TestFileName returns the canonical forged filename for a source file
func TestFileName(sourcePath string) string {
	return "test_" + ModuleStem(sourcePath) + ".py"
}
