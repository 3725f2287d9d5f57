// Package analyzer parses a Python source file into callable descriptors.
// It walks the tree-sitter parse tree top-down, emitting module-level
// functions and the methods directly nested in class bodies. Functions nested
// inside other functions are not part of the file's public surface and are
// skipped.
package analyzer

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/toyz/pyforge/internal/directives"
	"github.com/toyz/pyforge/internal/errors"
	"github.com/toyz/pyforge/internal/models"
	"github.com/toyz/pyforge/internal/utils"
)

// scopeKind tracks the walker's current enclosing scope, which decides what a
// visited definition is: a function (module scope), a method (class scope),
// or invisible (function scope).
type scopeKind int

const (
	scopeModule scopeKind = iota
	scopeClass
	scopeFunction
)

// Analyzer extracts callable descriptors from Python source files
type Analyzer struct {
	fileReader *utils.FileReader
	directives *directives.Parser
}

// NewAnalyzer creates a new source analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		fileReader: utils.NewFileReader(),
		directives: directives.NewParser(),
	}
}

// ExtractFunctions parses the Python file at sourcePath and returns one
// descriptor per module-level function and class-nested method, in definition
// order. An unreadable file fails with an IOError; malformed source fails
// with a ParseError carrying the first syntax diagnostic. There are no
// partial results.
func (a *Analyzer) ExtractFunctions(sourcePath string) ([]models.CallableDescriptor, error) {
	content, err := a.fileReader.ReadFile(sourcePath)
	if err != nil {
		return nil, errors.WrapReadError(sourcePath, err)
	}
	return a.extract(sourcePath, content)
}

// ExtractFromSource analyzes source code held in memory, used by tests and
// callers that already read the file
func (a *Analyzer) ExtractFromSource(filename, source string) ([]models.CallableDescriptor, error) {
	return a.extract(filename, []byte(source))
}

func (a *Analyzer) extract(filePath string, content []byte) ([]models.CallableDescriptor, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, errors.Wrap(errors.ParseErrorCode, "tree-sitter parse failed", err).
			WithLocation(errors.SourceLocation{File: filePath})
	}
	defer tree.Close()

	root := tree.RootNode()

	// tree-sitter is error-tolerant; enforce the all-or-nothing contract by
	// refusing trees that contain any syntax error.
	if root.HasError() {
		bad := findSyntaxError(root)
		loc := errors.SourceLocation{
			File:   filePath,
			Line:   int(bad.StartPoint().Row) + 1,
			Column: int(bad.StartPoint().Column) + 1,
		}
		return nil, errors.NewParseError(loc, "invalid syntax")
	}

	w := &walker{
		analyzer: a,
		filePath: filePath,
		content:  content,
	}
	if err := w.walkModule(root); err != nil {
		return nil, err
	}

	for _, desc := range w.descriptors {
		if err := desc.Validate(); err != nil {
			return nil, errors.WrapValidationError(desc.QualifiedName(), err).
				WithLocation(errors.SourceLocation{File: filePath, Line: desc.Lineno})
		}
	}

	return w.descriptors, nil
}

// findSyntaxError locates the first ERROR or missing node in a tree that
// reported HasError
func findSyntaxError(node *sitter.Node) *sitter.Node {
	if node.Type() == "ERROR" || node.IsMissing() {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.HasError() || child.IsMissing() {
			return findSyntaxError(child)
		}
	}
	return node
}

// walker carries the state of one top-down pass over the parse tree
type walker struct {
	analyzer    *Analyzer
	filePath    string
	content     []byte
	descriptors []models.CallableDescriptor

	// pending holds the most recent forge:: directive comment; it attaches
	// to a definition only when the definition starts on the very next line.
	pending    *directives.Directive
	pendingRow int
}

func (w *walker) text(node *sitter.Node) string {
	return string(w.content[node.StartByte():node.EndByte()])
}

// walkModule visits the direct children of the module node
func (w *walker) walkModule(root *sitter.Node) error {
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		switch child.Type() {
		case "comment":
			if err := w.observeComment(child); err != nil {
				return err
			}
		case "function_definition":
			if err := w.visitFunction(child, nil, int(child.StartPoint().Row), scopeModule, ""); err != nil {
				return err
			}
		case "decorated_definition":
			if err := w.visitDecorated(child, scopeModule, ""); err != nil {
				return err
			}
		case "class_definition":
			if err := w.visitClass(child); err != nil {
				return err
			}
		}
	}
	return nil
}

// visitClass visits the direct children of a class body, one level of
// nesting only
func (w *walker) visitClass(node *sitter.Node) error {
	var className string
	var body *sitter.Node

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "identifier":
			if className == "" {
				className = w.text(child)
			}
		case "comment":
			// a comment right above the body's first statement hangs off the
			// class_definition itself, not the block
			if err := w.observeComment(child); err != nil {
				return err
			}
		case "block":
			body = child
		}
	}
	if className == "" || body == nil {
		return nil
	}

	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(i)
		switch child.Type() {
		case "comment":
			if err := w.observeComment(child); err != nil {
				return err
			}
		case "function_definition":
			if err := w.visitFunction(child, nil, int(child.StartPoint().Row), scopeClass, className); err != nil {
				return err
			}
		case "decorated_definition":
			if err := w.visitDecorated(child, scopeClass, className); err != nil {
				return err
			}
		}
	}
	return nil
}

// visitDecorated unwraps a decorated_definition and forwards the inner
// definition together with its decorator source fragments. A directive
// comment sits above the decorators, so adjacency is checked against the
// decorated_definition's own first line.
func (w *walker) visitDecorated(node *sitter.Node, scope scopeKind, className string) error {
	var decorators []string
	firstRow := int(node.StartPoint().Row)

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "decorator":
			// strip the leading '@', keep the expression text
			text := w.text(child)
			if len(text) > 0 && text[0] == '@' {
				text = text[1:]
			}
			decorators = append(decorators, text)
		case "function_definition":
			return w.visitFunction(child, decorators, firstRow, scope, className)
		case "class_definition":
			if scope == scopeModule {
				return w.visitClass(child)
			}
		}
	}
	return nil
}

// visitFunction builds a descriptor for one function_definition node
func (w *walker) visitFunction(node *sitter.Node, decorators []string, adjacencyRow int, scope scopeKind, className string) error {
	if scope == scopeFunction {
		return nil
	}

	desc := models.CallableDescriptor{
		ClassName:  className,
		IsMethod:   scope == scopeClass,
		Decorators: decorators,
		Lineno:     int(node.StartPoint().Row) + 1,
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "async":
			desc.IsAsync = true
		case "identifier":
			if desc.Name == "" {
				desc.Name = w.text(child)
			}
		case "parameters":
			desc.Parameters = w.extractParameters(child)
		case "block":
			desc.Docstring = w.extractDocstring(child)
		}
	}

	if desc.Name == "" {
		return nil
	}

	w.applyPendingDirective(&desc, adjacencyRow)
	w.descriptors = append(w.descriptors, desc)
	return nil
}

// observeComment records a forge:: directive comment for the definition that
// may follow it. Ordinary comments are ignored.
func (w *walker) observeComment(node *sitter.Node) error {
	text := w.text(node)
	if !directives.IsDirective(text) {
		return nil
	}

	loc := errors.SourceLocation{
		File:   w.filePath,
		Line:   int(node.StartPoint().Row) + 1,
		Column: int(node.StartPoint().Column) + 1,
	}
	directive, err := w.analyzer.directives.Parse(text, loc)
	if err != nil {
		return err
	}

	w.pending = directive
	w.pendingRow = int(node.StartPoint().Row)
	return nil
}

// applyPendingDirective attaches the pending directive when the definition
// begins on the line right below the directive comment
func (w *walker) applyPendingDirective(desc *models.CallableDescriptor, definitionRow int) {
	if w.pending == nil || definitionRow != w.pendingRow+1 {
		return
	}

	switch w.pending.Kind {
	case directives.SkipDirective:
		desc.Skip = true
	case directives.NameDirective:
		desc.NameOverride = w.pending.Name
	}
	w.pending = nil
}

// extractDocstring returns the first body statement when it is a bare string
// literal, with quotes stripped
func (w *walker) extractDocstring(block *sitter.Node) string {
	if block.ChildCount() == 0 {
		return ""
	}
	first := block.Child(0)
	if first.Type() != "expression_statement" || first.ChildCount() == 0 {
		return ""
	}
	str := first.Child(0)
	if str.Type() != "string" {
		return ""
	}
	return stripQuotes(w.text(str))
}
