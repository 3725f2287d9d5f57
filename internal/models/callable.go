package models

import (
	"fmt"
	"unicode"
)

// ParameterKind classifies how a formal parameter may be supplied at a call site
type ParameterKind int

const (
	ParameterKindPositionalOrKeyword ParameterKind = iota
	ParameterKindPositionalOnly
	ParameterKindKeywordOnly
	ParameterKindVarPositional
	ParameterKindVarKeyword
)

// String returns the string representation of the parameter kind
func (k ParameterKind) String() string {
	switch k {
	case ParameterKindPositionalOnly:
		return "positional-only"
	case ParameterKindKeywordOnly:
		return "keyword-only"
	case ParameterKindVarPositional:
		return "var-positional"
	case ParameterKindVarKeyword:
		return "var-keyword"
	default:
		return "positional-or-keyword"
	}
}

// IsVariadic reports whether the kind captures an arbitrary number of arguments
func (k ParameterKind) IsVariadic() bool {
	return k == ParameterKindVarPositional || k == ParameterKindVarKeyword
}

// ParameterDescriptor describes one formal parameter of a discovered callable.
// Annotation and Default carry the literal source text of their expressions;
// they are never evaluated.
type ParameterDescriptor struct {
	Name       string        // identifier as written in source
	Kind       ParameterKind // how the parameter may be supplied
	Annotation string        // type annotation source fragment, empty when absent
	Default    string        // default value source fragment
	HasDefault bool          // true when a default was declared (Default may legitimately render as "None")
}

// CallableDescriptor is the structural summary of one function or method
// extracted from a Python source file. Descriptors are value objects: created
// once by the analyzer, consumed by the generator, never mutated.
type CallableDescriptor struct {
	Name         string                // identifier, unique within its defining scope only
	ClassName    string                // enclosing class name, empty for module-level functions
	Parameters   []ParameterDescriptor // declaration order, exactly as written
	IsAsync      bool                  // declared with async execution semantics
	IsMethod     bool                  // defined directly inside a class body
	Decorators   []string              // decorator expression fragments, '@' stripped
	Docstring    string                // first body statement when it is a bare string literal
	Lineno       int                   // 1-based line of the definition
	Skip         bool                  // set by a '# forge::skip' directive
	NameOverride string                // set by a '# forge::name <ident>' directive
}

// QualifiedName returns Class.Name for methods and the bare name otherwise
func (c CallableDescriptor) QualifiedName() string {
	if c.ClassName != "" {
		return c.ClassName + "." + c.Name
	}
	return c.Name
}

// RequiredParameters returns the parameters a caller must always supply:
// non-variadic parameters without a default, excluding the implicit receiver
// of methods.
func (c CallableDescriptor) RequiredParameters() []ParameterDescriptor {
	var required []ParameterDescriptor
	for i, p := range c.Parameters {
		if c.IsMethod && i == 0 {
			continue // self / cls
		}
		if p.Kind.IsVariadic() || p.HasDefault {
			continue
		}
		required = append(required, p)
	}
	return required
}

// DefaultedParameters returns the parameters that declare defaults, in order
func (c CallableDescriptor) DefaultedParameters() []ParameterDescriptor {
	var defaulted []ParameterDescriptor
	for _, p := range c.Parameters {
		if p.HasDefault {
			defaulted = append(defaulted, p)
		}
	}
	return defaulted
}

// Validate enforces the descriptor invariants: parameter names are valid
// identifiers, at most one var-positional and one var-keyword parameter, and
// variadic parameters never carry defaults.
func (c CallableDescriptor) Validate() error {
	if !isIdentifier(c.Name) {
		return fmt.Errorf("callable name %q is not a valid identifier", c.Name)
	}
	varPositional := 0
	varKeyword := 0
	for _, p := range c.Parameters {
		if !isIdentifier(p.Name) {
			return fmt.Errorf("parameter name %q is not a valid identifier", p.Name)
		}
		switch p.Kind {
		case ParameterKindVarPositional:
			varPositional++
		case ParameterKindVarKeyword:
			varKeyword++
		}
		if p.Kind.IsVariadic() && p.HasDefault {
			return fmt.Errorf("variadic parameter %q cannot have a default", p.Name)
		}
	}
	if varPositional > 1 {
		return fmt.Errorf("callable %q declares %d var-positional parameters", c.Name, varPositional)
	}
	if varKeyword > 1 {
		return fmt.Errorf("callable %q declares %d var-keyword parameters", c.Name, varKeyword)
	}
	return nil
}

// isIdentifier reports whether s is a valid Python identifier
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
