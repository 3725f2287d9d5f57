package directives

import "github.com/toyz/pyforge/internal/errors"

// DirectiveKind represents the type of forge:: directive found in a comment
type DirectiveKind int

const (
	// SkipDirective excludes the callable below the comment from generation
	SkipDirective DirectiveKind = iota
	// NameDirective overrides the base name of the generated test
	NameDirective
)

// String returns the directive keyword as written in source
func (k DirectiveKind) String() string {
	switch k {
	case SkipDirective:
		return "skip"
	case NameDirective:
		return "name"
	default:
		return "unknown"
	}
}

// Directive is one parsed forge:: control comment
type Directive struct {
	Kind     DirectiveKind         // what the directive does
	Name     string                // argument of a name directive, empty otherwise
	Raw      string                // original comment text
	Location errors.SourceLocation // where the comment appears
}
