// Package directives parses `# forge::` control comments in Python source.
// A directive on the line directly above a definition changes how the test
// for that definition is forged:
//
//	# forge::skip
//	def helper(): ...
//
//	# forge::name legacy_loader
//	def load(path): ...
package directives

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/toyz/pyforge/internal/errors"
)

// directivePrefix marks a comment as a pyforge directive
const directivePrefix = "forge::"

// directiveLine is the participle grammar root for one directive comment
type directiveLine struct {
	Hash      string `parser:"@Hash"`
	Forge     string `parser:"@Forge"`
	Separator string `parser:"@Separator"`
	Kind      string `parser:"@Ident"`
	Argument  string `parser:"@Ident?"`
}

// Parser parses forge:: directive comments
type Parser struct {
	parser *participle.Parser[directiveLine]
}

// NewParser creates a new directive parser
func NewParser() *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Hash", Pattern: `#`},
		{Name: "Separator", Pattern: `::`},
		{Name: "Forge", Pattern: `forge\b`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser := participle.MustBuild[directiveLine](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)

	return &Parser{parser: parser}
}

// IsDirective reports whether a comment looks like a forge:: directive.
// Ordinary comments are never an error; only comments that opt in to the
// prefix go through the grammar.
func IsDirective(comment string) bool {
	text := strings.TrimSpace(comment)
	if !strings.HasPrefix(text, "#") {
		return false
	}
	text = strings.TrimSpace(strings.TrimPrefix(text, "#"))
	return strings.HasPrefix(text, directivePrefix)
}

// Parse parses a single directive comment. The comment must satisfy
// IsDirective; malformed or unknown directives fail with a DirectiveError
// carrying the comment's location.
func (p *Parser) Parse(comment string, loc errors.SourceLocation) (*Directive, error) {
	line, err := p.parser.ParseString(loc.File, strings.TrimSpace(comment))
	if err != nil {
		return nil, errors.NewDirectiveError(loc, "malformed forge:: directive: "+err.Error()).
			WithContext("comment", comment)
	}

	directive := &Directive{
		Raw:      comment,
		Location: loc,
	}

	switch line.Kind {
	case "skip":
		if line.Argument != "" {
			return nil, errors.NewDirectiveError(loc, "forge::skip takes no argument").
				WithContext("argument", line.Argument)
		}
		directive.Kind = SkipDirective
	case "name":
		if line.Argument == "" {
			return nil, errors.NewDirectiveError(loc, "forge::name requires an identifier argument")
		}
		directive.Kind = NameDirective
		directive.Name = line.Argument
	default:
		return nil, errors.NewDirectiveError(loc, "unknown directive 'forge::"+line.Kind+"'").
			WithContext("directive", line.Kind)
	}

	return directive, nil
}
