package analyzer

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/toyz/pyforge/internal/models"
)

// extractParameters walks the children of a parameters node and classifies
// each formal parameter. keyword_separator (a bare *) and list_splat_pattern
// flip later plain parameters to keyword-only; positional_separator (/)
// retroactively marks earlier plain parameters positional-only.
func (w *walker) extractParameters(node *sitter.Node) []models.ParameterDescriptor {
	var params []models.ParameterDescriptor
	seenStar := false

	plainKind := func() models.ParameterKind {
		if seenStar {
			return models.ParameterKindKeywordOnly
		}
		return models.ParameterKindPositionalOrKeyword
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "identifier":
			params = append(params, models.ParameterDescriptor{
				Name: w.text(child),
				Kind: plainKind(),
			})

		case "typed_parameter":
			param := w.typedParameter(child, plainKind())
			if param.Kind == models.ParameterKindVarPositional {
				seenStar = true
			}
			params = append(params, param)

		case "default_parameter":
			params = append(params, models.ParameterDescriptor{
				Name:       w.fieldText(child, "name"),
				Kind:       plainKind(),
				Default:    w.fieldText(child, "value"),
				HasDefault: true,
			})

		case "typed_default_parameter":
			params = append(params, models.ParameterDescriptor{
				Name:       w.fieldText(child, "name"),
				Kind:       plainKind(),
				Annotation: w.fieldText(child, "type"),
				Default:    w.fieldText(child, "value"),
				HasDefault: true,
			})

		case "list_splat_pattern":
			params = append(params, models.ParameterDescriptor{
				Name: splatName(w.text(child)),
				Kind: models.ParameterKindVarPositional,
			})
			seenStar = true

		case "dictionary_splat_pattern":
			params = append(params, models.ParameterDescriptor{
				Name: splatName(w.text(child)),
				Kind: models.ParameterKindVarKeyword,
			})

		case "keyword_separator":
			seenStar = true

		case "positional_separator":
			for j := range params {
				if params[j].Kind == models.ParameterKindPositionalOrKeyword {
					params[j].Kind = models.ParameterKindPositionalOnly
				}
			}
		}
	}

	return params
}

// typedParameter handles `name: T` and the annotated splat forms
// `*args: T` / `**kwargs: T`, whose splat pattern nests inside the
// typed_parameter node
func (w *walker) typedParameter(node *sitter.Node, kind models.ParameterKind) models.ParameterDescriptor {
	param := models.ParameterDescriptor{
		Kind:       kind,
		Annotation: w.fieldText(node, "type"),
	}

	if node.ChildCount() == 0 {
		return param
	}

	inner := node.Child(0)
	switch inner.Type() {
	case "identifier":
		param.Name = w.text(inner)
	case "list_splat_pattern":
		param.Name = splatName(w.text(inner))
		param.Kind = models.ParameterKindVarPositional
	case "dictionary_splat_pattern":
		param.Name = splatName(w.text(inner))
		param.Kind = models.ParameterKindVarKeyword
	}
	return param
}

func (w *walker) fieldText(node *sitter.Node, field string) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return w.text(child)
}

// splatName strips the leading * or ** from a splat pattern fragment
func splatName(text string) string {
	return strings.TrimLeft(text, "*")
}

// stripQuotes removes string prefixes and the surrounding quote characters
// from a Python string literal fragment
func stripQuotes(literal string) string {
	s := strings.TrimLeft(literal, "rRbBuUfF")

	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 2*len(q) {
			return strings.TrimSpace(s[len(q) : len(s)-len(q)])
		}
	}
	return strings.TrimSpace(s)
}
