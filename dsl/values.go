package dsl

import "strings"

// Text returns the value as plain text: strings unquoted, arrays joined
// with ", " and expressions joined with single spaces.
func (v *Value) Text() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Color != nil:
		return *v.Color
	case v.Array != nil:
		parts := make([]string, 0, len(v.Array.Values))
		for _, item := range v.Array.Values {
			parts = append(parts, item.Text())
		}
		return strings.Join(parts, ", ")
	case v.Expr != nil:
		return JoinLexemes(v.Expr.Parts)
	}
	return ""
}

// Words splits an expression value into its token values.
func (v *Value) Words() []string {
	if v == nil || v.Expr == nil {
		if t := v.Text(); t != "" {
			return []string{t}
		}
		return nil
	}
	out := make([]string, 0, len(v.Expr.Parts))
	for _, p := range v.Expr.Parts {
		out = append(out, p.Value)
	}
	return out
}

// JoinLexemes rebuilds source text from tokens: dotted paths and indexes
// are glued, other tokens separated by a space.
func JoinLexemes(parts []*Lexeme) string {
	var b strings.Builder
	for i, p := range parts {
		if i > 0 && !glued(parts[i-1].Raw) && !glued(p.Raw) {
			b.WriteByte(' ')
		}
		b.WriteString(p.Value)
	}
	return b.String()
}

func glued(raw string) bool {
	switch raw {
	case ".", "[", "]":
		return true
	}
	return false
}
