// Package placeholder implements the {{name}} token substitution used when
// displaying and copying prompts, and the ordered variable model behind the
// prompt editor.
package placeholder

import "strings"

// Mode selects what happens to an occurrence whose variable has no value.
type Mode string

const (
	// ModePreview keeps the literal {{name}} token for empty values so the
	// user can see which placeholders remain unfilled.
	ModePreview Mode = "preview"
	// ModeFinal replaces empty values with the empty string, producing the
	// text handed to the clipboard.
	ModeFinal Mode = "final"
)

// Value pairs a variable name with its current fill-in value. Values are
// request-scoped; they are never persisted.
type Value struct {
	Name  string
	Value string
}

// Render replaces every literal occurrence of "{{"+name+"}}" in text, one
// variable at a time in slice order. Matching is exact and case-sensitive
// with no whitespace tolerance. A name with no matching token is inert.
// Rendering is pure: the same inputs always produce the same output, and a
// final-mode result contains no tokens left to re-replace.
//
// When two entries share a name the earlier one consumes the tokens and the
// later one finds nothing, unless the earlier one was empty in preview mode.
func Render(text string, values []Value, mode Mode) string {
	for _, v := range values {
		token := "{{" + v.Name + "}}"
		if v.Value == "" {
			if mode == ModePreview {
				continue
			}
			text = strings.ReplaceAll(text, token, "")
			continue
		}
		text = strings.ReplaceAll(text, token, v.Value)
	}
	return text
}
