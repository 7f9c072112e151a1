package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mouse-blink/undefender/internal/adapter"
	m "github.com/mouse-blink/undefender/internal/model"
)

// Rewriter produces the deobfuscated text from the original and a
// resolution table, plus two cosmetic passes.
type Rewriter interface {
	// Apply substitutes blocks, then accesses, then arithmetic.
	Apply(text string, table m.ResolutionTable) string
	// NormalizeProperties turns x["name"] into x.name.
	NormalizeProperties(text string) string
	// RenameIdentifiers replaces generated identifiers with short ASCII names.
	RenameIdentifiers(text string) string
}

type rewriter struct {
	js     adapter.JSFileAdapter
	ranges []m.RuneRange
}

// NewRewriter constructs a Rewriter. Identifiers made only of runes in
// ranges are renamed; no ranges disables renaming.
func NewRewriter(js adapter.JSFileAdapter, ranges []m.RuneRange) Rewriter {
	return &rewriter{js: js, ranges: ranges}
}

func (r *rewriter) Apply(text string, table m.ResolutionTable) string {
	for _, fragment := range orderedKeys(table.Blocks) {
		text = strings.ReplaceAll(text, fragment, table.Blocks[fragment])
	}

	for _, fragment := range orderedKeys(table.Values) {
		text = substitute(text, fragment, table.Values[fragment], true)
	}

	for _, fragment := range orderedKeys(table.Expressions) {
		text = substitute(text, fragment, table.Expressions[fragment], false)
	}

	return text
}

// substitute replaces every occurrence of fragment with value. Accesses
// preceded by an identifier character or a dot are part of a longer
// expression and are left alone.
func substitute(text, fragment string, value m.ResolvedValue, access bool) string {
	if fragment == "" || !strings.Contains(text, fragment) {
		return text
	}

	var b strings.Builder

	b.Grow(len(text))

	rest := text
	for {
		idx := strings.Index(rest, fragment)
		if idx < 0 {
			b.WriteString(rest)

			break
		}

		b.WriteString(rest[:idx])

		prev, _ := utf8.DecodeLastRuneInString(b.String())
		rest = rest[idx+len(fragment):]

		if access && (isIdentRune(prev) || prev == '.') {
			b.WriteString(fragment)

			continue
		}

		next, _ := utf8.DecodeRuneInString(rest)
		b.WriteString(wrap(value, prev, next, access))
	}

	return b.String()
}

// wrap parenthesises a replacement that would otherwise fuse with the text
// around it.
func wrap(value m.ResolvedValue, prev, next rune, access bool) string {
	text := value.Text

	switch {
	case !access && (isIdentRune(prev) || prev == ')' || prev == ']'):
		return "(" + text + ")"
	case value.Numeric() && next == '.':
		return "(" + text + ")"
	case endsWithIdentRune(text) && isIdentRune(next):
		return "(" + text + ")"
	}

	return text
}

func isIdentRune(r rune) bool {
	if r == utf8.RuneError {
		return false
	}

	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func endsWithIdentRune(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)

	return isIdentRune(r)
}
