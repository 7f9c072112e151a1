package domain

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dop251/goja/ast"

	"github.com/mouse-blink/undefender/internal/adapter"
)

var asciiIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

type textEdit struct {
	start, end int
	text       string
}

func (r *rewriter) NormalizeProperties(text string) string {
	program, err := r.js.Parse(text)
	if err != nil {
		return text
	}

	var edits []textEdit

	adapter.JSWalker{
		Enter: func(n ast.Node) bool {
			be, ok := n.(*ast.BracketExpression)
			if !ok {
				return true
			}

			if edit, ok := propertyEdit(text, be); ok {
				edits = append(edits, edit)
			}

			return true
		},
	}.Walk(program)

	return applyEdits(text, edits)
}

func propertyEdit(text string, be *ast.BracketExpression) (textEdit, bool) {
	lit, ok := be.Member.(*ast.StringLiteral)
	if !ok {
		return textEdit{}, false
	}

	name := lit.Value.String()
	if !asciiIdentifier.MatchString(name) {
		return textEdit{}, false
	}

	// 1["x"] cannot become 1.x
	if _, ok := be.Left.(*ast.NumberLiteral); ok {
		return textEdit{}, false
	}

	start := adapter.Offset(be.LeftBracket)
	end := adapter.Offset(be.RightBracket) + 1

	if start < 0 || end > len(text) || start >= end || text[start] != '[' || text[end-1] != ']' {
		return textEdit{}, false
	}

	if strings.HasSuffix(strings.TrimRight(text[:start], " \t\r\n"), "?.") {
		return textEdit{}, false
	}

	return textEdit{start: start, end: end, text: "." + name}, true
}

// applyEdits applies non-overlapping edits back to front.
func applyEdits(text string, edits []textEdit) string {
	if len(edits) == 0 {
		return text
	}

	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })

	limit := len(text)

	for _, e := range edits {
		if e.end > limit {
			continue
		}

		text = text[:e.start] + e.text + text[e.end:]
		limit = e.start
	}

	return text
}
