package domain

import (
	"encoding/binary"
	"math/rand/v2"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dop251/goja/ast"
	"github.com/zeebo/blake3"

	"github.com/mouse-blink/undefender/internal/adapter"
)

const (
	renamedLength = 4
	nameLetters   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	nameAlnum     = nameLetters + "0123456789"
)

var reservedWords = map[string]bool{
	"await": true, "break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true, "else": true,
	"enum": true, "export": true, "extends": true, "false": true, "finally": true, "for": true,
	"function": true, "if": true, "implements": true, "import": true, "in": true, "instanceof": true,
	"interface": true, "let": true, "new": true, "null": true, "package": true, "private": true,
	"protected": true, "public": true, "return": true, "static": true, "super": true, "switch": true,
	"this": true, "throw": true, "true": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true, "yield": true, "eval": true, "arguments": true, "undefined": true,
	"NaN": true, "Infinity": true,
}

type identifierRun struct {
	start, end int
	name       string
}

func (r *rewriter) RenameIdentifiers(text string) string {
	if len(r.ranges) == 0 {
		return text
	}

	runs, ok := r.codeIdentifierRuns(text)
	if !ok {
		return text
	}

	taken := make(map[string]bool)

	var order []string

	seen := make(map[string]bool)

	for _, run := range runs {
		if !r.generated(run.name) {
			taken[run.name] = true

			continue
		}

		if !seen[run.name] {
			seen[run.name] = true

			order = append(order, run.name)
		}
	}

	if len(order) == 0 {
		return text
	}

	digest := blake3.Sum256([]byte(text))
	rng := rand.New(rand.NewPCG(
		binary.LittleEndian.Uint64(digest[0:8]),
		binary.LittleEndian.Uint64(digest[8:16]),
	))

	renames := make(map[string]string, len(order))

	for _, name := range order {
		for {
			candidate := randomName(rng)
			if taken[candidate] || reservedWords[candidate] {
				continue
			}

			taken[candidate] = true
			renames[name] = candidate

			break
		}
	}

	var b strings.Builder

	b.Grow(len(text))

	last := 0

	for _, run := range runs {
		replacement, ok := renames[run.name]
		if !ok {
			continue
		}

		b.WriteString(text[last:run.start])
		b.WriteString(replacement)
		last = run.end
	}

	b.WriteString(text[last:])

	return b.String()
}

// generated reports whether name looks like a protector-generated identifier.
func (r *rewriter) generated(name string) bool {
	if utf8.RuneCountInString(name) != renamedLength {
		return false
	}

	for _, c := range name {
		if !r.inRanges(c) {
			return false
		}
	}

	return true
}

func (r *rewriter) inRanges(c rune) bool {
	for _, rr := range r.ranges {
		if rr.Contains(c) {
			return true
		}
	}

	return false
}

// codeIdentifierRuns returns the identifier runs of text that lie outside
// string literals, template text, regular expressions and comments. It
// reports false when text does not parse.
func (r *rewriter) codeIdentifierRuns(text string) ([]identifierRun, bool) {
	program, err := r.js.Parse(text)
	if err != nil {
		return nil, false
	}

	var skip []textSpan

	adapter.JSWalker{
		Enter: func(n ast.Node) bool {
			switch n := n.(type) {
			case *ast.StringLiteral:
				// unquoted property keys are parsed as string literals
				if start, end := adapter.Span(n); start >= 0 && start < len(text) && (text[start] == '"' || text[start] == '\'') {
					skip = append(skip, textSpan{start: start, end: end})
				}
			case *ast.RegExpLiteral:
				start, end := adapter.Span(n)
				skip = append(skip, textSpan{start: start, end: end})
			case *ast.TemplateLiteral:
				for _, el := range n.Elements {
					start, end := adapter.Span(el)
					skip = append(skip, textSpan{start: start, end: end})
				}
			}

			return true
		},
	}.Walk(program)

	sort.Slice(skip, func(i, j int) bool { return skip[i].start < skip[j].start })

	return scanCodeIdentifierRuns(text, skip), true
}

type textSpan struct {
	start, end int
}

// scanCodeIdentifierRuns splits text into maximal runs of identifier
// characters, leaving out the sorted skip spans and all comments.
func scanCodeIdentifierRuns(text string, skip []textSpan) []identifierRun {
	var runs []identifierRun

	start := -1
	closeRun := func(end int) {
		if start >= 0 {
			runs = append(runs, identifierRun{start: start, end: end, name: text[start:end]})
			start = -1
		}
	}

	for i := 0; i < len(text); {
		for len(skip) > 0 && skip[0].end <= i {
			skip = skip[1:]
		}

		if len(skip) > 0 && skip[0].start <= i {
			closeRun(i)
			i = skip[0].end

			continue
		}

		if next, ok := commentEnd(text, i); ok {
			closeRun(i)
			i = next

			continue
		}

		c, size := utf8.DecodeRuneInString(text[i:])
		if isIdentRune(c) {
			if start < 0 {
				start = i
			}
		} else {
			closeRun(i)
		}

		i += size
	}

	closeRun(len(text))

	return runs
}

// commentEnd returns the offset just past a comment starting at i.
func commentEnd(text string, i int) (int, bool) {
	switch {
	case strings.HasPrefix(text[i:], "//"):
		if nl := strings.IndexByte(text[i:], '\n'); nl >= 0 {
			return i + nl, true
		}

		return len(text), true
	case strings.HasPrefix(text[i:], "/*"):
		if end := strings.Index(text[i+2:], "*/"); end >= 0 {
			return i + 2 + end + 2, true
		}

		return len(text), true
	}

	return 0, false
}

func randomName(rng *rand.Rand) string {
	buf := make([]byte, renamedLength)
	buf[0] = nameLetters[rng.IntN(len(nameLetters))]

	for i := 1; i < renamedLength; i++ {
		buf[i] = nameAlnum[rng.IntN(len(nameAlnum))]
	}

	return string(buf)
}
