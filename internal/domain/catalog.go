package domain

import (
	"regexp"
	"sort"
	"sync"

	m "github.com/mouse-blink/undefender/internal/model"
)

// integerLiteral is a JS integer literal in any base.
const integerLiteral = `(?:0x[0-9a-f]+|0b[01]+|(?:0o|0)[0-7]+|[0-9]+)`

// numericLiteral is an optional call argument.
const numericLiteral = `(?:` + integerLiteral + `|)`

// accessGuard keeps a binding from matching inside a longer name or a member chain.
const accessGuard = `(?:^|[^0-9A-Za-z_$.])`

var arithmeticExpression = regexp.MustCompile(
	`(?i)\( *` + integerLiteral + ` *(?:[+\-*/%^&|]{1,2} *` + integerLiteral + ` *)+\)`,
)

var (
	accessCacheMu sync.Mutex
	accessCache   = make(map[string][]*regexp.Regexp)
)

// accessPatterns returns the three access shapes keyed on binding, most
// specific first.
func accessPatterns(binding string) []*regexp.Regexp {
	accessCacheMu.Lock()
	defer accessCacheMu.Unlock()

	if patterns, ok := accessCache[binding]; ok {
		return patterns
	}

	b := regexp.QuoteMeta(binding)
	call := `(?i:\(` + numericLiteral + `\))`
	id := `(?i:[0-9a-z]+)`

	patterns := []*regexp.Regexp{
		regexp.MustCompile(accessGuard + `(` + b + `\[` + b + `\.` + id + call + `\]` + call + `)`),
		regexp.MustCompile(accessGuard + `(` + b + `\.` + id + call + `)`),
		regexp.MustCompile(accessGuard + `(` + b + `\["` + id + `"\]` + call + `)`),
	}
	accessCache[binding] = patterns

	return patterns
}

// FindAccessExpressions returns the distinct indirect reads of binding in
// text, in first-occurrence order per shape.
func FindAccessExpressions(text, binding string) []string {
	if binding == "" {
		return nil
	}

	var found []string

	for _, pattern := range accessPatterns(binding) {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			found = append(found, match[1])
		}
	}

	return dedupe(found)
}

// FindArithmeticExpressions returns the distinct parenthesised numeric
// expressions in text, in first-occurrence order.
func FindArithmeticExpressions(text string) []string {
	return dedupe(arithmeticExpression.FindAllString(text, -1))
}

// BuildCatalog collects every fragment of the artifact that can be resolved
// by evaluation.
func BuildCatalog(artifact m.Artifact, sig m.Signature) m.Catalog {
	text := string(artifact)

	return m.Catalog{
		Blocks:     sig.Auxiliary(),
		Accesses:   FindAccessExpressions(text, sig.Binding),
		Arithmetic: FindArithmeticExpressions(text),
	}
}

func dedupe(items []string) []string {
	if len(items) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))

	for _, item := range items {
		if !seen[item] {
			seen[item] = true

			out = append(out, item)
		}
	}

	return out
}

// orderedKeys sorts keys longest first, then lexicographically.
func orderedKeys[V any](entries map[string]V) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}

		return keys[i] < keys[j]
	})

	return keys
}
