package domain

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/dop251/goja/ast"

	"github.com/mouse-blink/undefender/internal/adapter"
	m "github.com/mouse-blink/undefender/internal/model"
)

// storageDeclaration matches `let NAME;` not preceded by an identifier character.
var storageDeclaration = regexp.MustCompile(`(?:^|[^0-9A-Za-z_$])let\x20+([0-9A-Za-z]+);`)

// lexicalEval is the fallback used when the artifact does not parse.
var lexicalEval = regexp.MustCompile(`(?:^|[^0-9A-Za-z_$.])(eval\(\s*("(?:[^"\\\n]|\\.)*"|'(?:[^'\\\n]|\\.)*')\s*\))`)

// SignatureMatcher recognises the protection scheme in an artifact.
type SignatureMatcher interface {
	Match(artifact m.Artifact) (m.Signature, error)
}

type signatureMatcher struct {
	js adapter.JSFileAdapter
}

// NewSignatureMatcher constructs a SignatureMatcher using js for parsing.
func NewSignatureMatcher(js adapter.JSFileAdapter) SignatureMatcher {
	return &signatureMatcher{js: js}
}

// MatchSignature matches artifact with the default goja parser.
func MatchSignature(artifact m.Artifact) (m.Signature, error) {
	return NewSignatureMatcher(adapter.NewLocalJSFileAdapter()).Match(artifact)
}

// Match extracts the storage binding and the bootstrap invocations.
func (sm *signatureMatcher) Match(artifact m.Artifact) (m.Signature, error) {
	text := string(artifact)

	binding, err := findStorageBinding(text)
	if err != nil {
		return m.Signature{}, err
	}

	bootstraps := sm.findBootstraps(text)
	if len(bootstraps) == 0 {
		return m.Signature{Binding: binding}, fmt.Errorf("%w: no eval bootstrap found", m.ErrSignatureMismatch)
	}

	return m.Signature{Binding: binding, Bootstraps: bootstraps}, nil
}

// findStorageBinding picks the binding among all `let NAME;` declarations.
// With several candidates, the one used in access shapes wins; when none is
// used the first declaration wins; when more than one is used the match is
// ambiguous.
func findStorageBinding(text string) (string, error) {
	var candidates []string

	seen := make(map[string]bool)

	for _, match := range storageDeclaration.FindAllStringSubmatch(text, -1) {
		name := match[1]
		if !seen[name] {
			seen[name] = true

			candidates = append(candidates, name)
		}
	}

	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%w: no storage binding declaration", m.ErrSignatureMismatch)
	case 1:
		return candidates[0], nil
	}

	var used []string

	for _, name := range candidates {
		if len(FindAccessExpressions(text, name)) > 0 {
			used = append(used, name)
		}
	}

	switch len(used) {
	case 0:
		return candidates[0], nil
	case 1:
		return used[0], nil
	default:
		return "", fmt.Errorf("%w: ambiguous storage binding, candidates %v", m.ErrSignatureMismatch, used)
	}
}

func (sm *signatureMatcher) findBootstraps(text string) []m.BootstrapDescriptor {
	program, err := sm.js.Parse(text)
	if err != nil {
		return sm.lexicalBootstraps(text)
	}

	names := make(map[*ast.CallExpression]string)

	var found []m.BootstrapDescriptor

	adapter.JSWalker{
		Enter: func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpression)
			if !ok {
				return true
			}

			if d, ok := evalDescriptor(text, call); ok {
				d.InitializerName = names[call]
				found = append(found, d)
			}

			return true
		},
		List: func(list []ast.Statement) {
			for i := 1; i < len(list); i++ {
				stmt, ok := list[i].(*ast.ExpressionStatement)
				if !ok {
					continue
				}

				if call, ok := stmt.Expression.(*ast.CallExpression); ok && isEvalCall(call) {
					names[call] = declaredName(list[i-1])
				}
			}
		},
	}.Walk(program)

	sort.SliceStable(found, func(i, j int) bool { return found[i].Offset < found[j].Offset })

	return found
}

func (sm *signatureMatcher) lexicalBootstraps(text string) []m.BootstrapDescriptor {
	var found []m.BootstrapDescriptor

	for _, idx := range lexicalEval.FindAllStringSubmatchIndex(text, -1) {
		literal := text[idx[4]:idx[5]]

		payload, ok := sm.decodeLiteral(literal)
		if !ok {
			continue
		}

		found = append(found, m.BootstrapDescriptor{
			Payload: payload,
			Source:  text[idx[2]:idx[3]],
			Offset:  idx[2],
		})
	}

	return found
}

func (sm *signatureMatcher) decodeLiteral(literal string) (string, bool) {
	program, err := sm.js.Parse(literal)
	if err != nil || len(program.Body) != 1 {
		return "", false
	}

	stmt, ok := program.Body[0].(*ast.ExpressionStatement)
	if !ok {
		return "", false
	}

	lit, ok := stmt.Expression.(*ast.StringLiteral)
	if !ok {
		return "", false
	}

	return lit.Value.String(), true
}

func isEvalCall(call *ast.CallExpression) bool {
	id, ok := call.Callee.(*ast.Identifier)
	if !ok || id.Name != "eval" || len(call.ArgumentList) == 0 {
		return false
	}

	_, ok = call.ArgumentList[0].(*ast.StringLiteral)

	return ok
}

func evalDescriptor(text string, call *ast.CallExpression) (m.BootstrapDescriptor, bool) {
	if !isEvalCall(call) {
		return m.BootstrapDescriptor{}, false
	}

	lit, _ := call.ArgumentList[0].(*ast.StringLiteral)
	start, end := adapter.Span(call)

	if start < 0 || end > len(text) || start >= end {
		return m.BootstrapDescriptor{}, false
	}

	return m.BootstrapDescriptor{
		Payload: lit.Value.String(),
		Source:  text[start:end],
		Offset:  start,
	}, true
}

// declaredName returns the identifier declared by a single-binding
// var/let/const statement.
func declaredName(stmt ast.Statement) string {
	var list []*ast.Binding

	switch s := stmt.(type) {
	case *ast.VariableStatement:
		list = s.List
	case *ast.LexicalDeclaration:
		list = s.List
	default:
		return ""
	}

	if len(list) != 1 || list[0] == nil {
		return ""
	}

	if id, ok := list[0].Target.(*ast.Identifier); ok {
		return id.Name.String()
	}

	return ""
}
