package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dop251/goja/ast"

	"github.com/mouse-blink/undefender/internal/adapter"
	m "github.com/mouse-blink/undefender/internal/model"
)

const defaultArgumentsName = "__bootstrap_args"

var (
	errNoDispatch = errors.New("no decrypt dispatch call")
	errNoMain     = errors.New("no main routine")
	errNoCipher   = errors.New("no cipher literal")
)

// Lexical fallbacks for payloads the parser rejects.
var (
	lexicalMain     = regexp.MustCompile(`(?i)f.*;}}`)
	lexicalDispatch = regexp.MustCompile(`(?i)[A-Z0-9_$]+\.[A-Z0-9_$]+\(([A-Z0-9_$]+),[A-Z0-9_$]+\.[A-Z0-9_$]+\([A-Z0-9_$]+\.toString\(\)\)\)`)
	lexicalCipher   = regexp.MustCompile(`"(?:[^"\\\n]|\\.)*"`)
)

// BuildInitializer wraps the primary bootstrap payload in a function the
// sandbox can invoke with args. The payload is executed once, as code.
func BuildInitializer(binding string, d m.BootstrapDescriptor, args ...string) m.Initializer {
	name := d.InitializerName
	if name == "" {
		name = defaultArgumentsName
	}

	var b strings.Builder

	b.WriteString("function () {\n")
	fmt.Fprintf(&b, "var %s = Array.prototype.slice.call(arguments);\n", name)
	fmt.Fprintf(&b, "eval(%s);\n", m.QuoteJS(d.Payload))
	b.WriteString("}")

	return m.Initializer{
		Binding:   binding,
		Function:  b.String(),
		Arguments: args,
	}
}

// decryptParts are the pieces of an encoded block the decrypt program is
// assembled from. All fields hold exact source text.
type decryptParts struct {
	cipherName string
	cipher     string
	main       string
	dispatch   string
}

// BuildDecryptProgram turns an auxiliary block into a program whose
// completion value is the decrypted code.
func BuildDecryptProgram(js adapter.JSFileAdapter, d m.BootstrapDescriptor) (string, error) {
	parts, err := syntacticParts(js, d.Payload)
	if err != nil {
		parts, err = lexicalParts(d.Payload)
		if err != nil {
			return "", fmt.Errorf("failed to extract decrypt routine: %w", err)
		}
	}

	name := d.InitializerName
	if name == "" {
		name = defaultArgumentsName
	}

	var b strings.Builder

	b.WriteString("(function () {\n")
	fmt.Fprintf(&b, "var %s = Array.prototype.slice.call(arguments);\n", name)
	fmt.Fprintf(&b, "var %s = %s;\n", parts.cipherName, parts.cipher)
	fmt.Fprintf(&b, "%s;\n", parts.main)
	fmt.Fprintf(&b, "return %s;\n", parts.dispatch)
	b.WriteString("})()")

	return b.String(), nil
}

func syntacticParts(js adapter.JSFileAdapter, payload string) (decryptParts, error) {
	program, err := js.Parse(payload)
	if err != nil {
		return decryptParts{}, err
	}

	var (
		parts    decryptParts
		mainName string
	)

	adapter.JSWalker{
		Enter: func(n ast.Node) bool {
			if parts.dispatch != "" {
				return false
			}

			call, ok := n.(*ast.CallExpression)
			if !ok {
				return true
			}

			cipher, main, ok := dispatchShape(call)
			if ok {
				start, end := adapter.Span(call)
				parts.dispatch = payload[start:end]
				parts.cipherName = cipher
				mainName = main
			}

			return true
		},
	}.Walk(program)

	if parts.dispatch == "" {
		return decryptParts{}, errNoDispatch
	}

	var firstLiteral string

	adapter.JSWalker{
		Enter: func(n ast.Node) bool {
			switch n := n.(type) {
			case *ast.FunctionDeclaration:
				if parts.main == "" && n.Function.Name != nil && n.Function.Name.Name.String() == mainName {
					start, end := adapter.Span(n.Function)
					parts.main = payload[start:end]
				}
			case *ast.Binding:
				id, ok := n.Target.(*ast.Identifier)
				if !ok || n.Initializer == nil {
					return true
				}

				name := id.Name.String()
				start, end := adapter.Span(n.Initializer)

				if _, isFn := n.Initializer.(*ast.FunctionLiteral); isFn && name == mainName && parts.main == "" {
					parts.main = fmt.Sprintf("var %s = %s", name, payload[start:end])
				}

				if _, isLit := n.Initializer.(*ast.StringLiteral); isLit && name == parts.cipherName && parts.cipher == "" {
					parts.cipher = payload[start:end]
				}
			case *ast.AssignExpression:
				id, ok := n.Left.(*ast.Identifier)
				if !ok || id.Name.String() != parts.cipherName || parts.cipher != "" {
					return true
				}

				if lit, ok := n.Right.(*ast.StringLiteral); ok {
					start, end := adapter.Span(lit)
					parts.cipher = payload[start:end]
				}
			case *ast.StringLiteral:
				if firstLiteral == "" {
					start, end := adapter.Span(n)
					firstLiteral = payload[start:end]
				}
			}

			return true
		},
	}.Walk(program)

	if parts.main == "" {
		return decryptParts{}, errNoMain
	}

	if parts.cipher == "" {
		parts.cipher = firstLiteral
	}

	if parts.cipher == "" {
		return decryptParts{}, errNoCipher
	}

	return parts, nil
}

// dispatchShape recognises A.decrypt(C, H.hash(M.toString())) and returns C and M.
func dispatchShape(call *ast.CallExpression) (string, string, bool) {
	if _, ok := call.Callee.(*ast.DotExpression); !ok || len(call.ArgumentList) != 2 {
		return "", "", false
	}

	cipher, ok := call.ArgumentList[0].(*ast.Identifier)
	if !ok {
		return "", "", false
	}

	hash, ok := call.ArgumentList[1].(*ast.CallExpression)
	if !ok || len(hash.ArgumentList) != 1 {
		return "", "", false
	}

	if _, ok := hash.Callee.(*ast.DotExpression); !ok {
		return "", "", false
	}

	toString, ok := hash.ArgumentList[0].(*ast.CallExpression)
	if !ok || len(toString.ArgumentList) != 0 {
		return "", "", false
	}

	member, ok := toString.Callee.(*ast.DotExpression)
	if !ok || member.Identifier.Name != "toString" {
		return "", "", false
	}

	main, ok := member.Left.(*ast.Identifier)
	if !ok {
		return "", "", false
	}

	return cipher.Name.String(), main.Name.String(), true
}

func lexicalParts(payload string) (decryptParts, error) {
	dispatch := lexicalDispatch.FindStringSubmatch(payload)
	if dispatch == nil {
		return decryptParts{}, errNoDispatch
	}

	main := lexicalMain.FindString(payload)
	if main == "" {
		return decryptParts{}, errNoMain
	}

	cipher := lexicalCipher.FindString(payload)
	if cipher == "" {
		return decryptParts{}, errNoCipher
	}

	return decryptParts{
		cipherName: dispatch[1],
		cipher:     cipher,
		main:       main,
		dispatch:   dispatch[0],
	}, nil
}
