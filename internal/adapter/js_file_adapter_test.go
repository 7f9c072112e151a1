package adapter

import (
	"testing"

	"github.com/dop251/goja/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalJSFileAdapter_SpanMapsToSource(t *testing.T) {
	src := `let Z;var a=1;eval("Z={}");`

	program, err := NewLocalJSFileAdapter().Parse(src)
	require.NoError(t, err)

	var calls []string

	JSWalker{Enter: func(n ast.Node) bool {
		if call, ok := n.(*ast.CallExpression); ok {
			start, end := Span(call)
			calls = append(calls, src[start:end])
		}

		return true
	}}.Walk(program)

	assert.Equal(t, []string{`eval("Z={}")`}, calls)
}

func TestLocalJSFileAdapter_ParseError(t *testing.T) {
	_, err := NewLocalJSFileAdapter().Parse("function (")
	require.Error(t, err)
}

func TestJSWalker_VisitsNestedStatementLists(t *testing.T) {
	src := `
(function () {
  try {
    switch (x) {
      case 1:
        if (y) { for (;;) { label: while (z) { g(); } } }
    }
  } catch (e) {
    h();
  } finally {
    var f = () => { k(); };
  }
})();`

	program, err := NewLocalJSFileAdapter().Parse(src)
	require.NoError(t, err)

	var callees []string

	lists := 0

	JSWalker{
		Enter: func(n ast.Node) bool {
			if call, ok := n.(*ast.CallExpression); ok {
				if id, ok := call.Callee.(*ast.Identifier); ok {
					callees = append(callees, id.Name.String())
				}
			}

			return true
		},
		List: func(_ []ast.Statement) { lists++ },
	}.Walk(program)

	assert.ElementsMatch(t, []string{"g", "h", "k"}, callees)
	assert.GreaterOrEqual(t, lists, 9)
}
