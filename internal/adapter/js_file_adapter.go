package adapter

import (
	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"
	"github.com/dop251/goja/parser"
)

// JSFileAdapter encapsulates JavaScript parsing so the domain layer can work
// on syntax trees without depending on a particular parser.
type JSFileAdapter interface {
	// Parse builds an AST for src. Node indexes map back to src through Offset.
	Parse(src string) (*ast.Program, error)
}

// LocalJSFileAdapter provides a JSFileAdapter backed by goja's ECMAScript parser.
type LocalJSFileAdapter struct{}

// NewLocalJSFileAdapter constructs a LocalJSFileAdapter.
func NewLocalJSFileAdapter() *LocalJSFileAdapter {
	return &LocalJSFileAdapter{}
}

// Parse parses src as a script. Source map comments are ignored so parsing
// never touches the filesystem.
func (a *LocalJSFileAdapter) Parse(src string) (*ast.Program, error) {
	return parser.ParseFile(nil, "", src, 0, parser.WithDisableSourceMaps)
}

// Offset converts a node index from a program parsed without a file set into
// a byte offset in the original source.
func Offset(idx file.Idx) int {
	return int(idx) - 1
}

// Span returns the byte range [start, end) of n in the original source.
func Span(n ast.Node) (int, int) {
	return Offset(n.Idx0()), Offset(n.Idx1())
}

// JSWalker traverses a goja AST depth first. Enter is called for every node
// and may return false to skip its children. List is called for every
// statement list (program body, blocks, function bodies, switch cases).
type JSWalker struct {
	Enter func(n ast.Node) bool
	List  func(list []ast.Statement)
}

// Walk visits n and its descendants.
func (w JSWalker) Walk(n ast.Node) {
	if n == nil {
		return
	}

	if w.Enter != nil && !w.Enter(n) {
		return
	}

	switch n := n.(type) {
	case *ast.Program:
		w.statements(n.Body)
	case *ast.BlockStatement:
		if n != nil {
			w.statements(n.List)
		}
	case *ast.CaseStatement:
		w.expr(n.Test)
		w.statements(n.Consequent)
	case *ast.CatchStatement:
		if n.Parameter != nil {
			w.Walk(n.Parameter)
		}

		w.block(n.Body)
	case *ast.DoWhileStatement:
		w.stmt(n.Body)
		w.expr(n.Test)
	case *ast.ExpressionStatement:
		w.expr(n.Expression)
	case *ast.ForInStatement:
		w.forInto(n.Into)
		w.expr(n.Source)
		w.stmt(n.Body)
	case *ast.ForOfStatement:
		w.forInto(n.Into)
		w.expr(n.Source)
		w.stmt(n.Body)
	case *ast.ForStatement:
		w.forInit(n.Initializer)
		w.expr(n.Test)
		w.expr(n.Update)
		w.stmt(n.Body)
	case *ast.IfStatement:
		w.expr(n.Test)
		w.stmt(n.Consequent)
		w.stmt(n.Alternate)
	case *ast.LabelledStatement:
		w.stmt(n.Statement)
	case *ast.ReturnStatement:
		w.expr(n.Argument)
	case *ast.SwitchStatement:
		w.expr(n.Discriminant)

		for _, c := range n.Body {
			if c != nil {
				w.Walk(c)
			}
		}
	case *ast.ThrowStatement:
		w.expr(n.Argument)
	case *ast.TryStatement:
		w.block(n.Body)

		if n.Catch != nil {
			w.Walk(n.Catch)
		}

		w.block(n.Finally)
	case *ast.VariableStatement:
		w.bindings(n.List)
	case *ast.LexicalDeclaration:
		w.bindings(n.List)
	case *ast.WhileStatement:
		w.expr(n.Test)
		w.stmt(n.Body)
	case *ast.WithStatement:
		w.expr(n.Object)
		w.stmt(n.Body)
	case *ast.FunctionDeclaration:
		if n.Function != nil {
			w.Walk(n.Function)
		}
	case *ast.ClassDeclaration:
		if n.Class != nil {
			w.Walk(n.Class)
		}
	default:
		w.expression(n)
	}
}

func (w JSWalker) expression(n ast.Node) {
	switch n := n.(type) {
	case *ast.Binding:
		w.expr(n.Target)
		w.expr(n.Initializer)
	case *ast.YieldExpression:
		w.expr(n.Argument)
	case *ast.AwaitExpression:
		w.expr(n.Argument)
	case *ast.ArrayLiteral:
		w.exprs(n.Value)
	case *ast.ArrayPattern:
		w.exprs(n.Elements)
		w.expr(n.Rest)
	case *ast.AssignExpression:
		w.expr(n.Left)
		w.expr(n.Right)
	case *ast.BinaryExpression:
		w.expr(n.Left)
		w.expr(n.Right)
	case *ast.BracketExpression:
		w.expr(n.Left)
		w.expr(n.Member)
	case *ast.CallExpression:
		w.expr(n.Callee)
		w.exprs(n.ArgumentList)
	case *ast.ConditionalExpression:
		w.expr(n.Test)
		w.expr(n.Consequent)
		w.expr(n.Alternate)
	case *ast.DotExpression:
		w.expr(n.Left)
	case *ast.PrivateDotExpression:
		w.expr(n.Left)
	case *ast.OptionalChain:
		w.expr(n.Expression)
	case *ast.Optional:
		w.expr(n.Expression)
	case *ast.FunctionLiteral:
		if n.ParameterList != nil {
			w.bindings(n.ParameterList.List)
			w.expr(n.ParameterList.Rest)
		}

		w.block(n.Body)
	case *ast.ArrowFunctionLiteral:
		if n.ParameterList != nil {
			w.bindings(n.ParameterList.List)
			w.expr(n.ParameterList.Rest)
		}

		switch body := n.Body.(type) {
		case *ast.BlockStatement:
			w.block(body)
		case *ast.ExpressionBody:
			if body != nil {
				w.expr(body.Expression)
			}
		}
	case *ast.ClassLiteral:
		w.expr(n.SuperClass)

		for _, el := range n.Body {
			w.classElement(el)
		}
	case *ast.NewExpression:
		w.expr(n.Callee)
		w.exprs(n.ArgumentList)
	case *ast.ObjectLiteral:
		for _, p := range n.Value {
			w.expr(p)
		}
	case *ast.ObjectPattern:
		for _, p := range n.Properties {
			w.expr(p)
		}

		w.expr(n.Rest)
	case *ast.PropertyShort:
		w.expr(n.Initializer)
	case *ast.PropertyKeyed:
		w.expr(n.Key)
		w.expr(n.Value)
	case *ast.SpreadElement:
		w.expr(n.Expression)
	case *ast.SequenceExpression:
		w.exprs(n.Sequence)
	case *ast.TemplateLiteral:
		w.expr(n.Tag)
		w.exprs(n.Expressions)
	case *ast.UnaryExpression:
		w.expr(n.Operand)
	}
}

func (w JSWalker) classElement(el ast.ClassElement) {
	switch el := el.(type) {
	case *ast.FieldDefinition:
		w.expr(el.Key)
		w.expr(el.Initializer)
	case *ast.MethodDefinition:
		w.expr(el.Key)

		if el.Body != nil {
			w.Walk(el.Body)
		}
	case *ast.ClassStaticBlock:
		w.block(el.Block)
	}
}

func (w JSWalker) statements(list []ast.Statement) {
	if w.List != nil {
		w.List(list)
	}

	for _, s := range list {
		w.stmt(s)
	}
}

func (w JSWalker) stmt(s ast.Statement) {
	if s != nil {
		w.Walk(s)
	}
}

func (w JSWalker) block(b *ast.BlockStatement) {
	if b != nil {
		w.Walk(b)
	}
}

func (w JSWalker) expr(e ast.Expression) {
	if e != nil {
		w.Walk(e)
	}
}

func (w JSWalker) exprs(list []ast.Expression) {
	for _, e := range list {
		w.expr(e)
	}
}

func (w JSWalker) bindings(list []*ast.Binding) {
	for _, b := range list {
		if b != nil {
			w.Walk(b)
		}
	}
}

func (w JSWalker) forInit(init ast.ForLoopInitializer) {
	switch init := init.(type) {
	case *ast.ForLoopInitializerExpression:
		w.expr(init.Expression)
	case *ast.ForLoopInitializerVarDeclList:
		w.bindings(init.List)
	case *ast.ForLoopInitializerLexicalDecl:
		w.bindings(init.LexicalDeclaration.List)
	}
}

func (w JSWalker) forInto(into ast.ForInto) {
	switch into := into.(type) {
	case *ast.ForIntoVar:
		if into.Binding != nil {
			w.Walk(into.Binding)
		}
	case *ast.ForDeclaration:
		w.expr(into.Target)
	case *ast.ForIntoExpression:
		w.expr(into.Expression)
	}
}
