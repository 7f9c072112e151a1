package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/undefender/internal/adapter"
	adaptermocks "github.com/mouse-blink/undefender/internal/adapter/mocks"
	m "github.com/mouse-blink/undefender/internal/model"
)

func newTestWorker() *Worker {
	return NewWorker(adapter.NewSandbox, adapter.NewLocalJSFileAdapter(), nil)
}

func TestWorker_Resolve_ArrayBinding(t *testing.T) {
	for _, engine := range adapter.Engines() {
		t.Run(engine, func(t *testing.T) {
			// Arrange
			task := m.Task{
				Binding:     "Z",
				Initializer: m.Initializer{Binding: "Z", Function: "function () { Z = [1, 2, 3]; }"},
				Chunk:       m.WorkChunk{Accesses: []string{"Z[0]"}},
				Engine:      engine,
			}

			// Act
			result, err := newTestWorker().Resolve(context.Background(), task)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, m.NumberValue("1"), result.Values["Z[0]"])
			assert.Empty(t, result.Failures)

			table := m.NewResolutionTable()
			table.Merge(result)

			out := NewRewriter(adapter.NewLocalJSFileAdapter(), nil).Apply("let Z;(function(){Z=[1,2,3];})();Z[0]", table)
			assert.Equal(t, "let Z;(function(){Z=[1,2,3];})();1", out)
		})
	}
}

func TestWorker_Resolve_Arithmetic(t *testing.T) {
	// Arrange
	task := m.Task{
		Binding:     "Z",
		Initializer: m.Initializer{Binding: "Z", Function: "function () {}"},
		Chunk:       m.WorkChunk{Arithmetic: []string{"(1+2)", "(3*4)", "('a'+1)", "(0x10-0b1)"}},
	}

	// Act
	result, err := newTestWorker().Resolve(context.Background(), task)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, map[string]m.ResolvedValue{
		"(1+2)":      m.NumberValue("3"),
		"(3*4)":      m.NumberValue("12"),
		"(0x10-0b1)": m.NumberValue("15"),
	}, result.Expressions)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "('a'+1)", result.Failures[0].Fragment)
	assert.Equal(t, m.FragmentArithmetic, result.Failures[0].Kind)
}

func TestWorker_Resolve_FailingFragmentKeepsGoing(t *testing.T) {
	// Arrange
	task := m.Task{
		Binding: "Z",
		Initializer: m.Initializer{
			Binding:  "Z",
			Function: "function () { Z = {a: function (i) { return ['x', 'y'][i]; }, o: function () { return {}; }}; }",
		},
		Chunk: m.WorkChunk{Accesses: []string{"Z.nope(1)", "Z.o()", "Z.a(1)"}},
	}

	// Act
	result, err := newTestWorker().Resolve(context.Background(), task)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, map[string]m.ResolvedValue{"Z.a(1)": m.StringValue("y")}, result.Values)
	assert.Len(t, result.Failures, 2)
}

func TestWorker_Resolve_DecryptsBlocks(t *testing.T) {
	// Arrange
	primary := BuildInitializer("Z", m.BootstrapDescriptor{
		Payload: `Z = {
  a: function (i) { return ['x', 'y', 'z'][i]; },
  d: function (c, k) { return k > 0 ? c.split('').reverse().join('') : ''; },
  h: function (s) { return s.length; }
};`,
	})

	block := m.BootstrapDescriptor{
		InitializerName: "q",
		Payload:         "var C = \";))2(a.Z(gol.elosnoc\";\nfunction M() { return q.length + 1; }\nZ.d(C, Z.h(M.toString()));",
		Source:          `eval("encoded")`,
	}

	task := m.Task{
		Binding:     "Z",
		Initializer: primary,
		Chunk:       m.WorkChunk{Blocks: []m.BootstrapDescriptor{block}},
	}

	// Act
	result, err := newTestWorker().Resolve(context.Background(), task)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "console.log(Z.a(2));", result.Blocks[`eval("encoded")`])
	assert.Equal(t, m.StringValue("z"), result.Values["Z.a(2)"])
	assert.Empty(t, result.Failures)
}

func TestWorker_Resolve_BootstrapFailure(t *testing.T) {
	// Arrange
	task := m.Task{
		Binding:     "Z",
		Initializer: m.Initializer{Binding: "Z", Function: "function () { throw new Error('nope'); }"},
		Chunk:       m.WorkChunk{Accesses: []string{"Z.a(1)"}},
	}

	// Act
	_, err := newTestWorker().Resolve(context.Background(), task)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, m.ErrBootstrapExecution)
}

func TestWorker_Resolve_SandboxFactoryError(t *testing.T) {
	// Arrange
	worker := NewWorker(func(string) (adapter.Sandbox, error) {
		return nil, errors.New("no engine")
	}, adapter.NewLocalJSFileAdapter(), nil)

	// Act
	_, err := worker.Resolve(context.Background(), m.Task{})

	// Assert
	assert.ErrorIs(t, err, m.ErrBootstrapExecution)
}

func TestWorker_Resolve_EvaluationTimeout(t *testing.T) {
	// Arrange
	sandbox := adaptermocks.NewMockSandbox(t)
	sandbox.EXPECT().Bootstrap(mock.Anything, mock.Anything).Return(nil)
	sandbox.EXPECT().Evaluate(mock.Anything, "Z.a(1)").
		RunAndReturn(func(ctx context.Context, _ string) (m.ResolvedValue, error) {
			_, ok := ctx.Deadline()
			assert.True(t, ok)
			<-ctx.Done()

			return m.Unresolved(), ctx.Err()
		})
	sandbox.EXPECT().Evaluate(mock.Anything, "Z.b(1)").Return(m.StringValue("b"), nil)
	sandbox.EXPECT().Close().Return()

	worker := NewWorker(func(string) (adapter.Sandbox, error) { return sandbox, nil }, adapter.NewLocalJSFileAdapter(), nil)

	task := m.Task{
		Binding: "Z",
		Chunk:   m.WorkChunk{Accesses: []string{"Z.a(1)", "Z.b(1)"}},
		Timeout: 10 * time.Millisecond,
	}

	// Act
	result, err := worker.Resolve(context.Background(), task)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, map[string]m.ResolvedValue{"Z.b(1)": m.StringValue("b")}, result.Values)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "Z.a(1)", result.Failures[0].Fragment)
}

func TestWorker_Resolve_CancelledTask(t *testing.T) {
	// Arrange
	ctx, cancel := context.WithCancel(context.Background())

	sandbox := adaptermocks.NewMockSandbox(t)
	sandbox.EXPECT().Bootstrap(mock.Anything, mock.Anything).Return(nil)
	sandbox.EXPECT().Evaluate(mock.Anything, "Z.a(1)").
		RunAndReturn(func(context.Context, string) (m.ResolvedValue, error) {
			cancel()

			return m.Unresolved(), context.Canceled
		})
	sandbox.EXPECT().Close().Return()

	worker := NewWorker(func(string) (adapter.Sandbox, error) { return sandbox, nil }, adapter.NewLocalJSFileAdapter(), nil)

	// Act
	_, err := worker.Resolve(ctx, m.Task{Chunk: m.WorkChunk{Accesses: []string{"Z.a(1)", "Z.b(1)"}}})

	// Assert
	assert.ErrorIs(t, err, context.Canceled)
}
