package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/undefender/internal/adapter"
	m "github.com/mouse-blink/undefender/internal/model"
)

func TestBuildInitializer(t *testing.T) {
	// Arrange
	d := m.BootstrapDescriptor{InitializerName: "a", Payload: "Z = \"x\";\n"}

	// Act
	init := BuildInitializer("Z", d, "1", "2")

	// Assert
	assert.Equal(t, "Z", init.Binding)
	assert.Equal(t, []string{"1", "2"}, init.Arguments)
	assert.Equal(t, "function () {\nvar a = Array.prototype.slice.call(arguments);\neval(\"Z = \\\"x\\\";\\n\");\n}", init.Function)
}

func TestBuildInitializer_DefaultArgumentsName(t *testing.T) {
	init := BuildInitializer("Z", m.BootstrapDescriptor{Payload: "Z = 1"})

	assert.Contains(t, init.Function, "var __bootstrap_args = ")
	assert.Empty(t, init.Arguments)
}

func TestBuildDecryptProgram(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{
			name:    "function declaration and var cipher",
			payload: `var C = "abc"; function M() { return 1; } A.d(C, A.h(M.toString()));`,
			want: "(function () {\nvar k = Array.prototype.slice.call(arguments);\nvar C = \"abc\";\n" +
				"function M() { return 1; };\nreturn A.d(C, A.h(M.toString()));\n})()",
		},
		{
			name:    "var bound main and assigned cipher",
			payload: `var M = function () { return 2; }; C = 'q'; A.d(C, B.h(M.toString()));`,
			want: "(function () {\nvar k = Array.prototype.slice.call(arguments);\nvar C = 'q';\n" +
				"var M = function () { return 2; };\nreturn A.d(C, B.h(M.toString()));\n})()",
		},
		{
			name:    "first literal when cipher is not assigned",
			payload: `f("lit"); function M() { return 3; } A.d(C, A.h(M.toString()));`,
			want: "(function () {\nvar k = Array.prototype.slice.call(arguments);\nvar C = \"lit\";\n" +
				"function M() { return 3; };\nreturn A.d(C, A.h(M.toString()));\n})()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			got, err := BuildDecryptProgram(adapter.NewLocalJSFileAdapter(), m.BootstrapDescriptor{InitializerName: "k", Payload: tt.payload})

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildDecryptProgram_LexicalFallback(t *testing.T) {
	// Arrange
	payload := `"cipher";function M(){return 1;}};A.d(C,A.h(M.toString()))) syntax error(`

	// Act
	got, err := BuildDecryptProgram(adapter.NewLocalJSFileAdapter(), m.BootstrapDescriptor{Payload: payload})

	// Assert
	require.NoError(t, err)
	assert.Contains(t, got, "var C = \"cipher\";\n")
	assert.Contains(t, got, "return A.d(C,A.h(M.toString()));\n")
}

func TestBuildDecryptProgram_NoDispatch(t *testing.T) {
	_, err := BuildDecryptProgram(adapter.NewLocalJSFileAdapter(), m.BootstrapDescriptor{Payload: `var C = "x"; f(C);`})

	require.Error(t, err)
	assert.ErrorIs(t, err, errNoDispatch)
}
