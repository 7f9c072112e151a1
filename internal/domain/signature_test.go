package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/undefender/internal/adapter"
	m "github.com/mouse-blink/undefender/internal/model"
)

func newTestMatcher() SignatureMatcher {
	return NewSignatureMatcher(adapter.NewLocalJSFileAdapter())
}

func TestSignatureMatcher_Match_PrimaryAndAuxiliary(t *testing.T) {
	// Arrange
	artifact := m.Artifact(`let Z;
var a = 1;
eval("Z = [1, 2, 3];");
(function () {
  var k = [];
  eval('k.push(1)');
})();
console.log(Z.a(1));`)

	// Act
	sig, err := newTestMatcher().Match(artifact)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Z", sig.Binding)
	require.Len(t, sig.Bootstraps, 2)

	primary, ok := sig.Primary()
	require.True(t, ok)
	assert.Equal(t, "a", primary.InitializerName)
	assert.Equal(t, "Z = [1, 2, 3];", primary.Payload)
	assert.Equal(t, `eval("Z = [1, 2, 3];")`, primary.Source)
	assert.Equal(t, `eval("Z = [1, 2, 3];")`, string(artifact)[primary.Offset:primary.Offset+len(primary.Source)])

	aux := sig.Auxiliary()
	require.Len(t, aux, 1)
	assert.Equal(t, "k", aux[0].InitializerName)
	assert.Equal(t, "k.push(1)", aux[0].Payload)
	assert.Greater(t, aux[0].Offset, primary.Offset)
}

func TestSignatureMatcher_Match_DecodesEscapes(t *testing.T) {
	// Arrange
	artifact := m.Artifact(`let q;eval("q = \x27\u0041\x42\x27;");`)

	// Act
	sig, err := newTestMatcher().Match(artifact)

	// Assert
	require.NoError(t, err)
	require.Len(t, sig.Bootstraps, 1)
	assert.Equal(t, "q = 'AB';", sig.Bootstraps[0].Payload)
	assert.Empty(t, sig.Bootstraps[0].InitializerName)
}

func TestSignatureMatcher_Match_Errors(t *testing.T) {
	tests := []struct {
		name     string
		artifact m.Artifact
	}{
		{name: "no binding", artifact: `var Z; eval("Z = 1");`},
		{name: "no bootstrap", artifact: `let Z; Z = 1;`},
		{name: "eval with non literal", artifact: `let Z; eval(code);`},
		{name: "ambiguous binding", artifact: `let A;let B;eval("A=B=1");A.x(1);B.y(2);`},
		{name: "binding inside identifier", artifact: `xlet Z;eval("1")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			_, err := newTestMatcher().Match(tt.artifact)

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, m.ErrSignatureMismatch)
		})
	}
}

func TestSignatureMatcher_Match_BindingSelection(t *testing.T) {
	tests := []struct {
		name     string
		artifact m.Artifact
		want     string
	}{
		{name: "single", artifact: `let Z;eval("Z=1")`, want: "Z"},
		{name: "first when none used", artifact: `let A;let B;eval("A=1")`, want: "A"},
		{name: "used in access shape wins", artifact: `let A;let B;eval("B=1");B.x(1)`, want: "B"},
		{name: "repeated declaration", artifact: `let A;let A;eval("A=1")`, want: "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			sig, err := newTestMatcher().Match(tt.artifact)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.want, sig.Binding)
		})
	}
}

func TestSignatureMatcher_Match_LexicalFallback(t *testing.T) {
	// Arrange
	artifact := m.Artifact(`let Z;eval("Z = 1;");eval('x');if (`)

	// Act
	sig, err := MatchSignature(artifact)

	// Assert
	require.NoError(t, err)
	require.Len(t, sig.Bootstraps, 2)
	assert.Equal(t, "Z = 1;", sig.Bootstraps[0].Payload)
	assert.Equal(t, `eval("Z = 1;")`, sig.Bootstraps[0].Source)
	assert.Equal(t, "x", sig.Bootstraps[1].Payload)
	assert.Empty(t, sig.Bootstraps[0].InitializerName)
}
