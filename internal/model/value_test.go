package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteJS(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "hello", want: `"hello"`},
		{name: "empty", in: "", want: `""`},
		{name: "double quote", in: `say "hi"`, want: `"say \"hi\""`},
		{name: "backslash before quote", in: `a\"b`, want: `"a\\\"b"`},
		{name: "newlines", in: "a\nb\r\n", want: `"a\nb\r\n"`},
		{name: "tab and control", in: "a\tb\x01", want: `"a\tb\x01"`},
		{name: "line separator", in: "a\u2028b", want: `"a\u2028b"`},
		{name: "non ascii kept", in: "héllo ж", want: `"héllo ж"`},
		{name: "single quote kept", in: "it's", want: `"it's"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QuoteJS(tt.in))
		})
	}
}

func TestNumberValue_ParenthesisesNegatives(t *testing.T) {
	assert.Equal(t, "42", NumberValue("42").Text)
	assert.Equal(t, "(-5)", NumberValue("-5").Text)
	assert.Equal(t, "(-0)", NumberValue("-0").Text)
	assert.Equal(t, "(-Infinity)", NumberValue("-Infinity").Text)
	assert.True(t, NumberValue("1").Numeric())
}

func TestFunctionValue_StripsBoundPrefix(t *testing.T) {
	assert.Equal(t, "parseInt", FunctionValue("bound parseInt").Text)
	assert.Equal(t, "f", FunctionValue("bound bound f").Text)
	assert.False(t, FunctionValue("").Resolved())
	assert.False(t, FunctionValue("bound ").Resolved())
}

func TestResolvedValue_Resolved(t *testing.T) {
	assert.True(t, StringValue("").Resolved(), "empty string literal still has text")
	assert.True(t, BooleanValue(false).Resolved())
	assert.True(t, NullishValue(false).Resolved())
	assert.True(t, GlobalValue("window").Resolved())
	assert.False(t, GlobalValue("").Resolved())
	assert.False(t, Unresolved().Resolved())
	assert.False(t, ResolvedValue{}.Resolved())
}
