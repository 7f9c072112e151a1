package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValueKind is the classification of an evaluated fragment.
type ValueKind string

// Available ValueKind values.
const (
	KindString     ValueKind = "string"
	KindNumber     ValueKind = "number"
	KindBoolean    ValueKind = "boolean"
	KindNullish    ValueKind = "nullish"
	KindGlobal     ValueKind = "global"
	KindFunction   ValueKind = "function"
	KindUnresolved ValueKind = "unresolved"
)

// ResolvedValue is the source-text substitute for an evaluated fragment.
type ResolvedValue struct {
	Kind ValueKind `cbor:"kind" json:"kind" yaml:"kind"`
	Text string    `cbor:"text" json:"text" yaml:"text"`
}

// Resolved reports whether the value can replace its fragment.
func (v ResolvedValue) Resolved() bool {
	return v.Kind != KindUnresolved && v.Kind != "" && v.Text != ""
}

// Numeric reports whether the value is a number.
func (v ResolvedValue) Numeric() bool {
	return v.Kind == KindNumber
}

func (v ResolvedValue) String() string {
	return fmt.Sprintf("%s(%s)", v.Kind, v.Text)
}

// Unresolved is the value of anything that has no literal form.
func Unresolved() ResolvedValue {
	return ResolvedValue{Kind: KindUnresolved}
}

// StringValue quotes s as a JavaScript string literal.
func StringValue(s string) ResolvedValue {
	return ResolvedValue{Kind: KindString, Text: QuoteJS(s)}
}

// NumberValue takes the engine's canonical rendering of a number. Negative
// numbers are parenthesised so the text can sit after any operator.
func NumberValue(text string) ResolvedValue {
	if strings.HasPrefix(text, "-") {
		text = "(" + text + ")"
	}

	return ResolvedValue{Kind: KindNumber, Text: text}
}

// BooleanValue renders a boolean literal.
func BooleanValue(b bool) ResolvedValue {
	if b {
		return ResolvedValue{Kind: KindBoolean, Text: "true"}
	}

	return ResolvedValue{Kind: KindBoolean, Text: "false"}
}

// NullishValue renders null or undefined.
func NullishValue(isNull bool) ResolvedValue {
	if isNull {
		return ResolvedValue{Kind: KindNullish, Text: "null"}
	}

	return ResolvedValue{Kind: KindNullish, Text: "undefined"}
}

// GlobalValue is a reference to a well-known global, replaced by its name.
func GlobalValue(name string) ResolvedValue {
	if name == "" {
		return Unresolved()
	}

	return ResolvedValue{Kind: KindGlobal, Text: name}
}

// FunctionValue is a function replaced by its name. The "bound " prefix
// added by Function.prototype.bind is dropped.
func FunctionValue(name string) ResolvedValue {
	name = strings.TrimSpace(name)
	for strings.HasPrefix(name, "bound ") {
		name = strings.TrimPrefix(name, "bound ")
	}

	if name == "" {
		return Unresolved()
	}

	return ResolvedValue{Kind: KindFunction, Text: name}
}

// QuoteJS renders s as a double-quoted JavaScript string literal that
// evaluates back to s.
func QuoteJS(s string) string {
	var b strings.Builder

	b.Grow(len(s) + 2)
	b.WriteByte('"')

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			fmt.Fprintf(&b, `\x%02x`, s[i])
			i++

			continue
		}

		i += size

		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\v':
			b.WriteString(`\v`)
		case '\u2028':
			b.WriteString(`\u2028`)
		case '\u2029':
			b.WriteString(`\u2029`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\x%02x`, r)
				continue
			}

			b.WriteRune(r)
		}
	}

	b.WriteByte('"')

	return b.String()
}
