package adapter

import (
	"github.com/evanw/esbuild/pkg/api"
)

// Formatter pretty-prints JavaScript. Formatting is best effort: on any
// failure the input is returned unchanged.
type Formatter interface {
	Format(text string) string
}

// EsbuildFormatter reprints code through esbuild's transform API.
type EsbuildFormatter struct{}

// NewEsbuildFormatter constructs an EsbuildFormatter.
func NewEsbuildFormatter() *EsbuildFormatter {
	return &EsbuildFormatter{}
}

// Format parses and reprints text without minification.
func (f *EsbuildFormatter) Format(text string) string {
	if text == "" {
		return text
	}

	result := api.Transform(text, api.TransformOptions{
		Loader:        api.LoaderJS,
		Charset:       api.CharsetUTF8,
		LegalComments: api.LegalCommentsInline,
	})
	if len(result.Errors) > 0 {
		return text
	}

	return string(result.Code)
}

// NoopFormatter leaves code untouched.
type NoopFormatter struct{}

// Format returns text as is.
func (NoopFormatter) Format(text string) string {
	return text
}
