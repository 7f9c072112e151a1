// Package model defines the data structures shared by the deobfuscation pipeline.
package model

// Path represents a file system path or a remote location.
type Path string

// Artifact is the raw text of a protected script. Stages never mutate it,
// they always return a new value.
type Artifact string

// BootstrapDescriptor describes one eval-based bootstrap invocation found in
// an artifact.
type BootstrapDescriptor struct {
	// InitializerName is the identifier declared by the statement right
	// before the invocation. Empty when no such declaration exists.
	InitializerName string `cbor:"initializer_name" json:"initializer_name" yaml:"initializer_name"`
	// Payload is the decoded value of the string literal passed to eval.
	Payload string `cbor:"payload" json:"payload" yaml:"payload"`
	// Source is the exact text of the call, e.g. eval("...").
	Source string `cbor:"source" json:"source" yaml:"source"`
	Offset int    `cbor:"offset" json:"offset" yaml:"offset"`
}

// HasInitializer reports whether a preceding declaration named the argument list.
func (d BootstrapDescriptor) HasInitializer() bool {
	return d.InitializerName != ""
}

// Signature is what the matcher extracts from an artifact: the storage
// binding and every bootstrap invocation in source order.
type Signature struct {
	Binding    string
	Bootstraps []BootstrapDescriptor
}

// Primary returns the bootstrap that populates the storage binding.
func (s Signature) Primary() (BootstrapDescriptor, bool) {
	if len(s.Bootstraps) == 0 {
		return BootstrapDescriptor{}, false
	}

	return s.Bootstraps[0], true
}

// Auxiliary returns the remaining bootstraps. They are handled as encoded blocks.
func (s Signature) Auxiliary() []BootstrapDescriptor {
	if len(s.Bootstraps) < 2 {
		return nil
	}

	return s.Bootstraps[1:]
}

// Initializer is a self-contained program that, once run in a sandbox where
// Binding is declared, populates Binding. Function is a function expression
// the sandbox invokes with Arguments.
type Initializer struct {
	Binding   string   `cbor:"binding"`
	Function  string   `cbor:"function"`
	Arguments []string `cbor:"arguments"`
}
