package model

import "time"

// FragmentKind classifies the three kinds of replaceable text.
type FragmentKind string

const (
	// FragmentBlock is an auxiliary eval invocation that decrypts to code.
	FragmentBlock FragmentKind = "block"
	// FragmentAccess is an indirect read from the storage binding.
	FragmentAccess FragmentKind = "access"
	// FragmentArithmetic is a parenthesised numeric-literal expression.
	FragmentArithmetic FragmentKind = "arithmetic"
)

// Catalog holds the deduplicated fragments of an artifact in first-occurrence order.
type Catalog struct {
	Blocks     []BootstrapDescriptor
	Accesses   []string
	Arithmetic []string
}

// Total returns the number of fragments across all kinds.
func (c Catalog) Total() int {
	return len(c.Blocks) + len(c.Accesses) + len(c.Arithmetic)
}

// Empty reports whether the catalog has nothing to resolve.
func (c Catalog) Empty() bool {
	return c.Total() == 0
}

// WorkChunk is one worker's share of the catalog.
type WorkChunk struct {
	Index      int                   `cbor:"index"`
	Blocks     []BootstrapDescriptor `cbor:"blocks"`
	Accesses   []string              `cbor:"accesses"`
	Arithmetic []string              `cbor:"arithmetic"`
}

// Size returns the number of fragments in the chunk.
func (c WorkChunk) Size() int {
	return len(c.Blocks) + len(c.Accesses) + len(c.Arithmetic)
}

// Task is the message handed to a worker.
type Task struct {
	Binding     string        `cbor:"binding"`
	Initializer Initializer   `cbor:"initializer"`
	Chunk       WorkChunk     `cbor:"chunk"`
	Engine      string        `cbor:"engine"`
	Timeout     time.Duration `cbor:"timeout"`
}

// Job is everything the distributor needs to resolve a catalog.
type Job struct {
	Binding     string
	Initializer Initializer
	Catalog     Catalog
	Engine      string
	Timeout     time.Duration
}

// TaskFor builds the task for one chunk of the job.
func (j Job) TaskFor(chunk WorkChunk) Task {
	return Task{
		Binding:     j.Binding,
		Initializer: j.Initializer,
		Chunk:       chunk,
		Engine:      j.Engine,
		Timeout:     j.Timeout,
	}
}
