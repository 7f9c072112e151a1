package model

import (
	"slices"
	"time"
)

// FragmentFailure records a fragment a worker could not resolve.
type FragmentFailure struct {
	Fragment string       `cbor:"fragment" json:"fragment" yaml:"fragment"`
	Kind     FragmentKind `cbor:"kind" json:"kind" yaml:"kind"`
	Reason   string       `cbor:"reason" json:"reason" yaml:"reason"`
}

// WorkResult is what one worker produced for one chunk.
type WorkResult struct {
	Index       int                      `cbor:"index"`
	Blocks      map[string]string        `cbor:"blocks"`
	Values      map[string]ResolvedValue `cbor:"values"`
	Expressions map[string]ResolvedValue `cbor:"expressions"`
	Failures    []FragmentFailure        `cbor:"failures"`
}

// NewWorkResult returns an empty result for the chunk with the given index.
func NewWorkResult(index int) WorkResult {
	return WorkResult{
		Index:       index,
		Blocks:      make(map[string]string),
		Values:      make(map[string]ResolvedValue),
		Expressions: make(map[string]ResolvedValue),
	}
}

// Fail records a failed fragment.
func (r *WorkResult) Fail(fragment string, kind FragmentKind, reason string) {
	r.Failures = append(r.Failures, FragmentFailure{Fragment: fragment, Kind: kind, Reason: reason})
}

// Resolved returns the number of resolved fragments.
func (r WorkResult) Resolved() int {
	return len(r.Blocks) + len(r.Values) + len(r.Expressions)
}

// ResolutionTable is the merged outcome of all workers.
type ResolutionTable struct {
	Blocks      map[string]string
	Values      map[string]ResolvedValue
	Expressions map[string]ResolvedValue
	Failures    []FragmentFailure
}

// NewResolutionTable returns an empty table.
func NewResolutionTable() ResolutionTable {
	return ResolutionTable{
		Blocks:      make(map[string]string),
		Values:      make(map[string]ResolvedValue),
		Expressions: make(map[string]ResolvedValue),
	}
}

// Merge adds a work result. Chunks are disjoint so the merge is a plain key
// union and the order of merges does not change the table.
func (t *ResolutionTable) Merge(result WorkResult) {
	if t.Blocks == nil {
		*t = NewResolutionTable()
	}

	for k, v := range result.Blocks {
		t.Blocks[k] = v
	}

	for k, v := range result.Values {
		t.Values[k] = v
	}

	for k, v := range result.Expressions {
		t.Expressions[k] = v
	}

	t.Failures = append(t.Failures, result.Failures...)
	slices.SortStableFunc(t.Failures, func(a, b FragmentFailure) int {
		if a.Kind != b.Kind {
			if a.Kind < b.Kind {
				return -1
			}

			return 1
		}

		switch {
		case a.Fragment < b.Fragment:
			return -1
		case a.Fragment > b.Fragment:
			return 1
		default:
			return 0
		}
	})
}

// Resolved returns the number of resolved fragments.
func (t ResolutionTable) Resolved() int {
	return len(t.Blocks) + len(t.Values) + len(t.Expressions)
}

// RunResult is the outcome of one pipeline run.
type RunResult struct {
	OutputText    string
	ResolvedCount int
	Elapsed       time.Duration
	Signature     Signature
	Catalog       Catalog
	Table         ResolutionTable
}

// ElapsedMs returns the elapsed wall time in milliseconds.
func (r RunResult) ElapsedMs() int64 {
	return r.Elapsed.Milliseconds()
}
