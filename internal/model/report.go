package model

import "time"

// Report is the persisted summary of one run.
type Report struct {
	Source     Path              `json:"source" yaml:"source"`
	Digest     string            `json:"digest" yaml:"digest"`
	Binding    string            `json:"binding" yaml:"binding"`
	Bootstraps int               `json:"bootstraps" yaml:"bootstraps"`
	Resolved   int               `json:"resolved" yaml:"resolved"`
	Elapsed    time.Duration     `json:"elapsed" yaml:"elapsed"`
	Failure    FailureKind       `json:"failure,omitempty" yaml:"failure,omitempty"`
	Entries    []ReportEntry     `json:"entries" yaml:"entries"`
	Unresolved []FragmentFailure `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
}

// ReportEntry is one fragment and what replaced it.
type ReportEntry struct {
	Kind        FragmentKind `json:"kind" yaml:"kind"`
	Fragment    string       `json:"fragment" yaml:"fragment"`
	Replacement string       `json:"replacement" yaml:"replacement"`
}
