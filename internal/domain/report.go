package domain

import (
	"encoding/hex"
	"sort"

	"github.com/zeebo/blake3"

	m "github.com/mouse-blink/undefender/internal/model"
)

// Digest returns the hex BLAKE3 digest of an artifact.
func Digest(artifact m.Artifact) string {
	sum := blake3.Sum256([]byte(artifact))

	return hex.EncodeToString(sum[:])
}

// BuildReport summarises a run for persistence. Entries are sorted by kind
// then fragment so reports of the same input compare equal.
func BuildReport(source m.Path, artifact m.Artifact, result m.RunResult, runErr error) m.Report {
	entries := make([]m.ReportEntry, 0, result.Table.Resolved())

	for fragment, text := range result.Table.Blocks {
		entries = append(entries, m.ReportEntry{Kind: m.FragmentBlock, Fragment: fragment, Replacement: text})
	}

	for fragment, value := range result.Table.Values {
		entries = append(entries, m.ReportEntry{Kind: m.FragmentAccess, Fragment: fragment, Replacement: value.Text})
	}

	for fragment, value := range result.Table.Expressions {
		entries = append(entries, m.ReportEntry{Kind: m.FragmentArithmetic, Fragment: fragment, Replacement: value.Text})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Kind != entries[j].Kind {
			return entries[i].Kind < entries[j].Kind
		}

		return entries[i].Fragment < entries[j].Fragment
	})

	return m.Report{
		Source:     source,
		Digest:     Digest(artifact),
		Binding:    result.Signature.Binding,
		Bootstraps: len(result.Signature.Bootstraps),
		Resolved:   result.ResolvedCount,
		Elapsed:    result.Elapsed,
		Failure:    m.Classify(runErr),
		Entries:    entries,
		Unresolved: result.Table.Failures,
	}
}
