package adapter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iancoleman/orderedmap"
	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/undefender/internal/model"
)

// ReportStore persists and retrieves run reports.
type ReportStore interface {
	SaveReport(path m.Path, report m.Report) error
	LoadReport(path m.Path) (m.Report, error)
}

// LocalReportStore stores reports on disk. Files ending in .json are written
// as JSON with a fixed key order, everything else as YAML.
type LocalReportStore struct{}

// NewReportStore constructs a ReportStore implementation.
func NewReportStore() ReportStore {
	return &LocalReportStore{}
}

// SaveReport writes report to path.
func (rs *LocalReportStore) SaveReport(path m.Path, report m.Report) error {
	var (
		data []byte
		err  error
	)

	if isJSON(path) {
		data, err = json.MarshalIndent(orderedReport(report), "", "  ")
	} else {
		data, err = yaml.Marshal(report)
	}

	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if dir := filepath.Dir(string(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("%w: create report directory: %w", m.ErrWriteFailure, err)
		}
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("%w: write report: %w", m.ErrWriteFailure, err)
	}

	return nil
}

// LoadReport reads a report written by SaveReport.
func (rs *LocalReportStore) LoadReport(path m.Path) (m.Report, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.Report{}, fmt.Errorf("read report: %w", err)
	}

	var report m.Report

	if isJSON(path) {
		var raw jsonReport
		if err := json.Unmarshal(data, &raw); err != nil {
			return m.Report{}, fmt.Errorf("decode report: %w", err)
		}

		return raw.toReport(), nil
	}

	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.Report{}, fmt.Errorf("decode report: %w", err)
	}

	return report, nil
}

func isJSON(path m.Path) bool {
	return strings.EqualFold(filepath.Ext(string(path)), ".json")
}

func orderedReport(report m.Report) *orderedmap.OrderedMap {
	o := orderedmap.New()
	o.Set("source", report.Source)
	o.Set("digest", report.Digest)
	o.Set("binding", report.Binding)
	o.Set("bootstraps", report.Bootstraps)
	o.Set("resolved", report.Resolved)
	o.Set("elapsed_ms", report.Elapsed.Milliseconds())

	if report.Failure != m.FailureNone {
		o.Set("failure", report.Failure)
	}

	entries := make([]*orderedmap.OrderedMap, 0, len(report.Entries))
	for _, entry := range report.Entries {
		e := orderedmap.New()
		e.Set("kind", entry.Kind)
		e.Set("fragment", entry.Fragment)
		e.Set("replacement", entry.Replacement)
		entries = append(entries, e)
	}

	o.Set("entries", entries)

	if len(report.Unresolved) > 0 {
		unresolved := make([]*orderedmap.OrderedMap, 0, len(report.Unresolved))
		for _, failure := range report.Unresolved {
			u := orderedmap.New()
			u.Set("kind", failure.Kind)
			u.Set("fragment", failure.Fragment)
			u.Set("reason", failure.Reason)
			unresolved = append(unresolved, u)
		}

		o.Set("unresolved", unresolved)
	}

	return o
}

type jsonReport struct {
	Source     m.Path              `json:"source"`
	Digest     string              `json:"digest"`
	Binding    string              `json:"binding"`
	Bootstraps int                 `json:"bootstraps"`
	Resolved   int                 `json:"resolved"`
	ElapsedMs  int64               `json:"elapsed_ms"`
	Failure    m.FailureKind       `json:"failure"`
	Entries    []m.ReportEntry     `json:"entries"`
	Unresolved []m.FragmentFailure `json:"unresolved"`
}

func (r jsonReport) toReport() m.Report {
	return m.Report{
		Source:     r.Source,
		Digest:     r.Digest,
		Binding:    r.Binding,
		Bootstraps: r.Bootstraps,
		Resolved:   r.Resolved,
		Elapsed:    msToDuration(r.ElapsedMs),
		Failure:    r.Failure,
		Entries:    r.Entries,
		Unresolved: r.Unresolved,
	}
}

func msToDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
