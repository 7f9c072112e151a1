package controller

import (
	"bytes"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mouse-blink/undefender/internal/adapter"
	m "github.com/mouse-blink/undefender/internal/model"
)

const maxCellWidth = 60

// SimpleUI implements UI with plain text. Reports go to the command's
// stdout, progress and summaries to its stderr.
type SimpleUI struct {
	cmd *cobra.Command
	mu  sync.Mutex
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(_ ...adapter.StartOption) error {
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {}

// DisplaySignature prints the recognised signature and catalog sizes.
func (s *SimpleUI) DisplaySignature(sig m.Signature, catalog m.Catalog, err error) {
	if err != nil {
		s.errorf("signature error: %v\n", err)

		return
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Bootstrap", "Offset", "Arguments", "Payload"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_CENTER, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for i, d := range sig.Bootstraps {
		role := "auxiliary"
		if i == 0 {
			role = "primary"
		}

		table.Append([]string{role, fmt.Sprintf("%d", d.Offset), d.InitializerName, clip(d.Payload)})
	}

	table.SetFooter([]string{"Binding " + sig.Binding, "", "", fmt.Sprintf("%d bootstraps", len(sig.Bootstraps))})
	table.Render()

	s.printf("\n%s", tableBuffer.String())
	s.printf("Blocks: %d  Accesses: %d  Arithmetic: %d\n",
		len(catalog.Blocks), len(catalog.Accesses), len(catalog.Arithmetic))
}

// DisplayConcurrencyInfo prints the worker pool size.
func (s *SimpleUI) DisplayConcurrencyInfo(workers int, chunks int) {
	s.errorf("Resolving %d chunk(s) with %d worker(s) on %d core(s)\n", chunks, workers, runtime.NumCPU())
}

// DisplayChunkStarted is silent in plain mode.
func (s *SimpleUI) DisplayChunkStarted(_ m.WorkChunk) {}

// DisplayChunkCompleted prints one line per finished chunk.
func (s *SimpleUI) DisplayChunkCompleted(result m.WorkResult) {
	s.errorf("chunk %d: %d resolved, %d failed\n", result.Index, result.Resolved(), len(result.Failures))
}

// DisplayResolutions prints every fragment and its replacement.
func (s *SimpleUI) DisplayResolutions(table m.ResolutionTable) {
	items := sortedResolutions(table)
	if len(items) == 0 {
		return
	}

	var tableBuffer bytes.Buffer

	tw := tablewriter.NewWriter(&tableBuffer)
	tw.SetHeader([]string{"Kind", "Fragment", "Replacement"})
	tw.SetBorder(false)
	tw.SetCenterSeparator("")
	tw.SetAutoWrapText(false)
	tw.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, item := range items {
		tw.Append([]string{string(item.kind), clip(item.fragment), clip(item.replacement)})
	}

	tw.SetFooter([]string{"Total", fmt.Sprintf("%d", len(items)), ""})
	tw.Render()

	s.errorf("\n%s", tableBuffer.String())
}

// DisplaySummary prints the outcome of a run.
func (s *SimpleUI) DisplaySummary(result m.RunResult, err error) {
	switch kind := m.Classify(err); {
	case kind == m.FailureNone:
		s.errorf("Resolved %d fragment(s) in %d ms\n", result.ResolvedCount, result.ElapsedMs())
	case kind.Fatal():
		s.errorf("Failed (%s) after %d ms: %v\n", kind, result.ElapsedMs(), err)
	default:
		s.errorf("Resolved %d fragment(s) in %d ms with warnings: %v\n", result.ResolvedCount, result.ElapsedMs(), err)
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func (s *SimpleUI) errorf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), format, args...)
}

// clip shortens text to one table cell line.
func clip(text string) string {
	text = strings.Join(strings.Fields(text), " ")

	return truncate(text, maxCellWidth)
}
