package controller

import (
	"io"
	"runtime"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mouse-blink/undefender/internal/adapter"
	m "github.com/mouse-blink/undefender/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output  io.Writer
	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the Bubble Tea program for the requested mode.
func (t *TUI) Start(options ...adapter.StartOption) error {
	cfg := adapter.NewStartConfig(options...)

	var model tea.Model

	switch cfg.Mode {
	case adapter.ModeInspect:
		model = newInspectModel()
	default:
		model = newProgressModel()
	}

	t.startWithModel(model)

	return nil
}

func (t *TUI) startWithModel(model tea.Model) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.program != nil {
		return
	}

	t.program = tea.NewProgram(model, tea.WithOutput(t.output), tea.WithInput(nil))
	t.done = make(chan struct{})

	go func(p *tea.Program, done chan struct{}) {
		defer close(done)

		_, _ = p.Run()
	}(t.program, t.done)
}

// Close asks the program to render its final frame and waits for it to exit.
func (t *TUI) Close() {
	t.send(finishedMsg{})
	t.Wait()

	t.mu.Lock()
	t.program = nil
	t.mu.Unlock()
}

// Wait blocks until the running program exits.
func (t *TUI) Wait() {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done != nil {
		<-done
	}
}

// DisplaySignature shows the recognised signature.
func (t *TUI) DisplaySignature(sig m.Signature, catalog m.Catalog, err error) {
	t.send(signatureMsg{sig: sig, catalog: catalog, err: err})
}

// DisplayConcurrencyInfo shows the worker pool size.
func (t *TUI) DisplayConcurrencyInfo(workers int, chunks int) {
	t.send(concurrencyMsg{workers: workers, chunks: chunks, cores: runtime.NumCPU()})
}

// DisplayChunkStarted marks a chunk as running.
func (t *TUI) DisplayChunkStarted(chunk m.WorkChunk) {
	t.send(chunkStartedMsg{index: chunk.Index, size: chunk.Size()})
}

// DisplayChunkCompleted advances the progress bar.
func (t *TUI) DisplayChunkCompleted(result m.WorkResult) {
	t.send(chunkCompletedMsg{index: result.Index, resolved: result.Resolved(), failed: len(result.Failures)})
}

// DisplayResolutions fills the results list.
func (t *TUI) DisplayResolutions(table m.ResolutionTable) {
	t.send(resolutionsMsg{items: sortedResolutions(table)})
}

// DisplaySummary shows the outcome of the run.
func (t *TUI) DisplaySummary(result m.RunResult, err error) {
	t.send(summaryMsg{resolved: result.ResolvedCount, elapsed: result.Elapsed, err: err})
}

func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	p := t.program
	t.mu.Unlock()

	if p != nil {
		p.Send(msg)
	}
}
