package domain

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/undefender/internal/adapter"
	adaptermocks "github.com/mouse-blink/undefender/internal/adapter/mocks"
	m "github.com/mouse-blink/undefender/internal/model"
)

type orchestratorFunc func(ctx context.Context, artifact m.Artifact) (m.RunResult, error)

func (f orchestratorFunc) Run(ctx context.Context, artifact m.Artifact) (m.RunResult, error) {
	return f(ctx, artifact)
}

func fixedOrchestrator(result m.RunResult, err error) OrchestratorFactory {
	return func(RunOptions, Progress, *slog.Logger) (Orchestrator, error) {
		return orchestratorFunc(func(context.Context, m.Artifact) (m.RunResult, error) {
			return result, err
		}), nil
	}
}

func writeArtifact(t *testing.T, text string) m.Path {
	t.Helper()

	path := filepath.Join(t.TempDir(), "protected.js")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))

	return m.Path(path)
}

func TestWorkflow_Deobfuscate_EndToEnd(t *testing.T) {
	// Arrange
	ui := adaptermocks.NewMockUI(t)
	reportStore := adaptermocks.NewMockReportStore(t)

	ui.EXPECT().Start(mock.Anything).Return(nil)
	ui.EXPECT().DisplayConcurrencyInfo(2, 2).Return()
	ui.EXPECT().DisplayChunkStarted(mock.Anything).Return()
	ui.EXPECT().DisplayChunkCompleted(mock.Anything).Return()
	ui.EXPECT().DisplayResolutions(mock.MatchedBy(func(table m.ResolutionTable) bool {
		return table.Resolved() == 4
	})).Return()
	ui.EXPECT().DisplaySummary(mock.Anything, nil).Return()
	ui.EXPECT().Close().Return()

	reportPath := m.Path(filepath.Join(t.TempDir(), "report.yaml"))
	reportStore.EXPECT().SaveReport(reportPath, mock.MatchedBy(func(r m.Report) bool {
		return r.Binding == "Z" && r.Resolved == 4 && len(r.Entries) == 4 && r.Failure == m.FailureNone && len(r.Digest) == 64
	})).Return(nil)

	var stdout bytes.Buffer

	wf := NewWorkflow(ui, reportStore, adapter.NewLocalJSFileAdapter(), nil, WithStdio(strings.NewReader(""), &stdout))

	// Act
	err := wf.Deobfuscate(context.Background(), DeobfuscateArgs{
		Input:   writeArtifact(t, protectedArtifact),
		Report:  reportPath,
		Verbose: true,
		Options: RunOptions{Workers: 2, Normalize: true},
	})

	// Assert
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), `console.log("hello", 42, 3);`)
}

func TestWorkflow_Deobfuscate_StdinToFile(t *testing.T) {
	// Arrange
	ui := adaptermocks.NewMockUI(t)
	ui.EXPECT().Start(mock.Anything).Return(nil)
	ui.EXPECT().DisplaySummary(mock.Anything, nil).Return()
	ui.EXPECT().Close().Return()

	output := filepath.Join(t.TempDir(), "out.js")
	wf := NewWorkflow(ui, adaptermocks.NewMockReportStore(t), adapter.NewLocalJSFileAdapter(), nil,
		WithStdio(strings.NewReader("source"), &bytes.Buffer{}),
		WithOrchestratorFactory(fixedOrchestrator(m.RunResult{OutputText: "clean"}, nil)))

	// Act
	err := wf.Deobfuscate(context.Background(), DeobfuscateArgs{Input: adapter.StdinLocation, Output: m.Path(output)})

	// Assert
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "clean", string(data))
}

func TestWorkflow_Deobfuscate_PartialResolutionIsWarning(t *testing.T) {
	// Arrange
	partial := errors.Join(m.ErrPartialResolution)

	ui := adaptermocks.NewMockUI(t)
	ui.EXPECT().Start(mock.Anything).Return(nil)
	ui.EXPECT().DisplaySummary(mock.Anything, partial).Return()
	ui.EXPECT().Close().Return()

	var stdout bytes.Buffer

	wf := NewWorkflow(ui, adaptermocks.NewMockReportStore(t), adapter.NewLocalJSFileAdapter(), nil,
		WithStdio(nil, &stdout),
		WithOrchestratorFactory(fixedOrchestrator(m.RunResult{OutputText: "half"}, partial)))

	// Act
	err := wf.Deobfuscate(context.Background(), DeobfuscateArgs{Input: writeArtifact(t, "x")})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "half\n", stdout.String())
}

func TestWorkflow_Deobfuscate_FatalErrorStillWritesOutput(t *testing.T) {
	// Arrange
	mismatch := errors.Join(m.ErrSignatureMismatch)

	ui := adaptermocks.NewMockUI(t)
	ui.EXPECT().Start(mock.Anything).Return(nil)
	ui.EXPECT().DisplaySummary(mock.Anything, mismatch).Return()
	ui.EXPECT().Close().Return()

	reportStore := adaptermocks.NewMockReportStore(t)
	reportStore.EXPECT().SaveReport(m.Path("r.json"), mock.MatchedBy(func(r m.Report) bool {
		return r.Failure == m.FailureSignatureMismatch
	})).Return(nil)

	var stdout bytes.Buffer

	wf := NewWorkflow(ui, reportStore, adapter.NewLocalJSFileAdapter(), nil,
		WithStdio(nil, &stdout),
		WithOrchestratorFactory(fixedOrchestrator(m.RunResult{OutputText: "formatted"}, mismatch)))

	// Act
	err := wf.Deobfuscate(context.Background(), DeobfuscateArgs{Input: writeArtifact(t, "x"), Report: "r.json"})

	// Assert
	require.ErrorIs(t, err, m.ErrSignatureMismatch)
	assert.Equal(t, "formatted\n", stdout.String())
}

// orderedWriter records writes into a shared event log.
type orderedWriter struct {
	events *[]string
}

func (w orderedWriter) Write(p []byte) (int, error) {
	*w.events = append(*w.events, "write")

	return len(p), nil
}

func TestWorkflow_Deobfuscate_ClosesUIBeforeWriting(t *testing.T) {
	// Arrange
	var events []string

	ui := adaptermocks.NewMockUI(t)
	ui.EXPECT().Start(mock.Anything).Return(nil)
	ui.EXPECT().DisplaySummary(mock.Anything, nil).Return()
	ui.EXPECT().Close().Run(func() {
		events = append(events, "close")
	}).Return().Once()

	wf := NewWorkflow(ui, adaptermocks.NewMockReportStore(t), adapter.NewLocalJSFileAdapter(), nil,
		WithStdio(nil, orderedWriter{events: &events}),
		WithOrchestratorFactory(fixedOrchestrator(m.RunResult{OutputText: "clean"}, nil)))

	// Act
	err := wf.Deobfuscate(context.Background(), DeobfuscateArgs{Input: writeArtifact(t, "x")})

	// Assert
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(events), 2)
	assert.Equal(t, "close", events[0])

	for _, event := range events[1:] {
		assert.Equal(t, "write", event)
	}
}

func TestWorkflow_Deobfuscate_WriteFailure(t *testing.T) {
	// Arrange
	ui := adaptermocks.NewMockUI(t)
	ui.EXPECT().Start(mock.Anything).Return(nil)
	ui.EXPECT().DisplaySummary(mock.Anything, nil).Return()
	ui.EXPECT().Close().Return()

	output := filepath.Join(t.TempDir(), "missing", "dir", "out.js")
	wf := NewWorkflow(ui, adaptermocks.NewMockReportStore(t), adapter.NewLocalJSFileAdapter(), nil,
		WithOrchestratorFactory(fixedOrchestrator(m.RunResult{OutputText: "clean"}, nil)))

	// Act
	err := wf.Deobfuscate(context.Background(), DeobfuscateArgs{Input: writeArtifact(t, "x"), Output: m.Path(output)})

	// Assert
	require.ErrorIs(t, err, m.ErrWriteFailure)
	assert.Equal(t, m.FailureWrite, m.Classify(err))
}

func TestWorkflow_Deobfuscate_MissingInput(t *testing.T) {
	// Arrange
	ui := adaptermocks.NewMockUI(t)
	wf := NewWorkflow(ui, adaptermocks.NewMockReportStore(t), adapter.NewLocalJSFileAdapter(), nil,
		WithOrchestratorFactory(fixedOrchestrator(m.RunResult{}, nil)))

	// Act
	err := wf.Deobfuscate(context.Background(), DeobfuscateArgs{Input: m.Path(filepath.Join(t.TempDir(), "nope.js"))})

	// Assert
	require.Error(t, err)
}

func TestWorkflow_Deobfuscate_InvalidOptions(t *testing.T) {
	// Arrange
	ui := adaptermocks.NewMockUI(t)
	wf := NewWorkflow(ui, adaptermocks.NewMockReportStore(t), adapter.NewLocalJSFileAdapter(), nil)

	// Act
	err := wf.Deobfuscate(context.Background(), DeobfuscateArgs{Input: "x.js", Options: RunOptions{Engine: "spidermonkey"}})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spidermonkey")
}

func TestWorkflow_Inspect(t *testing.T) {
	// Arrange
	ui := adaptermocks.NewMockUI(t)
	ui.EXPECT().Start(mock.Anything).Return(nil)
	ui.EXPECT().DisplaySignature(
		mock.MatchedBy(func(sig m.Signature) bool { return sig.Binding == "Z" && len(sig.Bootstraps) == 1 }),
		mock.MatchedBy(func(c m.Catalog) bool { return len(c.Accesses) == 3 && len(c.Arithmetic) == 1 }),
		nil,
	).Return()
	ui.EXPECT().Close().Return()

	wf := NewWorkflow(ui, adaptermocks.NewMockReportStore(t), adapter.NewLocalJSFileAdapter(), nil)

	// Act
	err := wf.Inspect(context.Background(), InspectArgs{Input: writeArtifact(t, protectedArtifact)})

	// Assert
	require.NoError(t, err)
}

func TestWorkflow_Inspect_Mismatch(t *testing.T) {
	// Arrange
	ui := adaptermocks.NewMockUI(t)
	ui.EXPECT().Start(mock.Anything).Return(nil)
	ui.EXPECT().DisplaySignature(mock.Anything, m.Catalog{}, mock.Anything).Return()
	ui.EXPECT().Close().Return()

	wf := NewWorkflow(ui, adaptermocks.NewMockReportStore(t), adapter.NewLocalJSFileAdapter(), nil)

	// Act
	err := wf.Inspect(context.Background(), InspectArgs{Input: writeArtifact(t, "var a = 1;")})

	// Assert
	require.ErrorIs(t, err, m.ErrSignatureMismatch)
}
