package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/undefender/internal/domain"
	domainmocks "github.com/mouse-blink/undefender/internal/domain/mocks"
	m "github.com/mouse-blink/undefender/internal/model"
)

func newTestRootCmd() *cobra.Command {
	cmd := newRootCmd()
	cmd.AddCommand(newInspectCmd(), newWorkerCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	return cmd
}

func useWorkflow(t *testing.T, w domain.Workflow) {
	t.Helper()

	originalWorkflow := workflow
	workflow = w

	t.Cleanup(func() { workflow = originalWorkflow })
}

func TestRootCmd_DefaultOptions(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	mockWorkflow.EXPECT().
		Deobfuscate(mock.Anything, mock.MatchedBy(func(args domain.DeobfuscateArgs) bool {
			return args.Input == m.Path("protected.js") &&
				args.Output == "" &&
				args.Report == "" &&
				!args.Verbose &&
				!args.Highlight &&
				args.Options.Engine == "goja" &&
				args.Options.Isolation == domain.IsolationGoroutine &&
				args.Options.Workers >= 1 &&
				args.Options.Format &&
				args.Options.Normalize &&
				args.Options.Rename
		})).
		Return(nil)

	cmd := newTestRootCmd()
	cmd.SetArgs([]string{"protected.js"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
}

func TestRootCmd_FlagsOverrideDefaults(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	mockWorkflow.EXPECT().
		Deobfuscate(mock.Anything, mock.MatchedBy(func(args domain.DeobfuscateArgs) bool {
			return args.Output == m.Path("out.js") &&
				args.Report == m.Path("report.yaml") &&
				args.Verbose &&
				args.Options.Workers == 3 &&
				args.Options.Engine == "otto" &&
				args.Options.Isolation == domain.IsolationProcess &&
				args.Options.Timeout == 2*time.Second &&
				!args.Options.Format &&
				!args.Options.Normalize &&
				!args.Options.Rename &&
				len(args.Options.Arguments) == 2 && args.Options.Arguments[1] == "b"
		})).
		Return(nil)

	cmd := newTestRootCmd()
	cmd.SetArgs([]string{
		"-p", "3", "--engine", "otto", "--isolation", "process", "--timeout", "2s",
		"--no-format", "--no-normalize", "--no-rename", "--no-colors",
		"-o", "out.js", "--report", "report.yaml", "-v",
		"--arg", "a", "--arg", "b",
		"protected.js",
	})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
}

func TestRootCmd_ConfigFileWithFlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "undefender.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 5\nengine: otto\nformat: false\n"), 0o600))

	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	mockWorkflow.EXPECT().
		Deobfuscate(mock.Anything, mock.MatchedBy(func(args domain.DeobfuscateArgs) bool {
			return args.Options.Workers == 5 &&
				args.Options.Engine == "goja" &&
				!args.Options.Format
		})).
		Return(nil)

	cmd := newTestRootCmd()
	cmd.SetArgs([]string{"--config", path, "--engine", "goja", "protected.js"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
}

func TestRootCmd_InvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown engine", args: []string{"--engine", "v8", "protected.js"}},
		{name: "zero workers", args: []string{"-p", "0", "protected.js"}},
		{name: "unknown isolation", args: []string{"--isolation", "thread", "protected.js"}},
		{name: "missing config", args: []string{"--config", "does-not-exist.yaml", "protected.js"}},
		{name: "no input", args: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useWorkflow(t, domainmocks.NewMockWorkflow(t))

			cmd := newTestRootCmd()
			cmd.SetArgs(tt.args)

			if err := cmd.Execute(); err == nil {
				t.Fatalf("Execute() expected error")
			}
		})
	}
}

func TestRootCmd_PropagatesWorkflowError(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	mockWorkflow.EXPECT().Deobfuscate(mock.Anything, mock.Anything).Return(m.ErrSignatureMismatch)

	cmd := newTestRootCmd()
	cmd.SetArgs([]string{"protected.js"})

	err := cmd.Execute()
	if !errors.Is(err, m.ErrSignatureMismatch) {
		t.Fatalf("Execute() error = %v, want %v", err, m.ErrSignatureMismatch)
	}
}

func TestInspectCmd_CallsInspect(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	mockWorkflow.EXPECT().
		Inspect(mock.Anything, domain.InspectArgs{Input: m.Path("protected.js")}).
		Return(nil)

	cmd := newTestRootCmd()
	cmd.SetArgs([]string{"inspect", "--no-colors", "protected.js"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
}

func TestNewInspectCmd(t *testing.T) {
	cmd := newInspectCmd()

	assert.Equal(t, "inspect <input>", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, inspectLongDescription, cmd.Long)
}

func TestNewRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"output", "parallel", "engine", "isolation", "timeout", "no-format", "no-normalize", "no-rename", "report", "arg"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}

	for _, name := range []string{"verbose", "no-colors", "config"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}
