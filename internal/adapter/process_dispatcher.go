package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	m "github.com/mouse-blink/undefender/internal/model"
)

// WorkerCommand is the hidden subcommand a worker process is started with.
const WorkerCommand = "worker"

// ProcessDispatcher runs every task in a child process. The task is written
// to the child's stdin and the result read from its stdout, both as CBOR.
type ProcessDispatcher struct {
	executable string
	args       []string
	env        []string
	stderr     io.Writer
}

// ProcessOption configures a ProcessDispatcher.
type ProcessOption func(*ProcessDispatcher)

// WithWorkerArgs replaces the arguments passed to the worker executable.
func WithWorkerArgs(args ...string) ProcessOption {
	return func(d *ProcessDispatcher) {
		d.args = args
	}
}

// WithWorkerEnv appends environment variables for the worker.
func WithWorkerEnv(env ...string) ProcessOption {
	return func(d *ProcessDispatcher) {
		d.env = append(d.env, env...)
	}
}

// WithWorkerStderr sets where the worker's log output goes.
func WithWorkerStderr(w io.Writer) ProcessOption {
	return func(d *ProcessDispatcher) {
		d.stderr = w
	}
}

// NewProcessDispatcher creates a dispatcher that re-executes executable. An
// empty executable means the running binary.
func NewProcessDispatcher(executable string, options ...ProcessOption) (*ProcessDispatcher, error) {
	if executable == "" {
		self, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("locate worker executable: %w", err)
		}

		executable = self
	}

	d := &ProcessDispatcher{
		executable: executable,
		args:       []string{WorkerCommand},
		stderr:     os.Stderr,
	}

	for _, option := range options {
		option(d)
	}

	return d, nil
}

// Dispatch starts one worker process for task and waits for its result.
func (d *ProcessDispatcher) Dispatch(ctx context.Context, task m.Task) (m.WorkResult, error) {
	payload, err := Marshal(task)
	if err != nil {
		return m.WorkResult{}, fmt.Errorf("encode task %d: %w", task.Chunk.Index, err)
	}

	var stdout bytes.Buffer

	cmd := exec.CommandContext(ctx, d.executable, d.args...)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = d.stderr
	cmd.Env = append(os.Environ(), d.env...)

	if err := cmd.Run(); err != nil {
		return m.WorkResult{}, fmt.Errorf("worker for chunk %d: %w", task.Chunk.Index, err)
	}

	var reply WorkerReply
	if err := Unmarshal(stdout.Bytes(), &reply); err != nil {
		return m.WorkResult{}, fmt.Errorf("decode result of chunk %d: %w", task.Chunk.Index, err)
	}

	if reply.Error != "" {
		if reply.Bootstrap {
			return m.WorkResult{}, fmt.Errorf("worker for chunk %d: %w: %s", task.Chunk.Index, m.ErrBootstrapExecution, reply.Error)
		}

		return m.WorkResult{}, fmt.Errorf("worker for chunk %d: %s", task.Chunk.Index, reply.Error)
	}

	return reply.Result, nil
}

// WorkerReply is what a worker process writes to stdout.
type WorkerReply struct {
	Result    m.WorkResult `cbor:"result"`
	Error     string       `cbor:"error,omitempty"`
	Bootstrap bool         `cbor:"bootstrap,omitempty"`
}

// ServeWorker reads one task from r, resolves it with resolve and writes the
// reply to w. It is the body of the worker subcommand.
func ServeWorker(ctx context.Context, r io.Reader, w io.Writer, resolve func(context.Context, m.Task) (m.WorkResult, error)) error {
	var task m.Task
	if err := NewDecoder(r).Decode(&task); err != nil {
		return fmt.Errorf("decode task: %w", err)
	}

	var reply WorkerReply

	result, err := resolve(ctx, task)
	if err != nil {
		reply.Error = err.Error()
		reply.Bootstrap = errors.Is(err, m.ErrBootstrapExecution)
	} else {
		reply.Result = result
	}

	if err := NewEncoder(w).Encode(reply); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	return nil
}
