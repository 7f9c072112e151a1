package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/undefender/internal/adapter"
	m "github.com/mouse-blink/undefender/internal/model"
)

func TestWorkerCmd_ResolvesTaskFromStdin(t *testing.T) {
	task := m.Task{
		Binding:     "Z",
		Initializer: m.Initializer{Binding: "Z", Function: "function () { Z = [1, 2, 3]; }"},
		Chunk:       m.WorkChunk{Index: 2, Accesses: []string{"Z[0]", "Z[2]"}},
		Engine:      adapter.EngineGoja,
	}

	payload, err := adapter.Marshal(task)
	require.NoError(t, err)

	var stdout bytes.Buffer

	cmd := newTestRootCmd()
	cmd.SetIn(bytes.NewReader(payload))
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{adapter.WorkerCommand})

	require.NoError(t, cmd.Execute())

	var reply adapter.WorkerReply
	require.NoError(t, adapter.Unmarshal(stdout.Bytes(), &reply))

	assert.Empty(t, reply.Error)
	assert.Equal(t, 2, reply.Result.Index)
	assert.Equal(t, m.NumberValue("1"), reply.Result.Values["Z[0]"])
	assert.Equal(t, m.NumberValue("3"), reply.Result.Values["Z[2]"])
}

func TestWorkerCmd_ReportsBootstrapFailure(t *testing.T) {
	task := m.Task{
		Binding:     "Z",
		Initializer: m.Initializer{Binding: "Z", Function: "function () { throw new Error('no'); }"},
		Chunk:       m.WorkChunk{Accesses: []string{"Z[0]"}},
		Engine:      adapter.EngineGoja,
	}

	payload, err := adapter.Marshal(task)
	require.NoError(t, err)

	var stdout bytes.Buffer

	cmd := newTestRootCmd()
	cmd.SetIn(bytes.NewReader(payload))
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{adapter.WorkerCommand})

	require.NoError(t, cmd.Execute())

	var reply adapter.WorkerReply
	require.NoError(t, adapter.Unmarshal(stdout.Bytes(), &reply))

	assert.NotEmpty(t, reply.Error)
	assert.True(t, reply.Bootstrap)
}

func TestWorkerCmd_RejectsGarbage(t *testing.T) {
	cmd := newTestRootCmd()
	cmd.SetIn(bytes.NewReader([]byte("not cbor")))
	cmd.SetArgs([]string{adapter.WorkerCommand})

	require.Error(t, cmd.Execute())
}
