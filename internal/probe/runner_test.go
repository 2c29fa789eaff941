package probe

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/sreagent/internal/core"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecRunner_Success(t *testing.T) {
	requireShell(t)
	r := NewExecRunner(2 * time.Second)

	out, err := r.Run(context.Background(), "sh", "-c", "echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(out))
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	requireShell(t)
	r := NewExecRunner(2 * time.Second)

	_, err := r.Run(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	require.Error(t, err)
	assert.ErrorIs(t, err, errCommandFailed)

	var domErr *core.DomainError
	require.ErrorAs(t, err, &domErr)
	assert.Equal(t, "boom", domErr.Details["stderr"])
	assert.Contains(t, domErr.Message, "exited with code 3")
}

func TestExecRunner_Timeout(t *testing.T) {
	requireShell(t)
	r := NewExecRunner(100 * time.Millisecond)

	start := time.Now()
	_, err := r.Run(context.Background(), "sh", "-c", "sleep 5")
	require.Error(t, err)
	assert.True(t, core.IsCategory(err, core.ErrCatTimeout), "got %v", err)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestExecRunner_MissingBinary(t *testing.T) {
	r := NewExecRunner(time.Second)

	_, err := r.Run(context.Background(), "definitely-not-a-real-binary-sreagent")
	require.Error(t, err)
	assert.ErrorIs(t, err, &core.DomainError{Category: core.ErrCatExecution, Code: core.CodeCommandNoStart})
}

func TestExecRunner_DefaultTimeout(t *testing.T) {
	assert.Equal(t, 5*time.Second, NewExecRunner(0).Timeout())
}
