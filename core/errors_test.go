package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapCloneError_WrapsSentinelAndNilPassthrough(t *testing.T) {
	t.Parallel()
	wrapped := WrapCloneError("create", "/tmp/x", errors.New("disk full"))
	assert.ErrorIs(t, wrapped, ErrCloneFailed)
	assert.Contains(t, wrapped.Error(), "/tmp/x")

	assert.NoError(t, WrapCloneError("create", "/tmp/x", nil))
}

func TestWrapNetworkCreateError_WrapsSentinel(t *testing.T) {
	t.Parallel()
	wrapped := WrapNetworkCreateError("bb_net_abc123", errors.New("daemon unreachable"))
	assert.ErrorIs(t, wrapped, ErrNetworkCreateFailed)
	assert.Contains(t, wrapped.Error(), "bb_net_abc123")
}

func TestWrapChildSpawnError_WrapsSentinel(t *testing.T) {
	t.Parallel()
	wrapped := WrapChildSpawnError(errors.New("exec format error"))
	assert.ErrorIs(t, wrapped, ErrChildSpawnFailed)
}

func TestWrapDockerError_WrapsCleanupSentinel(t *testing.T) {
	t.Parallel()
	wrapped := WrapDockerError("remove container", "deadbeef", errors.New("no such container"))
	assert.ErrorIs(t, wrapped, ErrCleanupFailed)
	assert.Contains(t, wrapped.Error(), "deadbeef")
}

func TestNonZeroExitError_Message(t *testing.T) {
	t.Parallel()
	err := NonZeroExitError{ExitCode: 7}
	assert.Equal(t, "non-zero exit code: 7", err.Error())
}
