package daemon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDaemon(t *testing.T) *Daemon {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "glance.pid"))
}

func TestPIDRoundTrip(t *testing.T) {
	d := newTestDaemon(t)

	require.NoError(t, d.WritePID())

	pid, err := d.ReadPID()
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)

	require.NoError(t, d.RemovePID())

	pid, err = d.ReadPID()
	require.NoError(t, err)
	assert.Equal(t, 0, pid, "missing PID file reads as zero")
}

func TestRemoveMissingPIDFile(t *testing.T) {
	d := newTestDaemon(t)
	assert.NoError(t, d.RemovePID())
}

func TestReadPIDGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glance.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid"), 0o644))

	_, err := New(path).ReadPID()
	assert.Error(t, err)
}

func TestIsRunningSelf(t *testing.T) {
	d := newTestDaemon(t)
	require.NoError(t, d.WritePID())

	running, pid, err := d.IsRunning()
	require.NoError(t, err)
	assert.True(t, running, "the test process itself is alive")
	assert.Equal(t, os.Getpid(), pid)
}

func TestIsRunningStalePIDCleanedUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glance.pid")
	// PID_MAX on Linux defaults to 4194304; anything above it cannot be a
	// live process.
	require.NoError(t, os.WriteFile(path, []byte("99999999"), 0o644))

	d := New(path)
	running, _, err := d.IsRunning()
	require.NoError(t, err)
	assert.False(t, running)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "stale PID file should be removed")
}

func TestIsRunningNoPIDFile(t *testing.T) {
	d := newTestDaemon(t)

	running, pid, err := d.IsRunning()
	require.NoError(t, err)
	assert.False(t, running)
	assert.Equal(t, 0, pid)
}

func TestStopWhenNotRunning(t *testing.T) {
	d := newTestDaemon(t)
	assert.Error(t, d.Stop())
}
