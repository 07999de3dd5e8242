package workspace

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"evalclient/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestOpenAndRead(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "student.go"), []byte("package main\n"), 0644))

	ws, err := Open(dir, config.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "student.go"), ws.StudentFile)
	assert.Equal(t, filepath.Join(dir, config.DirName, "logs"), ws.LogsDir())
	assert.True(t, ws.HasStudentFile())

	src, err := ws.ReadStudentSource()
	require.NoError(t, err)
	assert.Equal(t, "package main\n", src)
}

func TestOpen_AbsoluteStudentFile(t *testing.T) {
	dir := t.TempDir()
	other := filepath.Join(t.TempDir(), "solution.go")

	cfg := config.DefaultConfig()
	cfg.Workspace.StudentFile = other

	ws, err := Open(dir, cfg)
	require.NoError(t, err)
	assert.Equal(t, other, ws.StudentFile)
	assert.False(t, ws.HasStudentFile())

	_, err = ws.ReadStudentSource()
	assert.Error(t, err)
}

func TestOpen_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	_, err := Open(file, config.DefaultConfig())
	assert.Error(t, err)
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "student.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n"), 0644))

	var calls atomic.Int32
	w, err := NewWatcher(path, 50*time.Millisecond, func() { calls.Add(1) })
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("package main\n// edit\n"), 0644))
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "a burst of writes notifies once")
	assert.Equal(t, 1, w.Stats().Notifications)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "student.go")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	var calls atomic.Int32
	w, err := NewWatcher(path, 20*time.Millisecond, func() { calls.Add(1) })
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	time.Sleep(150 * time.Millisecond)
	w.Stop()

	assert.Zero(t, calls.Load())
	assert.Zero(t, w.Stats().Events)
}

func TestWatcher_StopsWithContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "student.go")

	w, err := NewWatcher(path, 20*time.Millisecond, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()
	w.Stop()
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "student.go"), time.Millisecond, nil)
	require.NoError(t, err)
	w.Stop()
}
