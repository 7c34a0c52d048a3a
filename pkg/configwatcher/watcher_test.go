package configwatcher

import (
	"atomic_sensei_backend/internal/config"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSchedule(t *testing.T, dir string, lowScore int) {
	t.Helper()
	body := fmt.Sprintf("storage:\n  type: minio\nschedule:\n  low_score_minutes: %d\n", lowScore)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	writeSchedule(t, dir, 10)

	var seen atomic.Int64
	w := New(dir, func(cfg *config.Config) {
		seen.Store(int64(cfg.Schedule.LowScoreMinutes))
	})
	w.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// The watch is registered asynchronously; keep writing until it lands.
	require.Eventually(t, func() bool {
		writeSchedule(t, dir, 15)
		return seen.Load() == 15
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	writeSchedule(t, dir, 10)

	var calls atomic.Int64
	w := New(dir, func(*config.Config) { calls.Add(1) })
	w.Debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
		time.Sleep(20 * time.Millisecond)
	}
	cancel()
	require.NoError(t, <-done)
	assert.Zero(t, calls.Load())
}

func TestWatcherMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"), func(*config.Config) {})
	assert.Error(t, w.Run(context.Background()))
}
