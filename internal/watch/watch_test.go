package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) rebuild(ctx context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, filepath.Base(path))
	return nil
}

func (r *recorder) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func TestWatchTriggersRebuild(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	model := filepath.Join(dir, "a.ifc")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(model, []byte("initial"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := &recorder{}
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{dir}, r.rebuild)
	}()

	// give the watcher time to register
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(model, []byte("changed"), 0o644))

	require.Eventually(t, func() bool {
		return len(r.seen()) > 0
	}, 5*time.Second, 50*time.Millisecond)
	for _, name := range r.seen() {
		require.Equal(t, "a.ifc", name)
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatchMissingTarget(t *testing.T) {
	t.Parallel()

	err := Watch(context.Background(), []string{filepath.Join(t.TempDir(), "missing.ifc")}, func(context.Context, string) error {
		return nil
	})
	require.Error(t, err)
}
