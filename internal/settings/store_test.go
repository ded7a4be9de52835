package settings

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claudefinder/internal/binary"
)

func TestGetMissingDatabaseDoesNotCreateIt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "agents.db")
	s := NewStore(path)

	_, err := s.Get(context.Background(), "claude_binary_path")
	assert.ErrorIs(t, err, binary.ErrKeyNotFound)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSetGetDelete(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "agents.db")
	s := NewStore(path)

	require.NoError(t, s.Set(ctx, "claude_binary_path", "/usr/local/bin/claude"))
	got, err := s.Get(ctx, "claude_binary_path")
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/claude", got)

	require.NoError(t, s.Set(ctx, "claude_binary_path", "/opt/homebrew/bin/claude"))
	got, err = s.Get(ctx, "claude_binary_path")
	require.NoError(t, err)
	assert.Equal(t, "/opt/homebrew/bin/claude", got)

	_, err = s.Get(ctx, "claude_installation_preference")
	assert.ErrorIs(t, err, binary.ErrKeyNotFound)

	require.NoError(t, s.Delete(ctx, "claude_binary_path"))
	_, err = s.Get(ctx, "claude_binary_path")
	assert.ErrorIs(t, err, binary.ErrKeyNotFound)
}

func TestDeleteMissingDatabase(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "agents.db"))
	assert.NoError(t, s.Delete(context.Background(), "claude_binary_path"))
}

func TestAll(t *testing.T) {
	ctx := context.Background()
	s := NewStore(filepath.Join(t.TempDir(), "agents.db"))

	all, err := s.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, s.Set(ctx, "b", "2"))
	require.NoError(t, s.Set(ctx, "a", "1"))
	all, err = s.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, all)
}

func TestConcurrentWritesLastWriteWins(t *testing.T) {
	ctx := context.Background()
	s := NewStore(filepath.Join(t.TempDir(), "agents.db"))
	require.NoError(t, s.Set(ctx, "claude_binary_path", "initial"))

	values := []string{"/a/claude", "/b/claude", "/c/claude", "/d/claude"}
	var wg sync.WaitGroup
	errs := make(chan error, len(values))
	for _, v := range values {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- NewStore(s.Path()).Set(ctx, "claude_binary_path", v)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := s.Get(ctx, "claude_binary_path")
	require.NoError(t, err)
	assert.Contains(t, values, got)

	all, err := s.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
