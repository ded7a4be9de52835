package binary

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Settings keys shared with the host application's settings table.
const (
	PathKey           = "claude_binary_path"
	PreferenceKey     = "claude_installation_preference"
	DefaultPreference = "system"
)

// ErrKeyNotFound is returned by a KeyValueStore for absent keys.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the persisted settings boundary.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Cache holds the single last-known-good path.
type Cache struct {
	Store  KeyValueStore
	Prober *Prober
	Logger *log.Logger
}

// Read returns the cached path when it still exists as a regular file and
// passes the probe. A stale entry is deleted. The string is empty when there
// is nothing usable; the error reports store failures only.
func (c *Cache) Read(ctx context.Context) (string, error) {
	inst, ok, err := c.Lookup(ctx)
	if err != nil || !ok {
		return "", err
	}
	return inst.Path, nil
}

// Lookup is Read that also reports the version the validating probe saw.
// The installation is tagged with SourceCache.
func (c *Cache) Lookup(ctx context.Context) (Installation, bool, error) {
	logger := orDiscard(c.Logger)
	path, err := c.Store.Get(ctx, PathKey)
	if errors.Is(err, ErrKeyNotFound) {
		return Installation{}, false, nil
	}
	if err != nil {
		return Installation{}, false, fmt.Errorf("%w: read %s: %v", ErrCacheUnavailable, PathKey, err)
	}
	if path == "" {
		return Installation{}, false, nil
	}

	reason := ""
	var result ProbeResult
	if !isRegularFile(path) {
		reason = "file missing"
	} else if result = c.Prober.Probe(ctx, path); !result.Functional {
		if ctx.Err() != nil {
			return Installation{}, false, ctx.Err()
		}
		reason = "probe failed"
	}
	if reason == "" {
		logger.Info("using cached installation", "path", path)
		return Installation{Path: path, Version: result.Version, Source: SourceCache, Type: System}, true, nil
	}

	logger.Warn("cached installation is no longer valid", "path", path, "reason", reason)
	if err := c.Store.Delete(ctx, PathKey); err != nil {
		return Installation{}, false, fmt.Errorf("%w: delete stale %s: %v", ErrCacheUnavailable, PathKey, err)
	}
	return Installation{}, false, nil
}

// Peek returns the stored path without validating it.
func (c *Cache) Peek(ctx context.Context) (string, error) {
	path, err := c.Store.Get(ctx, PathKey)
	if errors.Is(err, ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrCacheUnavailable, PathKey, err)
	}
	return path, nil
}

// Write upserts path as the cached choice.
func (c *Cache) Write(ctx context.Context, path string) error {
	if err := c.Store.Set(ctx, PathKey, path); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrCacheUnavailable, PathKey, err)
	}
	return nil
}

// Clear removes the cached choice.
func (c *Cache) Clear(ctx context.Context) error {
	if err := c.Store.Delete(ctx, PathKey); err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrCacheUnavailable, PathKey, err)
	}
	return nil
}

// Preference returns the stored installation preference, defaulting to
// "system".
func (c *Cache) Preference(ctx context.Context) (string, error) {
	value, err := c.Store.Get(ctx, PreferenceKey)
	if errors.Is(err, ErrKeyNotFound) || (err == nil && value == "") {
		return DefaultPreference, nil
	}
	if err != nil {
		return DefaultPreference, fmt.Errorf("%w: read %s: %v", ErrCacheUnavailable, PreferenceKey, err)
	}
	return value, nil
}
