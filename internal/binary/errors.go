package binary

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCacheUnavailable wraps any failure of the persisted settings store.
var ErrCacheUnavailable = errors.New("installation cache unavailable")

// NotFoundError reports that no candidate survived the liveness probe.
type NotFoundError struct {
	Tool      string
	Locations []string
}

func (e *NotFoundError) Error() string {
	name := "Claude Code"
	if e.Tool != "" && e.Tool != "claude" {
		name = e.Tool
	}
	if len(e.Locations) == 0 {
		return fmt.Sprintf("%s not found", name)
	}
	return fmt.Sprintf("%s not found. Please ensure it's installed in one of these locations: %s",
		name, strings.Join(e.Locations, ", "))
}
