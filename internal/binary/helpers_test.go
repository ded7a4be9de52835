package binary

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeResponse struct {
	stdout string
	err    error
}

// fakeRunner answers by command name or path; unknown commands fail.
type fakeRunner struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	calls     []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{responses: make(map[string]fakeResponse)}
}

func (f *fakeRunner) ok(command, stdout string) *fakeRunner {
	f.responses[command] = fakeResponse{stdout: stdout}
	return f
}

func (f *fakeRunner) Run(_ context.Context, command string, _ []string, _ RunOptions) (RunResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, command)
	resp, ok := f.responses[command]
	if !ok {
		return RunResult{}, errors.New("executable file not found")
	}
	return RunResult{Stdout: []byte(resp.stdout)}, resp.err
}

func (f *fakeRunner) callCount(command string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == command {
			n++
		}
	}
	return n
}

func mapEnv(vars map[string]string) (func(string) string, func() []string) {
	getenv := func(key string) string { return vars[key] }
	environ := func() []string {
		out := make([]string, 0, len(vars))
		for k, v := range vars {
			out = append(out, k+"="+v)
		}
		return out
	}
	return getenv, environ
}

// isolatedPlatform returns Unix traits whose location tables point only
// inside a temporary home directory.
func isolatedPlatform(t *testing.T) Platform {
	t.Helper()
	home := t.TempDir()
	getenv, environ := mapEnv(map[string]string{"HOME": home, "PATH": "/usr/bin"})
	p := NewPlatform(FamilyUnix, DefaultTool, getenv, environ)
	p.StandardPaths = []Candidate{
		{Path: filepath.Join(home, ".claude", "local", "claude"), Source: "claude-local"},
		{Path: filepath.Join(home, ".local", "bin", "claude"), Source: "local-bin"},
	}
	p.CellarRoots = nil
	p.DesktopEntries = nil
	p.PackagePaths = nil
	p.ExtraPaths = nil
	p.ToolchainDirs = nil
	return p
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o755))
	return path
}
