package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"claudefinder/internal/binary"
	"claudefinder/internal/paths"
)

// versionRunner answers "--version" for the paths it knows and fails for
// everything else, including the system lookup command.
type versionRunner struct {
	mu       sync.Mutex
	versions map[string]string
}

func (r *versionRunner) Run(_ context.Context, command string, _ []string, _ binary.RunOptions) (binary.RunResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out, ok := r.versions[command]
	if !ok {
		return binary.RunResult{}, errors.New("executable file not found")
	}
	return binary.RunResult{Stdout: []byte(out)}, nil
}

type testEnv struct {
	home    string
	dataDir string
	config  string
	runner  *versionRunner
}

// setupTestEnv isolates the commands from the host: config and database live
// in temp dirs, discovery only looks at two paths under a temp home, and
// probing goes through a fake runner.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		home:    t.TempDir(),
		dataDir: t.TempDir(),
		runner:  &versionRunner{versions: make(map[string]string)},
	}
	env.config = filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(paths.DataDirEnv, env.dataDir)

	vars := map[string]string{"HOME": env.home, "PATH": "/usr/bin:/bin", "LANG": "C.UTF-8"}
	getenv := func(key string) string { return vars[key] }
	environ := func() []string {
		out := make([]string, 0, len(vars))
		for k, v := range vars {
			out = append(out, k+"="+v)
		}
		return out
	}

	p := binary.NewPlatform(binary.FamilyUnix, binary.DefaultTool, getenv, environ)
	p.StandardPaths = []binary.Candidate{
		{Path: filepath.Join(env.home, ".claude", "local", "claude"), Source: "claude-local"},
		{Path: filepath.Join(env.home, ".local", "bin", "claude"), Source: "local-bin"},
	}
	p.CellarRoots = nil
	p.DesktopEntries = nil
	p.PackagePaths = nil
	p.AppImageDirs = nil
	p.ExtraPaths = nil
	p.ToolchainDirs = nil

	prevPlatform, prevRunner := platformOverride, runnerOverride
	platformOverride = &p
	runnerOverride = env.runner
	t.Cleanup(func() {
		platformOverride = prevPlatform
		runnerOverride = prevRunner
	})
	return env
}

// install writes an executable placeholder and teaches the runner its version.
func (e *testEnv) install(t *testing.T, rel, versionOutput string) string {
	t.Helper()
	path := filepath.Join(e.home, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	e.runner.mu.Lock()
	e.runner.versions[path] = versionOutput
	e.runner.mu.Unlock()
	return path
}

func (e *testEnv) writeConfig(t *testing.T, content string) {
	t.Helper()
	if err := os.WriteFile(e.config, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// run executes the root command with args and returns stdout.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(append([]string{"--config", e.config}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}
