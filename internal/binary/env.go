package binary

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// EnvBuilder constructs the environment handed to every spawned candidate.
type EnvBuilder struct {
	Platform Platform
}

// Build returns the variables a child process for programPath should see.
// The result replaces the child's environment entirely.
func (b EnvBuilder) Build(programPath string) map[string]string {
	p := b.Platform
	env := make(map[string]string)
	for _, kv := range p.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		if b.allowed(key) {
			env[key] = value
		}
	}

	pathKey := b.pathKey(env)
	if p.RebuildPath {
		env[pathKey] = b.rebuildPath()
	}

	if dir := b.versionManagerBin(programPath); dir != "" {
		current := env[pathKey]
		if !containsElement(current, dir, p.ListSeparator) {
			if current == "" {
				env[pathKey] = dir
			} else {
				env[pathKey] = dir + p.ListSeparator + current
			}
		}
	}
	return env
}

// Environ returns Build's result as sorted KEY=VALUE pairs.
func (b EnvBuilder) Environ(programPath string) []string {
	env := b.Build(programPath)
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

func (b EnvBuilder) allowed(key string) bool {
	p := b.Platform
	match := func(a, b string) bool { return a == b }
	hasPrefix := strings.HasPrefix
	if p.Family == FamilyWindows {
		match = strings.EqualFold
		hasPrefix = func(s, prefix string) bool {
			return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
		}
	}
	for _, name := range p.EnvAllowList {
		if match(key, name) {
			return true
		}
	}
	for _, prefix := range p.EnvAllowPrefixes {
		if hasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// pathKey keeps the inherited spelling of PATH on Windows, where the process
// usually carries it as "Path".
func (b EnvBuilder) pathKey(env map[string]string) string {
	if b.Platform.Family == FamilyWindows {
		for k := range env {
			if strings.EqualFold(k, "PATH") {
				return k
			}
		}
	}
	return "PATH"
}

func (b EnvBuilder) rebuildPath() string {
	p := b.Platform
	var parts []string
	if current := p.Getenv("PATH"); current != "" {
		parts = append(parts, current)
	}
	if dir := LatestVersionManagerBin(p.VersionManagerRoot); dir != "" {
		parts = append(parts, dir)
	}
	for _, dir := range p.ToolchainDirs {
		if _, err := os.Stat(dir); err == nil {
			parts = append(parts, dir)
		}
	}
	return strings.Join(parts, p.ListSeparator)
}

func (b EnvBuilder) versionManagerBin(programPath string) string {
	p := b.Platform
	if p.VersionManagerMarker == "" || !strings.Contains(programPath, p.VersionManagerMarker) {
		return ""
	}
	return p.Dir(programPath)
}

// LatestVersionManagerBin returns the bin directory of the highest "v*"
// runtime under root, or "" when there is none.
func LatestVersionManagerBin(root string) string {
	if root == "" {
		return ""
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return ""
	}
	var best string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "v") {
			continue
		}
		if best == "" || CompareVersions(name[1:], best[1:]) > 0 {
			best = name
		}
	}
	if best == "" {
		return ""
	}
	return filepath.Join(root, best, "bin")
}

func containsElement(list, elem, sep string) bool {
	if list == "" {
		return false
	}
	for _, part := range strings.Split(list, sep) {
		if part == elem {
			return true
		}
	}
	return false
}
