package binary

import (
	"slices"
	"strings"
)

var sourcePreference = map[string]int{
	"which":          1,
	"where":          1,
	"homebrew-arm":   2,
	"homebrew-intel": 2,
	"homebrew":       3,
	"usr-local":      4,
	"system":         5,
	"nvm":            6,
	"local-bin":      7,
	"claude-local":   8,
	"npm-global":     9,
	"yarn":           10,
	"yarn-global":    10,
	"bun":            11,
	"pnpm":           12,
	"node-modules":   13,
	"home-bin":       14,
	"snap":           15,
	"flatpak-system": 16,
	"flatpak-user":   17,
	"appimage-user":  18,
	"macports":       19,
	SourcePATH:       20,
}

const unknownPreference = 21

// SourcePreference ranks a discovery source for display; lower is preferred.
// A parenthesised qualifier such as "nvm (v20.1.0)" is ignored.
func SourcePreference(source string) int {
	if idx := strings.Index(source, " ("); idx >= 0 {
		source = source[:idx]
	}
	if rank, ok := sourcePreference[source]; ok {
		return rank
	}
	return unknownPreference
}

// Select picks the installation to use automatically. Versioned beats
// unversioned, higher versions beat lower ones, and among unversioned
// installations a qualified path beats a bare command name. Ties keep the
// earliest candidate.
func Select(installs []Installation) (Installation, bool) {
	if len(installs) == 0 {
		return Installation{}, false
	}
	best := installs[0]
	for _, candidate := range installs[1:] {
		if compareForSelection(candidate, best) > 0 {
			best = candidate
		}
	}
	return best, true
}

func compareForSelection(a, b Installation) int {
	switch {
	case a.HasVersion() && b.HasVersion():
		return CompareVersions(a.Version, b.Version)
	case a.HasVersion():
		return 1
	case b.HasVersion():
		return -1
	}
	aBare, bBare := isBareName(a.Path), isBareName(b.Path)
	switch {
	case aBare == bBare:
		return 0
	case bBare:
		return 1
	default:
		return -1
	}
}

// SortForDisplay orders installations for a human chooser: versioned first
// by descending version, then by source preference. Unversioned entries are
// ordered by source preference only.
func SortForDisplay(installs []Installation) []Installation {
	out := slices.Clone(installs)
	slices.SortStableFunc(out, func(a, b Installation) int {
		switch {
		case a.HasVersion() && b.HasVersion():
			if c := CompareVersions(b.Version, a.Version); c != 0 {
				return c
			}
		case a.HasVersion():
			return -1
		case b.HasVersion():
			return 1
		}
		return SourcePreference(a.Source) - SourcePreference(b.Source)
	})
	return out
}

func isBareName(path string) bool {
	return !strings.ContainsAny(path, `/\`)
}
