package binary

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var versionRegex = regexp.MustCompile(`\d+\.\d+\.\d+(?:-[a-zA-Z0-9.-]+)?(?:\+[a-zA-Z0-9.-]+)?`)

// CompareVersions orders two dotted numeric versions, returning -1, 0 or +1.
//
// Each dot-separated segment contributes only its leading run of digits, so
// "17-beta" compares as 17 and anything after the first non-digit is ignored.
// Missing segments count as zero. Pre-release and build metadata never affect
// the order, so this is not semantic versioning.
func CompareVersions(a, b string) int {
	aParts := numericSegments(a)
	bParts := numericSegments(b)
	n := max(len(aParts), len(bParts))
	for i := 0; i < n; i++ {
		var av, bv uint64
		if i < len(aParts) {
			av = aParts[i]
		}
		if i < len(bParts) {
			bv = bParts[i]
		}
		if av < bv {
			return -1
		}
		if av > bv {
			return 1
		}
	}
	return 0
}

func numericSegments(version string) []uint64 {
	segments := strings.Split(version, ".")
	parts := make([]uint64, 0, len(segments))
	for _, seg := range segments {
		end := 0
		for end < len(seg) && seg[end] >= '0' && seg[end] <= '9' {
			end++
		}
		val, err := strconv.ParseUint(seg[:end], 10, 64)
		if err != nil {
			val = 0
		}
		parts = append(parts, val)
	}
	return parts
}

// ExtractVersion returns the first major.minor.patch run, including any
// pre-release or build suffix, found in raw process output.
func ExtractVersion(output []byte) (string, bool) {
	match := versionRegex.FindString(decodeOutput(output))
	if match == "" {
		return "", false
	}
	return match, true
}

// decodeOutput turns child process output into text without ever failing.
// A UTF-16 BOM switches decoding to UTF-16; invalid UTF-8 sequences become
// U+FFFD.
func decodeOutput(output []byte) string {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	text, _, err := transform.Bytes(decoder, output)
	if err != nil {
		return strings.ToValidUTF8(string(output), "\uFFFD")
	}
	return string(text)
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return strings.TrimRight(text[:idx], "\r")
	}
	return text
}
