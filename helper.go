// File: lixenwraith/tomldir/helper.go
package tomldir

import (
	"strconv"
	"strings"
)

// joinPath appends segment to a dotted prefix.
func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + "." + segment
}

// splitIndexed splits a dotted path, also turning bracketed indexes into
// segments: "runners[0].name" becomes ["runners", "0", "name"].
func splitIndexed(path string) []string {
	raw := strings.Split(path, ".")
	segments := make([]string, 0, len(raw))

	for _, s := range raw {
		var indexes []string
		for strings.HasSuffix(s, "]") {
			open := strings.LastIndexByte(s, '[')
			if open < 0 || !isIndex(s[open+1:len(s)-1]) {
				break
			}
			indexes = append(indexes, s[open+1:len(s)-1])
			s = s[:open]
		}
		if s != "" || len(indexes) == 0 {
			segments = append(segments, s)
		}
		// Collected innermost first
		for i := len(indexes) - 1; i >= 0; i-- {
			segments = append(segments, indexes[i])
		}
	}
	return segments
}

// isIndex reports whether s is an array index in the form the flattener
// renders: decimal digits without sign or leading zeros.
func isIndex(s string) bool {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// parseIndex converts segment to an index into an array of length n.
func parseIndex(segment string, n int) (int, bool) {
	if !isIndex(segment) {
		return 0, false
	}
	i, err := strconv.Atoi(segment)
	if err != nil || i >= n {
		return 0, false
	}
	return i, true
}

// isValidKeySegment checks if a single path segment can name a table key in Set.
func isValidKeySegment(s string) bool {
	return s != "" && !strings.ContainsAny(s, ".[]")
}
