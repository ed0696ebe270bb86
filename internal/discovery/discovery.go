// Package discovery implements file-pattern matching for corpus discovery:
// extension filtering and include/exclude glob patterns against relative
// paths, using doublestar for "**" support.
package discovery

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// HasExtension reports whether path's extension matches one of extensions
// case-insensitively. An empty extensions list matches everything.
func HasExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	for _, e := range extensions {
		if strings.EqualFold(ext, strings.TrimPrefix(e, ".")) {
			return true
		}
	}
	return false
}

// MatchesAny reports whether path matches any of the doublestar glob
// patterns. An empty pattern list matches nothing.
func MatchesAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}
	return false
}

// ShouldInclude reports whether a relative path passes an include/exclude
// glob filter: included when either no include patterns are given or at
// least one matches, and not excluded by any exclude pattern.
func ShouldInclude(rel string, includePatterns, excludePatterns []string) bool {
	if len(includePatterns) > 0 && !MatchesAny(includePatterns, rel) {
		return false
	}
	return !MatchesAny(excludePatterns, rel)
}
