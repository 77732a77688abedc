package assets

import (
	"net/url"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PathSet collects unique asset paths for one scan.
// Paths keep the order in which they were first added.
type PathSet struct {
	order    []string
	seen     map[string]struct{}
	excludes []string
	skipped  int
}

// NewPathSet creates an empty set. Paths matching any of the doublestar
// exclude patterns (matched without the leading slash) are never added.
func NewPathSet(excludes []string) *PathSet {
	valid := make([]string, 0, len(excludes))
	for _, pattern := range excludes {
		pattern = strings.TrimPrefix(strings.TrimSpace(pattern), "/")
		if pattern != "" && doublestar.ValidatePattern(pattern) {
			valid = append(valid, pattern)
		}
	}

	return &PathSet{
		seen:     make(map[string]struct{}),
		excludes: valid,
	}
}

// Add inserts an already-normalized path
func (s *PathSet) Add(path string) bool {
	if _, ok := s.seen[path]; ok {
		return false
	}
	if s.excluded(path) {
		return false
	}

	s.seen[path] = struct{}{}
	s.order = append(s.order, path)
	return true
}

// AddReference normalizes ref against base and inserts the result.
// Resolution failures are counted and otherwise ignored.
func (s *PathSet) AddReference(base *url.URL, ref string) bool {
	path, err := Normalize(base, ref)
	if err != nil {
		s.skipped++
		return false
	}
	return s.Add(path)
}

// Paths returns the collected paths in insertion order
func (s *PathSet) Paths() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of unique paths
func (s *PathSet) Len() int {
	return len(s.order)
}

// Skipped returns how many references were dropped during normalization
func (s *PathSet) Skipped() int {
	return s.skipped
}

func (s *PathSet) excluded(path string) bool {
	if len(s.excludes) == 0 {
		return false
	}

	trimmed := strings.TrimPrefix(path, "/")
	for _, pattern := range s.excludes {
		if ok, _ := doublestar.Match(pattern, trimmed); ok {
			return true
		}
	}
	return false
}
