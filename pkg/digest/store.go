// Package digest holds the expected-hash material a run is verified
// against. A Store is populated once from a release metadata source and
// is read-only afterward; downloads must never proceed without one.
package digest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cperrin88/relsync/pkg/errors"
)

// Store is an immutable mapping from artifact filename to the expected
// lowercase hex SHA-256 digest.
type Store struct {
	entries map[string]string
}

// NewStore builds a Store from filename → digest entries. Digests are
// normalized to lowercase.
func NewStore(entries map[string]string) *Store {
	normalized := make(map[string]string, len(entries))
	for name, sum := range entries {
		normalized[name] = strings.ToLower(strings.TrimSpace(sum))
	}
	return &Store{entries: normalized}
}

// Lookup returns the expected digest for filename. It returns
// errors.ErrMissingDigestEntry when no digest was recorded.
func (s *Store) Lookup(filename string) (string, error) {
	sum, ok := s.entries[filename]
	if !ok {
		return "", fmt.Errorf("%w: %s (available: %v)", errors.ErrMissingDigestEntry, filename, s.Filenames())
	}
	return sum, nil
}

// Len returns the number of recorded digests.
func (s *Store) Len() int {
	return len(s.entries)
}

// Filenames returns the sorted list of filenames with recorded digests.
func (s *Store) Filenames() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
