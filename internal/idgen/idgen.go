// Package idgen provides the identifier source used for zones, templates,
// task instances and history entries.
package idgen

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// Generator returns a new unique identifier with the given prefix.
type Generator interface {
	NewID(prefix string) string
}

// UUID generates "<prefix>-<uuid v4>" identifiers.
type UUID struct{}

func (UUID) NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// Sequence generates "<prefix>-1", "<prefix>-2", ... with one counter shared
// across prefixes. Tests use it for predictable ids.
type Sequence struct {
	mu sync.Mutex
	n  int
}

func (s *Sequence) NewID(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return prefix + "-" + strconv.Itoa(s.n)
}
