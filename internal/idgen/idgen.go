package idgen

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator allocates a fresh unique identifier per call.
type Generator interface {
	NewID() string
}

type uuidGenerator struct{}

// NewUUID returns the production generator backed by random UUIDs.
func NewUUID() Generator {
	return uuidGenerator{}
}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}

// Sequence returns ids from a fixed prefix and an incrementing counter
// ("id-1", "id-2", ...). Deterministic, for tests.
type Sequence struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix, next: 1}
}

func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("%s-%d", s.prefix, s.next)
	s.next++
	return id
}

// Issued reports how many identifiers have been handed out so far.
func (s *Sequence) Issued() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next - 1
}
