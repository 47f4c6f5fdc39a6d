// Package identity provides the injected id-generation strategy used by the
// bounded contexts, so tests can supply deterministic identifiers.
package identity

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator produces entity identifiers.
type Generator interface {
	NewID() string
}

var _ Generator = UUIDGenerator{}
var _ Generator = (*SequenceGenerator)(nil)

// UUIDGenerator issues random UUIDv4 identifiers. Production default.
type UUIDGenerator struct{}

// NewID returns a fresh UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequenceGenerator issues prefixed incrementing identifiers. Intended for
// tests and fixtures where ids must be predictable.
type SequenceGenerator struct {
	prefix string
	mu     sync.Mutex
	next   int64
}

// NewSequenceGenerator starts a sequence at 1 with the given prefix.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

// NewID returns the next id in the sequence.
func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next)
}
