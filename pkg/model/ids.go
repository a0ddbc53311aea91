package model

import "sync"

// IDGenerator hands out monotonically increasing line-item identifiers scoped
// to a single editing session. Each editor instance owns its own generator so
// two open documents never share a counter.
type IDGenerator struct {
	mu   sync.Mutex
	next int
}

// NewIDGenerator starts a generator whose first Next call returns 1, or one
// past the highest id already present in seed.
func NewIDGenerator(seed ...LineItem) *IDGenerator {
	g := &IDGenerator{next: 1}
	for _, item := range seed {
		if item.ID >= g.next {
			g.next = item.ID + 1
		}
	}
	return g
}

// Next returns the next identifier.
func (g *IDGenerator) Next() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.next
	g.next++
	return id
}
