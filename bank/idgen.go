/*
idgen.go - Identifier allocation

PURPOSE:
  Two allocation strategies, chosen per entity kind by convention:

  Sequential: "{kind}_{n}", n starting at 1 per kind. Deterministic across a
  run; used where reproducibility matters (scenario fixtures).

  Random token: "{prefix}_{8 hex chars}". Used for entities created in
  response to external actor actions (payees PY, payment requests PR,
  transactions TX, disputes DP, parked tasks PT) so identifiers are
  unguessable. Collision probability per call is 1/16^8; the generator
  re-rolls if a token was already issued by this generator.

  Uniqueness is scoped to a single store instance's lifetime.
*/
package bank

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

type IDGenerator struct {
	mu       sync.Mutex
	counters map[string]int
	issued   map[string]bool
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{
		counters: make(map[string]int),
		issued:   make(map[string]bool),
	}
}

// Next returns the next sequential id for kind: "{kind}_{n}".
func (g *IDGenerator) Next(kind string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.counters[kind]++
	id := fmt.Sprintf("%s_%d", kind, g.counters[kind])
	g.issued[id] = true
	return id
}

// Token returns a random short token id: "{prefix}_{8 hex chars}".
func (g *IDGenerator) Token(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	for {
		u := uuid.New()
		id := fmt.Sprintf("%s_%x", prefix, u[:4])
		if !g.issued[id] {
			g.issued[id] = true
			return id
		}
	}
}

// Reserve marks an externally supplied id (e.g. loaded from a snapshot) as
// issued so Token never collides with it.
func (g *IDGenerator) Reserve(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.issued[id] = true
}
