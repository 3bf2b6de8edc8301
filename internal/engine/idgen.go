package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// IDGenerator produces placement identifiers.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator returns short random identifiers.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.New().String()[:8]
}

// SequenceGenerator returns monotonically numbered identifiers
// ("installed-1", "installed-2", ...). The zero value is ready to use.
type SequenceGenerator struct {
	Prefix string
	next   int
}

func (g *SequenceGenerator) NewID() string {
	g.next++
	prefix := g.Prefix
	if prefix == "" {
		prefix = "installed"
	}
	return fmt.Sprintf("%s-%d", prefix, g.next)
}
