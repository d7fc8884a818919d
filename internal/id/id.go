// Package id generates ticket identifiers for registry instances.
//
// Ids are prefixed ULIDs ("tkt_01J..."): lexicographically sortable by
// creation time, unique without coordination, and recognizable in logs.
package id

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// TicketPrefix marks generated ticket ids.
const TicketPrefix = "tkt"

// Generator produces prefixed ULID ticket ids. Safe for concurrent use.
type Generator struct {
	mu      sync.Mutex // protects entropy
	entropy io.Reader
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the process-wide generator backed by crypto/rand.
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator(rand.Reader)
	})
	return defaultGenerator
}

// NewGenerator creates a generator with the given entropy source. Tests
// pass a deterministic reader.
func NewGenerator(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// TicketID returns a fresh prefixed ticket id.
func (g *Generator) TicketID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return TicketPrefix + "_" + ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}

// IsTicketID reports whether s looks like a generated ticket id.
func IsTicketID(s string) bool {
	const prefix = TicketPrefix + "_"
	if len(s) <= len(prefix) || s[:len(prefix)] != prefix {
		return false
	}
	_, err := ulid.Parse(s[len(prefix):])
	return err == nil
}
