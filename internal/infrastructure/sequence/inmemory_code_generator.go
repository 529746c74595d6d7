package sequence

import (
	"context"
	"fmt"
	"sync"
	"time"

	appdocument "github.com/salonops/backend/internal/application/document"
)

// InMemoryCodeGenerator issues document codes from process-local counters.
// Suitable for single-instance deployments and tests; distributed
// deployments should use RedisCodeGenerator instead.
type InMemoryCodeGenerator struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewInMemoryCodeGenerator creates a new in-memory generator
func NewInMemoryCodeGenerator() *InMemoryCodeGenerator {
	return &InMemoryCodeGenerator{
		counters: make(map[string]int64),
	}
}

// Next returns the next code for the given prefix
func (g *InMemoryCodeGenerator) Next(ctx context.Context, prefix string) (string, error) {
	day := time.Now().UTC().Format("20060102")
	key := prefix + ":" + day

	g.mu.Lock()
	g.counters[key]++
	seq := g.counters[key]
	g.mu.Unlock()

	return fmt.Sprintf("%s-%s-%04d", prefix, day, seq), nil
}

// Ensure InMemoryCodeGenerator implements CodeGenerator
var _ appdocument.CodeGenerator = (*InMemoryCodeGenerator)(nil)
