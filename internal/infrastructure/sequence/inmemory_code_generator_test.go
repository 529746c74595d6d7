package sequence

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryCodeGenerator_Next(t *testing.T) {
	gen := NewInMemoryCodeGenerator()
	ctx := context.Background()

	code, err := gen.Next(ctx, "ORD")
	require.NoError(t, err)

	day := time.Now().UTC().Format("20060102")
	assert.Equal(t, fmt.Sprintf("ORD-%s-0001", day), code)

	code, err = gen.Next(ctx, "ORD")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("ORD-%s-0002", day), code)
}

func TestInMemoryCodeGenerator_IndependentPrefixes(t *testing.T) {
	gen := NewInMemoryCodeGenerator()
	ctx := context.Background()

	_, err := gen.Next(ctx, "ORD")
	require.NoError(t, err)

	code, err := gen.Next(ctx, "PUR")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(code, "-0001"), "each prefix keeps its own counter")
}

func TestInMemoryCodeGenerator_ConcurrentCallsAreUnique(t *testing.T) {
	gen := NewInMemoryCodeGenerator()
	ctx := context.Background()

	const workers = 50
	codes := make(chan string, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, err := gen.Next(ctx, "CSG")
			assert.NoError(t, err)
			codes <- code
		}()
	}
	wg.Wait()
	close(codes)

	seen := make(map[string]bool)
	for code := range codes {
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
	assert.Len(t, seen, workers)
}
