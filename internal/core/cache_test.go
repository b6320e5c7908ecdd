package core

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/groupx/internal/primitives"
)

func TestDerivedCacheConcurrent(t *testing.T) {
	g := mustGroup(t, mustDef(primitives.Alternating(4)))
	subs, err := g.Subgroups()
	require.NoError(t, err)

	const N = 50
	results := make([]*Quotient, N)
	var wg sync.WaitGroup
	for i := 0; i < N; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			q, err := g.QuotientGroup(len(subs) - 2)
			assert.NoError(t, err)
			results[i] = q
			_, err = g.SubgroupAsGroup(i % len(subs))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	for _, q := range results {
		assert.Same(t, results[0], q)
	}
}
