package identity

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence_StartsAtOne(t *testing.T) {
	seq := NewSequence(1)

	for _, want := range []string{"1", "2", "3"} {
		id, err := seq.Next()
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
}

func TestSequence_CustomStart(t *testing.T) {
	seq := NewSequence(100)

	id, err := seq.Next()
	require.NoError(t, err)
	assert.Equal(t, "100", id)
}

func TestSequence_ConcurrentUnique(t *testing.T) {
	seq := NewSequence(1)

	const workers, perWorker = 8, 250
	ids := make(chan string, workers*perWorker)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				id, err := seq.Next()
				assert.NoError(t, err)
				ids <- id
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{})
	for id := range ids {
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, workers*perWorker)
}

func TestUUID_Next(t *testing.T) {
	gen := NewUUID()

	a, err := gen.Next()
	require.NoError(t, err)
	b, err := gen.Next()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	_, err = uuid.Parse(a)
	assert.NoError(t, err)
}

func TestNew(t *testing.T) {
	gen, err := New("")
	require.NoError(t, err)
	assert.IsType(t, &Sequence{}, gen)

	gen, err = New(StrategyUUID)
	require.NoError(t, err)
	assert.IsType(t, UUID{}, gen)

	_, err = New("snowflake")
	assert.Error(t, err)
}
