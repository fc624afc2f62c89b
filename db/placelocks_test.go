package db

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceLocks(t *testing.T) {
	locks := newPlaceLocks()
	a, b := 0, 0
	counters := map[string]*int{"a": &a, "b": &b}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		for _, placeID := range []string{"a", "b"} {
			wg.Add(1)
			go func(placeID string) {
				defer wg.Done()
				unlock := locks.Lock(placeID)
				defer unlock()
				value := *counters[placeID]
				*counters[placeID] = value + 1
			}(placeID)
		}
	}
	wg.Wait()
	assert.Equal(t, 50, a)
	assert.Equal(t, 50, b)
	assert.Zero(t, locks.size())
}

func TestPlaceLocks_Release(t *testing.T) {
	locks := newPlaceLocks()
	unlock := locks.Lock("a")
	assert.Equal(t, 1, locks.size())
	unlock()
	assert.Zero(t, locks.size())
}
