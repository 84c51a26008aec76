package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSharedState_Counters(t *testing.T) {
	s := NewSharedState()
	assert.Equal(t, int64(0), s.SentRequests())
	assert.Equal(t, int64(0), s.ConcurrentScenarios())

	assert.Equal(t, int64(1), s.IncrSent())
	assert.Equal(t, int64(2), s.IncrSent())
	assert.Equal(t, int64(2), s.SentRequests())

	assert.Equal(t, int64(1), s.IncrConcurrent())
	assert.Equal(t, int64(2), s.IncrConcurrent())
	assert.Equal(t, int64(1), s.DecrConcurrent())
	assert.Equal(t, int64(1), s.ConcurrentScenarios())
}

func TestSharedState_ConcurrentAccess(t *testing.T) {
	s := NewSharedState()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.IncrSent()
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(100), s.SentRequests())
}
