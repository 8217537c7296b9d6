package utils

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorkerPoolRunsAllJobs(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Stop()

	var counter atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		ok := pool.Submit(func() {
			defer wg.Done()
			counter.Add(1)
		})
		require.True(t, ok)
	}
	wg.Wait()

	require.Equal(t, int64(100), counter.Load())
}

func TestWorkerPoolSubmitAfterStop(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Stop()

	require.False(t, pool.Submit(func() {}))

	// Stopping again is safe.
	pool.Stop()
}

func TestWorkerPoolDefaultsWorkerCount(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Stop()

	done := make(chan struct{})
	require.True(t, pool.Submit(func() { close(done) }))
	<-done
}
