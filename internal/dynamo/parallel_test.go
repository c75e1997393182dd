package dynamo

import (
	"sync/atomic"
	"testing"
)

func TestParallelFor_CoversRangeOnce(t *testing.T) {
	tests := []struct {
		name              string
		n, chunk, workers int
	}{
		{"inline", 10, 64, 4},
		{"split", 10201, 64, 4},
		{"one worker", 500, 1, 1},
		{"default workers", 1000, 8, 0},
		{"uneven", 7, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := make([]int32, tt.n)
			ParallelFor(tt.n, tt.chunk, tt.workers, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&hits[i], 1)
				}
			})
			for i, h := range hits {
				if h != 1 {
					t.Fatalf("index %d visited %d times", i, h)
				}
			}
		})
	}
}

func TestParallelFor_Empty(t *testing.T) {
	called := false
	ParallelFor(0, 1, 4, func(start, end int) { called = true })
	if called {
		t.Error("fn called for empty range")
	}
}
