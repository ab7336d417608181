package pivot

import (
	"runtime"
	"sync"
)

// parallelThreshold is the vertex count from which mesh transforms are split across workers
const parallelThreshold = 8192

// task splits [0, n) into contiguous chunks and runs fn once per chunk, each in its own goroutine
func task(workersCount, n int, fn func(start, end int)) {
	if workersCount < 1 {
		workersCount = 1
	}

	var wg sync.WaitGroup
	chunkSize := (n + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		start := workerID * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}

func workersFor(n int) int {
	if n < parallelThreshold {
		return 1
	}
	return runtime.NumCPU()
}
