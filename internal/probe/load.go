package probe

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
)

// StartBackgroundLoad keeps workers goroutines busy with floating-point work
// until ctx is done or the returned stop function is called. stop waits for
// every worker to exit.
func StartBackgroundLoad(ctx context.Context, workers int) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var sink float64
			for ctx.Err() == nil {
				sink += busyWork(1000)
			}
			_ = sink
		}()
	}
	return func() {
		cancel()
		wg.Wait()
	}
}

// busyWork folds n rounds of nested tangents over a random seed.
func busyWork(n int) float64 {
	res := rand.Float64()
	for i := 0; i <= n; i++ {
		res = math.Tan(rand.Float64() * math.Tan(rand.Float64()*math.Tan(rand.Float64()*math.Tan(res+0.001))))
	}
	return res
}
