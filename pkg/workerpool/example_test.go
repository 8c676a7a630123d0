package workerpool_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/vnykmshr/taskloop/pkg/workerpool"
)

func ExamplePool() {
	pool := workerpool.New(2, 8)

	var wg sync.WaitGroup
	var processed int32
	for i := 0; i < 4; i++ {
		wg.Add(1)
		_ = pool.Submit(workerpool.TaskFunc(func(_ context.Context) error {
			defer wg.Done()
			atomic.AddInt32(&processed, 1)
			return nil
		}))
	}

	wg.Wait()
	<-pool.Shutdown()
	fmt.Println(atomic.LoadInt32(&processed))
	// Output: 4
}
