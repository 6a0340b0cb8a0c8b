package script

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// ErrSuperseded is returned when a newer Evaluate call started before this one finished
	ErrSuperseded = errors.New("script: evaluation superseded by newer request")
	// ErrTimeout is returned when an evaluation exceeds the configured timeout
	ErrTimeout = errors.New("script: evaluation timed out")
)

// evalResult passes evaluation results through channels
type evalResult struct {
	library *Library
	errors  []EvalError
	err     error
}

// waitWithTimeout waits for a result from ch, but returns ErrTimeout if the
// evaluation exceeds timeout. A generation counter discards stale results
// from previous evaluations.
//
// On timeout the goroutine may still be running; the generation check
// ensures its result is discarded when it eventually completes.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	timeout time.Duration,
	mu *sync.Mutex,
	currentGen *uint64,
) (*Library, []EvalError, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			return nil, nil, ErrSuperseded
		}
		return res.library, res.errors, res.err

	case <-timer.C:
		return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
}
