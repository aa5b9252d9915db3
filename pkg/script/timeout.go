package script

import (
	"fmt"
	"sync"
	"time"

	"github.com/chazu/kerf/pkg/param"
)

// RunTimeout is the hard limit for a single script evaluation.
const RunTimeout = 5 * time.Second

// runResult is the internal type used to pass results through channels.
type runResult struct {
	store  *param.Store
	errors []EvalError
	err    error
}

// waitWithTimeout waits for a result from ch, returning a timeout error if
// evaluation exceeds RunTimeout. A generation counter discards stale
// results from superseded evaluations.
//
// On timeout the goroutine may still be running; the generation check
// ensures its result is discarded when it eventually completes.
func waitWithTimeout(
	ch <-chan runResult,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
) (*param.Store, []EvalError, error) {
	timer := time.NewTimer(RunTimeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			return nil, nil, fmt.Errorf("script run superseded by newer request")
		}
		return res.store, res.errors, res.err

	case <-timer.C:
		return nil, nil, fmt.Errorf("script evaluation timed out after %s", RunTimeout)
	}
}
