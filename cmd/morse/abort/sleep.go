package abort

import (
	"sync/atomic"
	"time"
)

// Sleep waits for d on clock. It returns ErrCancelled without scheduling
// anything when token is already signaled, and returns ErrCancelled as soon as
// token is signaled during the wait, stopping the pending timer first.
func Sleep(clock Clock, token *Token, d time.Duration) error {
	if err := token.Check(); err != nil {
		return err
	}

	result := make(chan error, 1)
	var settled atomic.Bool

	timer := clock.AfterFunc(d, func() {
		if settled.CompareAndSwap(false, true) {
			result <- nil
		}
	})
	unregister := token.OnSignaled(func() {
		if settled.CompareAndSwap(false, true) {
			timer.Stop()
			result <- ErrCancelled
		}
	})
	defer unregister()

	return <-result
}
