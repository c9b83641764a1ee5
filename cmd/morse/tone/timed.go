package tone

import (
	"sync"
	"time"

	"github.com/gigurra/dahdit/cmd/morse/abort"
)

// timedHandle is a silent stand-in for a sounding tone that lasts d on clock.
type timedHandle struct {
	done  chan struct{}
	once  sync.Once
	timer abort.Timer
}

func startTimed(clock abort.Clock, d time.Duration) *timedHandle {
	h := &timedHandle{done: make(chan struct{})}
	h.timer = clock.AfterFunc(d, h.finish)
	return h
}

func (h *timedHandle) Done() <-chan struct{} {
	return h.done
}

func (h *timedHandle) Stop() {
	h.timer.Stop()
	h.finish()
}

func (h *timedHandle) finish() {
	h.once.Do(func() { close(h.done) })
}
