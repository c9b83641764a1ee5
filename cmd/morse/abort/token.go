// Package abort provides the cooperative cancellation primitives used by
// playback: a one-shot Token, a Clock abstraction and a cancellable Sleep.
package abort

import (
	"context"
	"errors"
	"sync"
)

var ErrCancelled = errors.New("cancelled")

// Token is a one-shot cancellation signal. Once signaled it stays signaled.
// The zero value is not usable; create tokens with NewToken.
type Token struct {
	mu        sync.Mutex
	signaled  bool
	done      chan struct{}
	listeners map[uint64]func()
	nextID    uint64
}

func NewToken() *Token {
	return &Token{
		done:      make(chan struct{}),
		listeners: make(map[uint64]func()),
	}
}

// FromContext returns a token that is signaled when ctx is done. The returned
// release func detaches the token from ctx without signaling it.
func FromContext(ctx context.Context) (*Token, func()) {
	token := NewToken()
	stop := context.AfterFunc(ctx, token.Signal)
	return token, func() { stop() }
}

// Signal marks the token as signaled and runs every registered listener once.
// Extra calls do nothing.
func (t *Token) Signal() {
	t.mu.Lock()
	if t.signaled {
		t.mu.Unlock()
		return
	}
	t.signaled = true
	close(t.done)
	listeners := t.listeners
	t.listeners = nil
	t.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

func (t *Token) IsSignaled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.signaled
}

// Done returns a channel that is closed when the token is signaled.
func (t *Token) Done() <-chan struct{} {
	return t.done
}

// OnSignaled registers fn to run once when the token becomes signaled. If it
// already is, fn runs immediately on the calling goroutine. The returned func
// removes the listener; calling it after fn ran is harmless.
func (t *Token) OnSignaled(fn func()) (unregister func()) {
	t.mu.Lock()
	if t.signaled {
		t.mu.Unlock()
		fn()
		return func() {}
	}
	id := t.nextID
	t.nextID++
	t.listeners[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.listeners != nil {
			delete(t.listeners, id)
		}
	}
}

// Check returns ErrCancelled if the token is already signaled.
func (t *Token) Check() error {
	if t.IsSignaled() {
		return ErrCancelled
	}
	return nil
}
