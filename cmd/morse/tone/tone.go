// Package tone plays single tones on an audio sink with cooperative
// cancellation.
package tone

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gigurra/dahdit/cmd/morse/abort"
)

var ErrUnknownShape = errors.New("unknown waveform shape")

// Shape is the oscillator waveform.
type Shape string

const (
	Sine     Shape = "sine"
	Square   Shape = "square"
	Triangle Shape = "triangle"
	Sawtooth Shape = "sawtooth"
)

var Shapes = []Shape{Sine, Square, Triangle, Sawtooth}

func ParseShape(s string) (Shape, error) {
	shape := Shape(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Shapes {
		if shape == known {
			return shape, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownShape, s)
}

// Tone describes one sound. Volume is 0.0 to 1.0.
type Tone struct {
	Frequency float64
	Shape     Shape
	Duration  time.Duration
	Volume    float64
}

// Handle is a tone that has started sounding.
type Handle interface {
	// Done is closed once the tone is silent, whether it ran to the end or
	// was stopped.
	Done() <-chan struct{}
	// Stop silences the tone early. Safe to call more than once and after Done.
	Stop()
}

// Sink emits tones.
type Sink interface {
	Start(t Tone) (Handle, error)
}

// Player plays tones on a sink, one per call.
type Player struct {
	sink   Sink
	logger *slog.Logger
}

func NewPlayer(sink Sink, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{sink: sink, logger: logger}
}

// Play sounds t and blocks until it ends. It returns abort.ErrCancelled if
// token is signaled before the tone starts or while it sounds; in the latter
// case the tone is stopped and Play returns only after it is silent.
func (p *Player) Play(token *abort.Token, t Tone) error {
	if err := token.Check(); err != nil {
		return err
	}

	p.logger.Debug("playing tone", "frequency", t.Frequency, "shape", t.Shape, "duration", t.Duration, "volume", t.Volume)

	h, err := p.sink.Start(t)
	if err != nil {
		return fmt.Errorf("failed to start tone: %w", err)
	}

	// Exactly one of natural completion and cancellation wins.
	var settled atomic.Bool
	cancelled := make(chan struct{})
	unregister := token.OnSignaled(func() {
		if settled.CompareAndSwap(false, true) {
			h.Stop()
			close(cancelled)
		}
	})
	defer unregister()

	select {
	case <-h.Done():
		if settled.CompareAndSwap(false, true) {
			return nil
		}
		<-cancelled
	case <-cancelled:
		<-h.Done()
	}

	p.logger.Debug("tone stopped early")
	return abort.ErrCancelled
}
