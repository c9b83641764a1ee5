package tone

import (
	"fmt"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
)

// Streamer renders t as a finite stereo stream at sample rate sr. The
// waveform fades in and out to avoid clicks.
func Streamer(sr beep.SampleRate, t Tone) (beep.Streamer, error) {
	osc, err := oscillator(sr, t.Shape, t.Frequency)
	if err != nil {
		return nil, err
	}

	samples := sr.N(t.Duration)
	fadeLen := samples / 20 // 5% fade
	if fadeLen < 10 {
		fadeLen = 10
	}
	if fadeLen > samples/2 {
		fadeLen = samples / 2
	}

	return &envelope{
		src:     osc,
		samples: samples,
		fadeLen: fadeLen,
		volume:  clampVolume(t.Volume),
	}, nil
}

func oscillator(sr beep.SampleRate, shape Shape, freq float64) (beep.Streamer, error) {
	var (
		s   beep.Streamer
		err error
	)
	switch shape {
	case Sine, "":
		s, err = generators.SineTone(sr, freq)
	case Square:
		s, err = generators.SquareTone(sr, freq)
	case Triangle:
		s, err = generators.TriangleTone(sr, freq)
	case Sawtooth:
		s, err = generators.SawtoothTone(sr, freq)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, shape)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid tone frequency %v Hz: %w", freq, err)
	}
	return s, nil
}

func clampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

type envelope struct {
	src      beep.Streamer
	samples  int
	position int
	fadeLen  int
	volume   float64
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	remaining := e.samples - e.position
	if remaining <= 0 {
		return 0, false
	}
	if len(samples) > remaining {
		samples = samples[:remaining]
	}

	n, ok = e.src.Stream(samples)
	for i := 0; i < n; i++ {
		gain := e.volume
		if e.position < e.fadeLen {
			gain *= float64(e.position) / float64(e.fadeLen)
		} else if e.position > e.samples-e.fadeLen {
			gain *= float64(e.samples-e.position) / float64(e.fadeLen)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	if !ok {
		e.position = e.samples
	}
	return n, n > 0
}

func (e *envelope) Err() error {
	return e.src.Err()
}
