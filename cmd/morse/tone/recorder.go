package tone

import (
	"io"
	"sync"
	"time"

	"github.com/gigurra/dahdit/cmd/morse/abort"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

// Recorder is both a Sink and an abort.Clock. Tones and waits are appended to
// an in-memory buffer as sound and silence, so a playback rendered through it
// runs as fast as it can compute while keeping exact timing.
type Recorder struct {
	mu      sync.Mutex
	format  beep.Format
	buffer  *beep.Buffer
	elapsed time.Duration
}

func NewRecorder(sampleRate int) *Recorder {
	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 2,
		Precision:   2,
	}
	return &Recorder{
		format: format,
		buffer: beep.NewBuffer(format),
	}
}

func (r *Recorder) Start(t Tone) (Handle, error) {
	stream, err := Streamer(r.format.SampleRate, t)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.buffer.Append(stream)
	r.elapsed += t.Duration
	r.mu.Unlock()

	h := &timedHandle{done: make(chan struct{}), timer: firedTimer{}}
	h.finish()
	return h, nil
}

func (r *Recorder) AfterFunc(d time.Duration, f func()) abort.Timer {
	r.mu.Lock()
	r.buffer.Append(beep.Silence(r.format.SampleRate.N(d)))
	r.elapsed += d
	r.mu.Unlock()

	go f()
	return firedTimer{}
}

// Duration is the total length recorded so far.
func (r *Recorder) Duration() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.elapsed
}

// Len is the number of samples recorded so far.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buffer.Len()
}

func (r *Recorder) Format() beep.Format {
	return r.format
}

// WriteWAV encodes everything recorded so far as a WAV file.
func (r *Recorder) WriteWAV(w io.WriteSeeker) error {
	r.mu.Lock()
	stream := r.buffer.Streamer(0, r.buffer.Len())
	r.mu.Unlock()
	return wav.Encode(w, stream, r.format)
}

type firedTimer struct{}

func (firedTimer) Stop() bool { return false }
