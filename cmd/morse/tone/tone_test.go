package tone

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gigurra/dahdit/cmd/morse/abort"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

type fakeHandle struct {
	mu    sync.Mutex
	done  chan struct{}
	once  sync.Once
	stops int
}

func newFakeHandle() *fakeHandle {
	return &fakeHandle{done: make(chan struct{})}
}

func (h *fakeHandle) Done() <-chan struct{} { return h.done }

func (h *fakeHandle) Stop() {
	h.mu.Lock()
	h.stops++
	h.mu.Unlock()
	h.finish()
}

func (h *fakeHandle) finish() { h.once.Do(func() { close(h.done) }) }

func (h *fakeHandle) stopCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stops
}

type fakeSink struct {
	started chan *fakeHandle
	tones   []Tone
	err     error
}

func newFakeSink() *fakeSink {
	return &fakeSink{started: make(chan *fakeHandle, 16)}
}

func (s *fakeSink) Start(t Tone) (Handle, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.tones = append(s.tones, t)
	h := newFakeHandle()
	s.started <- h
	return h, nil
}

var testTone = Tone{Frequency: 700, Shape: Sine, Duration: 60 * time.Millisecond, Volume: 0.5}

func TestPlayerNaturalCompletion(t *testing.T) {
	sink := newFakeSink()
	player := NewPlayer(sink, nil)
	token := abort.NewToken()

	errCh := make(chan error, 1)
	go func() { errCh <- player.Play(token, testTone) }()

	h := <-sink.started
	h.finish()
	if err := <-errCh; err != nil {
		t.Fatalf("Play() = %v, want nil", err)
	}

	token.Signal()
	if h.stopCount() != 0 {
		t.Errorf("finished tone was stopped %d times, want 0", h.stopCount())
	}
	if len(sink.tones) != 1 || sink.tones[0] != testTone {
		t.Errorf("sink got %v, want [%v]", sink.tones, testTone)
	}
}

func TestPlayerPreSignaled(t *testing.T) {
	sink := newFakeSink()
	player := NewPlayer(sink, nil)
	token := abort.NewToken()
	token.Signal()

	if err := player.Play(token, testTone); !errors.Is(err, abort.ErrCancelled) {
		t.Errorf("Play() = %v, want ErrCancelled", err)
	}
	if len(sink.tones) != 0 {
		t.Errorf("sink started %d tones, want 0", len(sink.tones))
	}
}

func TestPlayerCancelledMidTone(t *testing.T) {
	sink := newFakeSink()
	player := NewPlayer(sink, nil)
	token := abort.NewToken()

	errCh := make(chan error, 1)
	go func() { errCh <- player.Play(token, testTone) }()

	h := <-sink.started
	token.Signal()

	if err := <-errCh; !errors.Is(err, abort.ErrCancelled) {
		t.Errorf("Play() = %v, want ErrCancelled", err)
	}
	if h.stopCount() != 1 {
		t.Errorf("tone stopped %d times, want 1", h.stopCount())
	}
}

func TestPlayerSinkError(t *testing.T) {
	sink := newFakeSink()
	sink.err = errors.New("no device")
	player := NewPlayer(sink, nil)

	err := player.Play(abort.NewToken(), testTone)
	if !errors.Is(err, sink.err) {
		t.Errorf("Play() = %v, want wrapped %v", err, sink.err)
	}
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		input    string
		expected Shape
		wantErr  bool
	}{
		{"sine", Sine, false},
		{" Square ", Square, false},
		{"TRIANGLE", Triangle, false},
		{"sawtooth", Sawtooth, false},
		{"custom", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		shape, err := ParseShape(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseShape(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownShape) {
			t.Errorf("ParseShape(%q) error = %v, want ErrUnknownShape", tt.input, err)
		}
		if shape != tt.expected {
			t.Errorf("ParseShape(%q) = %q, want %q", tt.input, shape, tt.expected)
		}
	}
}

func drain(s beep.Streamer) [][2]float64 {
	var all [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		all = append(all, buf[:n]...)
		if !ok {
			return all
		}
	}
}

func TestStreamerLengthAndVolume(t *testing.T) {
	sr := beep.SampleRate(44100)
	for _, shape := range Shapes {
		tone := Tone{Frequency: 600, Shape: shape, Duration: 100 * time.Millisecond, Volume: 0.25}
		s, err := Streamer(sr, tone)
		if err != nil {
			t.Fatalf("Streamer(%s) returned error: %v", shape, err)
		}
		samples := drain(s)
		if len(samples) != sr.N(tone.Duration) {
			t.Errorf("%s: %d samples, want %d", shape, len(samples), sr.N(tone.Duration))
		}
		peak := 0.0
		for _, smp := range samples {
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		if peak > 0.25+1e-9 || peak == 0 {
			t.Errorf("%s: peak %v, want in (0, 0.25]", shape, peak)
		}
		if samples[0][0] != 0 {
			t.Errorf("%s: first sample %v, want 0 (fade in)", shape, samples[0][0])
		}
	}
}

func TestStreamerClampsVolume(t *testing.T) {
	s, err := Streamer(44100, Tone{Frequency: 500, Shape: Square, Duration: 20 * time.Millisecond, Volume: 7})
	if err != nil {
		t.Fatalf("Streamer returned error: %v", err)
	}
	for _, smp := range drain(s) {
		if math.Abs(smp[0]) > 1 {
			t.Fatalf("sample %v exceeds full scale", smp[0])
		}
	}
}

func TestStreamerRejectsUnknownShape(t *testing.T) {
	_, err := Streamer(44100, Tone{Frequency: 500, Shape: "custom", Duration: time.Millisecond})
	if !errors.Is(err, ErrUnknownShape) {
		t.Errorf("Streamer error = %v, want ErrUnknownShape", err)
	}
}

func TestTimedHandleStop(t *testing.T) {
	h := startTimed(abort.SystemClock, time.Hour)
	h.Stop()
	h.Stop()
	select {
	case <-h.Done():
	default:
		t.Error("Done not closed after Stop")
	}
}

func TestTimedHandleFinishes(t *testing.T) {
	h := startTimed(abort.SystemClock, time.Millisecond)
	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("timed handle did not finish")
	}
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder(8000)
	player := NewPlayer(rec, nil)
	token := abort.NewToken()

	if err := player.Play(token, Tone{Frequency: 700, Shape: Sine, Duration: 100 * time.Millisecond, Volume: 1}); err != nil {
		t.Fatalf("Play() = %v", err)
	}
	if err := abort.Sleep(rec, token, 50*time.Millisecond); err != nil {
		t.Fatalf("Sleep() = %v", err)
	}

	if rec.Duration() != 150*time.Millisecond {
		t.Errorf("Duration() = %v, want 150ms", rec.Duration())
	}
	if want := 800 + 400; rec.Len() != want {
		t.Errorf("Len() = %d, want %d", rec.Len(), want)
	}

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := rec.WriteWAV(f); err != nil {
		t.Fatalf("WriteWAV() = %v", err)
	}
	f.Close()

	in, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()
	decoded, format, err := wav.Decode(in)
	if err != nil {
		t.Fatalf("wav.Decode() = %v", err)
	}
	defer decoded.Close()
	if format.SampleRate != 8000 {
		t.Errorf("decoded sample rate %d, want 8000", format.SampleRate)
	}
	if decoded.Len() != rec.Len() {
		t.Errorf("decoded %d samples, want %d", decoded.Len(), rec.Len())
	}
}
