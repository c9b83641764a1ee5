//go:build (linux && cgo) || windows || darwin

package tone

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// AudioAvailable indicates whether the speaker sink produces real audio in
// this build.
const AudioAvailable = true

// SpeakerSink plays tones on the default audio device through beep's speaker.
type SpeakerSink struct {
	mu          sync.Mutex
	initialized bool
	sampleRate  beep.SampleRate
}

func NewSpeakerSink(sampleRate int) *SpeakerSink {
	return &SpeakerSink{sampleRate: beep.SampleRate(sampleRate)}
}

// initSpeaker initializes the speaker if not already done. A short buffer
// keeps Stop responsive.
func (s *SpeakerSink) initSpeaker() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(s.sampleRate, s.sampleRate.N(time.Second/50)); err != nil {
		return err
	}
	s.initialized = true
	return nil
}

func (s *SpeakerSink) Start(t Tone) (Handle, error) {
	if err := s.initSpeaker(); err != nil {
		return nil, err
	}

	stream, err := Streamer(s.sampleRate, t)
	if err != nil {
		return nil, err
	}

	h := &speakerHandle{
		ctrl: &beep.Ctrl{Streamer: stream},
		done: make(chan struct{}),
	}
	speaker.Play(beep.Seq(h.ctrl, beep.Callback(h.finish)))
	return h, nil
}

type speakerHandle struct {
	ctrl *beep.Ctrl
	done chan struct{}
	once sync.Once
}

func (h *speakerHandle) Done() <-chan struct{} {
	return h.done
}

// Stop drains the control so the mixer moves on to the completion callback.
func (h *speakerHandle) Stop() {
	speaker.Lock()
	h.ctrl.Streamer = nil
	speaker.Unlock()
}

func (h *speakerHandle) finish() {
	h.once.Do(func() { close(h.done) })
}
