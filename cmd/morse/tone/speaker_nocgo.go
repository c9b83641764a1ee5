//go:build !((linux && cgo) || windows || darwin)

package tone

import (
	"fmt"
	"io"
	"os"

	"github.com/gigurra/dahdit/cmd/morse/abort"
)

// AudioAvailable indicates whether the speaker sink produces real audio in
// this build. Audio requires CGO on Linux; this build rings the terminal bell.
const AudioAvailable = false

// SpeakerSink rings the terminal bell at the start of each tone and holds it
// for the tone's duration.
type SpeakerSink struct {
	out   io.Writer
	clock abort.Clock
}

func NewSpeakerSink(sampleRate int) *SpeakerSink {
	return &SpeakerSink{out: os.Stderr, clock: abort.SystemClock}
}

func (s *SpeakerSink) Start(t Tone) (Handle, error) {
	fmt.Fprint(s.out, "\a")
	return startTimed(s.clock, t.Duration), nil
}
