// Package playback turns text into a timed sequence of Morse tones and
// pauses.
package playback

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gigurra/dahdit/cmd/morse/abort"
	"github.com/gigurra/dahdit/cmd/morse/cw"
	"github.com/gigurra/dahdit/cmd/morse/tone"
	"github.com/google/uuid"
)

const wordSeparator = ' '

// Event describes the character about to be played.
type Event struct {
	Text      string   // normalized text being played
	MorseText []string // one symbol string per rune of Text, "" if unmapped
	CharIndex int      // rune index into Text and MorseText
	Char      rune     // the rune, or ' ' between words
	MorseChar string
}

// Observer is called synchronously before each character's tones and pauses.
// It must return quickly; the engine does not run it on another goroutine.
type Observer func(Event)

// Request is one playback. Token and Observer may be nil.
type Request struct {
	Text      string
	WPM       float64
	Frequency float64
	Volume    float64
	Shape     tone.Shape
	Token     *abort.Token
	Observer  Observer
}

// Engine plays requests through a tone player, using clock for the pauses
// between tones. An Engine holds no per-playback state and may serve
// concurrent calls.
type Engine struct {
	player *tone.Player
	clock  abort.Clock
	logger *slog.Logger
}

func NewEngine(player *tone.Player, clock abort.Clock, logger *slog.Logger) *Engine {
	if clock == nil {
		clock = abort.SystemClock
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{player: player, clock: clock, logger: logger}
}

// Normalize upper-cases text, trims it and collapses every whitespace run to
// a single space.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToUpper(text)), " ")
}

// PlayText plays req.Text as Morse and blocks until done. Errors from
// cw.ComputeTiming are returned before anything is played. Cancellation
// returns abort.ErrCancelled, with no tone sounding and no pause pending.
func (e *Engine) PlayText(req Request) error {
	timing, err := cw.ComputeTiming(req.WPM)
	if err != nil {
		return err
	}

	text := Normalize(req.Text)
	if text == "" {
		return nil
	}

	token := req.Token
	if token == nil {
		token = abort.NewToken()
	}
	observer := req.Observer
	if observer == nil {
		observer = func(Event) {}
	}

	morseText := cw.Translate(text, "")
	logger := e.logger.With("playback", uuid.NewString())
	logger.Info("playing morse", "text", text, "wpm", req.WPM, "frequency", req.Frequency, "volume", req.Volume, "shape", req.Shape)

	c := cursor{
		engine: e,
		logger: logger,
		token:  token,
		timing: timing,
		tone: tone.Tone{
			Frequency: req.Frequency,
			Shape:     req.Shape,
			Volume:    req.Volume,
		},
	}

	for i, char := range []rune(text) {
		observer(Event{
			Text:      text,
			MorseText: morseText,
			CharIndex: i,
			Char:      char,
			MorseChar: morseText[i],
		})

		if err := c.step(char, morseText[i]); err != nil {
			logger.Warn("playback stopped", "index", i, "error", err)
			return err
		}
	}

	logger.Info("playback complete")
	return nil
}

// cursor is the state of a single PlayText call.
type cursor struct {
	engine     *Engine
	logger     *slog.Logger
	token      *abort.Token
	timing     cw.Timing
	tone       tone.Tone
	insideWord bool
}

func (c *cursor) step(char rune, symbol string) error {
	switch {
	case char == wordSeparator:
		c.insideWord = false
		c.logger.Debug("pausing between words", "pause", c.timing.InterWord)
		return c.pause(c.timing.InterWord)

	case symbol != "":
		if c.insideWord {
			c.logger.Debug("pausing between characters", "pause", c.timing.InterChar)
			if err := c.pause(c.timing.InterChar); err != nil {
				return err
			}
		}
		c.insideWord = true

		c.logger.Debug("playing character", "char", string(char), "symbol", symbol)
		for i, unit := range symbol {
			if i > 0 {
				if err := c.pause(c.timing.IntraChar); err != nil {
					return err
				}
			}
			t := c.tone
			t.Duration = c.timing.ToneFor(unit)
			if err := c.engine.player.Play(c.token, t); err != nil {
				return err
			}
		}
	}

	// Unmapped characters produce nothing and keep the word state.
	return nil
}

func (c *cursor) pause(d time.Duration) error {
	return abort.Sleep(c.engine.clock, c.token, d)
}
