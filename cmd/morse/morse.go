// Package morse is the dahdit morse command: text to Morse notation and
// back, with optional audio playback or WAV rendering.
package morse

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/dahdit/cmd/common"
	"github.com/gigurra/dahdit/cmd/morse/abort"
	"github.com/gigurra/dahdit/cmd/morse/cw"
	"github.com/gigurra/dahdit/cmd/morse/playback"
	"github.com/gigurra/dahdit/cmd/morse/tone"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type Params struct {
	Text   []string `pos:"true" optional:"true" help:"Text to encode/decode. If none provided, reads from stdin."`
	Decode bool     `short:"d" help:"Decode morse code to text." default:"false"`
	Beep   bool     `short:"b" help:"Play the text as audio while encoding (requires CGO on Linux)." default:"false"`
	WPM    float64  `short:"w" optional:"true" help:"Words per minute for playback. Defaults to the config file, then 20."`
	Freq   float64  `short:"f" optional:"true" help:"Tone frequency in Hz. Defaults to the config file, then 750."`
	Volume float64  `short:"v" optional:"true" help:"Volume from 0.0 to 1.0. Defaults to the config file, then 0.5."`
	Shape  string   `short:"s" optional:"true" help:"Waveform: sine, square, triangle or sawtooth."`
	Out    string   `short:"o" optional:"true" help:"Render the playback to this WAV file instead of waiting in real time."`
	Table  bool     `short:"t" help:"Print the symbol table and exit." default:"false"`
}

// ExitCancelled is the exit code after Ctrl-C stops a playback.
const ExitCancelled = 130

// Seams for tests.
var (
	newSpeakerSink = func(sampleRate int) tone.Sink { return tone.NewSpeakerSink(sampleRate) }
	isTerminal     = func(w io.Writer) bool {
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
)

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "morse",
		Short:       "Encode/decode and play Morse code",
		Long:        "Convert text to Morse code or decode Morse code back to text. Use -b for audio playback, -o to render a WAV file.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			cfg := common.Setup()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err := Run(ctx, params, cfg, os.Stdin, os.Stdout, os.Stderr)
			if errors.Is(err, abort.ErrCancelled) {
				stop()
				os.Exit(ExitCancelled)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "morse: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

// settings are the playback options after merging flags over the config file.
type settings struct {
	wpm        float64
	frequency  float64
	volume     float64
	shape      tone.Shape
	sampleRate int
}

func resolve(params *Params, cfg *common.Config) (settings, error) {
	s := settings{
		wpm:        cfg.Morse.WPM,
		frequency:  cfg.Morse.Frequency,
		volume:     cfg.Morse.Volume,
		sampleRate: cfg.Morse.SampleRate,
	}
	if params.WPM != 0 {
		s.wpm = params.WPM
	}
	if params.Freq != 0 {
		s.frequency = params.Freq
	}
	if params.Volume != 0 {
		s.volume = params.Volume
	}
	if s.frequency <= 0 {
		return s, fmt.Errorf("frequency must be positive, got %v", s.frequency)
	}
	if s.volume < 0 || s.volume > 1 {
		return s, fmt.Errorf("volume must be between 0.0 and 1.0, got %v", s.volume)
	}

	shape := cfg.Morse.Shape
	if params.Shape != "" {
		shape = params.Shape
	}
	parsed, err := tone.ParseShape(shape)
	if err != nil {
		return s, err
	}
	s.shape = parsed
	return s, nil
}

func (s settings) request(text string, token *abort.Token, observer playback.Observer) playback.Request {
	return playback.Request{
		Text:      text,
		WPM:       s.wpm,
		Frequency: s.frequency,
		Volume:    s.volume,
		Shape:     s.shape,
		Token:     token,
		Observer:  observer,
	}
}

// Run executes the morse command. It returns abort.ErrCancelled when ctx is
// cancelled during playback.
func Run(ctx context.Context, params *Params, cfg *common.Config, stdin io.Reader, stdout, stderr io.Writer) error {
	if params.Table {
		printSymbolTable(stdout)
		return nil
	}

	s, err := resolve(params, cfg)
	if err != nil {
		return err
	}

	token, release := abort.FromContext(ctx)
	defer release()

	r := &runner{
		params:   params,
		settings: s,
		token:    token,
		stdout:   stdout,
		stderr:   stderr,
		logger:   common.Logger("morse"),
	}
	if params.Out != "" {
		r.recorder = tone.NewRecorder(s.sampleRate)
	}
	if params.Beep {
		if !tone.AudioAvailable {
			fmt.Fprintln(stderr, "(Audio requires CGO on Linux. Using terminal bell...)")
		}
		r.speaker = playback.NewEngine(tone.NewPlayer(newSpeakerSink(s.sampleRate), r.logger), abort.SystemClock, r.logger)
		if isTerminal(stdout) {
			r.display = newDisplay(stdout)
		}
	}

	if len(params.Text) > 0 {
		err = r.line(strings.Join(params.Text, " "))
	} else {
		scanner := bufio.NewScanner(stdin)
		for err == nil && scanner.Scan() {
			err = r.line(scanner.Text())
		}
		if err == nil {
			err = scanner.Err()
		}
	}
	if err != nil {
		return err
	}

	if r.recorder != nil {
		return r.writeWAV(params.Out)
	}
	return nil
}

// runner handles input one line at a time.
type runner struct {
	params   *Params
	settings settings
	token    *abort.Token
	stdout   io.Writer
	stderr   io.Writer
	logger   *slog.Logger

	speaker  *playback.Engine
	display  *display
	recorder *tone.Recorder
	recorded int
}

func (r *runner) line(text string) error {
	if err := r.token.Check(); err != nil {
		return err
	}
	if r.params.Decode {
		fmt.Fprintln(r.stdout, cw.Decode(text))
		return nil
	}

	fmt.Fprintln(r.stdout, cw.Encode(text))

	if r.recorder != nil {
		if err := r.record(text); err != nil {
			return err
		}
	}
	if r.speaker != nil {
		var observer playback.Observer
		if r.display != nil {
			observer = r.display.Observe
		}
		err := r.speaker.PlayText(r.settings.request(text, r.token, observer))
		if r.display != nil {
			r.display.Finish()
		}
		return err
	}
	return nil
}

// record appends text to the WAV recording, separated from earlier lines by
// a word gap.
func (r *runner) record(text string) error {
	if playback.Normalize(text) == "" {
		return nil
	}
	if r.recorded > 0 {
		timing, err := cw.ComputeTiming(r.settings.wpm)
		if err != nil {
			return err
		}
		if err := abort.Sleep(r.recorder, r.token, timing.InterWord); err != nil {
			return err
		}
	}
	engine := playback.NewEngine(tone.NewPlayer(r.recorder, r.logger), r.recorder, r.logger)
	if err := engine.PlayText(r.settings.request(text, r.token, nil)); err != nil {
		return err
	}
	r.recorded++
	return nil
}

func (r *runner) writeWAV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := r.recorder.WriteWAV(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(r.stderr, "wrote %s (%s)\n", path, r.recorder.Duration())
	return nil
}
