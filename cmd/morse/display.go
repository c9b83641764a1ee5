package morse

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gigurra/dahdit/cmd/morse/playback"
)

var (
	sentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	currentStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	symbolStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// display redraws one terminal line per playback, highlighting the character
// being keyed.
type display struct {
	out io.Writer
}

func newDisplay(out io.Writer) *display {
	return &display{out: out}
}

func (d *display) Observe(e playback.Event) {
	runes := []rune(e.Text)

	var b strings.Builder
	b.WriteString("\r\033[K")
	b.WriteString(sentStyle.Render(string(runes[:e.CharIndex])))
	b.WriteString(currentStyle.Render(string(e.Char)))
	b.WriteString(pendingStyle.Render(string(runes[e.CharIndex+1:])))
	if e.MorseChar != "" {
		b.WriteString("  ")
		b.WriteString(symbolStyle.Render(e.MorseChar))
	}
	fmt.Fprint(d.out, b.String())
}

// Finish ends the line.
func (d *display) Finish() {
	fmt.Fprintln(d.out)
}
