// Package callsign generates synthetic amateur radio call signs.
package callsign

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/atotto/clipboard"
	"github.com/gigurra/dahdit/cmd/common"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var clipboardWriteAll = clipboard.WriteAll

type Params struct {
	Count  int    `short:"n" help:"Number of call signs to generate." default:"1"`
	Format string `short:"f" help:"Render this format instead of the weighted table (L letter, N digit, / literal)." optional:"true"`
	Clip   bool   `short:"c" help:"Also copy the generated call signs to the clipboard." default:"false"`
	Stats  int    `help:"Sample this many call signs and print how often each format bucket was drawn." default:"0"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "callsign",
		Short:       "Generate random amateur radio call signs",
		Long:        "Generate random ham call signs from a weighted table of common formats, or from a custom format.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			common.Setup()
			if err := Run(params, defaultGenerator.WithLogger(common.Logger("callsign")), os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "callsign: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func Run(params *Params, g *Generator, stdout io.Writer) error {
	if params.Stats > 0 {
		return printStats(g, params.Stats, stdout)
	}
	if params.Count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", params.Count)
	}

	var calls []string
	if params.Format != "" {
		format := strings.ToUpper(params.Format)
		if err := ValidateFormat(format); err != nil {
			return err
		}
		for i := 0; i < params.Count; i++ {
			call, err := Render(g.src, format)
			if err != nil {
				return err
			}
			calls = append(calls, call)
		}
	} else {
		for call := range g.CallSigns() {
			calls = append(calls, call)
			if len(calls) == params.Count {
				break
			}
		}
	}

	for _, call := range calls {
		fmt.Fprintln(stdout, call)
	}

	if params.Clip {
		if err := clipboardWriteAll(strings.Join(calls, "\n")); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
	}
	return nil
}

func printStats(g *Generator, n int, stdout io.Writer) error {
	stats, err := g.Sample(n)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Bucket", "Weight", "Formats", "Drawn", "Configured", "Observed"})
	for _, s := range stats {
		t.AppendRow(table.Row{
			s.Index,
			s.Weight,
			s.Formats,
			s.Count,
			fmt.Sprintf("%.2f%%", 100*s.Configured),
			fmt.Sprintf("%.2f%%", 100*s.Observed),
		})
	}
	t.AppendFooter(table.Row{"", "", "", n, "", ""})
	t.Render()
	return nil
}
