package morse

import (
	"fmt"
	"io"
	"slices"

	"github.com/gigurra/dahdit/cmd/morse/cw"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
)

// symbolUnits is the keyed length of symbol in units, gaps between its
// elements included.
func symbolUnits(symbol string) int {
	if symbol == "" {
		return 0
	}
	elements := lo.SumBy([]rune(symbol), func(r rune) int {
		if r == cw.Dah {
			return 3
		}
		return 1
	})
	return elements + len(symbol) - 1
}

func printSymbolTable(out io.Writer) {
	chars := lo.Keys(cw.Symbols)
	slices.Sort(chars)

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Char", "Code", "Units"})
	for _, c := range chars {
		symbol := cw.Symbols[c]
		t.AppendRow(table.Row{string(c), symbol, symbolUnits(symbol)})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d symbols", len(chars)), ""})
	t.Render()
}
