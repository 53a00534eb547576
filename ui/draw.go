package ui

import (
	"math"

	"github.com/mattn/go-runewidth"
	tm "github.com/nsf/termbox-go"
)

var (
	symHorizontal = '─'
	symBar        = '▓'
)

func init() {
	if runewidth.IsEastAsian() {
		symHorizontal = '-'
		symBar = '#'
	}
}

// cells lays text out from x, giving wide runes two columns, and returns the
// columns used.
func cells(x, y int, text string, fg, bg tm.Attribute) int {
	col := 0
	for _, r := range text {
		tm.SetCell(x+col, y, r, fg, bg)
		col += runewidth.RuneWidth(r)
	}
	return col
}

func printHLineText(x, y, w int, text string) {
	for i := 0; i < w; i++ {
		tm.SetCell(x+i, y, symHorizontal, tm.ColorWhite, tm.ColorDefault)
	}
	offset := (w - runewidth.StringWidth(text)) / 2
	cells(x+offset, y, text, tm.ColorWhite, tm.ColorDefault)
}

func printText(x, y, w int, text string, fg, bg tm.Attribute) {
	for i := 0; i < w; i++ {
		tm.SetCell(x+i, y, ' ', fg, bg)
	}
	cells(x, y, runewidth.Truncate(text, w, ""), fg, bg)
}

func printCenterText(x, y, w int, text string, fg, bg tm.Attribute) {
	for i := 0; i < w; i++ {
		tm.SetCell(x+i, y, ' ', fg, bg)
	}
	offset := (w - runewidth.StringWidth(text)) / 2
	if offset < 0 {
		offset = 0
	}
	cells(x+offset, y, runewidth.Truncate(text, w, ""), fg, bg)
}

// barWidth maps usage onto a logarithmic bar of at most w cells, one cell per
// decade above scale.
func barWidth(usage, scale uint64, w int) int {
	if usage < scale || scale == 0 {
		return 0
	}
	barw := int(math.Log10(float64(usage)/float64(scale))) + 1
	if barw > w {
		barw = w
	}
	return barw
}

func printUsageBar(x, y, w int, usage, scale uint64, clr tm.Attribute) {
	barw := barWidth(usage, scale, w)
	for j := 0; j < w; j++ {
		tm.SetCell(x+j, y, symBar, clr, tm.ColorDefault)
	}
	for j := 0; j < barw; j++ {
		tm.SetCell(x+j, y, symBar, clr|tm.AttrBold, clr)
	}
}
