// Package overlay composites a foreground box on top of a rendered background.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Position is where the foreground lands.
type Position int

const (
	Center Position = iota
	Top
	Bottom
)

// Config describes the canvas.
type Config struct {
	Width    int
	Height   int
	Position Position
	// PadY offsets Top and Bottom placement from the edge.
	PadY int
}

// Place draws fg over bg. Background cells under the foreground are
// replaced; everything else, including ANSI styling, is kept.
func Place(cfg Config, fg, bg string) string {
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")

	height := cfg.Height
	if height < len(bgLines) {
		height = len(bgLines)
	}
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	fgWidth := 0
	for _, l := range fgLines {
		if w := ansi.StringWidth(l); w > fgWidth {
			fgWidth = w
		}
	}
	width := cfg.Width
	if width <= 0 {
		for _, l := range bgLines {
			if w := ansi.StringWidth(l); w > width {
				width = w
			}
		}
	}

	x := max(0, (width-fgWidth)/2)
	var y int
	switch cfg.Position {
	case Top:
		y = cfg.PadY
	case Bottom:
		y = height - len(fgLines) - cfg.PadY
	default:
		y = (height - len(fgLines)) / 2
	}
	y = max(0, y)

	for i, fl := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = spliceLine(bgLines[row], fl, x, fgWidth)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLine replaces columns [x, x+w) of line with fg, padding fg to w.
func spliceLine(line, fg string, x, w int) string {
	left := ansi.Truncate(line, x, "")
	if pad := x - ansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}
	if pad := w - ansi.StringWidth(fg); pad > 0 {
		fg += strings.Repeat(" ", pad)
	}
	right := ""
	if ansi.StringWidth(line) > x+w {
		right = ansi.TruncateLeft(line, x+w, "")
	}
	return left + "\x1b[0m" + fg + "\x1b[0m" + right
}
