package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func blank(w, h int) string {
	lines := make([]string, h)
	for i := range lines {
		lines[i] = strings.Repeat(".", w)
	}
	return strings.Join(lines, "\n")
}

func TestPlace_Center(t *testing.T) {
	out := Place(Config{Width: 10, Height: 5, Position: Center}, "ab\ncd", blank(10, 5))
	lines := strings.Split(ansi.Strip(out), "\n")

	require.Len(t, lines, 5)
	require.Equal(t, "..........", lines[0])
	require.Equal(t, "....ab....", lines[1])
	require.Equal(t, "....cd....", lines[2])
	require.Equal(t, "..........", lines[4])
}

func TestPlace_TopWithPadding(t *testing.T) {
	out := Place(Config{Width: 6, Height: 4, Position: Top, PadY: 1}, "XX", blank(6, 4))
	lines := strings.Split(ansi.Strip(out), "\n")
	require.Equal(t, "..XX..", lines[1])
}

func TestPlace_PadsShortBackground(t *testing.T) {
	out := Place(Config{Width: 6, Height: 3, Position: Center}, "XX", "..")
	lines := strings.Split(ansi.Strip(out), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "..", lines[0])
	require.Equal(t, "  XX", lines[1])
}

func TestPlace_ForegroundWiderThanCanvas(t *testing.T) {
	out := Place(Config{Width: 4, Height: 1}, "ABCDEF", "....")
	require.Equal(t, "ABCDEF", ansi.Strip(out))
}
