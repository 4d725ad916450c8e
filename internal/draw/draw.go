// Package draw renders logical-space shapes onto a half-block terminal canvas.
package draw

// Point represents a 2D coordinate in logical space.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// cellRunes maps a cell code (bit 0 = top pixel, bit 1 = bottom pixel) to its glyph.
var cellRunes = [4]rune{BlockEmpty, BlockUpperHalf, BlockLowerHalf, BlockFull}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ANSI foreground colors for text overlays.
const (
	ColorReset        = "\033[0m"
	ColorBrightRed    = "\033[91m"
	ColorBrightGreen  = "\033[92m"
	ColorBrightYellow = "\033[93m"
	ColorBrightCyan   = "\033[96m"
)
