package draw

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Shapes are given in logical coordinates and scaled to terminal pixels.
type Canvas struct {
	termWidth      int    // Canvas columns
	termHeight     int    // Canvas rows
	subPixelHeight int    // termHeight * 2
	pixels         []bool // Flat slice: [y * termWidth + x]

	// prev holds the cell codes written by the last Render; dirty marks cells
	// that must be rewritten regardless (text was drawn over them).
	prev  []uint8
	dirty []bool

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets used to center the canvas.
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
	numBuf    [20]byte
}

// NewCanvas creates a canvas of termWidth x termHeight cells showing the
// logical area logicalWidth x logicalHeight.
func NewCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new cell dimensions while keeping the logical
// size. Everything is redrawn on the next Render.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
		c.pixels = make([]bool, subPixelHeight*termWidth)
		c.prev = make([]uint8, termWidth*termHeight)
		c.dirty = make([]bool, termWidth*termHeight)
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
	c.ForceRedraw()
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based: the canvas starts at terminal cell (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.offsetCol = col
		c.offsetRow = row
		c.ForceRedraw()
	}
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// TerminalWidth returns the canvas width in cells.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the canvas height in cells.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render write every cell, e.g. after the screen was cleared.
func (c *Canvas) ForceRedraw() {
	for i := range c.dirty {
		c.dirty[i] = true
	}
}

// MarkTextDirty records that n cells starting at the 1-based canvas position
// (col, row) were overwritten by text, so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := col - 1; x < col-1+n; x++ {
		if x >= 0 && x < c.termWidth {
			c.dirty[r*c.termWidth+x] = true
		}
	}
}

// setPixel sets a pixel at canvas pixel coordinates (no scaling).
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// SetFloat sets a pixel using logical coordinates.
func (c *Canvas) SetFloat(x, y float64) {
	c.setPixel(int(math.Round(x*c.scaleX)), int(math.Round(y*c.scaleY)))
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillCircle fills a disc. A disc smaller than a pixel still sets its center pixel.
func (c *Canvas) FillCircle(center Point, radius float64) {
	cx, cy := center.X*c.scaleX, center.Y*c.scaleY
	rx, ry := radius*c.scaleX, radius*c.scaleY
	c.setPixel(int(math.Round(cx)), int(math.Round(cy)))
	if ry <= 0 {
		return
	}

	yStart := int(math.Floor(cy - ry))
	yEnd := int(math.Ceil(cy + ry))
	for y := yStart; y <= yEnd; y++ {
		dy := (float64(y) - cy) / ry
		if dy*dy > 1 {
			continue
		}
		half := rx * math.Sqrt(1-dy*dy)
		for x := int(math.Ceil(cx - half)); x <= int(math.Floor(cx+half)); x++ {
			c.setPixel(x, y)
		}
	}
}

// StrokeCircle draws a circle outline as a closed polygon of segments.
func (c *Canvas) StrokeCircle(center Point, radius float64) {
	const segments = 32
	prev := Point{X: center.X + radius, Y: center.Y}
	for i := 1; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		next := Point{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
		c.DrawLine(prev, next)
		prev = next
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// Stays under a typical MTU for smooth SSH transmission.
const maxChunkSize = 1400

// cellCode returns the half-block code of a cell: bit 0 top pixel, bit 1 bottom pixel.
func (c *Canvas) cellCode(col, row int) uint8 {
	var code uint8
	if c.pixels[row*2*c.termWidth+col] {
		code |= 1
	}
	if c.pixels[(row*2+1)*c.termWidth+col] {
		code |= 2
	}
	return code
}

// EachCell calls fn for every canvas cell with its 0-based position and the
// half-block rune it shows.
func (c *Canvas) EachCell(fn func(col, row int, ch rune)) {
	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			fn(col, row, cellRunes[c.cellCode(col, row)])
		}
	}
}

// Render writes the cells that changed since the previous Render.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	for row := 0; row < c.termHeight; row++ {
		nextCol := -1 // Column the cursor sits at after the last write
		for col := 0; col < c.termWidth; col++ {
			i := row*c.termWidth + col
			code := c.cellCode(col, row)
			if code == c.prev[i] && !c.dirty[i] {
				continue
			}
			if col != nextCol {
				c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}
			c.renderBuf.WriteRune(cellRunes[code])
			nextCol = col + 1
			c.prev[i] = code
			c.dirty[i] = false
		}
	}

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// RenderBorder draws a box border around the canvas area when the terminal
// has room for it on either axis.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	line := strings.Repeat("─", c.termWidth)

	if hasV {
		if hasH {
			buf.WriteString("\033[" + strconv.Itoa(top) + ";" + strconv.Itoa(left) + "H┌" + line + "┐")
			buf.WriteString("\033[" + strconv.Itoa(bottom) + ";" + strconv.Itoa(left) + "H└" + line + "┘")
		} else {
			buf.WriteString("\033[" + strconv.Itoa(top) + ";" + strconv.Itoa(c.offsetCol+1) + "H" + line)
			buf.WriteString("\033[" + strconv.Itoa(bottom) + ";" + strconv.Itoa(c.offsetCol+1) + "H" + line)
		}
	}

	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			r := strconv.Itoa(row)
			buf.WriteString("\033[" + r + ";" + strconv.Itoa(left) + "H│\033[" + r + ";" + strconv.Itoa(right) + "H│")
		}
	}

	io.WriteString(w, buf.String())
}

// LogicalToTerminal converts logical coordinates to a 1-based canvas cell (col, row).
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 0-based absolute terminal cell to the logical
// coordinates of the cell center. ok is false when the cell is outside the canvas.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64, ok bool) {
	cc := col - c.offsetCol
	cr := row - c.offsetRow
	if cc < 0 || cc >= c.termWidth || cr < 0 || cr >= c.termHeight {
		return 0, 0, false
	}
	x = (float64(cc) + 0.5) * c.logicalWidth / float64(c.termWidth)
	y = (float64(cr)*2 + 1) * c.logicalHeight / float64(c.subPixelHeight)
	return x, y, true
}
