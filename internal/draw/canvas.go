package draw

import (
	"io"
	"math"
	"slices"
	"strconv"
)

// Point is a position in field coordinates.
type Point struct {
	X, Y float64
}

// halfBlocks maps a cell's (top | bottom<<1) dot pair to its glyph.
var halfBlocks = [4]rune{0, '▀', '▄', '█'}

// Canvas maps the game field onto a terminal. Each cell holds two dots
// stacked vertically, so the dot grid is cols x 2*rows.
type Canvas struct {
	cols, rows int
	dots       []bool // Row-major, cols wide

	fieldWidth, fieldHeight float64
	sx, sy                  float64 // Dots per field unit

	out     []byte
	scaled  []Point
	xs      []float64
	scratch []Point
}

// NewScaledCanvas creates a canvas showing a fieldWidth x fieldHeight field
// on a cols x rows terminal.
func NewScaledCanvas(cols, rows int, fieldWidth, fieldHeight float64) *Canvas {
	c := &Canvas{fieldWidth: fieldWidth, fieldHeight: fieldHeight}
	c.Resize(cols, rows)
	return c
}

// Resize adopts a new terminal size. The field size is unchanged.
func (c *Canvas) Resize(cols, rows int) {
	cols, rows = max(cols, 1), max(rows, 1)
	if cols != c.cols || rows != c.rows {
		c.cols, c.rows = cols, rows
		c.dots = make([]bool, cols*rows*2)
	}
	c.updateScale()
}

// SetLogicalSize adopts a new field size. Non-positive sizes are ignored.
func (c *Canvas) SetLogicalSize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	c.fieldWidth, c.fieldHeight = width, height
	c.updateScale()
}

func (c *Canvas) updateScale() {
	c.sx = float64(c.cols) / c.fieldWidth
	c.sy = float64(c.rows*2) / c.fieldHeight
}

// Clear blanks every dot.
func (c *Canvas) Clear() {
	clear(c.dots)
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && x < c.cols && y >= 0 && y < c.rows*2
}

func (c *Canvas) setPixel(x, y int) {
	if c.inside(x, y) {
		c.dots[y*c.cols+x] = true
	}
}

func (c *Canvas) pixel(x, y int) bool {
	return c.inside(x, y) && c.dots[y*c.cols+x]
}

// toDots converts a field position to the nearest dot.
func (c *Canvas) toDots(x, y float64) (int, int) {
	return int(math.Round(x * c.sx)), int(math.Round(y * c.sy))
}

func (c *Canvas) setFloat(x, y float64) {
	c.setPixel(c.toDots(x, y))
}

// DrawLine plots the segment from a to b.
func (c *Canvas) DrawLine(a, b Point) {
	x, y := c.toDots(a.X, a.Y)
	x1, y1 := c.toDots(b.X, b.Y)

	dx, stepX := x1-x, 1
	if dx < 0 {
		dx, stepX = -dx, -1
	}
	dy, stepY := y-y1, 1
	if dy > 0 {
		dy, stepY = -dy, -1
	}

	e := dx + dy
	for {
		c.setPixel(x, y)
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += stepX
		}
		if e2 <= dx {
			e += dx
			y += stepY
		}
	}
}

// DrawPolygon outlines the closed polygon through points and optionally
// fills it.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points)
	}
	prev := points[len(points)-1]
	for _, p := range points {
		c.DrawLine(prev, p)
		prev = p
	}
}

// DrawCircle outlines a circle, using more segments for bigger circles.
func (c *Canvas) DrawCircle(cx, cy, radius float64) {
	segments := int(2 * radius * max(c.sx, c.sy))
	segments = min(max(segments, 8), 64)

	points := c.BorrowPoints(segments)
	step := 2 * math.Pi / float64(segments)
	for i := range points {
		sin, cos := math.Sincos(float64(i) * step)
		points[i] = Point{X: cx + radius*cos, Y: cy + radius*sin}
	}
	c.DrawPolygon(points, false)
}

// fillPolygon sets every dot whose center lies inside the polygon (even-odd
// rule), sampling each dot row at its vertical middle.
func (c *Canvas) fillPolygon(points []Point) {
	c.scaled = c.scaled[:0]
	top, bottom := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		q := Point{X: p.X * c.sx, Y: p.Y * c.sy}
		c.scaled = append(c.scaled, q)
		top, bottom = min(top, q.Y), max(bottom, q.Y)
	}

	first := max(int(math.Floor(top)), 0)
	last := min(int(math.Ceil(bottom)), c.rows*2-1)
	for y := first; y <= last; y++ {
		mid := float64(y) + 0.5
		c.xs = c.xs[:0]
		prev := c.scaled[len(c.scaled)-1]
		for _, p := range c.scaled {
			if (prev.Y <= mid) != (p.Y <= mid) {
				c.xs = append(c.xs, prev.X+(mid-prev.Y)*(p.X-prev.X)/(p.Y-prev.Y))
			}
			prev = p
		}
		slices.Sort(c.xs)

		for i := 1; i < len(c.xs); i += 2 {
			for x := int(math.Ceil(c.xs[i-1])); x <= int(math.Floor(c.xs[i])); x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// Render writes the lit cells to w as half-block glyphs in one Write. Each
// run of lit cells costs a single cursor move; blank cells are not written,
// so the screen should be cleared first.
func (c *Canvas) Render(w io.Writer) error {
	buf := c.out[:0]
	for row := range c.rows {
		upper := c.dots[2*row*c.cols:][:c.cols]
		lower := c.dots[(2*row+1)*c.cols:][:c.cols]
		inRun := false
		for col := range c.cols {
			glyph := halfBlocks[bit(upper[col])|bit(lower[col])<<1]
			if glyph == 0 {
				inRun = false
				continue
			}
			if !inRun {
				buf = append(buf, "\033["...)
				buf = strconv.AppendInt(buf, int64(row+1), 10)
				buf = append(buf, ';')
				buf = strconv.AppendInt(buf, int64(col+1), 10)
				buf = append(buf, 'H')
				inRun = true
			}
			buf = append(buf, string(glyph)...)
		}
	}
	c.out = buf

	if len(buf) == 0 {
		return nil
	}
	_, err := w.Write(buf)
	return err
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}

// TerminalWidth is the canvas width in columns.
func (c *Canvas) TerminalWidth() int { return c.cols }

// TerminalHeight is the canvas height in rows.
func (c *Canvas) TerminalHeight() int { return c.rows }

// LogicalToTerminal returns the 1-based cell (col, row) covering field
// position (x, y).
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	dx, dy := c.toDots(x, y)
	return dx + 1, dy/2 + 1
}

// BorrowPoints hands out scratch space for n points. The slice is reused by
// the next call and by DrawCircle.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.scratch) < n {
		c.scratch = make([]Point, n)
	}
	return c.scratch[:n]
}
