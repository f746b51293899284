package draw

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvasScalesLogicalCoordinates(t *testing.T) {
	c := NewScaledCanvas(80, 20, 800, 400)

	c.setFloat(400, 200)
	assert.True(t, c.pixel(40, 20))

	c.setFloat(-10, 10)
	c.setFloat(900, 10)
	count := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 80; x++ {
			if c.pixel(x, y) {
				count++
			}
		}
	}
	assert.Equal(t, 1, count, "off-canvas points are dropped")

	c.Clear()
	assert.False(t, c.pixel(40, 20))
}

func TestCanvasRenderHalfBlocks(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.setFloat(0, 0) // top half of row 1
	c.setFloat(1, 1) // bottom half of row 1
	c.setFloat(2, 2) // top of row 2
	c.setFloat(2, 3) // bottom of row 2

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	out := buf.String()

	assert.Equal(t, "\033[1;1H▀▄\033[2;3H█", out, "adjacent cells share one cursor move")
}

func TestCanvasRenderEmpty(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	assert.Zero(t, buf.Len())
}

func TestCanvasDrawLineReverse(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.DrawLine(Point{X: 9, Y: 2}, Point{X: 1, Y: 6})
	assert.True(t, c.pixel(9, 2))
	assert.True(t, c.pixel(1, 6))
	assert.True(t, c.pixel(5, 4))
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.DrawLine(Point{X: 0, Y: 0}, Point{X: 9, Y: 9})
	for i := 0; i < 10; i++ {
		assert.True(t, c.pixel(i, i), "pixel %d", i)
	}
}

func TestCanvasFilledPolygon(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	square := []Point{{X: 2, Y: 2}, {X: 10, Y: 2}, {X: 10, Y: 10}, {X: 2, Y: 10}}

	c.DrawPolygon(square, false)
	assert.False(t, c.pixel(6, 6))

	c.DrawPolygon(square, true)
	assert.True(t, c.pixel(6, 6))
	assert.False(t, c.pixel(15, 15))
}

func TestCanvasDrawCircle(t *testing.T) {
	c := NewScaledCanvas(40, 20, 40, 40)
	c.DrawCircle(20, 20, 10)

	assert.True(t, c.pixel(30, 20))
	assert.True(t, c.pixel(10, 20))
	assert.False(t, c.pixel(20, 20))
}

func TestCanvasResizeKeepsLogicalSize(t *testing.T) {
	c := NewScaledCanvas(80, 20, 800, 400)
	c.Resize(160, 40)
	assert.Equal(t, 160, c.TerminalWidth())
	assert.Equal(t, 40, c.TerminalHeight())

	col, row := c.LogicalToTerminal(400, 200)
	assert.Equal(t, 81, col)
	assert.Equal(t, 21, row)

	c.SetLogicalSize(1600, 800)
	col, row = c.LogicalToTerminal(400, 200)
	assert.Equal(t, 41, col)
	assert.Equal(t, 11, row)
}

func TestChunkWriterFlush(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf)

	cw.Clear()
	cw.WriteAt(3, 2, "hi")
	cw.WriteAt(-4, 0, "edge")
	assert.Positive(t, cw.Len())
	assert.Zero(t, buf.Len(), "nothing is written before Flush")

	require.NoError(t, cw.Flush())
	assert.Equal(t, "\033[H\033[2J\033[2;3Hhi\033[1;1Hedge", buf.String())
	assert.Zero(t, cw.Len())
}

func TestChunkWriterLargeFrame(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf)
	payload := strings.Repeat("x", 5*maxChunkSize+7)

	cw.WriteString(payload)
	require.NoError(t, cw.Flush())
	assert.Equal(t, payload, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestChunkWriterReportsWriteErrors(t *testing.T) {
	cw := NewChunkWriter(failingWriter{})
	cw.WriteString(strings.Repeat("x", 9000))
	assert.Error(t, cw.Flush())
}
