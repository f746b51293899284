package loop

import (
	"fmt"
	"strconv"

	"github.com/tomz197/shipdrift/internal/draw"
	"github.com/tomz197/shipdrift/internal/game"
)

const controlsHint = "A/D or arrows: rotate  W/S: thrust  1-3: stage  R: reset  Q: quit"

// drawFrame draws the field and the text overlay, then flushes the frame.
func (s *Session) drawFrame() error {
	s.out.Clear()
	s.canvas.Clear()

	drawShip(s.canvas, &s.state.Ship)
	for _, a := range s.state.Asteroids {
		s.canvas.DrawCircle(a.Origo.X, a.Origo.Y, a.Radius)
	}

	if err := s.canvas.Render(s.out); err != nil {
		return err
	}
	s.drawLabels()
	s.drawHUD()

	return s.out.Flush()
}

func drawShip(c *draw.Canvas, ship *game.Ship) {
	outline := ship.Outline()
	points := c.BorrowPoints(len(outline))
	for i, v := range outline {
		points[i] = draw.Point{X: v.X, Y: v.Y}
	}
	c.DrawPolygon(points, true)
}

// drawLabels writes each asteroid's ID just right of its outline.
func (s *Session) drawLabels() {
	width := s.canvas.TerminalWidth()
	height := s.canvas.TerminalHeight()
	for _, a := range s.state.Asteroids {
		col, row := s.canvas.LogicalToTerminal(a.Origo.X+a.Radius, a.Origo.Y)
		label := strconv.Itoa(a.ID)
		if col+1+len(label) > width || row < 1 || row > height {
			continue
		}
		s.out.WriteAt(col+1, row, label)
	}
}

// drawHUD writes the stage title, the position readouts and the controls.
func (s *Session) drawHUD() {
	width := s.canvas.TerminalWidth()
	height := s.canvas.TerminalHeight()

	title := fmt.Sprintf("stage %d: %s", int(s.state.Stage), s.state.Stage)
	s.out.WriteAt(2, 1, title)
	if s.fps > 0 {
		fps := fmt.Sprintf("%3.0f fps", s.fps)
		s.out.WriteAt(width-len(fps), 1, fps)
	}

	s.out.WriteAt(2, height-1, Readout(s.state))
	if height > 2 {
		s.out.WriteAt(2, height, controlsHint)
	}
}

// Readout formats the position and collision readout: ship x/y, the first
// asteroid's x/y and the collision flag.
func Readout(st *game.State) string {
	line := "ship x: " + fixed(st.Ship.X) + " y: " + fixed(st.Ship.Y) +
		" rot: " + strconv.FormatFloat(st.Ship.Rotation, 'f', 1, 64)
	if len(st.Asteroids) > 0 {
		a := st.Asteroids[0]
		line += "  asteroid x: " + fixed(a.X) + " y: " + fixed(a.Y)
	}
	if st.Stage.DetectsCollisions() {
		line += "  collision: " + strconv.FormatBool(st.Collision)
	}
	return line
}

func fixed(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
