//go:build ebiten

package desktop

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/shipdrift/internal/game"
	"github.com/tomz197/shipdrift/internal/loop"
)

var (
	shipColor      = color.RGBA{0xdd, 0xdd, 0xdd, 0xff}
	collisionColor = color.RGBA{0xee, 0x33, 0x33, 0xff}
	asteroidColor  = color.RGBA{0xaa, 0xaa, 0xaa, 0xff}
)

// window adapts Game to ebiten.Game.
type window struct {
	g *Game
}

// Run opens the window and plays until it is closed or the player quits.
func Run(g *Game) error {
	w, h := g.WindowSize()
	ebiten.SetWindowTitle("shipdrift")
	ebiten.SetWindowSize(w, h)
	ebiten.SetTPS(g.TPS())

	err := ebiten.RunGame(&window{g: g})
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func readControls() Controls {
	c := Controls{
		Keys: game.Keys{
			Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
			Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
			Up:    ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
			Down:  ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		},
		Reset: inpututil.IsKeyJustPressed(ebiten.KeyR),
		Quit:  inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		c.Stage = 1
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		c.Stage = 2
	case inpututil.IsKeyJustPressed(ebiten.Key3):
		c.Stage = 3
	}
	return c
}

func (w *window) Update() error {
	if err := w.g.Step(readControls()); err != nil {
		if errors.Is(err, loop.ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (w *window) Draw(screen *ebiten.Image) {
	st := w.g.State()

	clr := shipColor
	if st.Collision {
		clr = collisionColor
	}
	outline := st.Ship.Outline()
	for i := range outline {
		a, b := outline[i], outline[(i+1)%len(outline)]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 2, clr, true)
	}

	for _, a := range st.Asteroids {
		vector.StrokeCircle(screen, float32(a.Origo.X), float32(a.Origo.Y), float32(a.Radius), 2, asteroidColor, true)
	}

	ebitenutil.DebugPrintAt(screen, "stage "+st.Stage.String(), 4, 4)
	ebitenutil.DebugPrintAt(screen, loop.Readout(st), 4, int(st.Bounds.Height)-20)
}

// Layout keeps the logical field size regardless of the window size.
func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.g.WindowSize()
}
