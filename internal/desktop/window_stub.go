//go:build !ebiten

package desktop

// Run reports that this build has no window support.
func Run(*Game) error {
	return ErrNoWindow
}
