package game

// Key is one of the four steering directions.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	default:
		return "none"
	}
}

// Browser key codes for WASD.
const (
	CodeA = 65
	CodeD = 68
	CodeS = 83
	CodeW = 87
)

var keyCodes = map[int]Key{
	CodeD: KeyRight,
	CodeA: KeyLeft,
	CodeW: KeyUp,
	CodeS: KeyDown,
}

// KeyForCode maps a keyboard key code to a steering key.
func KeyForCode(code int) (Key, bool) {
	k, ok := keyCodes[code]
	return k, ok
}

// Keys is the set of steering keys currently held down.
type Keys struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool
}

// Set marks key as held or released. KeyNone is ignored.
func (k *Keys) Set(key Key, down bool) {
	switch key {
	case KeyLeft:
		k.Left = down
	case KeyRight:
		k.Right = down
	case KeyUp:
		k.Up = down
	case KeyDown:
		k.Down = down
	}
}

// Held reports whether key is held.
func (k Keys) Held(key Key) bool {
	switch key {
	case KeyLeft:
		return k.Left
	case KeyRight:
		return k.Right
	case KeyUp:
		return k.Up
	case KeyDown:
		return k.Down
	default:
		return false
	}
}

// HandleKeyDown applies a key-down event. Unmapped codes are ignored and
// reported as false.
func (k *Keys) HandleKeyDown(code int) bool {
	key, ok := KeyForCode(code)
	if ok {
		k.Set(key, true)
	}
	return ok
}

// HandleKeyUp applies a key-up event.
func (k *Keys) HandleKeyUp(code int) bool {
	key, ok := KeyForCode(code)
	if ok {
		k.Set(key, false)
	}
	return ok
}
