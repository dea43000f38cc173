package slider

// Key is a keyboard key the engine reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
)

// Direction is the layout direction of the track.
type Direction int

const (
	// LTR places the minimum at the left edge.
	LTR Direction = iota
	// RTL places the minimum at the right edge.
	RTL
)

// suppressesDefault reports keys whose default host action (scrolling) must
// not run when a thumb consumes them.
func (k Key) suppressesDefault() bool {
	switch k {
	case KeyHome, KeyEnd, KeyPageUp, KeyPageDown:
		return true
	}
	return false
}

// nextKeyValue applies the per-key delta to old. ok is false for keys the
// slider ignores.
func nextKeyValue(k Key, old float64, d Domain, dir Direction) (float64, bool) {
	switch k {
	case KeyLeft:
		if dir == RTL {
			return old + d.Step, true
		}
		return old - d.Step, true
	case KeyRight:
		if dir == RTL {
			return old - d.Step, true
		}
		return old + d.Step, true
	case KeyUp, KeyPageUp:
		return old + d.Step, true
	case KeyDown, KeyPageDown:
		return old - d.Step, true
	case KeyHome:
		return d.Min, true
	case KeyEnd:
		return d.Max, true
	}
	return 0, false
}
