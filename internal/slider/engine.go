package slider

import "errors"

// ErrDragActive is returned by PointerDown while another drag is running.
var ErrDragActive = errors.New("slider: drag already in progress")

// State is the interaction state of an Engine.
type State int

const (
	Idle State = iota
	Dragging
	// KeyboardEditing only lasts for the duration of a Key call.
	KeyboardEditing
	// Committed is Idle reached through a finished drag or key press.
	Committed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case KeyboardEditing:
		return "keyboard"
	case Committed:
		return "committed"
	default:
		return "unknown"
	}
}

// Config wires an Engine to its host. Every field is optional; a missing
// Bounds function makes pointer input a no-op.
type Config struct {
	Direction Direction
	// Surface receives the move/up listeners of a drag.
	Surface Surface
	// Bounds reads the control's bounding rectangle.
	Bounds func() Rect
	// Focus moves input focus to a thumb.
	Focus func(Thumb)

	// OnMouseMove reports live values while dragging.
	OnMouseMove func(Value)
	// OnChange reports committed values.
	OnChange func(Value)
	// OnKeyDown reports keyboard commits. When nil they go to OnChange.
	OnKeyDown func(Value)
}

// KeyResult describes the outcome of a key press.
type KeyResult struct {
	Value Value
	// Handled is false for keys the slider ignores.
	Handled bool
	// PreventDefault asks the host to suppress the key's default action.
	PreventDefault bool
	// Focus is the thumb that holds focus after the key press.
	Focus Thumb
}

// Engine is the stateful interaction controller of a slider. It is not safe
// for concurrent use; hosts call it from their UI event loop.
type Engine struct {
	cfg       Config
	domain    Domain
	precision int
	mode      Mode

	value Value
	rest  Position

	session   *DragSession
	active    Thumb
	hasActive bool
	state     State
}

// NewEngine builds an engine for d showing v. The mode of v (single or
// range) is fixed for the lifetime of the engine.
func NewEngine(d Domain, v Value, cfg Config) (*Engine, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg, mode: v.Mode, active: ThumbMax}
	e.adopt(v, d)
	return e, nil
}

// Sync adopts a caller-supplied value and domain. Out-of-range values are
// clamped. While a drag is running the live position is left alone and only
// the rest position changes.
func (e *Engine) Sync(v Value, d Domain) error {
	if err := d.Validate(); err != nil {
		return err
	}
	v.Mode = e.mode
	e.adopt(v, d)
	return nil
}

func (e *Engine) adopt(v Value, d Domain) {
	e.domain = d
	e.precision = PrecisionOf(d.Step)
	e.value = ClampValue(v, d)
	e.rest = ValueToPosition(e.value, d).Clamp()
}

// SetDirection changes the layout direction.
func (e *Engine) SetDirection(dir Direction) { e.cfg.Direction = dir }

// Domain returns the current domain.
func (e *Engine) Domain() Domain { return e.domain }

// Precision returns the fractional digits of emitted values.
func (e *Engine) Precision() int { return e.precision }

// Mode reports whether the engine drives one or two thumbs.
func (e *Engine) Mode() Mode { return e.mode }

// State returns the interaction state.
func (e *Engine) State() State { return e.state }

// Value returns the last synced or committed value.
func (e *Engine) Value() Value { return e.value }

// Position returns the position to render: the live snapshot during a drag,
// the rest position otherwise.
func (e *Engine) Position() Position {
	if e.session != nil {
		return e.session.live
	}
	return e.rest
}

// Session returns the running drag, or nil.
func (e *Engine) Session() *DragSession { return e.session }

// ActiveThumb returns the thumb that last held focus or was dragged.
func (e *Engine) ActiveThumb() (Thumb, bool) { return e.active, e.hasActive }

// Dots lays out the step markers for the current position. It returns nil
// unless hasDots is set and the domain qualifies.
func (e *Engine) Dots(hasDots, disabled bool) []Dot {
	if !hasDots {
		return nil
	}
	return dotsFor(e.domain, e.Position(), disabled)
}

// FocusThumb records that t received input focus.
func (e *Engine) FocusThumb(t Thumb) {
	if e.mode == ModeSingle {
		t = ThumbMax
	}
	e.active, e.hasActive = t, true
}

// BlurThumb records that the focused thumb lost focus.
func (e *Engine) BlurThumb() { e.hasActive = false }

// PointerDown starts a drag: the nearest thumb jumps to the pointer, the
// live value is reported and move/up listeners are attached to the surface
// until the matching up event.
func (e *Engine) PointerDown(ev PointerEvent) (*DragSession, error) {
	if e.session != nil {
		return nil, ErrDragActive
	}
	s := e.acquire(e.rest)
	e.session = s
	e.state = Dragging
	s.move(ev)
	return s, nil
}

// Close releases a running drag without committing it, e.g. when the host
// goes away mid-drag.
func (e *Engine) Close() {
	if e.session == nil {
		return
	}
	e.session.Close()
	e.state = Idle
}

// Key applies a key press on thumb t and commits the result immediately.
// Crossing the other thumb swaps the two values and moves focus along.
func (e *Engine) Key(t Thumb, k Key) KeyResult {
	if e.session != nil {
		return KeyResult{}
	}
	if e.mode == ModeSingle {
		t = ThumbMax
	}
	old := e.value
	oldActive := old.X
	if e.mode == ModeRange {
		oldActive = old.Max
		if t == ThumbMin {
			oldActive = old.Min
		}
	}
	next, ok := nextKeyValue(k, oldActive, e.domain, e.cfg.Direction)
	if !ok {
		return KeyResult{}
	}
	e.state = KeyboardEditing

	activeVal := RoundTo(Clamp(next, e.domain.Min, e.domain.Max), e.precision)
	focus := t
	var nv Value
	switch e.mode {
	case ModeRange:
		passiveVal := old.Min
		if t == ThumbMin {
			passiveVal = old.Max
		}
		if (t == ThumbMin && activeVal > old.Max) || (t == ThumbMax && activeVal < old.Min) {
			focus = t.Other()
			activeVal, passiveVal = passiveVal, activeVal
		}
		if t == ThumbMin {
			nv = Range(activeVal, passiveVal)
		} else {
			nv = Range(passiveVal, activeVal)
		}
		// both thumbs parked on an edge: focus the one that can still move
		switch {
		case old.Min == e.domain.Min && old.Max == e.domain.Min:
			focus = ThumbMax
		case old.Min == e.domain.Max && old.Max == e.domain.Max:
			focus = ThumbMin
		}
	default:
		nv = Single(activeVal)
	}

	e.value = nv
	e.rest = ValueToPosition(nv, e.domain).Clamp()
	e.active, e.hasActive = focus, true
	e.state = Committed

	if e.cfg.Focus != nil {
		e.cfg.Focus(focus)
	}
	switch {
	case e.cfg.OnKeyDown != nil:
		e.cfg.OnKeyDown(nv)
	case e.cfg.OnChange != nil:
		e.cfg.OnChange(nv)
	}
	return KeyResult{Value: nv, Handled: true, PreventDefault: k.suppressesDefault(), Focus: focus}
}
