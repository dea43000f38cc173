package slider

import "sync"

// EventKind identifies a global pointer event.
type EventKind int

const (
	MouseMove EventKind = iota
	MouseUp
	TouchMove
	TouchEnd
)

func (k EventKind) String() string {
	switch k {
	case MouseMove:
		return "mousemove"
	case MouseUp:
		return "mouseup"
	case TouchMove:
		return "touchmove"
	case TouchEnd:
		return "touchend"
	default:
		return "unknown"
	}
}

// PointerEvent carries the coordinates of a mouse or touch event in the same
// coordinate space as the Rect returned by the engine's Bounds function.
type PointerEvent struct {
	ClientX float64
	// ChangedTouches holds the X coordinates of the changed touch points of a
	// touch event; the first one wins over ClientX.
	ChangedTouches []float64
}

// X returns the primary horizontal coordinate.
func (e PointerEvent) X() float64 {
	if len(e.ChangedTouches) > 0 {
		return e.ChangedTouches[0]
	}
	return e.ClientX
}

// Rect is the control's bounding rectangle along the track axis.
type Rect struct {
	Left  float64
	Width float64
}

// Right returns Left + Width.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Surface is the global input surface a drag listens on. Subscribe returns a
// function that removes the handler; calling it more than once is harmless.
type Surface interface {
	Subscribe(kind EventKind, fn func(PointerEvent)) (remove func())
}

type surfaceHandler struct {
	id uint64
	fn func(PointerEvent)
}

// Dispatcher is an in-process Surface. Hosts feed it the raw pointer events
// they receive and it fans them out to the subscribed handlers.
type Dispatcher struct {
	mu       sync.Mutex
	handlers map[EventKind][]surfaceHandler
	nextID   uint64
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: map[EventKind][]surfaceHandler{}}
}

// Subscribe registers fn for kind.
func (d *Dispatcher) Subscribe(kind EventKind, fn func(PointerEvent)) func() {
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.handlers[kind] = append(d.handlers[kind], surfaceHandler{id: id, fn: fn})
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { d.remove(kind, id) })
	}
}

func (d *Dispatcher) remove(kind EventKind, id uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	hs := d.handlers[kind]
	for i, h := range hs {
		if h.id == id {
			d.handlers[kind] = append(hs[:i:i], hs[i+1:]...)
			break
		}
	}
	if len(d.handlers[kind]) == 0 {
		delete(d.handlers, kind)
	}
}

// Dispatch delivers ev to every handler registered for kind at the time of
// the call. Handlers may unsubscribe while being dispatched.
func (d *Dispatcher) Dispatch(kind EventKind, ev PointerEvent) {
	d.mu.Lock()
	hs := make([]surfaceHandler, len(d.handlers[kind]))
	copy(hs, d.handlers[kind])
	d.mu.Unlock()

	for _, h := range hs {
		h.fn(ev)
	}
}

// Len returns the number of registered handlers across all kinds.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, hs := range d.handlers {
		n += len(hs)
	}
	return n
}
