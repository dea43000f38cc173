package slider

import "math"

// Thumb names one of the two handles. A single-thumb slider only uses
// ThumbMax.
type Thumb int

const (
	ThumbMin Thumb = iota
	ThumbMax
)

// Other returns the opposite thumb.
func (t Thumb) Other() Thumb {
	if t == ThumbMin {
		return ThumbMax
	}
	return ThumbMin
}

func (t Thumb) String() string {
	if t == ThumbMin {
		return "min"
	}
	return "max"
}

// DragSession exists between pointer-down and pointer-up. It owns the four
// global listeners registered at acquisition; Close removes all of them and
// is safe to call repeatedly.
type DragSession struct {
	engine   *Engine
	// thumb is the handle that receives focus when the drag ends.
	thumb    Thumb
	// hasThumb is false until thumb was resolved or seeded from focus.
	hasThumb bool
	// locked is false while the thumb selection is still ambiguous.
	locked   bool

	live    Position
	removes []func()
	closed  bool
}

func (e *Engine) acquire(start Position) *DragSession {
	s := &DragSession{engine: e, live: start, thumb: ThumbMax}
	switch e.mode {
	case ModeRange:
		s.thumb, s.hasThumb = e.active, e.hasActive
	default:
		s.hasThumb, s.locked = true, true
	}
	if e.cfg.Surface != nil {
		s.removes = []func(){
			e.cfg.Surface.Subscribe(MouseMove, s.move),
			e.cfg.Surface.Subscribe(TouchMove, s.move),
			e.cfg.Surface.Subscribe(MouseUp, s.up),
			e.cfg.Surface.Subscribe(TouchEnd, s.up),
		}
	}
	return s
}

// Thumb returns the handle currently tracked by the drag.
func (s *DragSession) Thumb() Thumb { return s.thumb }

// Live returns the uncommitted position snapshot.
func (s *DragSession) Live() Position { return s.live }

// Close detaches every listener of the session and drops it from its engine
// without committing.
func (s *DragSession) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for _, remove := range s.removes {
		remove()
	}
	s.removes = nil
	if s.engine.session == s {
		s.engine.session = nil
	}
}

func (s *DragSession) move(ev PointerEvent) {
	if s.closed {
		return
	}
	if !s.update(ev) {
		return
	}
	e := s.engine
	if e.cfg.OnMouseMove != nil {
		e.cfg.OnMouseMove(PositionToValues(s.live, e.domain, e.precision))
	}
}

func (s *DragSession) up(ev PointerEvent) {
	if s.closed {
		return
	}
	s.Close()
	s.update(ev)

	e := s.engine
	e.rest = s.live
	e.value = PositionToValues(s.live, e.domain, e.precision)
	e.active, e.hasActive = s.thumb, true
	e.state = Committed

	if e.cfg.OnChange != nil {
		e.cfg.OnChange(e.value)
	}
	if e.cfg.Focus != nil {
		e.cfg.Focus(s.thumb)
	}
}

// update moves the tracked thumb to the snapped position under ev.
func (s *DragSession) update(ev PointerEvent) bool {
	e := s.engine
	c, ok := e.positionFromEvent(ev)
	if !ok {
		return false
	}
	if s.live.Mode != ModeRange {
		s.live = SinglePos(c)
		return true
	}

	if !s.locked {
		var ambiguous bool
		s.thumb, ambiguous = resolveThumb(c, s.live, s.thumb, s.hasThumb)
		s.hasThumb, s.locked = true, !ambiguous
	}
	s.live = s.live.With(s.thumb, c)
	if s.live.Min > s.live.Max {
		// the tracked thumb passed the other one: carry on with the other slot
		s.live = s.live.Ordered()
		s.thumb = s.thumb.Other()
	}
	return true
}

// resolveThumb picks the handle a pointer at candidate should move. prev is
// the previously active handle, if any; it only matters when the candidate sits
// exactly halfway between the handles, where keeping "max" stops the
// selection from flickering between successive moves.
func resolveThumb(candidate float64, cur Position, prev Thumb, hasPrev bool) (t Thumb, ambiguous bool) {
	dMin := candidate - cur.Min
	dMax := candidate - cur.Max
	switch {
	case dMin == dMax:
		// zero-width range
		if dMin <= 0 {
			return ThumbMin, dMin == 0
		}
		return ThumbMax, false
	case math.Abs(dMin) == math.Abs(dMax):
		if dMax < 0 && hasPrev && prev == ThumbMax {
			return ThumbMax, true
		}
		return ThumbMin, true
	case math.Abs(dMin) < math.Abs(dMax):
		return ThumbMin, false
	default:
		return ThumbMax, false
	}
}

// positionFromEvent maps the pointer coordinate to a step-aligned track
// percentage.
func (e *Engine) positionFromEvent(ev PointerEvent) (float64, bool) {
	if e.cfg.Bounds == nil {
		return 0, false
	}
	rect := e.cfg.Bounds()
	if rect.Width <= 0 {
		return 0, false
	}
	x := ev.X()
	offset := x - rect.Left
	if e.cfg.Direction == RTL {
		offset = rect.Right() - x
	}
	ratio := Clamp(offset/rect.Width, 0, 1)
	return snapToStep(ratio*100, e.domain.OneStep()), true
}

// snapToStep returns the multiple of oneStep closest to pct. An exact tie
// resolves to the upper multiple.
func snapToStep(pct, oneStep float64) float64 {
	if oneStep <= 0 {
		return Clamp(pct, 0, 100)
	}
	steps := pct / oneStep
	lo, hi := math.Floor(steps), math.Ceil(steps)
	n := hi
	if steps-lo < hi-steps {
		n = lo
	}
	return Clamp(n*oneStep, 0, 100)
}
