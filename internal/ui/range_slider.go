package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/edward-ap/daylight/internal/slider"
)

const (
	trackHeight = float32(4)
	dotRadius   = float32(2.5)
	// hovered thumbs grow by this factor; the track inset leaves room for it
	hoverScale = float32(1.25)
)

// RangeSlider is a horizontal slider with one or two thumbs. The mode is
// taken from the initial Value and never changes. Pointer and keyboard input
// run through a slider.Engine; the widget only renders its state.
type RangeSlider struct {
	widget.DisableableWidget

	Min   float64
	Max   float64
	Step  float64
	Value slider.Value

	HasDots   bool
	Direction slider.Direction
	// Hovered and Active force the hover and active emphasis on.
	Hovered bool
	Active  bool

	// OnChanged receives committed values.
	OnChanged func(slider.Value)
	// OnMouseMove receives live values while dragging.
	OnMouseMove func(slider.Value)
	// OnKeyDown receives keyboard commits. When nil they go to OnChanged.
	OnKeyDown func(slider.Value)

	engine    *slider.Engine
	domainErr error
	surface   *slider.Dispatcher
	thumbs    [2]*rangeThumb

	hovering bool
	pressed  bool
	touch    bool
	lastX    float32
}

// NewRangeSlider creates a slider over [min, max] with step 1 showing value.
func NewRangeSlider(min, max float64, value slider.Value) *RangeSlider {
	s := &RangeSlider{Min: min, Max: max, Step: 1, Value: value, surface: slider.NewDispatcher()}
	s.thumbs[slider.ThumbMin] = newRangeThumb(s, slider.ThumbMin)
	s.thumbs[slider.ThumbMax] = newRangeThumb(s, slider.ThumbMax)
	s.ExtendBaseWidget(s)
	s.sync()
	return s
}

// NewSlider creates a single-thumb slider.
func NewSlider(min, max, value float64) *RangeSlider {
	return NewRangeSlider(min, max, slider.Single(value))
}

// Err reports why the slider is inert, e.g. an empty domain.
func (s *RangeSlider) Err() error { return s.domainErr }

// SetValue replaces the value and re-syncs the engine. It does not fire
// callbacks.
func (s *RangeSlider) SetValue(v slider.Value) {
	s.Value = v
	s.Refresh()
}

// SetRange sets both sides of a two-thumb slider.
func (s *RangeSlider) SetRange(min, max float64) {
	s.SetValue(slider.Range(min, max))
}

// SetDomain changes the bounds and step.
func (s *RangeSlider) SetDomain(min, max, step float64) {
	s.Min, s.Max, s.Step = min, max, step
	s.Refresh()
}

// Refresh adopts field changes made by the caller and redraws.
func (s *RangeSlider) Refresh() {
	s.sync()
	if s.engine != nil && s.Disabled() {
		s.engine.Close()
	}
	s.BaseWidget.Refresh()
}

// MinSize keeps room for the hovered thumb.
func (s *RangeSlider) MinSize() fyne.Size {
	return fyne.NewSize(100, theme.IconInlineSize())
}

func (s *RangeSlider) sync() {
	d := slider.Domain{Min: s.Min, Max: s.Max, Step: s.Step}
	if s.engine == nil {
		e, err := slider.NewEngine(d, s.Value, s.engineConfig())
		s.domainErr = err
		s.engine = e
		return
	}
	s.domainErr = s.engine.Sync(s.Value, d)
	s.engine.SetDirection(s.Direction)
	s.Value.Mode = s.engine.Mode()
}

func (s *RangeSlider) engineConfig() slider.Config {
	return slider.Config{
		Direction: s.Direction,
		Surface:   s.surface,
		Bounds:    s.trackRect,
		Focus:     s.focusThumb,
		OnMouseMove: func(v slider.Value) {
			s.BaseWidget.Refresh()
			if s.OnMouseMove != nil {
				s.OnMouseMove(v)
			}
		},
		OnChange: func(v slider.Value) { s.commit(v, s.OnChanged) },
		OnKeyDown: func(v slider.Value) {
			cb := s.OnKeyDown
			if cb == nil {
				cb = s.OnChanged
			}
			s.commit(v, cb)
		},
	}
}

func (s *RangeSlider) commit(v slider.Value, cb func(slider.Value)) {
	s.Value = v
	s.Refresh()
	if cb != nil {
		cb(v)
	}
}

func (s *RangeSlider) interactive() bool {
	return s.engine != nil && s.domainErr == nil && !s.Disabled()
}

func (s *RangeSlider) thumbRadius() float32 {
	return theme.IconInlineSize() / 4
}

func (s *RangeSlider) trackInset() float32 {
	return s.thumbRadius() * hoverScale
}

// trackRect is the engine's view of the control: the track between the
// insets, in widget coordinates.
func (s *RangeSlider) trackRect() slider.Rect {
	inset := s.trackInset()
	w := s.Size().Width - 2*inset
	if w < 0 {
		w = 0
	}
	return slider.Rect{Left: float64(inset), Width: float64(w)}
}

// trackX maps a track percentage to a widget x coordinate.
func (s *RangeSlider) trackX(pct float64, width float32) float32 {
	inset := s.trackInset()
	trackW := width - 2*inset
	if trackW < 0 {
		trackW = 0
	}
	frac := float32(clampFloat64(pct, 0, 100) / 100)
	if s.Direction == slider.RTL {
		frac = 1 - frac
	}
	return inset + trackW*frac
}

func (s *RangeSlider) thumbVisible(t slider.Thumb) bool {
	if !s.interactive() {
		return false
	}
	return s.engine.Mode() == slider.ModeRange || t == slider.ThumbMax
}

func (s *RangeSlider) focusThumb(t slider.Thumb) {
	if s.engine.Mode() == slider.ModeSingle {
		t = slider.ThumbMax
	}
	app := fyne.CurrentApp()
	if app == nil || app.Driver() == nil {
		return
	}
	if c := app.Driver().CanvasForObject(s); c != nil {
		c.Focus(s.thumbs[t])
	}
}

func (s *RangeSlider) pointer(x float32) slider.PointerEvent {
	if s.touch {
		return slider.PointerEvent{ChangedTouches: []float64{float64(x)}}
	}
	return slider.PointerEvent{ClientX: float64(x)}
}

func (s *RangeSlider) startDrag(x float32) bool {
	if !s.interactive() {
		return false
	}
	s.lastX = x
	if _, err := s.engine.PointerDown(s.pointer(x)); err != nil {
		return false
	}
	s.BaseWidget.Refresh()
	return true
}

func (s *RangeSlider) endDrag() {
	kind := slider.MouseUp
	if s.touch {
		kind = slider.TouchEnd
	}
	s.surface.Dispatch(kind, s.pointer(s.lastX))
	s.touch = false
}

// MouseDown starts a drag with the nearest thumb jumping to the pointer.
func (s *RangeSlider) MouseDown(ev *desktop.MouseEvent) {
	if ev == nil || ev.Button != desktop.MouseButtonPrimary {
		return
	}
	s.touch = false
	s.pressed = s.startDrag(ev.Position.X)
}

// MouseUp commits the drag started by MouseDown.
func (s *RangeSlider) MouseUp(ev *desktop.MouseEvent) {
	if ev == nil || s.engine == nil || s.engine.Session() == nil {
		return
	}
	s.lastX = ev.Position.X
	s.endDrag()
}

// Dragged reports live moves. Fyne keeps sending drag events to this widget
// after the pointer leaves it, which makes the internal dispatcher the
// surface that sees the whole drag.
func (s *RangeSlider) Dragged(ev *fyne.DragEvent) {
	if ev == nil || s.engine == nil {
		return
	}
	x := ev.Position.X
	if s.engine.Session() == nil {
		// touch drags arrive without MouseDown
		s.touch = true
		if !s.startDrag(x - ev.Dragged.DX) {
			s.touch = false
			return
		}
	}
	s.lastX = x
	kind := slider.MouseMove
	if s.touch {
		kind = slider.TouchMove
	}
	s.surface.Dispatch(kind, s.pointer(x))
}

// DragEnd commits at the last dragged position. It is a no-op when MouseUp
// already ended the drag.
func (s *RangeSlider) DragEnd() {
	if s.engine == nil || s.engine.Session() == nil {
		s.touch = false
		return
	}
	s.endDrag()
}

// Tapped handles taps from touch screens. Mouse clicks were already handled
// by MouseDown and MouseUp.
func (s *RangeSlider) Tapped(ev *fyne.PointEvent) {
	if s.pressed {
		s.pressed = false
		return
	}
	if ev == nil {
		return
	}
	s.touch = true
	if !s.startDrag(ev.Position.X) {
		s.touch = false
		return
	}
	s.endDrag()
}

// MouseIn turns on the hover emphasis.
func (s *RangeSlider) MouseIn(*desktop.MouseEvent) {
	s.hovering = true
	s.BaseWidget.Refresh()
}

func (s *RangeSlider) MouseMoved(*desktop.MouseEvent) {}

// MouseOut turns off the hover emphasis.
func (s *RangeSlider) MouseOut() {
	s.hovering = false
	s.BaseWidget.Refresh()
}

func (s *RangeSlider) typedKey(t slider.Thumb, name fyne.KeyName) {
	if !s.interactive() {
		return
	}
	k := keyFor(name)
	if k == slider.KeyUnknown {
		return
	}
	s.engine.Key(t, k)
}

func keyFor(name fyne.KeyName) slider.Key {
	switch name {
	case fyne.KeyLeft:
		return slider.KeyLeft
	case fyne.KeyRight:
		return slider.KeyRight
	case fyne.KeyUp:
		return slider.KeyUp
	case fyne.KeyDown:
		return slider.KeyDown
	case fyne.KeyPageUp:
		return slider.KeyPageUp
	case fyne.KeyPageDown:
		return slider.KeyPageDown
	case fyne.KeyHome:
		return slider.KeyHome
	case fyne.KeyEnd:
		return slider.KeyEnd
	default:
		return slider.KeyUnknown
	}
}

func (s *RangeSlider) CreateRenderer() fyne.WidgetRenderer {
	r := &rangeSliderRenderer{
		s:     s,
		track: canvas.NewRectangle(theme.ShadowColor()),
		fill:  canvas.NewRectangle(theme.PrimaryColor()),
	}
	r.syncObjects()
	return r
}

type rangeSliderRenderer struct {
	s     *RangeSlider
	track *canvas.Rectangle
	fill  *canvas.Rectangle
	dots  []*canvas.Circle
	objs  []fyne.CanvasObject
}

func (r *rangeSliderRenderer) dotsFor() []slider.Dot {
	if r.s.engine == nil || r.s.domainErr != nil {
		return nil
	}
	return r.s.engine.Dots(r.s.HasDots, r.s.Disabled())
}

// syncObjects rebuilds the object list when the dot count or thumb
// visibility changed.
func (r *rangeSliderRenderer) syncObjects() {
	s := r.s
	n := len(r.dotsFor())
	for len(r.dots) < n {
		r.dots = append(r.dots, canvas.NewCircle(theme.DisabledColor()))
	}
	r.dots = r.dots[:n]

	objs := []fyne.CanvasObject{r.track, r.fill}
	for _, d := range r.dots {
		objs = append(objs, d)
	}
	for _, th := range s.thumbs {
		if s.thumbVisible(th.which) {
			th.Show()
			objs = append(objs, th)
		} else {
			th.Hide()
		}
	}
	r.objs = objs
}

func (r *rangeSliderRenderer) Layout(sz fyne.Size) {
	s := r.s
	inset := s.trackInset()
	y := (sz.Height - trackHeight) / 2
	trackW := sz.Width - 2*inset
	if trackW < 0 {
		trackW = 0
	}
	r.track.Move(fyne.NewPos(inset, y))
	r.track.Resize(fyne.NewSize(trackW, trackHeight))

	if s.engine == nil || s.domainErr != nil {
		r.fill.Resize(fyne.NewSize(0, 0))
		return
	}
	pos := s.engine.Position()
	from, to := 0.0, pos.X
	if pos.Mode == slider.ModeRange {
		from, to = pos.Min, pos.Max
	}
	x0, x1 := s.trackX(from, sz.Width), s.trackX(to, sz.Width)
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	r.fill.Move(fyne.NewPos(x0, y))
	r.fill.Resize(fyne.NewSize(x1-x0, trackHeight))

	cy := sz.Height / 2
	for i, d := range r.dotsFor() {
		if i >= len(r.dots) {
			break
		}
		cx := s.trackX(d.Position, sz.Width)
		r.dots[i].Move(fyne.NewPos(cx-dotRadius, cy-dotRadius))
		r.dots[i].Resize(fyne.NewSize(dotRadius*2, dotRadius*2))
	}

	radius := s.thumbRadius()
	if s.Hovered || s.hovering {
		radius *= hoverScale
	}
	for _, th := range s.thumbs {
		if !th.Visible() {
			continue
		}
		cx := s.trackX(pos.At(th.which), sz.Width)
		th.Resize(fyne.NewSize(radius*2, radius*2))
		th.Move(fyne.NewPos(cx-radius, cy-radius))
	}
}

func (r *rangeSliderRenderer) MinSize() fyne.Size { return r.s.MinSize() }

func (r *rangeSliderRenderer) Refresh() {
	s := r.s
	r.syncObjects()

	r.track.FillColor = theme.ShadowColor()
	r.fill.FillColor = theme.PrimaryColor()
	if s.Disabled() {
		r.fill.FillColor = theme.DisabledColor()
	}
	for i, d := range r.dotsFor() {
		if i >= len(r.dots) {
			break
		}
		r.dots[i].FillColor = theme.DisabledColor()
		if d.Active {
			r.dots[i].FillColor = theme.ForegroundColor()
		}
	}

	r.Layout(s.Size())
	canvas.Refresh(r.track)
	canvas.Refresh(r.fill)
	for _, d := range r.dots {
		canvas.Refresh(d)
	}
	for _, th := range s.thumbs {
		if th.Visible() {
			th.Refresh()
		}
	}
}

// Destroy releases a drag that is still running.
func (r *rangeSliderRenderer) Destroy() {
	if r.s.engine != nil {
		r.s.engine.Close()
	}
}

func (r *rangeSliderRenderer) Objects() []fyne.CanvasObject { return r.objs }

// rangeThumb is a focusable handle. It takes no pointer input of its own so
// clicks on it reach the slider.
type rangeThumb struct {
	widget.BaseWidget
	owner   *RangeSlider
	which   slider.Thumb
	focused bool
}

func newRangeThumb(s *RangeSlider, which slider.Thumb) *rangeThumb {
	t := &rangeThumb{owner: s, which: which}
	t.ExtendBaseWidget(t)
	return t
}

func (t *rangeThumb) FocusGained() {
	t.focused = true
	if t.owner.engine != nil {
		t.owner.engine.FocusThumb(t.which)
	}
	t.Refresh()
}

func (t *rangeThumb) FocusLost() {
	t.focused = false
	if t.owner.engine != nil {
		t.owner.engine.BlurThumb()
	}
	t.Refresh()
}

func (t *rangeThumb) TypedRune(rune) {}

func (t *rangeThumb) TypedKey(ev *fyne.KeyEvent) {
	if ev == nil {
		return
	}
	t.owner.typedKey(t.which, ev.Name)
}

func (t *rangeThumb) CreateRenderer() fyne.WidgetRenderer {
	c := canvas.NewCircle(theme.ForegroundColor())
	return &rangeThumbRenderer{t: t, circle: c, objs: []fyne.CanvasObject{c}}
}

type rangeThumbRenderer struct {
	t      *rangeThumb
	circle *canvas.Circle
	objs   []fyne.CanvasObject
}

func (r *rangeThumbRenderer) Layout(sz fyne.Size) {
	r.circle.Move(fyne.NewPos(0, 0))
	r.circle.Resize(sz)
}

func (r *rangeThumbRenderer) MinSize() fyne.Size {
	d := r.t.owner.thumbRadius() * 2
	return fyne.NewSize(d, d)
}

func (r *rangeThumbRenderer) Refresh() {
	s := r.t.owner
	active := s.Active || (s.engine != nil && s.engine.State() == slider.Dragging)
	r.circle.FillColor = theme.ForegroundColor()
	r.circle.StrokeColor = color.Transparent
	r.circle.StrokeWidth = 0
	switch {
	case r.t.focused:
		r.circle.StrokeColor = theme.FocusColor()
		r.circle.StrokeWidth = 2
	case active:
		r.circle.StrokeColor = theme.PrimaryColor()
		r.circle.StrokeWidth = 2
	}
	r.Layout(r.t.Size())
	canvas.Refresh(r.circle)
}

func (r *rangeThumbRenderer) Destroy() {}

func (r *rangeThumbRenderer) Objects() []fyne.CanvasObject { return r.objs }
