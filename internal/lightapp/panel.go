package lightapp

import (
	"fmt"
	"math"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/edward-ap/daylight/internal/clock"
	"github.com/edward-ap/daylight/internal/config"
	"github.com/edward-ap/daylight/internal/lighting"
	"github.com/edward-ap/daylight/internal/metrics"
	"github.com/edward-ap/daylight/internal/slider"
	"github.com/edward-ap/daylight/internal/timelapse"
	"github.com/edward-ap/daylight/internal/ui"
)

const (
	windowStep  = 15
	nudgeMinute = 15
	playLabel   = "Play timelapse"
	stopLabel   = "Stop timelapse"
)

type panelDeps struct {
	logger    *zap.SugaredLogger
	cfg       *config.Config
	ephemeris lighting.Ephemeris
	// sink receives styles next to the preview, e.g. a FileSink.
	sink      lighting.Sink
	metrics   *metrics.Metrics
	save      func(*config.Config) error
	saveDelay time.Duration
	now       time.Time
}

// lightPanel is the window content: date and time pickers, timelapse controls,
// location and intensity inputs and the style preview. All methods run on the
// UI thread.
type lightPanel struct {
	logger  *zap.SugaredLogger
	metrics *metrics.Metrics

	cfg       config.Config
	date      time.Time
	control   *lighting.Control
	timelapse *timelapse.Controller
	saver     *saver
	preview   *previewSink

	dateEntry   *widget.Entry
	tzEntry     *widget.Entry
	timeLabel   *widget.Label
	playBtn     *widget.Button
	indicator   *ui.TimelapseIndicator
	timeSlider  *ui.RangeSlider
	lat         *ui.InputWithSlider
	lng         *ui.InputWithSlider
	sun         *ui.InputWithSlider
	ambient     *ui.InputWithSlider
	speed       *ui.InputWithSlider
	window      *ui.RangeSlider
	windowLabel *widget.Label
	status      *widget.Label

	content fyne.CanvasObject
}

func newLightPanel(d panelDeps) *lightPanel {
	logger := d.logger.Named("panel")
	cfg := *d.cfg
	delay := d.saveDelay
	if delay <= 0 {
		delay = saveDelay
	}

	p := &lightPanel{
		logger:  logger,
		metrics: d.metrics,
		cfg:     cfg,
		date:    d.now.In(cfg.Timezone.Location),
		preview: newPreviewSink(),
		saver:   newSaver(logger, delay, d.save),
	}
	p.control = lighting.NewControl(d.logger, d.ephemeris, lighting.MultiSink{p.preview, d.sink},
		lighting.Location{Lat: cfg.Latitude, Lng: cfg.Longitude})
	p.control.SetParams(p.params())
	p.timelapse = timelapse.NewController(d.logger, p.date, timelapse.Options{
		Speed:     cfg.Timelapse.Speed,
		Window:    timelapse.Window{Start: cfg.Timelapse.WindowStart, End: cfg.Timelapse.WindowEnd},
		Interval:  cfg.Timelapse.Interval,
		Post:      ui.CallOnMain,
		OnTick:    p.timelapseTick,
		OnRunning: p.timelapseRunning,
	})

	p.build()
	p.setDate(p.date)
	return p
}

func (p *lightPanel) params() lighting.Params {
	return lighting.Params{
		Sun:     p.cfg.SunIntensity,
		Ambient: p.cfg.AmbientIntensity,
		Moon:    lighting.DefaultMoonIntensity,
	}
}

func (p *lightPanel) build() {
	p.dateEntry = widget.NewEntry()
	p.dateEntry.SetPlaceHolder("YYYY-MM-DD")
	p.dateEntry.OnChanged = p.dateTyped

	p.tzEntry = widget.NewEntry()
	p.tzEntry.SetText(p.cfg.Timezone.String())
	p.tzEntry.OnSubmitted = p.timezoneSubmitted

	p.timeLabel = widget.NewLabelWithStyle("", fyne.TextAlignTrailing, fyne.TextStyle{Bold: true})
	p.indicator = ui.NewTimelapseIndicator(10)
	p.playBtn = widget.NewButtonWithIcon(playLabel, theme.MediaPlayIcon(), func() { p.timelapse.Toggle() })

	p.timeSlider = ui.NewSlider(0, clock.LastMinute, float64(clock.MinutesOfDay(p.date)))
	p.timeSlider.OnMouseMove = p.timeMoved
	p.timeSlider.OnChanged = func(v slider.Value) {
		p.timeMoved(v)
		p.metrics.Commit("time")
	}
	timeRow := container.NewBorder(nil, nil,
		widget.NewLabel(clock.FormatMinutes(0)),
		widget.NewLabel(clock.FormatMinutes(clock.LastMinute)),
		p.timeSlider)

	p.lat = ui.NewInputWithSlider(-90, 90, 0.01, p.cfg.Latitude)
	p.lat.Unit = "°"
	p.lat.OnChanged = func(v float64) {
		p.cfg.Latitude = v
		p.locationChanged("latitude")
	}
	p.lng = ui.NewInputWithSlider(-180, 180, 0.01, p.cfg.Longitude)
	p.lng.Unit = "°"
	p.lng.OnChanged = func(v float64) {
		p.cfg.Longitude = v
		p.locationChanged("longitude")
	}

	p.sun = ui.NewInputWithSlider(0, 1, 0.25, p.cfg.SunIntensity)
	p.sun.HasDots = true
	p.sun.OnChanged = func(v float64) {
		p.cfg.SunIntensity = v
		p.paramsChanged("sun_intensity")
	}
	p.ambient = ui.NewInputWithSlider(0, 1, 0.05, p.cfg.AmbientIntensity)
	p.ambient.OnChanged = func(v float64) {
		p.cfg.AmbientIntensity = v
		p.paramsChanged("ambient_intensity")
	}

	p.speed = ui.NewInputWithSlider(1, timelapse.MaxSpeed, 1, p.cfg.Timelapse.Speed)
	p.speed.Unit = "min/s"
	p.speed.OnChanged = func(v float64) {
		p.cfg.Timelapse.Speed = v
		p.timelapse.SetSpeed(v)
		p.metrics.Commit("timelapse_speed")
		p.scheduleSave()
	}

	p.window = ui.NewRangeSlider(0, clock.LastMinute,
		slider.Range(float64(p.cfg.Timelapse.WindowStart), float64(p.cfg.Timelapse.WindowEnd)))
	p.window.Step = windowStep
	p.window.Refresh()
	p.windowLabel = widget.NewLabel("")
	p.window.OnMouseMove = func(v slider.Value) { p.showWindow(minute(v.Min), minute(v.Max)) }
	p.window.OnChanged = p.windowCommitted
	p.showWindow(p.cfg.Timelapse.WindowStart, p.cfg.Timelapse.WindowEnd)

	for _, in := range []*ui.InputWithSlider{p.lat, p.lng, p.sun, p.ambient, p.speed} {
		in.Refresh()
	}

	p.status = widget.NewLabel("")
	p.status.Importance = widget.DangerImportance
	p.status.Hide()

	header := container.NewHBox(
		widget.NewLabel("Date"), container.NewGridWrap(fyne.NewSize(120, p.dateEntry.MinSize().Height), p.dateEntry),
		layout.NewSpacer(),
		p.timeLabel, p.indicator.CanvasObject(), p.playBtn,
	)
	form := container.New(layout.NewFormLayout(),
		widget.NewLabel("Time zone"), p.tzEntry,
		widget.NewLabel("Latitude"), p.lat,
		widget.NewLabel("Longitude"), p.lng,
		widget.NewLabel("Sun"), p.sun,
		widget.NewLabel("Ambient"), p.ambient,
		widget.NewLabel("Speed"), p.speed,
		widget.NewLabel("Loop"), container.NewBorder(nil, nil, nil, p.windowLabel, p.window),
	)
	top := container.NewVBox(header, timeRow, widget.NewSeparator(), form, p.status, widget.NewSeparator())
	p.content = container.NewBorder(top, nil, nil, nil, container.NewVScroll(p.preview.label))
}

func minute(v float64) int { return int(math.Round(v)) }

// setDate selects a new moment and recomputes the lighting.
func (p *lightPanel) setDate(t time.Time) {
	p.date = t
	p.timelapse.SetDate(t)
	p.showDate()
	p.applyLighting()
}

func (p *lightPanel) showDate() {
	if text := clock.FormatDate(p.date); p.dateEntry.Text != text {
		p.dateEntry.SetText(text)
	}
	p.timeLabel.SetText(clock.FormatHHMM(p.date))
	p.timeSlider.SetValue(slider.Single(float64(clock.MinutesOfDay(p.date))))
}

func (p *lightPanel) applyLighting() {
	l, err := p.control.SetLightingForDate(p.date)
	p.metrics.Lighting(l.Sun.Altitude, err)
	if err != nil {
		p.status.SetText(fmt.Sprintf("Lighting update failed: %v", err))
		p.status.Show()
		return
	}
	p.status.Hide()
}

func (p *lightPanel) timeMoved(v slider.Value) {
	p.setDate(clock.WithMinutes(p.date, minute(v.X)))
}

func (p *lightPanel) dateTyped(text string) {
	t, ok := clock.ParseDate(strings.TrimSpace(text), p.date)
	if !ok || t.Equal(p.date) {
		return
	}
	p.setDate(t)
}

func (p *lightPanel) timezoneSubmitted(text string) {
	loc, err := time.LoadLocation(strings.TrimSpace(text))
	if err != nil {
		p.logger.Debugw("Rejected time zone", "zone", text, "error", err)
		p.tzEntry.SetText(p.cfg.Timezone.String())
		return
	}
	p.cfg.Timezone = config.Zone{Location: loc}
	p.tzEntry.SetText(loc.String())
	p.setDate(inZone(p.date, loc))
	p.scheduleSave()
}

// inZone keeps the wall clock of t in loc.
func inZone(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

func (p *lightPanel) locationChanged(control string) {
	p.control.SetLocation(lighting.Location{Lat: p.cfg.Latitude, Lng: p.cfg.Longitude})
	p.metrics.Commit(control)
	p.applyLighting()
	p.scheduleSave()
}

func (p *lightPanel) paramsChanged(control string) {
	p.control.SetParams(p.params())
	p.metrics.Commit(control)
	p.applyLighting()
	p.scheduleSave()
}

func (p *lightPanel) windowCommitted(v slider.Value) {
	start, end := minute(v.Min), minute(v.Max)
	p.cfg.Timelapse.WindowStart, p.cfg.Timelapse.WindowEnd = start, end
	p.timelapse.SetWindow(timelapse.Window{Start: start, End: end})
	p.showWindow(start, end)
	p.metrics.Commit("timelapse_window")
	p.scheduleSave()
}

func (p *lightPanel) showWindow(start, end int) {
	p.windowLabel.SetText(clock.FormatMinutes(start) + " to " + clock.FormatMinutes(end))
}

func (p *lightPanel) timelapseTick(t time.Time) {
	p.date = t
	p.showDate()
	p.applyLighting()
	p.metrics.Frame()
}

func (p *lightPanel) timelapseRunning(on bool) {
	p.indicator.SetRunning(on)
	if on {
		p.playBtn.SetText(stopLabel)
		p.playBtn.SetIcon(theme.MediaPauseIcon())
	} else {
		p.playBtn.SetText(playLabel)
		p.playBtn.SetIcon(theme.MediaPlayIcon())
	}
}

// typedKey handles shortcuts when no widget owns focus.
func (p *lightPanel) typedKey(ev *fyne.KeyEvent) {
	if ev == nil {
		return
	}
	switch ev.Name {
	case fyne.KeySpace:
		p.timelapse.Toggle()
	case fyne.KeyLeft:
		p.setDate(p.date.Add(-nudgeMinute * time.Minute))
	case fyne.KeyRight:
		p.setDate(p.date.Add(nudgeMinute * time.Minute))
	}
}

// applyConfig adopts a config reloaded from disk without saving it back.
func (p *lightPanel) applyConfig(c *config.Config) {
	zoneChanged := c.Timezone.String() != p.cfg.Timezone.String()
	p.cfg = *c

	p.lat.SetValue(c.Latitude)
	p.lng.SetValue(c.Longitude)
	p.sun.SetValue(c.SunIntensity)
	p.ambient.SetValue(c.AmbientIntensity)
	p.speed.SetValue(c.Timelapse.Speed)
	p.window.SetValue(slider.Range(float64(c.Timelapse.WindowStart), float64(c.Timelapse.WindowEnd)))
	p.showWindow(c.Timelapse.WindowStart, c.Timelapse.WindowEnd)
	p.tzEntry.SetText(c.Timezone.String())

	p.control.SetLocation(lighting.Location{Lat: c.Latitude, Lng: c.Longitude})
	p.control.SetParams(p.params())
	p.timelapse.SetSpeed(c.Timelapse.Speed)
	p.timelapse.SetWindow(timelapse.Window{Start: c.Timelapse.WindowStart, End: c.Timelapse.WindowEnd})

	if zoneChanged {
		p.setDate(inZone(p.date, c.Timezone.Location))
		return
	}
	p.applyLighting()
}

func (p *lightPanel) scheduleSave() { p.saver.schedule(p.cfg) }

// close stops the timelapse and writes any pending config.
func (p *lightPanel) close() error {
	p.timelapse.Close()
	p.indicator.SetRunning(false)
	return p.saver.flush()
}
