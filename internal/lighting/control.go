package lighting

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Sink receives lighting styles, typically a map view.
type Sink interface {
	SetLightingStyle(Style) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Style) error

func (f SinkFunc) SetLightingStyle(s Style) error { return f(s) }

// Location is the observer position in degrees.
type Location struct {
	Lat float64
	Lng float64
}

// Control computes the lighting for a moment at the current location and
// pushes it to a sink. It is safe for concurrent use.
type Control struct {
	logger *zap.SugaredLogger
	eph    Ephemeris
	sink   Sink

	mu     sync.Mutex
	loc    Location
	params Params
}

// NewControl builds a control with the default intensities.
func NewControl(logger *zap.SugaredLogger, eph Ephemeris, sink Sink, loc Location) *Control {
	if eph == nil {
		eph = SunCalc{}
	}
	return &Control{
		logger: logger.Named("lighting"),
		eph:    eph,
		sink:   sink,
		loc:    loc,
		params: DefaultParams(),
	}
}

// SetLocation moves the observer.
func (c *Control) SetLocation(loc Location) {
	c.mu.Lock()
	c.loc = loc
	c.mu.Unlock()
}

// Location returns the observer position.
func (c *Control) Location() Location {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loc
}

// SetParams replaces the light intensities.
func (c *Control) SetParams(p Params) {
	c.mu.Lock()
	c.params = p
	c.mu.Unlock()
}

// Params returns the light intensities.
func (c *Control) Params() Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

// LightingFor computes the lighting at t without touching the sink.
func (c *Control) LightingFor(t time.Time) Lighting {
	c.mu.Lock()
	loc, params := c.loc, c.params
	c.mu.Unlock()
	return Describe(c.eph.Sun(t, loc.Lat, loc.Lng), c.eph.Moon(t, loc.Lat, loc.Lng), params)
}

// SetLightingForDate computes the lighting at t and hands its style to the
// sink.
func (c *Control) SetLightingForDate(t time.Time) (Lighting, error) {
	l := c.LightingFor(t)
	if c.sink == nil {
		return l, nil
	}
	if err := c.sink.SetLightingStyle(l.Style()); err != nil {
		c.logger.Warnw("Failed to apply lighting style", "time", t, "error", err)
		return l, fmt.Errorf("set lighting style: %w", err)
	}
	c.logger.Debugw("Applied lighting",
		"time", t,
		"sunAltitude", l.Sun.Altitude,
		"sunIntensity", l.Sun.Intensity)
	return l, nil
}

// MultiSink hands every style to all of its sinks, even after one failed.
type MultiSink []Sink

func (m MultiSink) SetLightingStyle(st Style) error {
	var err error
	for _, s := range m {
		if s != nil {
			err = multierr.Append(err, s.SetLightingStyle(st))
		}
	}
	return err
}

// WriterSink writes every style as a YAML document.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) SetLightingStyle(st Style) error {
	out, err := st.YAML()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(s.W, "---\n"+out); err != nil {
		return fmt.Errorf("write lighting style: %w", err)
	}
	return nil
}

// FileSink replaces a YAML file with the latest style. The file is written
// next to its final path and renamed so readers never see a partial style.
type FileSink struct {
	Path string
}

func (s FileSink) SetLightingStyle(st Style) error {
	out, err := st.YAML()
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.WriteString(out); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}
