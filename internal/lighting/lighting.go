// Package lighting turns sun and moon positions into the lighting style a map
// renderer consumes.
package lighting

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sixdouglas/suncalc"
	"gopkg.in/yaml.v3"
)

// Default intensities of the light sources.
const (
	DefaultSunIntensity     = 0.3
	DefaultAmbientIntensity = 0.75
	DefaultMoonIntensity    = 0.0
)

// Angles is the position of a body in the sky, in radians. Azimuth is
// measured from south towards west.
type Angles struct {
	Altitude float64
	Azimuth  float64
}

// Ephemeris computes sun and moon positions for an observer.
type Ephemeris interface {
	Sun(t time.Time, lat, lng float64) Angles
	Moon(t time.Time, lat, lng float64) Angles
}

// SunCalc is the Ephemeris backed by the suncalc library.
type SunCalc struct{}

func (SunCalc) Sun(t time.Time, lat, lng float64) Angles {
	p := suncalc.GetPosition(t, lat, lng)
	return Angles{Altitude: p.Altitude, Azimuth: p.Azimuth}
}

func (SunCalc) Moon(t time.Time, lat, lng float64) Angles {
	p := suncalc.GetMoonPosition(t, lat, lng)
	return Angles{Altitude: p.Altitude, Azimuth: p.Azimuth}
}

// RGB is an 8-bit colour.
type RGB [3]uint8

var white = RGB{255, 255, 255}

func (c RGB) String() string { return fmt.Sprintf("rgb(%d, %d, %d)", c[0], c[1], c[2]) }

// Directional is a light coming from one direction, angles in degrees.
type Directional struct {
	Altitude  float64
	Azimuth   float64
	Color     RGB
	Intensity float64
}

// Ambient is light without a direction.
type Ambient struct {
	Color     RGB
	Intensity float64
}

// Params are the tunable intensities.
type Params struct {
	Sun     float64
	Ambient float64
	Moon    float64
}

// DefaultParams returns the stock intensities.
func DefaultParams() Params {
	return Params{Sun: DefaultSunIntensity, Ambient: DefaultAmbientIntensity, Moon: DefaultMoonIntensity}
}

// Lighting is the full description handed to the renderer.
type Lighting struct {
	Sun          Directional
	Moon         Directional
	Atmosphere   Ambient
	ShadowSource string
}

// Describe builds the lighting for the given sun and moon positions. The sun
// is switched off below the horizon and the atmosphere warms up as the sun
// sets.
func Describe(sun, moon Angles, p Params) Lighting {
	sunIntensity := p.Sun
	if math.Sin(sun.Altitude) < 0 {
		sunIntensity = 0
	}
	gb := uint8(math.Floor(255*(0.9+0.1*math.Max(0, math.Sin(sun.Altitude))) + 0.5))
	return Lighting{
		Sun: Directional{
			Altitude:  degrees(sun.Altitude),
			Azimuth:   degrees(sun.Azimuth + math.Pi),
			Color:     white,
			Intensity: sunIntensity,
		},
		Moon: Directional{
			Altitude:  degrees(moon.Altitude),
			Azimuth:   degrees(moon.Azimuth + math.Pi),
			Color:     white,
			Intensity: p.Moon,
		},
		Atmosphere: Ambient{
			Color:     RGB{255, gb, gb},
			Intensity: p.Ambient - p.Moon,
		},
		ShadowSource: "sun",
	}
}

func degrees(rad float64) float64 { return 180 * (rad / math.Pi) }

// Source is one entry of Style.Sources.
type Source struct {
	Type      string   `yaml:"type"`
	Altitude  *float64 `yaml:"altitude,omitempty"`
	Azimuth   *float64 `yaml:"azimuth,omitempty"`
	Color     []string `yaml:"color,flow"`
	Intensity float64  `yaml:"intensity"`
}

// Shadow selects the light that casts shadows.
type Shadow struct {
	Source string `yaml:"source"`
}

// Style is the lighting style document of the map renderer.
type Style struct {
	Sources             map[string]Source   `yaml:"sources"`
	LightingModes       map[string][]string `yaml:"lightingModes"`
	DefaultLightingMode string              `yaml:"defaultLightingMode"`
	Shadow              Shadow              `yaml:"shadow"`
}

func colorExpr(c RGB) []string { return []string{"to-color", c.String()} }

func directionalSource(d Directional) Source {
	alt, az := d.Altitude, d.Azimuth
	return Source{Type: "directional", Altitude: &alt, Azimuth: &az, Color: colorExpr(d.Color), Intensity: d.Intensity}
}

// Style renders the lighting as a style document with a single "global"
// lighting mode using all three sources.
func (l Lighting) Style() Style {
	return Style{
		Sources: map[string]Source{
			"sun":        directionalSource(l.Sun),
			"moon":       directionalSource(l.Moon),
			"atmosphere": {Type: "ambient", Color: colorExpr(l.Atmosphere.Color), Intensity: l.Atmosphere.Intensity},
		},
		LightingModes:       map[string][]string{"global": {"sun", "moon", "atmosphere"}},
		DefaultLightingMode: "global",
		Shadow:              Shadow{Source: l.ShadowSource},
	}
}

// YAML encodes the style with two-space indentation.
func (s Style) YAML() (string, error) {
	var buf strings.Builder
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("encode lighting style: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode lighting style: %w", err)
	}
	return buf.String(), nil
}
