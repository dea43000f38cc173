package lighting

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name         string
		sun          Angles
		wantSun      float64
		wantGB       uint8
		wantAltitude float64
	}{
		{name: "noon", sun: Angles{Altitude: math.Pi / 2}, wantSun: DefaultSunIntensity, wantGB: 255, wantAltitude: 90},
		{name: "afternoon", sun: Angles{Altitude: math.Pi / 6}, wantSun: DefaultSunIntensity, wantGB: 242, wantAltitude: 30},
		{name: "horizon", sun: Angles{Altitude: 0}, wantSun: DefaultSunIntensity, wantGB: 230, wantAltitude: 0},
		{name: "night", sun: Angles{Altitude: -0.1}, wantSun: 0, wantGB: 230, wantAltitude: -0.1 * 180 / math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Describe(tt.sun, Angles{}, DefaultParams())
			assert.Equal(t, tt.wantSun, l.Sun.Intensity)
			assert.Equal(t, RGB{255, tt.wantGB, tt.wantGB}, l.Atmosphere.Color)
			assert.InDelta(t, tt.wantAltitude, l.Sun.Altitude, 1e-9)
			assert.Equal(t, "sun", l.ShadowSource)
		})
	}
}

func TestDescribeAzimuthFacesTheLight(t *testing.T) {
	l := Describe(Angles{Azimuth: 0}, Angles{Azimuth: -math.Pi / 2}, DefaultParams())
	assert.InDelta(t, 180, l.Sun.Azimuth, 1e-9)
	assert.InDelta(t, 90, l.Moon.Azimuth, 1e-9)
}

func TestDescribeAmbientSubtractsMoon(t *testing.T) {
	l := Describe(Angles{}, Angles{Altitude: 0.3}, Params{Sun: 0.5, Ambient: 0.75, Moon: 0.25})
	assert.Equal(t, 0.5, l.Atmosphere.Intensity)
	assert.Equal(t, 0.25, l.Moon.Intensity)
	assert.Equal(t, white, l.Moon.Color)
}

func TestStyleYAML(t *testing.T) {
	l := Describe(Angles{Altitude: math.Pi / 6}, Angles{}, DefaultParams())
	out, err := l.Style().YAML()
	require.NoError(t, err)

	assert.Contains(t, out, "defaultLightingMode: global")
	assert.Contains(t, out, "rgb(255, 242, 242)")

	var doc struct {
		Sources map[string]struct {
			Type     string   `yaml:"type"`
			Altitude *float64 `yaml:"altitude"`
			Color    []string `yaml:"color"`
		} `yaml:"sources"`
		LightingModes map[string][]string `yaml:"lightingModes"`
		Shadow        struct {
			Source string `yaml:"source"`
		} `yaml:"shadow"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "directional", doc.Sources["sun"].Type)
	assert.Equal(t, "ambient", doc.Sources["atmosphere"].Type)
	assert.Nil(t, doc.Sources["atmosphere"].Altitude)
	assert.Equal(t, []string{"to-color", "rgb(255, 255, 255)"}, doc.Sources["moon"].Color)
	assert.Equal(t, []string{"sun", "moon", "atmosphere"}, doc.LightingModes["global"])
	assert.Equal(t, "sun", doc.Shadow.Source)
}

func TestSunCalcNoonIsAboveHorizon(t *testing.T) {
	// equinox noon on the equator at the prime meridian
	noon := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	sun := SunCalc{}.Sun(noon, 0, 0)
	assert.Greater(t, sun.Altitude, 1.3)

	midnight := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	assert.Less(t, SunCalc{}.Sun(midnight, 0, 0).Altitude, 0.0)
}
