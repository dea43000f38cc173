package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/edward-ap/daylight/internal/config"
	"github.com/edward-ap/daylight/internal/lighting"
)

type fixedSky struct{ sun lighting.Angles }

func (f fixedSky) Sun(time.Time, float64, float64) lighting.Angles  { return f.sun }
func (f fixedSky) Moon(time.Time, float64, float64) lighting.Angles { return lighting.Angles{} }

func TestParseAt(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	now := time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC)

	got, err := parseAt("", now, tokyo)
	require.NoError(t, err)
	assert.True(t, got.Equal(now))
	assert.Equal(t, tokyo, got.Location())

	got, err = parseAt("2024-06-21 21:30", now, tokyo)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 21, 21, 30, 0, 0, tokyo), got)

	_, err = parseAt("21:30", now, tokyo)
	assert.Error(t, err)
}

func TestWriteStyle(t *testing.T) {
	logger = zaptest.NewLogger(t).Sugar()
	cfg := config.Default()
	cfg.SunIntensity = 0.5

	var buf bytes.Buffer
	err := writeStyle(&buf, cfg, time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC), fixedSky{sun: lighting.Angles{Altitude: 1}})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("---\n")))
	assert.Contains(t, out, "intensity: 0.5")
	assert.Contains(t, out, "defaultLightingMode: global")
}
