package slider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDotCount(t *testing.T) {
	tests := []struct {
		name string
		d    Domain
		want int
	}{
		{name: "quarters", d: Domain{Min: 0, Max: 100, Step: 25}, want: 5},
		{name: "non-integer count", d: Domain{Min: 0, Max: 100, Step: 30}, want: 0},
		{name: "two ends", d: Domain{Min: 0, Max: 100, Step: 100}, want: 2},
		{name: "ten dots", d: Domain{Min: 1, Max: 10, Step: 1}, want: 10},
		{name: "too many", d: Domain{Min: 0, Max: 100, Step: 10}, want: 0},
		{name: "step beyond span", d: Domain{Min: 0, Max: 10, Step: 20}, want: 0},
		{name: "invalid domain", d: Domain{Min: 1, Max: 1, Step: 1}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DotCount(tt.d))
		})
	}
}

func TestEngineDotsActive(t *testing.T) {
	d := Domain{Min: 0, Max: 100, Step: 25}
	e, err := NewEngine(d, Single(50), Config{})
	require.NoError(t, err)

	assert.Nil(t, e.Dots(false, false))

	dots := e.Dots(true, false)
	require.Len(t, dots, 5)
	wantPos := []float64{0, 25, 50, 75, 100}
	wantActive := []bool{true, true, true, false, false}
	for i, dot := range dots {
		assert.Equal(t, wantPos[i], dot.Position)
		assert.Equal(t, wantActive[i], dot.Active, "dot %d", i)
	}

	for _, dot := range e.Dots(true, true) {
		assert.False(t, dot.Active)
	}

	r, err := NewEngine(d, Range(25, 75), Config{})
	require.NoError(t, err)
	wantActive = []bool{false, true, true, true, false}
	for i, dot := range r.Dots(true, false) {
		assert.Equal(t, wantActive[i], dot.Active, "range dot %d", i)
	}
}
