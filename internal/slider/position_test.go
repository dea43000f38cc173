package slider

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDomainRejectsConfigurationErrors(t *testing.T) {
	tests := []struct {
		name    string
		min     float64
		max     float64
		step    float64
		wantErr error
	}{
		{name: "valid", min: 0, max: 100, step: 1},
		{name: "empty", min: 5, max: 5, step: 1, wantErr: ErrEmptyDomain},
		{name: "inverted", min: 10, max: 0, step: 1, wantErr: ErrEmptyDomain},
		{name: "zero step", min: 0, max: 10, step: 0, wantErr: ErrInvalidStep},
		{name: "negative step", min: 0, max: 10, step: -1, wantErr: ErrInvalidStep},
		{name: "nan step", min: 0, max: 10, step: math.NaN(), wantErr: ErrInvalidStep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDomain(tt.min, tt.max, tt.step)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestValueToPosition(t *testing.T) {
	d := Domain{Min: 0, Max: 10, Step: 1}

	assert.Equal(t, SinglePos(50), ValueToPosition(Single(5), d))
	assert.Equal(t, RangePos(20, 70), ValueToPosition(Range(2, 7), d))

	// unset sides fall back to the track ends
	assert.Equal(t, RangePos(0, 50), ValueToPosition(Range(math.NaN(), 5), d))
	assert.Equal(t, RangePos(50, 100), ValueToPosition(Range(5, math.NaN()), d))

	neg := Domain{Min: -50, Max: 50, Step: 1}
	assert.Equal(t, SinglePos(25), ValueToPosition(Single(-25), neg))
}

func TestPositionToValueRounding(t *testing.T) {
	d := Domain{Min: 0, Max: 1, Step: 0.01}
	assert.Equal(t, 0.33, PositionToValue(33.333333, d, 2))
	assert.Equal(t, 0.67, PositionToValue(66.666666, d, 2))
	assert.Equal(t, 1.0, PositionToValue(100, d, 2))

	minutes := Domain{Min: 0, Max: 1439, Step: 1}
	assert.Equal(t, 720.0, PositionToValue(720*minutes.OneStep(), minutes, 0))
}

func TestRoundTripValuePosition(t *testing.T) {
	domains := []Domain{
		{Min: 0, Max: 100, Step: 1},
		{Min: -5, Max: 5, Step: 0.1},
		{Min: 0, Max: 1439, Step: 1},
		{Min: -90, Max: 90, Step: 0.01},
	}
	for _, d := range domains {
		precision := PrecisionOf(d.Step)
		steps := int(math.Round(d.Span() / d.Step))
		for i := 0; i <= steps; i++ {
			v := RoundTo(d.Min+float64(i)*d.Step, precision)
			pos := ValueToPosition(Single(v), d)
			got := PositionToValue(pos.X, d, precision)
			if got != RoundTo(v, precision) {
				t.Fatalf("domain %+v: round trip of %v gave %v", d, v, got)
			}
		}
	}
}

func TestPositionToValueMonotonic(t *testing.T) {
	d := Domain{Min: -3, Max: 7, Step: 0.5}
	precision := PrecisionOf(d.Step)
	prev := math.Inf(-1)
	for i := 0; i <= 1000; i++ {
		v := PositionToValue(float64(i)/10, d, precision)
		if v < prev {
			t.Fatalf("value decreased at %v%%: %v < %v", float64(i)/10, v, prev)
		}
		prev = v
	}
}

func TestClampIdempotent(t *testing.T) {
	d := Domain{Min: 0, Max: 10, Step: 1}
	values := []Value{Single(-4), Single(42), Single(3), Range(-1, 20), Range(8, 2), Range(math.NaN(), 4)}
	for _, v := range values {
		once := ClampValue(v, d)
		assert.Equal(t, once, ClampValue(once, d), "value %v", v)

		pos := ValueToPosition(v, d).Clamp()
		assert.Equal(t, pos, pos.Clamp(), "position of %v", v)
	}
	assert.Equal(t, Range(2, 8), ClampValue(Range(8, 2), d))
}

func TestRoundToHalfUp(t *testing.T) {
	assert.Equal(t, 3.0, RoundTo(2.5, 0))
	assert.Equal(t, -2.0, RoundTo(-2.5, 0))
	assert.Equal(t, 0.1, RoundTo(0.1+0.2-0.2, 1))
	assert.Equal(t, 1.24, RoundTo(1.2351, 2))
}

func TestRoundToHugePrecision(t *testing.T) {
	p := PrecisionOf(5e-324)
	assert.Equal(t, 1.5, RoundTo(1.5, p))
	assert.Equal(t, 1e10, RoundTo(1e10, 300))
	assert.Equal(t, -3.25, RoundTo(-3.25, 400))
}

func TestPositionHelpers(t *testing.T) {
	p := RangePos(70, 30)
	assert.Equal(t, RangePos(30, 70), p.Ordered())
	assert.Equal(t, 70.0, p.At(ThumbMin))
	assert.Equal(t, RangePos(10, 30), p.With(ThumbMin, 10))

	s := SinglePos(40)
	assert.Equal(t, 40.0, s.At(ThumbMin))
	assert.Equal(t, SinglePos(55), s.With(ThumbMin, 55))
	assert.Equal(t, SinglePos(100), SinglePos(140).Clamp())
}
