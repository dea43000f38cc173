// Package slider holds the interaction engine behind the range slider
// widgets: conversion between the value domain and track percentages, drag
// tracking on a global input surface, keyboard stepping and dual-thumb
// collision handling. It has no UI dependencies.
package slider

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptyDomain is returned for a domain whose max does not exceed min.
	ErrEmptyDomain = errors.New("slider: max must be greater than min")
	// ErrInvalidStep is returned for a zero, negative or non-finite step.
	ErrInvalidStep = errors.New("slider: step must be positive")
)

// Domain is the {min, max, step} triple defining valid values.
type Domain struct {
	Min  float64
	Max  float64
	Step float64
}

// NewDomain validates and returns a domain.
func NewDomain(min, max, step float64) (Domain, error) {
	d := Domain{Min: min, Max: max, Step: step}
	if err := d.Validate(); err != nil {
		return Domain{}, err
	}
	return d, nil
}

// Validate reports configuration errors. A domain that fails validation must
// not be handed to the engine.
func (d Domain) Validate() error {
	if math.IsNaN(d.Min) || math.IsNaN(d.Max) || !(d.Max > d.Min) {
		return fmt.Errorf("%w (min=%v max=%v)", ErrEmptyDomain, d.Min, d.Max)
	}
	if math.IsNaN(d.Step) || math.IsInf(d.Step, 0) || d.Step <= 0 {
		return fmt.Errorf("%w (step=%v)", ErrInvalidStep, d.Step)
	}
	return nil
}

// Span returns max - min.
func (d Domain) Span() float64 { return d.Max - d.Min }

// OneStep is the percentage of the track covered by a single step.
func (d Domain) OneStep() float64 { return d.Step / d.Span() * 100 }

// Mode tags the single or range form of a Value or Position.
type Mode int

const (
	// ModeSingle has one thumb.
	ModeSingle Mode = iota
	// ModeRange has a min and a max thumb.
	ModeRange
)

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeRange:
		return "range"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Value is a slider value: Single(x) or Range(min, max). In range form a NaN
// side is unset and maps to the matching end of the track.
type Value struct {
	Mode Mode
	X    float64
	Min  float64
	Max  float64
}

// Single builds a single-thumb value.
func Single(x float64) Value { return Value{Mode: ModeSingle, X: x} }

// Range builds a two-thumb value.
func Range(min, max float64) Value { return Value{Mode: ModeRange, Min: min, Max: max} }

func (v Value) String() string {
	if v.Mode == ModeRange {
		return fmt.Sprintf("{min:%v max:%v}", v.Min, v.Max)
	}
	return fmt.Sprintf("%v", v.X)
}

// Position is a value expressed as a percentage of track length, in the same
// tagged form as Value.
type Position struct {
	Mode Mode
	X    float64
	Min  float64
	Max  float64
}

// SinglePos builds a single-thumb position.
func SinglePos(x float64) Position { return Position{Mode: ModeSingle, X: x} }

// RangePos builds a two-thumb position.
func RangePos(min, max float64) Position { return Position{Mode: ModeRange, Min: min, Max: max} }

// At returns the percentage of the given thumb. In single mode every thumb
// reports the only position.
func (p Position) At(t Thumb) float64 {
	if p.Mode == ModeSingle {
		return p.X
	}
	if t == ThumbMin {
		return p.Min
	}
	return p.Max
}

// With returns a copy with the given thumb moved to pct.
func (p Position) With(t Thumb, pct float64) Position {
	switch p.Mode {
	case ModeRange:
		if t == ThumbMin {
			p.Min = pct
		} else {
			p.Max = pct
		}
	default:
		p.X = pct
	}
	return p
}

// Clamp limits every side to [0, 100].
func (p Position) Clamp() Position {
	switch p.Mode {
	case ModeRange:
		p.Min = Clamp(p.Min, 0, 100)
		p.Max = Clamp(p.Max, 0, 100)
	default:
		p.X = Clamp(p.X, 0, 100)
	}
	return p
}

// Ordered swaps the sides of a crossed range so that Min <= Max.
func (p Position) Ordered() Position {
	if p.Mode == ModeRange && p.Min > p.Max {
		p.Min, p.Max = p.Max, p.Min
	}
	return p
}

func valueToPercent(v float64, d Domain) float64 {
	return (v - d.Min) * 100 / d.Span()
}

// ValueToPosition converts a value into track percentages. Unset range sides
// default to 0 and 100 so that partially specified ranges still render.
func ValueToPosition(v Value, d Domain) Position {
	switch v.Mode {
	case ModeRange:
		p := RangePos(0, 100)
		if !math.IsNaN(v.Min) {
			p.Min = valueToPercent(v.Min, d)
		}
		if !math.IsNaN(v.Max) {
			p.Max = valueToPercent(v.Max, d)
		}
		return p
	default:
		return SinglePos(valueToPercent(v.X, d))
	}
}

// PositionToValue converts a percentage back into the value domain, rounded
// to precision fractional digits.
func PositionToValue(pct float64, d Domain, precision int) float64 {
	raw := d.Min + d.Span()*pct/100
	return RoundTo(raw, precision)
}

// PositionToValues converts both forms of Position.
func PositionToValues(p Position, d Domain, precision int) Value {
	switch p.Mode {
	case ModeRange:
		return Range(PositionToValue(p.Min, d, precision), PositionToValue(p.Max, d, precision))
	default:
		return Single(PositionToValue(p.X, d, precision))
	}
}

// RoundTo rounds x to precision fractional digits by scaling, rounding half
// up and scaling back. x is returned as is when the scaled value overflows.
func RoundTo(x float64, precision int) float64 {
	if precision < 0 {
		precision = 0
	}
	scale := math.Pow(10, float64(precision))
	scaled := x * scale
	if math.IsInf(scale, 0) || math.IsInf(scaled, 0) {
		return x
	}
	return math.Floor(scaled+0.5) / scale
}

// Clamp constrains v to the [min, max] interval.
func Clamp(v, min, max float64) float64 {
	if max <= min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ClampValue constrains every side of v to the domain bounds and restores
// min <= max for ranges.
func ClampValue(v Value, d Domain) Value {
	switch v.Mode {
	case ModeRange:
		lo, hi := v.Min, v.Max
		if math.IsNaN(lo) {
			lo = d.Min
		}
		if math.IsNaN(hi) {
			hi = d.Max
		}
		lo, hi = Clamp(lo, d.Min, d.Max), Clamp(hi, d.Min, d.Max)
		if lo > hi {
			lo, hi = hi, lo
		}
		return Range(lo, hi)
	default:
		x := v.X
		if math.IsNaN(x) {
			x = d.Min
		}
		return Single(Clamp(x, d.Min, d.Max))
	}
}
