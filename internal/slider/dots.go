package slider

import "math"

const (
	minDots = 2
	maxDots = 10
)

// Dot is a step marker on the track.
type Dot struct {
	// Position is the marker's percentage along the track.
	Position float64
	// Active is set for dots covered by the value track.
	Active bool
}

// DotCount returns the number of markers a domain can show: (max-min)/step+1
// when that is a whole number between 2 and 10, zero otherwise.
func DotCount(d Domain) int {
	if d.Validate() != nil {
		return 0
	}
	n := d.Span()/d.Step + 1
	if n != math.Trunc(n) || n < minDots || n > maxDots {
		return 0
	}
	return int(math.Round(n))
}

// dotsFor lays out the markers for pos. Disabled sliders never highlight dots.
func dotsFor(d Domain, pos Position, disabled bool) []Dot {
	n := DotCount(d)
	if n == 0 {
		return nil
	}
	oneStep := d.OneStep()
	dots := make([]Dot, n)
	for i := range dots {
		p := float64(i) * oneStep
		dots[i] = Dot{Position: p, Active: !disabled && dotActive(p, pos)}
	}
	return dots
}

func dotActive(p float64, pos Position) bool {
	switch pos.Mode {
	case ModeRange:
		return p >= pos.Min && p <= pos.Max
	default:
		return p <= pos.X
	}
}
