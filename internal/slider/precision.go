package slider

import (
	"math"
	"strconv"
	"strings"
)

// PrecisionOf returns the number of fractional digits implied by step.
// Steps below one are formatted in exponent form so that very small steps
// such as 1e-8 still count their digits.
func PrecisionOf(step float64) int {
	if math.IsNaN(step) || math.IsInf(step, 0) || step == 0 {
		return 0
	}
	step = math.Abs(step)
	if step < 1 {
		s := strconv.FormatFloat(step, 'e', -1, 64)
		mantissa, exp, ok := strings.Cut(s, "e-")
		if !ok {
			return 0
		}
		digits := 0
		if _, frac, ok := strings.Cut(mantissa, "."); ok {
			digits = len(frac)
		}
		n, err := strconv.Atoi(exp)
		if err != nil {
			return digits
		}
		return digits + n
	}
	s := strconv.FormatFloat(step, 'f', -1, 64)
	if _, frac, ok := strings.Cut(s, "."); ok {
		return len(frac)
	}
	return 0
}
