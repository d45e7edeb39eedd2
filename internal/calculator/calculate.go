package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrorDisplay is the display literal for every failed computation.
const ErrorDisplay = "Error"

// zeroThreshold is the magnitude below which results display as 0.
const zeroThreshold = 1e-12

var (
	// ErrDomain covers division by zero, logarithms of non-positive input,
	// invalid powers and non-finite results.
	ErrDomain = errors.New("domain error")
	// ErrParse is returned when the display does not hold a number.
	ErrParse = errors.New("display is not a number")
)

// FormatNumber renders x in canonical display form: integral values without a
// fractional part, others with at most 10 significant digits and no trailing
// zeros. Magnitudes below 1e-12 render as "0".
func FormatNumber(x float64) string {
	if math.Abs(x) < zeroThreshold {
		x = 0
	}

	if x == math.Trunc(x) {
		return strconv.FormatFloat(x, 'f', 0, 64)
	}

	// Rounding to 10 digits can carry into an integer ("100"), so only a
	// fractional part is ever trimmed.
	s := strconv.FormatFloat(x, 'g', 10, 64)
	if strings.ContainsAny(s, "eE") || !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Calculate folds b into a with op and returns the display string. An
// operator outside the known set returns b unchanged.
func Calculate(a, b float64, op Operator) string {
	result, err := apply(a, b, op)
	if err != nil {
		return ErrorDisplay
	}
	return FormatNumber(result)
}

func apply(a, b float64, op Operator) (float64, error) {
	var result float64

	switch op {
	case OpAdd:
		result = a + b
	case OpSubtract:
		result = a - b
	case OpMultiply:
		result = a * b
	case OpDivide:
		if b == 0 {
			return 0, fmt.Errorf("%w: division by zero: %g / %g", ErrDomain, a, b)
		}
		result = a / b
	case OpPower:
		result = math.Pow(a, b)
	default:
		result = b
	}

	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, fmt.Errorf("%w: %g %s %g is not finite", ErrDomain, a, op, b)
	}

	return result, nil
}

// evaluate applies a scientific function to x. Trigonometric functions take
// degrees.
func evaluate(fn Function, x float64) (float64, error) {
	var result float64

	switch fn {
	case FnSin:
		result = math.Sin(radians(x))
	case FnCos:
		result = math.Cos(radians(x))
	case FnTan:
		result = math.Tan(radians(x))
	case FnLn:
		if x <= 0 {
			return 0, fmt.Errorf("%w: ln(%g)", ErrDomain, x)
		}
		result = math.Log(x)
	case FnLog10:
		if x <= 0 {
			return 0, fmt.Errorf("%w: log10(%g)", ErrDomain, x)
		}
		result = math.Log10(x)
	default:
		return 0, fmt.Errorf("%w: unknown function %q", ErrDomain, fn)
	}

	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, fmt.Errorf("%w: %s(%g) is not finite", ErrDomain, fn, x)
	}

	return result, nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// parseDisplay reads the display back as a number.
func parseDisplay(display string) (float64, error) {
	x, err := strconv.ParseFloat(display, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrParse, display)
	}
	return x, nil
}
