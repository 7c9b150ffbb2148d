// Package income turns user supplied income values into the non-negative figure
// the estimator works with.
//
// Parsing never fails: anything that cannot be read as a finite number becomes 0.
package income

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var groupingReplacer = strings.NewReplacer(",", "", "_", "")

var ErrNotANumber = errors.New("not a finite number")

// Parse reads raw as an annual income. A leading "$" and "," or "_" digit grouping
// are accepted, so values rendered by Grouped/Money can be fed back in.
// Empty, malformed, NaN and infinite values parse to 0. Negative values are clamped to 0.
func Parse(raw string) float64 {
	v, err := ParseStrict(raw)
	if err != nil {
		return 0
	}
	return Clamp(v)
}

// ParseStrict is Parse without the fallback. It returns ErrNotANumber for a non-empty
// value that is not a finite number. Empty input is 0. Negative values are returned as is.
func ParseStrict(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = groupingReplacer.Replace(s)
	if s == "" {
		return 0, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q: %w", raw, ErrNotANumber)
	}
	return v, nil
}

// Clamp maps NaN, infinities and negative values to 0 and returns any other value unchanged.
func Clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
