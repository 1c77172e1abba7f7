/*package interpolate implements 1D linear interpolators and the sparse linear
operators used to move values from one wavelength grid onto another.
*/
package interpolate

import (
	"fmt"
	"strings"
)

// Interpolator is a 1D interpolator.
type Interpolator interface {
	// Eval evaluates the interpolator at x.
	Eval(x float64) float64
	// EvalAll evaluates a sequeunce of values and returns the result. An
	// optional output array can be supplied to prevent unneeded heap
	// allocations.
	EvalAll(xs []float64, out ...[]float64) []float64
}

var (
	_ Interpolator = &Linear{}
)

// Mode is the policy used for points which fall outside the range of an
// interpolation grid.
type Mode int

const (
	// Zero sets every out of range value to exactly zero.
	Zero Mode = iota
	// Extend uses the value at the nearest grid endpoint.
	Extend
)

// ParseMode converts a mode name ("zero" or "extend") to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zero": return Zero, nil
	case "extend": return Extend, nil
	}
	return Zero, fmt.Errorf(
		"The out of bounds mode '%s' isn't recognized. It must be set to " +
		"either 'zero' or 'extend'.", s,
	)
}

func (m Mode) String() string {
	switch m {
	case Zero: return "zero"
	case Extend: return "extend"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}
