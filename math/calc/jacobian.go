/*package calc provides some basic calculus routines.
*/
package calc

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

type jacParams struct {
	out  *mat.Dense
	step float64
}
type internalJacOption func(*jacParams)
type JacOption internalJacOption

// Out supplies a call to Jacobian with a matrix to write derivatives to.
func Out(out *mat.Dense) JacOption {
	return func(p *jacParams) { p.out = out }
}

// Step sets the relative step size used for finite differences. Defaults to
// 1e-6.
func Step(h float64) JacOption {
	return func(p *jacParams) { p.step = h }
}

func (p *jacParams) loadOptions(opts []JacOption) {
	for _, opt := range opts { opt(p) }
}

// Jacobian computes the numerical Jacobian of f at x with central
// differences. J[i, j] is df_i/dx_j. f must not keep or modify its argument.
//
// The step taken in x_j is Step * max(1, |x_j|).
func Jacobian(
	f func(x []float64) []float64, x []float64, opts ...JacOption,
) *mat.Dense {
	p := &jacParams{ step: 1e-6 }
	p.loadOptions(opts)

	y0 := f(x)
	out := p.out
	if out == nil {
		out = mat.NewDense(len(y0), len(x), nil)
	} else if r, c := out.Dims(); r != len(y0) || c != len(x) {
		panic("Shape error.")
	}

	xh := append([]float64{}, x...)
	for j := range x {
		h := p.step * math.Max(1, math.Abs(x[j]))

		xh[j] = x[j] + h
		hi := f(xh)
		xh[j] = x[j] - h
		lo := f(xh)
		xh[j] = x[j]

		if len(hi) != len(y0) || len(lo) != len(y0) {
			panic("Shape error.")
		}
		for i := range y0 {
			out.Set(i, j, (hi[i] - lo[i]) / (2*h))
		}
	}

	return out
}
