package atmo

import (
	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/mat"
)

// SurfaceDerivative describes how the host's surface buffer responds to a
// constituent parameter. The host chains its own d(radiance)/d(buffer) through
// DBRDF and then through Interpolator to get derivatives with respect to the
// parameter's native grid.
type SurfaceDerivative struct {
	// Name is the parameter the derivative is taken with respect to.
	Name string
	// ArgIndex is the row of the surface buffer the parameter is written to.
	ArgIndex int
	// DBRDF[w] is d(BRDFArgs[ArgIndex, w])/d(injected value at w).
	DBRDF []float64
	// Interpolator has shape (nwavel, nparam) and maps the parameter's native
	// grid onto the host's wavelengths.
	Interpolator *sparse.SparseArray
}

// Jacobian returns the (nwavel, nparam) matrix of derivatives of the buffer
// row with respect to each native parameter value.
func (d *SurfaceDerivative) Jacobian() *mat.Dense {
	nw, np := d.Interpolator.Shape[0], d.Interpolator.Shape[1]
	if len(d.DBRDF) != nw {
		panic("Shape error.")
	}

	jac := mat.NewDense(nw, np, nil)
	for w := 0; w < nw; w++ {
		for j := 0; j < np; j++ {
			jac.Set(w, j, d.DBRDF[w]*d.Interpolator.Get(w, j))
		}
	}
	return jac
}
