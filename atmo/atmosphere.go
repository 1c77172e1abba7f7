/*package atmo contains the parts of a radiative transfer host model which
surface constituents interact with: the wavelength grid the model is evaluated
on, the number of Stokes components it tracks, and the surface parameter
buffers constituents write into.
*/
package atmo

import (
	"errors"

	"github.com/ctessum/sparse"

	"github.com/phil-mansfield/modis/brdf"
)

var (
	// ErrConfig is wrapped by every error caused by a host or constituent
	// which isn't set up well enough to continue.
	ErrConfig = errors.New("configuration error")
	// ErrShape is wrapped by every error caused by arrays of disagreeing
	// lengths.
	ErrShape = errors.New("shape mismatch")
)

// Host is a radiative transfer model which constituents can be added to.
type Host interface {
	// WavelengthsNM returns the wavelengths, in nm, that the model is
	// evaluated at. It may be empty if no grid has been defined yet.
	WavelengthsNM() []float64
	// NStokes returns the number of Stokes components tracked by the model.
	NStokes() int
	// Surface returns the model's surface parameter storage.
	Surface() *Surface
}

// Surface holds the active BRDF kernel of a host and the buffers that the
// kernel reads its parameters from.
//
// BRDFArgs has shape (kernel.NumArgs(), nwavel). DBRDFArgs has one (nwavel)
// array per kernel argument, holding d(argument)/d(injected value).
type Surface struct {
	nwavel    int
	kernel    brdf.Kernel
	BRDFArgs  *sparse.DenseArray
	DBRDFArgs []*sparse.DenseArray
}

// NewSurface creates an empty surface for a host with nwavel wavelengths.
func NewSurface(nwavel int) *Surface {
	return &Surface{ nwavel: nwavel }
}

// NumWavelengths returns the number of columns in the parameter buffers.
func (s *Surface) NumWavelengths() int { return s.nwavel }

// BRDF returns the active kernel, or nil if none has been selected.
func (s *Surface) BRDF() brdf.Kernel { return s.kernel }

// SetBRDF sets the active kernel. The parameter buffers are reallocated (and
// zeroed) only if the kernel needs a different number of arguments than the
// current buffers hold.
func (s *Surface) SetBRDF(k brdf.Kernel) {
	s.kernel = k
	nargs := k.NumArgs()
	if s.BRDFArgs != nil && len(s.DBRDFArgs) == nargs &&
		s.BRDFArgs.Shape[0] == nargs && s.BRDFArgs.Shape[1] == s.nwavel {
		return
	}

	s.BRDFArgs = sparse.ZerosDense(nargs, s.nwavel)
	s.DBRDFArgs = make([]*sparse.DenseArray, nargs)
	for i := range s.DBRDFArgs {
		s.DBRDFArgs[i] = sparse.ZerosDense(s.nwavel)
	}
}

// Arg returns a copy of row k of the parameter buffer.
func (s *Surface) Arg(k int) []float64 {
	out := make([]float64, s.nwavel)
	if s.BRDFArgs == nil { return out }
	for w := range out {
		out[w] = s.BRDFArgs.Get(k, w)
	}
	return out
}

// DArg returns a copy of the derivative buffer of argument k.
func (s *Surface) DArg(k int) []float64 {
	out := make([]float64, s.nwavel)
	if k < 0 || k >= len(s.DBRDFArgs) { return out }
	copy(out, s.DBRDFArgs[k].Elements)
	return out
}

// resize drops the parameter buffers so that they are reallocated for nwavel
// wavelengths the next time a kernel is set.
func (s *Surface) resize(nwavel int) {
	if nwavel == s.nwavel { return }
	s.nwavel = nwavel
	s.BRDFArgs, s.DBRDFArgs = nil, nil
}

// Atmosphere is an in-memory Host.
type Atmosphere struct {
	wavelengths []float64
	nstokes     int
	surface     *Surface
}

var _ Host = &Atmosphere{}

// New creates an Atmosphere evaluated at the given wavelengths (nm) which
// tracks nstokes Stokes components. wavelengthsNM may be nil.
func New(wavelengthsNM []float64, nstokes int) *Atmosphere {
	a := &Atmosphere{ nstokes: nstokes }
	a.surface = NewSurface(0)
	a.SetWavelengths(wavelengthsNM)
	return a
}

func (a *Atmosphere) WavelengthsNM() []float64 { return a.wavelengths }
func (a *Atmosphere) NStokes() int { return a.nstokes }
func (a *Atmosphere) Surface() *Surface { return a.surface }

// SetWavelengths replaces the wavelength grid. If the number of wavelengths
// changes, the surface buffers are discarded.
func (a *Atmosphere) SetWavelengths(wavelengthsNM []float64) {
	if wavelengthsNM == nil {
		a.wavelengths = nil
	} else {
		a.wavelengths = append([]float64{}, wavelengthsNM...)
	}
	a.surface.resize(len(a.wavelengths))
}

// SetNStokes changes the number of Stokes components tracked by the model.
func (a *Atmosphere) SetNStokes(nstokes int) { a.nstokes = nstokes }
