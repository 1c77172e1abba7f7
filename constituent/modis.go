package constituent

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/phil-mansfield/modis/atmo"
	"github.com/phil-mansfield/modis/brdf"
	"github.com/phil-mansfield/modis/logging"
	intr "github.com/phil-mansfield/modis/math/interpolate"
)

// MODISConfig holds everything needed to create a MODIS constituent.
//
// Each weight is either a single value, which applies at every wavelength, or
// one value per point of the source grid. Only one of WavelengthsNM and
// WavenumbersCMInv may be set. Volumetric and Geometric default to zero.
type MODISConfig struct {
	Isotropic  []float64
	Volumetric []float64
	Geometric  []float64

	WavelengthsNM    []float64
	WavenumbersCMInv []float64

	OutOfBoundsMode intr.Mode
}

// DefaultMODISConfig returns a config with no weights, no source grid, and
// zeroing out of bounds behavior.
func DefaultMODISConfig() MODISConfig {
	return MODISConfig{ OutOfBoundsMode: intr.Zero }
}

// MODIS is a surface BRDF made from a linear combination of the isotropic,
// RossThick volumetric, and LiSparse-R geometric kernels.
type MODIS struct {
	interp *WavelengthInterpolator
	params [3][]float64
}

var _ Constituent = &MODIS{}

// NewMODIS creates a MODIS constituent. Errors wrap atmo.ErrConfig or
// atmo.ErrShape.
func NewMODIS(config MODISConfig) (*MODIS, error) {
	interp, err := NewWavelengthInterpolator(
		config.WavelengthsNM, config.WavenumbersCMInv, config.OutOfBoundsMode,
	)
	if err != nil { return nil, err }

	if len(config.Isotropic) == 0 {
		return nil, fmt.Errorf("%w: No isotropic weights were given.",
			atmo.ErrConfig)
	}

	m := &MODIS{ interp: interp }
	vals := [3][]float64{config.Isotropic, config.Volumetric, config.Geometric}
	for k := range vals {
		if len(vals[k]) == 0 {
			vals[k] = make([]float64, interp.ParamLength())
		}
		if err := m.SetParameter(brdf.MODISArgName(k), vals[k]); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Interpolator returns the interpolator used to move weights onto host grids.
func (m *MODIS) Interpolator() *WavelengthInterpolator { return m.interp }

// ParameterNames returns the names of the weights in buffer order.
func (m *MODIS) ParameterNames() []string {
	return brdf.MODISArgNames()
}

// Parameter returns a copy of the named weights.
func (m *MODIS) Parameter(name string) ([]float64, error) {
	k, ok := brdf.MODISArgIndex(name)
	if !ok { return nil, unknownParameter(name) }
	return append([]float64{}, m.params[k]...), nil
}

// SetParameter replaces the named weights with a copy of vals.
func (m *MODIS) SetParameter(name string, vals []float64) error {
	k, ok := brdf.MODISArgIndex(name)
	if !ok { return unknownParameter(name) }

	if n := m.interp.ParamLength(); len(vals) != n {
		if len(m.interp.sourceNM) == 0 {
			return fmt.Errorf("%w: There is no source grid, so the %s " +
				"weights must be a single value, but %d were given.",
				atmo.ErrShape, name, len(vals))
		}
		return fmt.Errorf("%w: The source grid has %d points, but %d %s " +
			"weights were given.", atmo.ErrShape, n, len(vals), name)
	}

	m.params[k] = append([]float64{}, vals...)
	return nil
}

func (m *MODIS) Isotropic() []float64 { return m.get(brdf.Isotropic) }
func (m *MODIS) Volumetric() []float64 { return m.get(brdf.Volumetric) }
func (m *MODIS) Geometric() []float64 { return m.get(brdf.Geometric) }

func (m *MODIS) SetIsotropic(v []float64) error {
	return m.SetParameter(brdf.MODISArgName(brdf.Isotropic), v)
}
func (m *MODIS) SetVolumetric(v []float64) error {
	return m.SetParameter(brdf.MODISArgName(brdf.Volumetric), v)
}
func (m *MODIS) SetGeometric(v []float64) error {
	return m.SetParameter(brdf.MODISArgName(brdf.Geometric), v)
}

func (m *MODIS) get(k int) []float64 {
	return append([]float64{}, m.params[k]...)
}

func unknownParameter(name string) error {
	return fmt.Errorf("%w: '%s' isn't a MODIS parameter. The parameters are " +
		"%v.", atmo.ErrConfig, name, brdf.MODISArgNames())
}

// AddToAtmosphere selects the MODIS kernel matching the host's Stokes count
// and overwrites the three kernel weight rows of the host's surface buffer
// with the weights interpolated onto the host's grid. The derivative of each
// row with respect to the interpolated weights is 1.
//
// Nothing in the host is modified if an error is returned.
func (m *MODIS) AddToAtmosphere(host atmo.Host) error {
	wl := host.WavelengthsNM()
	if len(wl) == 0 {
		return fmt.Errorf("%w: The host has no wavelength grid, so I don't " +
			"know where to evaluate the MODIS weights.", atmo.ErrConfig)
	}

	kernel, err := brdf.MODIS(host.NStokes())
	if err != nil { return fmt.Errorf("%w: %w", atmo.ErrConfig, err) }

	surf := host.Surface()
	if surf == nil {
		return fmt.Errorf("%w: The host has no surface.", atmo.ErrConfig)
	} else if surf.NumWavelengths() != len(wl) {
		return fmt.Errorf("%w: The host surface holds %d wavelengths, but " +
			"the host grid has %d.", atmo.ErrShape,
			surf.NumWavelengths(), len(wl))
	}

	op, err := m.interp.Operator(wl)
	if err != nil { return err }

	surf.SetBRDF(kernel)
	row := make([]float64, len(wl))
	for k := range m.params {
		op.Apply(m.params[k], row)
		for w := range row {
			surf.BRDFArgs.Set(row[w], k, w)
			surf.DBRDFArgs[k].Set(1, w)
		}
	}

	logging.Log.WithFields(logrus.Fields{
		"kernel": kernel.Name(),
		"nwavel": len(wl),
	}).Debug("Injected MODIS surface weights.")

	return nil
}

// RegisterDerivative returns the derivative of the named weight row of the
// host's surface buffer with respect to the native weights. Since injection
// is linear, its Jacobian is the interpolation operator scaled by the row's
// derivative buffer.
func (m *MODIS) RegisterDerivative(
	host atmo.Host, name string,
) (*atmo.SurfaceDerivative, error) {
	k, ok := brdf.MODISArgIndex(name)
	if !ok { return nil, unknownParameter(name) }

	wl := host.WavelengthsNM()
	if len(wl) == 0 {
		return nil, fmt.Errorf("%w: The host has no wavelength grid.",
			atmo.ErrConfig)
	}

	surf := host.Surface()
	if !injected(surf, host.NStokes(), len(wl), k) {
		return nil, fmt.Errorf("%w: MODIS weights must be added to the host " +
			"before their derivatives can be registered.", atmo.ErrConfig)
	}

	op, err := m.interp.Operator(wl)
	if err != nil { return nil, err }

	return &atmo.SurfaceDerivative{
		Name: name, ArgIndex: k,
		DBRDF: surf.DArg(k), Interpolator: op.Sparse(),
	}, nil
}

// injected returns true if surf holds MODIS weights for a host with the given
// Stokes count and grid size, with row k's derivative buffer filled in.
func injected(surf *atmo.Surface, nstokes, nwavel, k int) bool {
	if surf == nil || surf.BRDFArgs == nil || k >= len(surf.DBRDFArgs) ||
		surf.NumWavelengths() != nwavel {
		return false
	}
	kernel := surf.BRDF()
	if kernel == nil || !brdf.IsMODIS(kernel) || kernel.NStokes() != nstokes {
		return false
	}
	for _, d := range surf.DArg(k) {
		if d != 1 { return false }
	}
	return true
}
