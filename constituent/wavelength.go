package constituent

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/modis/atmo"
	"github.com/phil-mansfield/modis/logging"
	intr "github.com/phil-mansfield/modis/math/interpolate"
)

// nmPerCMInv converts between wavenumbers in cm^-1 and wavelengths in nm.
const nmPerCMInv = 1e7

// WavelengthInterpolator moves parameters defined on a fixed source grid onto
// whichever wavelength grid a host asks for. The operator for the most recent
// target grid is kept and reused until a different grid is requested.
type WavelengthInterpolator struct {
	sourceNM []float64
	mode     intr.Mode

	target []float64
	op     *intr.Operator
	builds int
}

// NewWavelengthInterpolator creates an interpolator whose source grid is given
// either in nm or in cm^-1, but not both. If neither is given, parameters are
// scalars and are broadcast to every host wavelength.
func NewWavelengthInterpolator(
	wavelengthsNM, wavenumbersCMInv []float64, mode intr.Mode,
) (*WavelengthInterpolator, error) {
	if len(wavelengthsNM) > 0 && len(wavenumbersCMInv) > 0 {
		return nil, fmt.Errorf("%w: Both a wavelength grid and a wavenumber " +
			"grid were given, but I can only use one of them.", atmo.ErrConfig)
	}
	switch mode {
	case intr.Zero, intr.Extend:
	default:
		return nil, fmt.Errorf("%w: %s is not a valid out of bounds mode.",
			atmo.ErrConfig, mode)
	}

	grid, unit := wavelengthsNM, "wavelength"
	if len(wavenumbersCMInv) > 0 {
		grid, unit = wavenumbersCMInv, "wavenumber"
	}

	for i, x := range grid {
		if !(x > 0) {
			return nil, fmt.Errorf("%w: Element %d of the source %s grid is " +
				"%g, but it must be positive.", atmo.ErrConfig, i, unit, x)
		}
	}
	if !intr.Monotonic(grid) {
		return nil, fmt.Errorf("%w: The source %s grid %v is not strictly " +
			"monotonic.", atmo.ErrConfig, unit, grid)
	}

	wi := &WavelengthInterpolator{ mode: mode }
	if len(grid) > 0 {
		wi.sourceNM = make([]float64, len(grid))
		for i := range grid {
			if unit == "wavenumber" {
				wi.sourceNM[i] = nmPerCMInv / grid[i]
			} else {
				wi.sourceNM[i] = grid[i]
			}
		}
	}

	return wi, nil
}

// ParamLength returns the length every parameter array must have.
func (wi *WavelengthInterpolator) ParamLength() int {
	if len(wi.sourceNM) == 0 { return 1 }
	return len(wi.sourceNM)
}

// SourceNM returns a copy of the source grid in nm, or nil for scalars.
func (wi *WavelengthInterpolator) SourceNM() []float64 {
	if wi.sourceNM == nil { return nil }
	return append([]float64{}, wi.sourceNM...)
}

// Mode returns the out of bounds mode.
func (wi *WavelengthInterpolator) Mode() intr.Mode { return wi.mode }

// Operator returns the operator which maps the source grid onto targetNM.
// It is only rebuilt if targetNM differs from the last grid it was called
// with.
func (wi *WavelengthInterpolator) Operator(
	targetNM []float64,
) (*intr.Operator, error) {
	if wi.op != nil && floats.Equal(wi.target, targetNM) {
		return wi.op, nil
	}

	t := time.Now()
	op, err := intr.NewOperator(wi.sourceNM, targetNM, wi.mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", atmo.ErrConfig, err)
	}

	wi.op, wi.target = op, append([]float64{}, targetNM...)
	wi.builds++

	logging.Log.WithFields(logrus.Fields{
		"source":  len(wi.sourceNM),
		"target":  len(targetNM),
		"mode":    wi.mode.String(),
		"elapsed": time.Since(t).String(),
	}).Debug("Built wavelength interpolation operator.")

	return op, nil
}

// Invalidate drops the stored operator.
func (wi *WavelengthInterpolator) Invalidate() {
	wi.op, wi.target = nil, nil
}

// Builds returns the number of times an operator has been constructed.
func (wi *WavelengthInterpolator) Builds() int { return wi.builds }
