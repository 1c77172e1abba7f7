/*package constituent contains the plug-ins which a host radiative transfer
model calls to fill in its optical properties. Currently this is just the
MODIS surface BRDF.
*/
package constituent

import (
	"github.com/phil-mansfield/modis/atmo"
)

// Constituent is a term which contributes to a host model.
type Constituent interface {
	// AddToAtmosphere writes the constituent's properties into the host.
	// Either every write happens or none do.
	AddToAtmosphere(host atmo.Host) error
	// RegisterDerivative returns the sensitivity of the host's buffers to
	// the named parameter of the constituent. It must be called after
	// AddToAtmosphere.
	RegisterDerivative(host atmo.Host, name string) (*atmo.SurfaceDerivative, error)
}
