/*package brdf describes the surface BRDF kernels a host model can evaluate.
Only the kernel descriptors live here; the host owns the evaluation itself.
*/
package brdf

import (
	"fmt"
)

// Kernel is a surface BRDF evaluator which a host selects and later calls
// with the parameters held in its surface buffer.
type Kernel interface {
	// Name returns a human readable name for the kernel.
	Name() string
	// NStokes is the number of Stokes components the kernel computes.
	NStokes() int
	// NumArgs is the number of parameter rows the kernel reads from the
	// host's surface buffer.
	NumArgs() int
}

// Indices of the MODIS kernel weights within the host's parameter buffer.
const (
	Isotropic = iota
	Volumetric
	Geometric
)

var modisArgNames = [...]string{"isotropic", "volumetric", "geometric"}

// MODISArgNames returns the names of the MODIS kernel weights, in buffer
// order.
func MODISArgNames() []string { return append([]string{}, modisArgNames[:]...) }

// MODISArgName returns the name of the weight in buffer row k.
func MODISArgName(k int) string { return modisArgNames[k] }

// MODISStokes1 is the scalar (intensity only) MODIS kernel: Lambertian plus
// RossThick plus LiSparse-R.
type MODISStokes1 struct{}

// MODISStokes3 is the MODIS kernel for hosts that track linear polarization.
type MODISStokes3 struct{}

var (
	_ Kernel = MODISStokes1{}
	_ Kernel = MODISStokes3{}
)

func (MODISStokes1) Name() string { return "MODIS (1 Stokes)" }
func (MODISStokes1) NStokes() int { return 1 }
func (MODISStokes1) NumArgs() int { return len(modisArgNames) }

func (MODISStokes3) Name() string { return "MODIS (3 Stokes)" }
func (MODISStokes3) NStokes() int { return 3 }
func (MODISStokes3) NumArgs() int { return len(modisArgNames) }

// MODIS returns the MODIS kernel variant which matches a host with nstokes
// Stokes components. Only 1 and 3 are supported.
func MODIS(nstokes int) (Kernel, error) {
	switch nstokes {
	case 1: return MODISStokes1{}, nil
	case 3: return MODISStokes3{}, nil
	}
	return nil, fmt.Errorf("The host has %d Stokes components, but MODIS " +
		"kernels only exist for 1 or 3.", nstokes)
}

// MODISArgIndex returns the buffer row of the named MODIS kernel weight.
func MODISArgIndex(name string) (int, bool) {
	for i := range modisArgNames {
		if modisArgNames[i] == name { return i, true }
	}
	return -1, false
}

// IsMODIS returns true if k is one of the MODIS kernel variants.
func IsMODIS(k Kernel) bool {
	switch k.(type) {
	case MODISStokes1, MODISStokes3:
		return true
	}
	return false
}
