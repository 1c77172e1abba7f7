package cmd

import (
	"fmt"

	"github.com/phil-mansfield/modis/cmd/catalog"
	"github.com/phil-mansfield/modis/constituent"
	intr "github.com/phil-mansfield/modis/math/interpolate"
	"github.com/phil-mansfield/modis/parse"
)

// modisVars are the variables shared by every mode which builds a MODIS
// constituent.
type modisVars struct {
	isotropic, volumetric, geometric []float64
	wavelengthsNM, wavenumbersCMInv  []float64
	outOfBoundsMode                  string
	kernelFile                       string
}

// modisConfigText documents the variables of modisVars. It's shared by the
// ExampleConfig methods of every mode.
const modisConfigText = `# The MODIS kernel weights. Each is either a single value, which is used at
# every wavelength, or one value for each point of the source grid.
# Volumetric and Geometric default to zero.
Isotropic = 0.1, 0.3
Volumetric = 0.05, 0.05
Geometric = 0.05, 0.05

# The source grid the weights are given on, either in nm or in cm^-1. At most
# one may be set. If neither is set, each weight must be a single value.
WavelengthsNM = 340, 440
# WavenumbersCMInv = 22727.27, 29411.76

# OutOfBoundsMode determines what happens at host wavelengths outside the range
# of the source grid. The supported modes are:
# zero   - The weights are set to zero.
# extend - The weights at the nearest end of the grid are used.
#
# The default value is zero.
OutOfBoundsMode = zero

# KernelFile is an optional text file of four columns: wavelength (nm),
# isotropic, volumetric, geometric. If set, none of the above weights or grids
# may be set.
# KernelFile = path/to/kernel/weights.txt`

func (mv *modisVars) register(vars *parse.ConfigVars) {
	vars.Floats(&mv.isotropic, "Isotropic", []float64{})
	vars.Floats(&mv.volumetric, "Volumetric", []float64{})
	vars.Floats(&mv.geometric, "Geometric", []float64{})
	vars.Floats(&mv.wavelengthsNM, "WavelengthsNM", []float64{})
	vars.Floats(&mv.wavenumbersCMInv, "WavenumbersCMInv", []float64{})
	vars.String(&mv.outOfBoundsMode, "OutOfBoundsMode", "zero")
	vars.String(&mv.kernelFile, "KernelFile", "")
}

// readModeConfig reads an optional config file followed by the command line
// flags into vars.
func readModeConfig(fname string, flags []string, vars *parse.ConfigVars) error {
	if fname != "" {
		if err := parse.ReadConfig(fname, vars); err != nil { return err }
	}
	return parse.ReadFlags(flags, vars)
}

func (mv *modisVars) validate() error {
	if _, err := intr.ParseMode(mv.outOfBoundsMode); err != nil {
		return err
	}

	if mv.kernelFile != "" && (len(mv.isotropic) > 0 ||
		len(mv.volumetric) > 0 || len(mv.geometric) > 0 ||
		len(mv.wavelengthsNM) > 0 || len(mv.wavenumbersCMInv) > 0) {
		return fmt.Errorf("The 'KernelFile' variable is set to '%s', so " +
			"none of the weight or grid variables may be set.", mv.kernelFile)
	}

	return nil
}

// build creates the MODIS constituent described by the variables.
func (mv *modisVars) build() (*constituent.MODIS, error) {
	mode, err := intr.ParseMode(mv.outOfBoundsMode)
	if err != nil { return nil, err }

	c := constituent.DefaultMODISConfig()
	c.OutOfBoundsMode = mode

	if mv.kernelFile != "" {
		_, cols, err := catalog.ReadFile(mv.kernelFile, []int{}, []int{0, 1, 2, 3})
		if err != nil {
			return nil, fmt.Errorf("I couldn't read the 'KernelFile' " +
				"'%s': %s", mv.kernelFile, err.Error())
		}
		c.WavelengthsNM = cols[0]
		c.Isotropic, c.Volumetric, c.Geometric = cols[1], cols[2], cols[3]
	} else {
		c.WavelengthsNM, c.WavenumbersCMInv = mv.wavelengthsNM, mv.wavenumbersCMInv
		c.Isotropic, c.Volumetric, c.Geometric =
			mv.isotropic, mv.volumetric, mv.geometric
	}

	return constituent.NewMODIS(c)
}
