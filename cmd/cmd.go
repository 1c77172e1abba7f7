/*package cmd contains code for running modis in its various command line
modes */
package cmd

import (
	"fmt"

	"github.com/phil-mansfield/modis/atmo"
	"github.com/phil-mansfield/modis/cmd/catalog"
	"github.com/phil-mansfield/modis/logging"
	"github.com/phil-mansfield/modis/parse"
	"github.com/phil-mansfield/modis/version"
)

var ModeNames map[string]Mode = map[string]Mode{
	"inject": &InjectConfig{},
	"jacobian": &JacobianConfig{},
	"plot": &PlotConfig{},
}

// Mode represents the interface used by the main binary when interacting with
// a given command line mode.
type Mode interface {
	// ReadConfig reads a mode-specific config file and a list of tokenized
	// command line flags and stores their contents within the Mode. fname
	// may be "", in which case only the flags are read.
	ReadConfig(fname string, flags []string) error
	// ExampleConfig returns the text of an example config file of this mode.
	ExampleConfig() string
	// Run executes the mode. It takes an initialized GlobalConfig struct
	// and the contents of stdin. It will return a slice of lines that should
	// be written to stdout along with an error if one occurs.
	Run(gConfig *GlobalConfig, stdin []byte) ([]string, error)
}

// GlobalConfig is a config file used by every mode. It describes the host
// model that MODIS weights are added to.
type GlobalConfig struct {
	Version string
	Verbosity string

	WavelengthsNM []float64
	NStokes int64
}

var _ Mode = &GlobalConfig{}

// ReadConfig reads a config file and returns an error, if applicable.
func (config *GlobalConfig) ReadConfig(fname string, flags []string) error {
	vars := parse.NewConfigVars("config")
	vars.String(&config.Version, "Version", version.SourceVersion)
	vars.String(&config.Verbosity, "Verbosity", "nil")
	vars.Floats(&config.WavelengthsNM, "WavelengthsNM", []float64{})
	vars.Int(&config.NStokes, "NStokes", 1)

	if fname != "" {
		if err := parse.ReadConfig(fname, vars); err != nil { return err }
	}
	if err := parse.ReadFlags(flags, vars); err != nil { return err }

	return config.validate()
}

// validate checks that all the user-generated fields of GlobalConfig are
// properly set.
func (config *GlobalConfig) validate() error {
	if err := version.Compatible(config.Version); err != nil {
		return fmt.Errorf("I couldn't use the 'Version' variable: %s",
			err.Error())
	}

	flag, err := logging.ParseFlag(config.Verbosity)
	if err != nil { return err }
	logging.SetMode(flag)

	return checkWavelengths("the 'WavelengthsNM' variable", config.WavelengthsNM)
}

// checkWavelengths returns an error if any element of wl is not positive.
func checkWavelengths(source string, wl []float64) error {
	for i := range wl {
		if wl[i] <= 0 {
			return fmt.Errorf("Element %d of %s is %g, but wavelengths " +
				"must be positive.", i, source, wl[i])
		}
	}
	return nil
}

// ExampleConfig returns an example configuration file.
func (config *GlobalConfig) ExampleConfig() string {
	return fmt.Sprintf(`[config]
# Target version of modis. This option merely allows modis to notice when its
# source and configuration files are not from the same version. Only the patch
# number is allowed to differ.
#
# This variable defaults to the source version if not included.
Version = %s

# Verbosity controls how much modis logs to stderr. The supported values are
# nil, performance, and debug. Defaults to nil.
Verbosity = nil

# The wavelengths, in nm, that the host model is evaluated at. If a column of
# wavelengths is piped to stdin, it is used instead.
WavelengthsNM = 340, 440

# The number of Stokes components tracked by the host model. Must be 1 or 3.
# Defaults to 1.
NStokes = 1`, version.SourceVersion)
}

// Run is a dummy method which allows GlobalConfig to conform to the Mode
// interface for testing purposes.
func (config *GlobalConfig) Run(
	gConfig *GlobalConfig, stdin []byte,
) ([]string, error) {
	panic("GlobalConfig.Run() should never be executed.")
}

// Host creates the host atmosphere described by the config. If stdin contains
// a column of wavelengths, those are used in place of WavelengthsNM.
func (config *GlobalConfig) Host(stdin []byte) (*atmo.Atmosphere, error) {
	wl := config.WavelengthsNM
	if len(stdin) > 0 {
		_, cols, err := catalog.Parse(stdin, []int{}, []int{0})
		if err != nil {
			return nil, fmt.Errorf("I couldn't read the wavelengths passed " +
				"to stdin: %s", err.Error())
		}
		if err = checkWavelengths("stdin", cols[0]); err != nil {
			return nil, err
		}
		if len(cols[0]) > 0 { wl = cols[0] }
	}
	return atmo.New(wl, int(config.NStokes)), nil
}
