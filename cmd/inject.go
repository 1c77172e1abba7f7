package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/phil-mansfield/modis/brdf"
	"github.com/phil-mansfield/modis/cmd/catalog"
	"github.com/phil-mansfield/modis/logging"
	"github.com/phil-mansfield/modis/parse"
)

// InjectConfig contains the inputs to the inject mode, which prints the MODIS
// weights a host model would see at each of its wavelengths.
type InjectConfig struct {
	modis modisVars
}

var _ Mode = &InjectConfig{}

func (config *InjectConfig) ExampleConfig() string {
	return `[inject.config]

` + modisConfigText
}

// ReadConfig reads in an inject.config file into config.
func (config *InjectConfig) ReadConfig(fname string, flags []string) error {
	vars := parse.NewConfigVars("inject.config")
	config.modis.register(vars)

	if err := readModeConfig(fname, flags, vars); err != nil { return err }
	return config.modis.validate()
}

// Run executes the inject mode.
func (config *InjectConfig) Run(
	gConfig *GlobalConfig, stdin []byte,
) ([]string, error) {
	if logging.Mode != logging.Nil {
		log.Println(`
##################
## modis inject ##
##################`,
		)
	}
	var t time.Time
	if logging.Mode == logging.Performance { t = time.Now() }

	m, err := config.modis.build()
	if err != nil { return nil, err }
	host, err := gConfig.Host(stdin)
	if err != nil { return nil, err }

	if err = m.AddToAtmosphere(host); err != nil { return nil, err }

	surf := host.Surface()
	cols := [][]float64{host.WavelengthsNM()}
	for k := range brdf.MODISArgNames() {
		cols = append(cols, surf.Arg(k))
	}
	names := append([]string{"wavelength"}, brdf.MODISArgNames()...)
	order := []int{0, 1, 2, 3}

	lines := []string{
		fmt.Sprintf("# Kernel: %s", surf.BRDF().Name()),
		catalog.CommentString([]string{}, names, order, []int{1, 1, 1, 1}),
	}
	lines = append(lines, catalog.FormatCols([][]int{}, cols, order)...)

	if logging.Mode == logging.Performance {
		log.Printf("Time: %s", time.Since(t).String())
		log.Printf("Memory:\n%s", logging.MemString())
	}

	return lines, nil
}
