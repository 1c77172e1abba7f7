package cmd

import (
	"fmt"
	"log"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/phil-mansfield/modis/atmo"
	"github.com/phil-mansfield/modis/brdf"
	"github.com/phil-mansfield/modis/cmd/catalog"
	"github.com/phil-mansfield/modis/constituent"
	"github.com/phil-mansfield/modis/logging"
	"github.com/phil-mansfield/modis/math/calc"
	"github.com/phil-mansfield/modis/parse"
)

// JacobianConfig contains the inputs to the jacobian mode, which prints the
// derivative of one row of the host's surface weights with respect to the
// weights on the source grid.
type JacobianConfig struct {
	modis     modisVars
	parameter string
	check     bool
}

var _ Mode = &JacobianConfig{}

func (config *JacobianConfig) ExampleConfig() string {
	return `[jacobian.config]

# Parameter is the weight that derivatives are taken with respect to. It must
# be one of isotropic, volumetric, or geometric. Defaults to isotropic.
Parameter = isotropic

# Check compares the Jacobian against one computed with finite differences and
# reports the largest difference. Defaults to false.
Check = false

` + modisConfigText
}

// ReadConfig reads in a jacobian.config file into config.
func (config *JacobianConfig) ReadConfig(fname string, flags []string) error {
	vars := parse.NewConfigVars("jacobian.config")
	vars.String(&config.parameter, "Parameter", "isotropic")
	vars.Bool(&config.check, "Check", false)
	config.modis.register(vars)

	if err := readModeConfig(fname, flags, vars); err != nil { return err }
	return config.validate()
}

func (config *JacobianConfig) validate() error {
	if _, ok := brdf.MODISArgIndex(config.parameter); !ok {
		return fmt.Errorf("The 'Parameter' variable is set to '%s', which " +
			"I don't recognize.", config.parameter)
	}
	return config.modis.validate()
}

// Run executes the jacobian mode.
func (config *JacobianConfig) Run(
	gConfig *GlobalConfig, stdin []byte,
) ([]string, error) {
	if logging.Mode != logging.Nil {
		log.Println(`
####################
## modis jacobian ##
####################`,
		)
	}
	var t time.Time
	if logging.Mode == logging.Performance { t = time.Now() }

	m, err := config.modis.build()
	if err != nil { return nil, err }
	host, err := gConfig.Host(stdin)
	if err != nil { return nil, err }

	if err = m.AddToAtmosphere(host); err != nil { return nil, err }
	d, err := m.RegisterDerivative(host, config.parameter)
	if err != nil { return nil, err }

	jac := d.Jacobian()
	nw, np := jac.Dims()

	cols := [][]float64{host.WavelengthsNM()}
	for j := 0; j < np; j++ {
		col := make([]float64, nw)
		for w := range col { col[w] = jac.At(w, j) }
		cols = append(cols, col)
	}
	order := make([]int, len(cols))
	for i := range order { order[i] = i }

	lines := []string{
		fmt.Sprintf("# d(%s)/d(%s_j)", config.parameter, config.parameter),
		catalog.CommentString(
			[]string{}, []string{"wavelength", "J"}, []int{0, 1}, []int{1, np},
		),
	}
	if config.check {
		diff, err := checkJacobian(m, host, config.parameter, jac)
		if err != nil { return nil, err }
		lines = append(lines, fmt.Sprintf(
			"# Largest difference from finite differences: %.3g", diff,
		))
	}
	lines = append(lines, catalog.FormatCols([][]int{}, cols, order)...)

	if logging.Mode == logging.Performance {
		log.Printf("Time: %s", time.Since(t).String())
		log.Printf("Memory:\n%s", logging.MemString())
	}

	return lines, nil
}

// checkJacobian returns the largest absolute difference between jac and the
// Jacobian found by perturbing the named weights and re-injecting them. The
// host is left holding the original weights.
func checkJacobian(
	m *constituent.MODIS, host *atmo.Atmosphere, name string, jac *mat.Dense,
) (float64, error) {
	k, _ := brdf.MODISArgIndex(name)
	vals, err := m.Parameter(name)
	if err != nil { return 0, err }

	var ferr error
	f := func(x []float64) []float64 {
		if err := m.SetParameter(name, x); err != nil { ferr = err }
		if err := m.AddToAtmosphere(host); err != nil { ferr = err }
		return host.Surface().Arg(k)
	}
	num := calc.Jacobian(f, vals)

	if err = m.SetParameter(name, vals); err != nil { return 0, err }
	if err = m.AddToAtmosphere(host); err != nil { return 0, err }
	if ferr != nil { return 0, ferr }

	nw, np := jac.Dims()
	diff := 0.0
	for w := 0; w < nw; w++ {
		for j := 0; j < np; j++ {
			diff = math.Max(diff, math.Abs(jac.At(w, j) - num.At(w, j)))
		}
	}
	return diff, nil
}
