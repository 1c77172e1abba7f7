package cmd

import (
	"fmt"
	"log"
	"time"

	plt "github.com/phil-mansfield/pyplot"
	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/modis/atmo"
	"github.com/phil-mansfield/modis/brdf"
	"github.com/phil-mansfield/modis/constituent"
	"github.com/phil-mansfield/modis/logging"
	intr "github.com/phil-mansfield/modis/math/interpolate"
	"github.com/phil-mansfield/modis/parse"
)

// PlotConfig contains the inputs to the plot mode, which draws the MODIS
// weights on their source grid next to the values injected into the host.
type PlotConfig struct {
	modis  modisVars
	points int64
	show   bool
}

var _ Mode = &PlotConfig{}

func (config *PlotConfig) ExampleConfig() string {
	return `[plot.config]

# Points is the number of points used to draw the interpolated weights.
# Defaults to 200.
Points = 200

# Show opens a matplotlib window. If false, only a summary of the plotted
# curves is printed. Defaults to true.
Show = true

` + modisConfigText
}

// ReadConfig reads in a plot.config file into config.
func (config *PlotConfig) ReadConfig(fname string, flags []string) error {
	vars := parse.NewConfigVars("plot.config")
	vars.Int(&config.points, "Points", 200)
	vars.Bool(&config.show, "Show", true)
	config.modis.register(vars)

	if err := readModeConfig(fname, flags, vars); err != nil { return err }
	return config.validate()
}

func (config *PlotConfig) validate() error {
	if config.points < 2 {
		return fmt.Errorf("The 'Points' variable is set to %d, but it must " +
			"be at least 2.", config.points)
	}
	return config.modis.validate()
}

// curve is a single weight drawn three ways.
type curve struct {
	name             string
	sourceX, sourceY []float64
	fineX, fineY     []float64
	hostX, hostY     []float64
}

// curves computes everything plotted for each of the three weights.
func curves(
	m *constituent.MODIS, host *atmo.Atmosphere, points int,
) []curve {
	source := m.Interpolator().SourceNM()
	hostWl := host.WavelengthsNM()

	lo, hi := floats.Min(hostWl), floats.Max(hostWl)
	if len(source) > 0 {
		lo, hi = min(lo, floats.Min(source)), max(hi, floats.Max(source))
	}
	pad := 0.1 * (hi - lo)
	if pad == 0 { pad = 0.1 * lo }
	fineX := make([]float64, points)
	floats.Span(fineX, lo - pad, hi + pad)

	out := make([]curve, len(brdf.MODISArgNames()))
	for k, name := range brdf.MODISArgNames() {
		vals, _ := m.Parameter(name)
		c := curve{
			name: name, fineX: fineX,
			hostX: hostWl, hostY: host.Surface().Arg(k),
		}

		if len(source) == 0 {
			c.fineY = make([]float64, points)
			for i := range c.fineY { c.fineY[i] = vals[0] }
		} else {
			c.sourceX, c.sourceY = source, vals
			lin := intr.NewLinearMode(source, vals, m.Interpolator().Mode())
			c.fineY = lin.EvalAll(fineX)
		}

		out[k] = c
	}

	return out
}

// Run executes the plot mode.
func (config *PlotConfig) Run(
	gConfig *GlobalConfig, stdin []byte,
) ([]string, error) {
	if logging.Mode != logging.Nil {
		log.Println(`
################
## modis plot ##
################`,
		)
	}
	var t time.Time
	if logging.Mode == logging.Performance { t = time.Now() }

	m, err := config.modis.build()
	if err != nil { return nil, err }
	host, err := gConfig.Host(stdin)
	if err != nil { return nil, err }

	if err = m.AddToAtmosphere(host); err != nil { return nil, err }
	cs := curves(m, host, int(config.points))

	lines := []string{}
	for _, c := range cs {
		lines = append(lines, fmt.Sprintf("# %s: %d source points, %d host "+
			"points, range [%.6g, %.6g]", c.name, len(c.sourceX),
			len(c.hostX), floats.Min(c.fineY), floats.Max(c.fineY)))
	}

	if config.show {
		colors := []string{"r", "g", "b"}
		plt.Reset()
		plt.Figure(plt.FigSize(8, 6))
		plt.Title(fmt.Sprintf("MODIS weights (%s)", m.Interpolator().Mode()))
		for k, c := range cs {
			plt.Plot(c.fineX, c.fineY, colors[k], plt.Label(c.name), plt.LW(3))
			if len(c.sourceX) > 0 {
				plt.Plot(c.sourceX, c.sourceY, "o"+colors[k])
			}
			plt.Plot(c.hostX, c.hostY, "x"+colors[k])
		}
		plt.XLim(cs[0].fineX[0], cs[0].fineX[len(cs[0].fineX) - 1])
		plt.Legend(plt.Loc("upper right"), plt.FrameOn(false))
		plt.Show()
	}

	if logging.Mode == logging.Performance {
		log.Printf("Time: %s", time.Since(t).String())
		log.Printf("Memory:\n%s", logging.MemString())
	}

	return lines, nil
}
