package interpolate

// Linear is a linear interpolator.
type Linear struct {
	xs   searcher
	vals []float64
	mode Mode
	single bool
}

// NewLinear creates a linear interpolator for a sequence of strictly increasing
// or strictly decreasing point, xs, which take on the values given by vals.
// Values outside the range of xs are zero.
//
// Lookups will occur in O(log |xs|), possibly faster depending on the access
// pattern and data layout.
func NewLinear(xs, vals []float64) *Linear {
	return NewLinearMode(xs, vals, Zero)
}

// NewLinearMode is NewLinear with an explicit out of bounds mode. A table with
// a single point is treated as a constant function for every x, regardless of
// mode.
func NewLinearMode(xs, vals []float64, mode Mode) *Linear {
	if len(xs) != len(vals) {
		panic("Length of input slices are not equal.")
	} else if len(xs) == 0 {
		panic("Input slices are empty.")
	} else if !Monotonic(xs) {
		panic("Input table is not strictly monotonic.")
	}

	lin := &Linear{vals: vals, mode: mode}
	if len(xs) == 1 {
		lin.single = true
		return lin
	}
	lin.xs.init(xs)
	return lin
}

// Eval returns the interpolated value at x.
func (lin *Linear) Eval(x float64) float64 {
	if lin.single { return lin.vals[0] }

	i1, ok := lin.xs.bracket(x)
	if !ok {
		if lin.mode == Extend { return lin.vals[i1] }
		return 0
	}
	i2 := i1 + 1
	x1, x2 := lin.xs.val(i1), lin.xs.val(i2)
	v1, v2 := lin.vals[i1], lin.vals[i2]

	return ((v2-v1)/(x2-x1))*(x-x1) + v1
}

// EvalAll evaluates the interpolator at all the given x values. If an output
// array is given, the output is written to that array (the array is still
// returned as a convenience).
//
// If more than one output array is provided, only the first is used.
func (lin *Linear) EvalAll(xs []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i, x := range xs {
		out[0][i] = lin.Eval(x)
	}
	return out[0]
}
