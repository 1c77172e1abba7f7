package interpolate

import (
	"fmt"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// opRow holds the (at most two) non-zero entries of a single operator row.
type opRow struct {
	n      int
	i0, i1 int
	w0, w1 float64
}

// Operator is a sparse linear map which takes values defined on a source grid
// to values on a target grid: target = op @ source. Each row has at most two
// non-zero weights, and every row which isn't zeroed sums to one.
//
// Operators are immutable once built and can be shared between any number of
// value arrays defined on the same source grid.
type Operator struct {
	rows      []opRow
	cols      int
	mode      Mode
	broadcast bool
}

// NewOperator builds the operator which linearly interpolates values given on
// the source grid onto the target grid. mode determines what happens to
// target points outside the range of the source grid.
//
// A nil or single-point source grid has no wavelength dependence: the
// resulting operator has one column and copies its single value to every
// target point. Otherwise the source grid must be strictly monotonic.
func NewOperator(source, target []float64, mode Mode) (*Operator, error) {
	if len(target) == 0 {
		return nil, fmt.Errorf("The target grid of an interpolation " +
			"operator must not be empty.")
	} else if floats.HasNaN(target) {
		return nil, fmt.Errorf("The target grid contains NaN values.")
	}
	switch mode {
	case Zero, Extend:
	default:
		return nil, fmt.Errorf("%s is not a valid out of bounds mode.", mode)
	}

	op := &Operator{ rows: make([]opRow, len(target)), mode: mode }

	if len(source) <= 1 {
		op.cols, op.broadcast = 1, true
		for i := range op.rows {
			op.rows[i] = opRow{ n: 1, w0: 1 }
		}
		return op, nil
	}

	if floats.HasNaN(source) {
		return nil, fmt.Errorf("The source grid contains NaN values.")
	} else if !Monotonic(source) {
		return nil, fmt.Errorf("The source grid %v is not strictly " +
			"monotonic.", source)
	}

	op.cols = len(source)
	s := &searcher{}
	s.init(source)

	for i, x := range target {
		j, ok := s.bracket(x)
		switch {
		case !ok && mode == Extend:
			op.rows[i] = opRow{ n: 1, i0: j, w0: 1 }
		case !ok:
			op.rows[i] = opRow{}
		default:
			x0, x1 := s.val(j), s.val(j+1)
			t := (x - x0) / (x1 - x0)
			op.rows[i] = opRow{ n: 2, i0: j, i1: j + 1, w0: 1 - t, w1: t }
		}
	}

	return op, nil
}

// Rows returns the length of the target grid.
func (op *Operator) Rows() int { return len(op.rows) }

// Cols returns the length of the source grid (1 for broadcast operators).
func (op *Operator) Cols() int { return op.cols }

// Mode returns the out of bounds mode the operator was built with.
func (op *Operator) Mode() Mode { return op.mode }

// Broadcast returns true if the operator copies a single scalar to every
// target point.
func (op *Operator) Broadcast() bool { return op.broadcast }

// At returns the weight at row i, column j.
func (op *Operator) At(i, j int) float64 {
	if i < 0 || i >= len(op.rows) || j < 0 || j >= op.cols {
		panic(fmt.Sprintf("Index (%d, %d) out of range for a %d x %d " +
			"operator.", i, j, len(op.rows), op.cols))
	}

	r, w := op.rows[i], 0.0
	if r.n >= 1 && r.i0 == j { w += r.w0 }
	if r.n >= 2 && r.i1 == j { w += r.w1 }
	return w
}

// Row returns the column indices and weights of the non-zero entries of row
// i. Zeroed rows return empty slices.
func (op *Operator) Row(i int) (cols []int, weights []float64) {
	r := op.rows[i]
	cols, weights = make([]int, 0, r.n), make([]float64, 0, r.n)
	if r.n >= 1 && r.w0 != 0 {
		cols, weights = append(cols, r.i0), append(weights, r.w0)
	}
	if r.n >= 2 && r.w1 != 0 {
		cols, weights = append(cols, r.i1), append(weights, r.w1)
	}
	return cols, weights
}

// RowSum returns the sum of the weights in row i. This is 1 for every row
// except the out of range rows of a Zero mode operator, which are 0.
func (op *Operator) RowSum(i int) float64 {
	_, weights := op.Row(i)
	return floats.Sum(weights)
}

// Apply computes op @ vals. If an output array is given, the output is
// written to that array (the array is still returned as a convenience).
//
// Apply panics if len(vals) != op.Cols() or if the output array does not
// have length op.Rows().
func (op *Operator) Apply(vals []float64, out ...[]float64) []float64 {
	if len(vals) != op.cols {
		panic("Shape error.")
	}
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(op.rows))}
	} else if len(out[0]) != len(op.rows) {
		panic("Shape error.")
	}

	for i, r := range op.rows {
		switch r.n {
		case 0:
			out[0][i] = 0
		case 1:
			out[0][i] = r.w0 * vals[r.i0]
		default:
			out[0][i] = r.w0*vals[r.i0] + r.w1*vals[r.i1]
		}
	}
	return out[0]
}

// Dense returns the operator as a dense Rows() x Cols() matrix.
func (op *Operator) Dense() *mat.Dense {
	m := mat.NewDense(len(op.rows), op.cols, nil)
	for i := range op.rows {
		cols, weights := op.Row(i)
		for k := range cols {
			m.Set(i, cols[k], weights[k])
		}
	}
	return m
}

// Sparse returns the operator as a Rows() x Cols() sparse array.
func (op *Operator) Sparse() *sparse.SparseArray {
	a := sparse.ZerosSparse(len(op.rows), op.cols)
	for i := range op.rows {
		cols, weights := op.Row(i)
		for k := range cols {
			a.Set(weights[k], i, cols[k])
		}
	}
	return a
}
