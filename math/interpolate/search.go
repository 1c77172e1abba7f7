package interpolate

// searcher finds the grid interval containing a point. Grids may be strictly
// increasing or strictly decreasing.
type searcher struct {
	xs []float64
	x0, dx, lim float64
	lo, hi float64
	n int
	incr bool
}

func (s *searcher) init(xs []float64) {
	s.xs = xs
	s.x0 = xs[0]
	s.lim = xs[len(xs) - 1]
	s.dx = (s.lim - s.x0) / float64(len(xs) - 1)
	s.n = len(xs)
	s.incr = s.dx > 0
	if s.incr {
		s.lo, s.hi = s.x0, s.lim
	} else {
		s.lo, s.hi = s.lim, s.x0
	}
}

// bracket returns the index i such that x lies in [xs[i], xs[i+1]] (or the
// mirrored interval for decreasing grids). If x is outside the grid, ok is
// false and i is the index of the nearest endpoint.
func (s *searcher) bracket(x float64) (i int, ok bool) {
	if x < s.lo {
		if s.incr { return 0, false }
		return s.n - 1, false
	} else if x > s.hi {
		if s.incr { return s.n - 1, false }
		return 0, false
	}

	// Guess under the assumption of uniform spacing.
	guess := int((x - s.xs[0]) / s.dx)
	if guess >= 0 && guess < s.n - 1 &&
		(s.xs[guess] <= x == s.incr) &&
		(s.xs[guess+1] >= x == s.incr) {

		return guess, true
	}

	// Binary search.
	lo, hi := 0, s.n - 1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if s.incr == (x >= s.xs[mid]) {
			lo = mid
		} else {
			hi = mid
		}
	}

	return lo, true
}

func (s *searcher) val(i int) float64 {
	return s.xs[i]
}

// Monotonic returns true if xs is strictly increasing or strictly
// decreasing.
func Monotonic(xs []float64) bool {
	if len(xs) < 2 { return true }
	incr := xs[1] > xs[0]
	for i := 0; i < len(xs) - 1; i++ {
		if incr && !(xs[i+1] > xs[i]) { return false }
		if !incr && !(xs[i+1] < xs[i]) { return false }
	}
	return true
}
