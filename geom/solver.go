package geom

import "math"

// Polynomial root solvers used to intersect Bezier segments with lines.

// SolveQuadratic finds real roots of ax^2 + bx + c = 0 in ascending order.
// A zero or vanishing a degrades to the linear equation; if all
// coefficients are zero a single 0 is returned.
func SolveQuadratic(a, b, c float64) []float64 {
	sc0 := c / a
	sc1 := b / a
	if !isFinite(sc0) || !isFinite(sc1) {
		return solveLinear(b, c)
	}

	arg := sc1*sc1 - 4.0*sc0
	if !isFinite(arg) {
		// discriminant overflow: one root from sc1*x + x^2 = 0
		return orderedRoots(-sc1, sc0/-sc1)
	}
	if arg < 0.0 {
		return nil
	}
	if arg == 0.0 {
		return []float64{-0.5 * sc1}
	}

	// avoid cancellation, see https://math.stackexchange.com/questions/866331
	root1 := -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	return orderedRoots(root1, sc0/root1)
}

func orderedRoots(root1, root2 float64) []float64 {
	if !isFinite(root2) {
		return []float64{root1}
	}
	if root1 > root2 {
		return []float64{root2, root1}
	}
	return []float64{root1, root2}
}

func solveLinear(b, c float64) []float64 {
	root := -c / b
	if isFinite(root) {
		return []float64{root}
	}
	if c == 0.0 && b == 0.0 {
		return []float64{0.0}
	}
	return nil
}

// SolveCubic finds real roots of ax^3 + bx^2 + cx + d = 0 (unsorted).
//
// The implementation follows https://momentsingraphics.de/CubicRoots.html,
// which is based on Jim Blinn's "How to Solve a Cubic Equation".
func SolveCubic(a, b, c, d float64) []float64 {
	const oneThird = 1.0 / 3.0
	aRecip := 1.0 / a

	c2 := b * (oneThird * aRecip)
	c1 := c * (oneThird * aRecip)
	c0 := d * aRecip
	if !isFinite(c2) || !isFinite(c1) || !isFinite(c0) {
		return SolveQuadratic(b, c, d)
	}

	d0 := (-c2)*c2 + c1
	d1 := (-c1)*c2 + c0
	d2 := c2*c0 - c1*c1
	disc := 4.0*d0*d2 - d1*d1
	de := (-2.0*c2)*d0 + d1

	if disc < 0.0 {
		sq := math.Sqrt(-0.25 * disc)
		r := -0.5 * de
		t1 := math.Cbrt(r+sq) + math.Cbrt(r-sq)
		return []float64{t1 - c2}
	} else if disc == 0.0 {
		t1 := math.Copysign(math.Sqrt(-d0), de)
		return []float64{t1 - c2, -2.0*t1 - c2}
	}

	th := math.Atan2(math.Sqrt(disc), -de) * oneThird
	thSin, thCos := math.Sincos(th)
	r0 := thCos
	ss3 := thSin * math.Sqrt(3.0)
	r1 := 0.5 * (-thCos + ss3)
	r2 := 0.5 * (-thCos - ss3)
	t := 2.0 * math.Sqrt(-d0)

	return []float64{t*r0 - c2, t*r1 - c2, t*r2 - c2}
}

// SolveQuadraticInUnitInterval returns roots of ax^2 + bx + c = 0 that lie in [0, 1].
func SolveQuadraticInUnitInterval(a, b, c float64) []float64 {
	return filterRootsToUnitInterval(SolveQuadratic(a, b, c))
}

// SolveCubicInUnitInterval returns roots of ax^3 + bx^2 + cx + d = 0 that lie in [0, 1].
func SolveCubicInUnitInterval(a, b, c, d float64) []float64 {
	return filterRootsToUnitInterval(SolveCubic(a, b, c, d))
}

// unitRoots solves the polynomial with coefficients c (highest degree
// first) on [0, 1]. Leading coefficients that are negligible relative to
// the rest are dropped so nearly-degenerate curves stay well conditioned.
func unitRoots(c []float64) []float64 {
	for len(c) > 1 && math.Abs(c[0]) <= 1e-12*maxAbs(c[1:]) {
		c = c[1:]
	}
	switch len(c) {
	case 4:
		return SolveCubicInUnitInterval(c[0], c[1], c[2], c[3])
	case 3:
		return SolveQuadraticInUnitInterval(c[0], c[1], c[2])
	case 2:
		return filterRootsToUnitInterval(solveLinear(c[0], c[1]))
	}
	return nil
}

func maxAbs(c []float64) float64 {
	m := 0.0
	for _, v := range c {
		m = math.Max(m, math.Abs(v))
	}
	return m
}

// filterRootsToUnitInterval keeps roots in [0, 1], clamping values within
// a small epsilon of the boundaries.
func filterRootsToUnitInterval(roots []float64) []float64 {
	if len(roots) == 0 {
		return nil
	}

	const eps = 1e-12
	result := make([]float64, 0, len(roots))
	for _, r := range roots {
		if r >= -eps && r <= 1.0+eps {
			result = append(result, math.Min(math.Max(r, 0), 1))
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// isFinite returns true if x is neither infinite nor NaN.
func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
