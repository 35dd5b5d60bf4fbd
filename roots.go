package stepless

import (
	"math"
	"math/cmplx"
)

// realTol bounds how far from the real axis a root's imaginary part may sit
// before it is discarded as genuinely complex, per spec.md §4.1: "including
// complex values whose imaginary part is within numeric tolerance of zero —
// accept them as real, discard the imaginary part".
const realTol = 1e-7

// posInf is +Inf, the sentinel predicted time for a pair whose trajectories
// never bring them into contact again.
var posInf = math.Inf(1)

// collisionRoots returns all (possibly complex) roots of
//
//	c4*t^4 + c3*t^3 + c2*t^2 + c1*t + c0 = 0
//
// cascading down to cubic/quadratic/linear solvers for the degenerate cases
// spec.md §4.1 calls out (zero relative acceleration, zero relative
// velocity-and-acceleration). No general-purpose polynomial root library is
// available anywhere in the example corpus (see DESIGN.md), so this is a
// direct closed-form Ferrari solver built on math/cmplx.
func collisionRoots(c0, c1, c2, c3, c4 float64) []complex128 {
	scale := maxAbs(c0, c1, c2, c3, c4)
	if scale == 0 {
		return nil
	}
	tol := realTol * scale

	if math.Abs(c4) <= tol {
		return collisionRootsCubic(c0, c1, c2, c3, tol)
	}
	return quarticRoots(c0/c4, c1/c4, c2/c4, c3/c4)
}

func collisionRootsCubic(c0, c1, c2, c3, tol float64) []complex128 {
	if math.Abs(c3) <= tol {
		return collisionRootsQuadratic(c0, c1, c2, tol)
	}
	return cubicRoots(c0/c3, c1/c3, c2/c3)
}

func collisionRootsQuadratic(c0, c1, c2, tol float64) []complex128 {
	if math.Abs(c2) <= tol {
		return collisionRootsLinear(c0, c1, tol)
	}
	return quadraticRoots(c0/c2, c1/c2)
}

func collisionRootsLinear(c0, c1, tol float64) []complex128 {
	if math.Abs(c1) <= tol {
		// c1 == c0 == 0 means every t is a root (bodies permanently
		// coincident); c1 == 0, c0 != 0 means no root exists. Neither
		// yields a single next contact time, so report no roots — the
		// caller (NextTimeAfter) then reports +Inf, "no event scheduled".
		return nil
	}
	return []complex128{complex(-c0/c1, 0)}
}

func maxAbs(vs ...float64) float64 {
	m := 0.0
	for _, v := range vs {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

// quadraticRoots solves the monic quadratic u^2 + b*u + c = 0 over the
// complex numbers.
func quadraticRoots(c, b float64) []complex128 {
	disc := complex(b*b-4*c, 0)
	sq := cmplx.Sqrt(disc)
	return []complex128{
		(complex(-b, 0) + sq) / 2,
		(complex(-b, 0) - sq) / 2,
	}
}

// cubicRoots solves the monic cubic u^3 + a2*u^2 + a1*u + a0 = 0 over the
// complex numbers by depressing it and applying Cardano's formula.
func cubicRoots(a0, a1, a2 float64) []complex128 {
	// Depress: u = s - a2/3 => s^3 + p*s + q = 0.
	p := a1 - a2*a2/3
	q := 2*a2*a2*a2/27 - a2*a1/3 + a0

	var s [3]complex128
	const eps = 1e-14
	if math.Abs(p) < eps && math.Abs(q) < eps {
		s[0], s[1], s[2] = 0, 0, 0
	} else {
		// Cardano's formula, carried out entirely in complex arithmetic so
		// it is equally valid whether the depressed cubic has one real root
		// (a complex conjugate pair alongside it) or three real roots —
		// the "casus irreducibilis" that a real-only Cardano implementation
		// would need the trigonometric method to handle separately.
		disc := complex(q*q/4+p*p*p/27, 0)
		sq := cmplx.Sqrt(disc)
		u := cmplx.Pow(complex(-q/2, 0)+sq, 1.0/3.0)
		if cmplx.Abs(u) < 1e-15 {
			u = cmplx.Pow(complex(-q/2, 0)-sq, 1.0/3.0)
		}
		var v complex128
		if cmplx.Abs(u) > 1e-15 {
			v = complex(-p/3, 0) / u
		}
		omega := complex(math.Cos(2*math.Pi/3), math.Sin(2*math.Pi/3))
		s[0] = u + v
		s[1] = u*omega + v*cmplx.Conj(omega)
		s[2] = u*cmplx.Conj(omega) + v*omega
	}

	roots := make([]complex128, 3)
	shift := complex(a2/3, 0)
	for i, si := range s {
		roots[i] = si - shift
	}
	return roots
}

// quarticRoots solves the monic quartic u^4 + a3*u^3 + a2*u^2 + a1*u + a0 = 0
// via Ferrari's method.
func quarticRoots(a0, a1, a2, a3 float64) []complex128 {
	// Depress: x = u - a3/4 => u^4 + p*u^2 + q*u + r = 0.
	p := a2 - 3*a3*a3/8
	q := a3*a3*a3/8 - a3*a2/2 + a1
	r := -3*a3*a3*a3*a3/256 + a2*a3*a3/16 - a3*a1/4 + a0

	shift := a3 / 4
	var us [4]complex128

	if math.Abs(q) < 1e-12*maxAbs(p, q, r, 1) {
		// Biquadratic: u^2 = (-p +/- sqrt(p^2-4r)) / 2.
		disc := cmplx.Sqrt(complex(p*p-4*r, 0))
		w1 := (complex(-p, 0) + disc) / 2
		w2 := (complex(-p, 0) - disc) / 2
		sq1 := cmplx.Sqrt(w1)
		sq2 := cmplx.Sqrt(w2)
		us[0], us[1] = sq1, -sq1
		us[2], us[3] = sq2, -sq2
	} else {
		// Resolvent cubic: 8m^3 + 8p*m^2 + (2p^2-8r)*m - q^2 = 0.
		m := resolventRealRoot(p, q, r)
		sq2m := cmplx.Sqrt(complex(2*m, 0))
		half := complex(p/2+m, 0)
		offset := complex(q, 0) / complex(4*m, 0)

		// u^2 -/+ sqrt(2m)*u + (p/2+m +/- sqrt(2m)*q/(4m)) = 0
		b1 := -sq2m
		c1 := half + sq2m*offset
		b2 := sq2m
		c2 := half - sq2m*offset

		r1 := quadraticRootsComplex(b1, c1)
		r2 := quadraticRootsComplex(b2, c2)
		us[0], us[1] = r1[0], r1[1]
		us[2], us[3] = r2[0], r2[1]
	}

	roots := make([]complex128, 4)
	for i, u := range us {
		roots[i] = u - complex(shift, 0)
	}
	return roots
}

func quadraticRootsComplex(b, c complex128) [2]complex128 {
	disc := cmplx.Sqrt(b*b - 4*c)
	return [2]complex128{
		(-b + disc) / 2,
		(-b - disc) / 2,
	}
}

// resolventRealRoot returns a real root of 8m^3 + 8p*m^2 + (2p^2-8r)*m - q^2 = 0,
// which always has at least one since it is a real cubic.
func resolventRealRoot(p, q, r float64) float64 {
	// Normalize to monic: m^3 + p*m^2 + (p^2/4 - r)*m - q^2/8 = 0.
	roots := cubicRoots(-q*q/8, p*p/4-r, p)
	best := 0
	bestIm := math.Abs(imag(roots[0]))
	for i := 1; i < len(roots); i++ {
		if im := math.Abs(imag(roots[i])); im < bestIm {
			best, bestIm = i, im
		}
	}
	m := real(roots[best])
	if math.Abs(m) < 1e-12 {
		// Avoid dividing by ~0 in the quartic factorization; the only way
		// m==0 solves the resolvent with q!=0 is numerical noise near a
		// genuine root, so nudge off it.
		m = 1e-9
	}
	return m
}

// NextTimeAfter returns the smallest real root of roots that is strictly
// greater than t, or +Inf if no such root exists. A root is accepted as
// real if its imaginary part is within tolerance of zero.
func NextTimeAfter(roots []complex128, t float64) float64 {
	best := math.Inf(1)
	for _, rt := range roots {
		if math.Abs(imag(rt)) > realTol*math.Max(1, math.Abs(real(rt))) {
			continue
		}
		re := real(rt)
		if re > t && re < best {
			best = re
		}
	}
	return best
}
