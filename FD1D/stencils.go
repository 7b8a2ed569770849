package FD1D

import (
	"fmt"
)

// StencilSet holds the finite difference weights for a geometrically
// stretched grid with constant spacing ratio c. Every weight is a closed form
// rational function of c alone; the grid spacing magnitudes enter later, as
// per row scale factors during matrix assembly.
//
// The spacing convention is dr[i] = r[i] - r[i-1]: each weight set is exact
// for the derivative at a point whose left neighbor sits one local spacing h
// away and whose neighbor spacings grow by c per cell moving right.
//
// Weight vectors are ordered leftmost support point first:
//
//	D1, D2            offsets -2..+2, 4th order
//	D1Left, D2Left    offsets -3..0,  3rd order
//	D1Right, D2Right  offsets  0..+3, 3rd order
//	Dissipation       offsets -3..+3, 6th derivative kernel
//
// At c = 1 these collapse to the classical uniform grid weights, e.g.
// D1 = [1, -8, 0, 8, -1]/12 and Dissipation = [1, -6, 15, -20, 15, -6, 1].
type StencilSet struct {
	C               float64
	D1, D2          [5]float64
	D1Right, D1Left [4]float64
	D2Right, D2Left [4]float64
	Dissipation     [7]float64
}

// NewStencilSet evaluates the seven weight sets for ratio c. The evaluation
// is deterministic: identical c yields bit identical weights. Ratios far from
// 1 lose precision through cancellation in the high powers of c (up to c^12
// in the dissipation kernel); that is inherent to the formulas and is
// reported, not rejected - see Operators.ConditioningNote.
func NewStencilSet(c float64) (ss StencilSet, err error) {
	if c <= 0 {
		err = fmt.Errorf("%w: c = %v", ErrBadRatio, c)
		return
	}
	var (
		c2 = c * c
		c3 = c2 * c
		c4 = c2 * c2
		c5 = c2 * c3
		c6 = c3 * c3
		c7 = c3 * c4
		c8 = c4 * c4
		// geometric partial sums 1 + c + ... + c^k
		s1 = 1 + c
		s2 = 1 + c + c2
		s3 = 1 + c + c2 + c3
		s4 = 1 + c + c2 + c3 + c4
		s5 = 1 + c + c2 + c3 + c4 + c5
	)
	ss.C = c

	// Centered first derivative, 4th order
	Ap2 := -1.0 / (c2 * s1 * (1 + c2) * s2)
	Ap1 := s1 / (c2 * s2)
	A0 := 2.0 * (c - 1.0) / c
	ss.D1 = [5]float64{-c8 * Ap2, -c4 * Ap1, A0, Ap1, Ap2}

	// Centered second derivative, 4th order
	Bp2 := 2.0 * (1.0 - 2.0*c2) / (c3 * s1 * s1 * (1 + c2) * s2)
	Bp1 := 2.0 * (2.0*c - 1.0) * s1 / (c3 * s2)
	B0 := 2.0 * (1.0 - c - 5.0*c2 - c3 + c4) / (c2 * s1 * s1)
	Bm1 := 2.0 * (2.0 - c) * c * s1 / s2
	Bm2 := 2.0 * c7 * (c2 - 2.0) / (c2 * s1 * s1 * (1 + c2) * s2)
	ss.D2 = [5]float64{Bm2, Bm1, B0, Bp1, Bp2}

	// One sided first derivative, 3rd order, support to the right
	Cp3 := 1.0 / (c4 * s2)
	Cp2 := -s2 / (c4 * s1)
	Cp1 := s2 / c3
	C0 := -(c3 + 3.0*c2 + 4.0*c + 3.0) / (c * (c3 + 2.0*c2 + 2.0*c + 1.0))
	ss.D1Right = [4]float64{C0, Cp1, Cp2, Cp3}

	// One sided first derivative, 3rd order, support to the left
	D0 := (3.0*c3 + 4.0*c2 + 3.0*c + 1.0) / (c3 + 2.0*c2 + 2.0*c + 1.0)
	Dm1 := -s2
	Dm2 := c2 * s2 / s1
	Dm3 := -c5 / s2
	ss.D1Left = [4]float64{Dm3, Dm2, Dm1, D0}

	// One sided second derivative, 3rd order, support to the right
	Ep3 := -2.0 * (c + 2.0) / (c5 * s2 * s1)
	Ep2 := 2.0 * (s2 + 1.0) / (c5 * s1)
	Ep1 := -2.0 * (c2 + 2.0*c + 2.0) / (c4 * s1)
	E0 := 2.0 * (c2 + 2.0*c + 3.0) / (c2 * s2 * s1)
	ss.D2Right = [4]float64{E0, Ep1, Ep2, Ep3}

	// One sided second derivative, 3rd order, support to the left
	F0 := 2.0 * c * (3.0*c2 + 2.0*c + 1.0) / (s1 * s2)
	Fm1 := -2.0 * c * (2.0*c2 + 2.0*c + 1.0) / s1
	Fm2 := 2.0 * c2 * (2.0*c2 + c + 1.0) / s1
	Fm3 := -2.0 * c5 * (2.0*c + 1.0) / (s1 * s2)
	ss.D2Left = [4]float64{Fm3, Fm2, Fm1, F0}

	// Kreiss-Oliger dissipation: exact 6th derivative kernel on the
	// stretched grid. Each weight is 720 over the product of signed
	// distances from its node to the other six, in units of h.
	Gp3 := 720. / (c3 * s5 * s4 * s3 * s2 * s1)
	Gp2 := -720. / (c3 * s4 * s3 * s2 * s1)
	Gp1 := 720. / (c2 * s3 * s2 * s1 * s1)
	G0 := -720. / (s2 * s2 * s1 * s1)
	Gm1 := 720. * c3 / (s3 * s2 * s1 * s1)
	Gm2 := -720. * c7 / (s4 * s3 * s2 * s1)
	Gm3 := 720. * c6 * c6 / (s5 * s4 * s3 * s2 * s1)
	ss.Dissipation = [7]float64{Gm3, Gm2, Gm1, G0, Gp1, Gp2, Gp3}
	return
}
