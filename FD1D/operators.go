package FD1D

import (
	"fmt"
	"math"

	"github.com/nrgrid/stretchfd/utils"
)

// minPoints admits two one sided boundary rows at each end of the centered
// operators plus at least one fully interior row, and leaves the 7 point
// dissipation stencil at least one supported row.
const minPoints = 7

// Operators holds the five differentiation matrices for a geometrically
// stretched grid, precalculated once from the spacing sequence. A solver
// applies them by matrix vector product; it may overwrite the one sided or
// zeroed boundary rows if its physical boundary conditions require different
// treatment. The matrices are read only after construction and safe to share
// across concurrent readers.
type Operators struct {
	R, Dr     utils.Vector
	NumPoints int
	Ratio     float64
	Stencils  StencilSet

	D1          utils.Matrix // centered 1st derivative, one sided at both ends
	D2          utils.Matrix // centered 2nd derivative, one sided at both ends
	AdvecLeft   utils.Matrix // left biased 1st derivative, rows 0..2 zero
	AdvecRight  utils.Matrix // right biased 1st derivative, last 3 rows zero
	Dissipation utils.Matrix // Kreiss-Oliger 6th derivative, 3 rows zero each end
}

// NewOperators validates the spacing sequence and assembles the five
// matrices. R is consumed only for its length; the operator entries depend on
// Dr alone. Construction either completes fully or fails with no partial
// result.
func NewOperators(R, Dr utils.Vector) (ops *Operators, err error) {
	var (
		n = R.Len()
	)
	if Dr.Len() != n {
		err = fmt.Errorf("r and dr vectors disagree on length: %d vs %d", n, Dr.Len())
		return
	}
	if n < minPoints {
		err = fmt.Errorf("%w: have %d points, need at least %d", ErrGridTooSmall, n, minPoints)
		return
	}
	c, err := GridRatio(Dr)
	if err != nil {
		return
	}
	ss, err := NewStencilSet(c)
	if err != nil {
		return
	}
	ops = &Operators{
		R:         R.Copy(),
		Dr:        Dr.Copy(),
		NumPoints: n,
		Ratio:     c,
		Stencils:  ss,
	}
	ops.D1 = ops.firstDerivativeMatrix()
	ops.D1.SetReadOnly("D1")
	ops.D2 = ops.secondDerivativeMatrix()
	ops.D2.SetReadOnly("D2")
	ops.AdvecLeft = ops.advectionMatrix(ss.D1Left[:], -3)
	ops.AdvecLeft.SetReadOnly("AdvecLeft")
	ops.AdvecRight = ops.advectionMatrix(ss.D1Right[:], 0)
	ops.AdvecRight.SetReadOnly("AdvecRight")
	ops.Dissipation = ops.dissipationMatrix()
	ops.Dissipation.SetReadOnly("Dissipation")
	return
}

// ConditioningNote reports when the grid ratio is stretched far enough from 1
// that cancellation in the high powers of c becomes significant. Advisory
// only; construction never rejects a positive ratio.
func (ops *Operators) ConditioningNote() string {
	if math.Abs(math.Log(ops.Ratio)) <= 0.25 {
		return ""
	}
	return fmt.Sprintf("grid ratio %v is far from 1: stencil weights involve powers up to c^12 and lose roughly %d digits to cancellation",
		ops.Ratio, int(12*math.Abs(math.Log10(ops.Ratio))))
}

func (ops *Operators) firstDerivativeMatrix() (M utils.Matrix) {
	var (
		n  = ops.NumPoints
		ss = ops.Stencils
	)
	M = utils.NewMatrix(n, n)
	for i := 2; i <= n-3; i++ {
		oneOverH := 1.0 / ops.Dr.AtVec(i)
		for k, w := range ss.D1 {
			M.Set(i, i+k-2, w*oneOverH)
		}
	}
	// One sided rows at each end, scaled by that row's own spacing
	for _, i := range [2]int{0, 1} {
		oneOverH := 1.0 / ops.Dr.AtVec(i)
		for k, w := range ss.D1Right {
			M.Set(i, i+k, w*oneOverH)
		}
	}
	for _, i := range [2]int{n - 2, n - 1} {
		oneOverH := 1.0 / ops.Dr.AtVec(i)
		for k, w := range ss.D1Left {
			M.Set(i, i+k-3, w*oneOverH)
		}
	}
	return
}

func (ops *Operators) secondDerivativeMatrix() (M utils.Matrix) {
	var (
		n  = ops.NumPoints
		ss = ops.Stencils
	)
	M = utils.NewMatrix(n, n)
	for i := 2; i <= n-3; i++ {
		h := ops.Dr.AtVec(i)
		oneOverH2 := 1.0 / (h * h)
		for k, w := range ss.D2 {
			M.Set(i, i+k-2, w*oneOverH2)
		}
	}
	for _, i := range [2]int{0, 1} {
		h := ops.Dr.AtVec(i)
		oneOverH2 := 1.0 / (h * h)
		for k, w := range ss.D2Right {
			M.Set(i, i+k, w*oneOverH2)
		}
	}
	for _, i := range [2]int{n - 2, n - 1} {
		h := ops.Dr.AtVec(i)
		oneOverH2 := 1.0 / (h * h)
		for k, w := range ss.D2Left {
			M.Set(i, i+k-3, w*oneOverH2)
		}
	}
	return
}

// advectionMatrix places a 4 point one sided stencil on every row whose
// support stays inside the grid. offset is the column offset of the first
// weight: -3 for the left biased stencil, 0 for the right biased one. The
// three rows at the unsupported end stay zero - those points would need
// upwind neighbors beyond the ghost region.
func (ops *Operators) advectionMatrix(stencil []float64, offset int) (M utils.Matrix) {
	var (
		n = ops.NumPoints
	)
	M = utils.NewMatrix(n, n)
	for i := 0; i < n; i++ {
		if i+offset < 0 || i+offset+3 > n-1 {
			continue
		}
		oneOverH := 1.0 / ops.Dr.AtVec(i)
		for k, w := range stencil {
			M.Set(i, i+offset+k, w*oneOverH)
		}
	}
	return
}

func (ops *Operators) dissipationMatrix() (M utils.Matrix) {
	var (
		n     = ops.NumPoints
		ss    = ops.Stencils
		hRef  = ops.Dr.AtVec(NumGhosts)
		hRef6 = utils.POW(hRef, 6)
	)
	M = utils.NewMatrix(n, n)
	for i := 3; i <= n-4; i++ {
		// Kreiss-Oliger normalization relative to the first interior spacing
		scale := hRef6 / utils.POW(ops.Dr.AtVec(i), 6) / 64.0
		for k, w := range ss.Dissipation {
			M.Set(i, i+k-3, w*scale)
		}
	}
	return
}
