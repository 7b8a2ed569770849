package FD1D

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	"github.com/nrgrid/stretchfd/utils"
)

// geometricGrid builds r and dr for n points with exact ratio c, dr[0] = dr0,
// r[0] = 0 and dr[i] = r[i] - r[i-1].
func geometricGrid(n int, c, dr0 float64) (R, Dr utils.Vector) {
	var (
		r  = make([]float64, n)
		dr = make([]float64, n)
	)
	dr[0] = dr0
	for i := 1; i < n; i++ {
		dr[i] = dr[i-1] * c
		r[i] = r[i-1] + dr[i]
	}
	R = utils.NewVector(n, r)
	Dr = utils.NewVector(n, dr)
	return
}

func TestConcreteScenario(t *testing.T) {
	// Minimum size grid, c = 2: dr = [1, 2, 4, 8, 16, 32, 64]
	R, Dr := geometricGrid(7, 2, 1)
	ops, err := NewOperators(R, Dr)
	assert.NoError(t, err)
	assert.Equal(t, 7, ops.NumPoints)
	assert.Equal(t, 2.0, ops.Ratio)

	ss := ops.Stencils
	fmt.Printf("D1 = \n%v\n", mat.Formatted(ops.D1, mat.Squeeze()))

	// Rows 2..4 carry the centered stencil scaled by the row's spacing
	for _, i := range []int{2, 3, 4} {
		h := Dr.AtVec(i)
		for k, w := range ss.D1 {
			assert.True(t, near(ops.D1.At(i, i+k-2), w/h))
		}
	}
	// Rows 0, 1 use the right biased one sided stencil, 1/dr[row] scaling
	for _, i := range []int{0, 1} {
		h := Dr.AtVec(i)
		for k, w := range ss.D1Right {
			assert.True(t, near(ops.D1.At(i, i+k), w/h))
		}
	}
	// Rows 5, 6 use the left biased one sided stencil
	for _, i := range []int{5, 6} {
		h := Dr.AtVec(i)
		for k, w := range ss.D1Left {
			assert.True(t, near(ops.D1.At(i, i+k-3), w/h))
		}
	}
	// Row 1 never references column -1; its stale neighbor entry is zero
	assert.Equal(t, 0.0, ops.D1.At(1, 0))
	assert.Equal(t, 0.0, ops.D2.At(1, 0))
}

func TestBandedness(t *testing.T) {
	var (
		n    = 14
		R, D = geometricGrid(n, 1.5, 0.01)
	)
	ops, err := NewOperators(R, D)
	assert.NoError(t, err)
	// support[i] = allowed column offsets per row for each operator
	inBand := func(i, j, lo, hi int) bool { return j-i >= lo && j-i <= hi }
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i <= 1 {
				if !inBand(i, j, 0, 3) {
					assert.Equal(t, 0.0, ops.D1.At(i, j))
					assert.Equal(t, 0.0, ops.D2.At(i, j))
				}
			} else if i >= n-2 {
				if !inBand(i, j, -3, 0) {
					assert.Equal(t, 0.0, ops.D1.At(i, j))
					assert.Equal(t, 0.0, ops.D2.At(i, j))
				}
			} else if !inBand(i, j, -2, 2) {
				assert.Equal(t, 0.0, ops.D1.At(i, j))
				assert.Equal(t, 0.0, ops.D2.At(i, j))
			}
			if !inBand(i, j, -3, 0) {
				assert.Equal(t, 0.0, ops.AdvecLeft.At(i, j))
			}
			if !inBand(i, j, 0, 3) {
				assert.Equal(t, 0.0, ops.AdvecRight.At(i, j))
			}
			if !inBand(i, j, -3, 3) {
				assert.Equal(t, 0.0, ops.Dissipation.At(i, j))
			}
		}
	}
}

func TestBoundaryZeroing(t *testing.T) {
	var (
		n    = 12
		R, D = geometricGrid(n, 1.5, 1)
	)
	ops, err := NewOperators(R, D)
	assert.NoError(t, err)
	zeroRow := func(M utils.Matrix, i int) bool {
		for j := 0; j < n; j++ {
			if M.At(i, j) != 0 {
				return false
			}
		}
		return true
	}
	for _, i := range []int{0, 1, 2} {
		assert.True(t, zeroRow(ops.AdvecLeft, i))
		assert.True(t, zeroRow(ops.Dissipation, i))
	}
	for _, i := range []int{n - 3, n - 2, n - 1} {
		assert.True(t, zeroRow(ops.AdvecRight, i))
		assert.True(t, zeroRow(ops.Dissipation, i))
	}
	// and the rows just inside the bands are not zero
	assert.False(t, zeroRow(ops.AdvecLeft, 3))
	assert.False(t, zeroRow(ops.AdvecRight, n-4))
	assert.False(t, zeroRow(ops.Dissipation, 3))
	assert.False(t, zeroRow(ops.Dissipation, n-4))
}

func TestRatioMismatchRejected(t *testing.T) {
	_, err := GridRatio(utils.NewVector(4, []float64{1, 2, 4, 100}))
	assert.ErrorIs(t, err, ErrRatioNotConstant)

	R := utils.NewVector(7)
	D := utils.NewVector(7, []float64{1, 2, 4, 8, 16, 32, 100})
	ops, err := NewOperators(R, D)
	assert.ErrorIs(t, err, ErrRatioNotConstant)
	assert.Nil(t, ops)
}

func TestGridTooSmall(t *testing.T) {
	R, D := geometricGrid(6, 2, 1)
	ops, err := NewOperators(R, D)
	assert.ErrorIs(t, err, ErrGridTooSmall)
	assert.Nil(t, ops)
}

func TestOperatorDeterminism(t *testing.T) {
	R, D := geometricGrid(11, 1.5, 0.125)
	a, err := NewOperators(R, D)
	assert.NoError(t, err)
	b, err := NewOperators(R, D)
	assert.NoError(t, err)
	assert.Equal(t, a.D1.RawMatrix().Data, b.D1.RawMatrix().Data)
	assert.Equal(t, a.D2.RawMatrix().Data, b.D2.RawMatrix().Data)
	assert.Equal(t, a.AdvecLeft.RawMatrix().Data, b.AdvecLeft.RawMatrix().Data)
	assert.Equal(t, a.AdvecRight.RawMatrix().Data, b.AdvecRight.RawMatrix().Data)
	assert.Equal(t, a.Dissipation.RawMatrix().Data, b.Dissipation.RawMatrix().Data)
}

func TestMatrixPolynomialExactness(t *testing.T) {
	var (
		n    = 12
		c    = 1.5
		R, D = geometricGrid(n, c, 0.25)
	)
	ops, err := NewOperators(R, D)
	assert.NoError(t, err)

	sample := func(f func(float64) float64) (U utils.Vector) {
		U = utils.NewVector(n)
		for i := 0; i < n; i++ {
			U.V.SetVec(i, f(R.AtVec(i)))
		}
		return
	}

	// Cubic: every row of D1 and D2 is at least 3rd order, so the result is
	// exact everywhere including the one sided boundary rows
	{
		U := sample(func(r float64) float64 { return r*r*r - 2*r*r + 5 })
		dU := ops.D1.MulVec(U)
		d2U := ops.D2.MulVec(U)
		for i := 0; i < n; i++ {
			r := R.AtVec(i)
			assert.InDelta(t, 3*r*r-4*r, dU.AtVec(i), 1.e-9)
			assert.InDelta(t, 6*r-4, d2U.AtVec(i), 1.e-8)
		}
	}
	// Quartic: exact on the centered interior rows only
	{
		U := sample(func(r float64) float64 { return r * r * r * r })
		dU := ops.D1.MulVec(U)
		d2U := ops.D2.MulVec(U)
		for i := 2; i <= n-3; i++ {
			r := R.AtVec(i)
			assert.InDelta(t, 4*r*r*r, dU.AtVec(i), 1.e-8)
			assert.InDelta(t, 12*r*r, d2U.AtVec(i), 1.e-7)
		}
	}
	// Advection operators: cubic exact on their supported rows
	{
		U := sample(func(r float64) float64 { return r*r*r + r })
		dL := ops.AdvecLeft.MulVec(U)
		dR := ops.AdvecRight.MulVec(U)
		for i := 3; i < n; i++ {
			r := R.AtVec(i)
			assert.InDelta(t, 3*r*r+1, dL.AtVec(i), 1.e-8)
		}
		for i := 0; i <= n-4; i++ {
			r := R.AtVec(i)
			assert.InDelta(t, 3*r*r+1, dR.AtVec(i), 1.e-8)
		}
	}
	// Dissipation annihilates degree <= 5 and maps r^6 to the constant
	// 720 dr[NumGhosts]^6 / 64 on its supported rows
	{
		U5 := sample(func(r float64) float64 { return math.Pow(r, 5) })
		U6 := sample(func(r float64) float64 { return math.Pow(r, 6) })
		d5 := ops.Dissipation.MulVec(U5)
		d6 := ops.Dissipation.MulVec(U6)
		expect := 720. * utils.POW(D.AtVec(NumGhosts), 6) / 64.
		for i := 3; i <= n-4; i++ {
			assert.InDelta(t, 0, d5.AtVec(i), 1.e-8)
			assert.InDelta(t, expect, d6.AtVec(i), math.Abs(expect)*1.e-9)
		}
	}
}

func TestReadOnlyMatrices(t *testing.T) {
	R, D := geometricGrid(9, 1.5, 1)
	ops, err := NewOperators(R, D)
	assert.NoError(t, err)
	assert.True(t, ops.D1.IsReadOnly())
	assert.Panics(t, func() { ops.D1.Set(0, 0, 1) })
	assert.Panics(t, func() { ops.Dissipation.Scale(2) })
}

func TestConditioningNote(t *testing.T) {
	R, D := geometricGrid(9, 1.05, 1)
	ops, err := NewOperators(R, D)
	assert.NoError(t, err)
	assert.Empty(t, ops.ConditioningNote())

	R, D = geometricGrid(9, 3, 1)
	ops, err = NewOperators(R, D)
	assert.NoError(t, err)
	assert.NotEmpty(t, ops.ConditioningNote())
}

func TestCSRMatchesDense(t *testing.T) {
	var (
		n    = 10
		R, D = geometricGrid(n, 1.5, 0.5)
	)
	ops, err := NewOperators(R, D)
	assert.NoError(t, err)
	for _, kind := range []OperatorKind{OpD1, OpD2, OpAdvecLeft, OpAdvecRight, OpDissipation} {
		M := ops.Matrix(kind)
		S := ops.CSR(kind)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				assert.Equal(t, M.At(i, j), S.At(i, j), "operator %v entry %d,%d", kind, i, j)
			}
		}
	}
}
