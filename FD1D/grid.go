package FD1D

import (
	"errors"
	"fmt"
	"math"

	"github.com/nrgrid/stretchfd/utils"
)

// NumGhosts is the number of ghost points carried at each end of the grid.
// The dissipation normalization references the spacing at the first interior
// point, dr[NumGhosts].
const NumGhosts = 3

var (
	ErrRatioNotConstant = errors.New("grid ratio not constant in dr vector")
	ErrGridTooSmall     = errors.New("too few grid points for the stencil widths")
	ErrBadRatio         = errors.New("grid ratio must be positive")
)

// RatioTol is the relative tolerance for the spacing ratio constancy check.
// Grids built by repeated multiplication accumulate round off in the last
// ulp of each quotient, so bitwise ratio equality is too strict; 1e-12 keeps
// those while rejecting any genuinely non-geometric sequence.
const RatioTol = 1.e-12

// GridRatio returns the constant ratio c = dr[i+1]/dr[i] of a geometric
// spacing sequence. Constancy is checked by comparing the ratio at the start
// of the sequence against the ratio at the end - the interior pairs are
// assumed to follow.
func GridRatio(Dr utils.Vector) (c float64, err error) {
	var (
		n = Dr.Len()
	)
	if n < 4 {
		err = fmt.Errorf("%w: len(dr) = %d, need at least 4", ErrGridTooSmall, n)
		return
	}
	c = Dr.AtVec(1) / Dr.AtVec(0)
	check := Dr.AtVec(n-1) / Dr.AtVec(n-2)
	if math.Abs(check-c) > RatioTol*math.Abs(c) {
		err = fmt.Errorf("%w: dr[1]/dr[0] = %v, dr[%d]/dr[%d] = %v",
			ErrRatioNotConstant, c, n-1, n-2, check)
		return
	}
	if c <= 0 {
		err = fmt.Errorf("%w: c = %v", ErrBadRatio, c)
		return
	}
	return
}

// SimpleGrid1D builds a geometrically stretched grid covering [0, rMax] with
// NumGhosts ghost points beyond each end. numPoints is the total point count
// including ghosts. dr[i] is the width of the cell to the left of r[i], so
// dr[i+1] = ratio * dr[i] everywhere, ghosts included.
func SimpleGrid1D(rMax float64, numPoints int, ratio float64) (R, Dr utils.Vector) {
	var (
		g     = NumGhosts
		nSpan = numPoints - 1 - 2*g // cell count between r=0 and r=rMax
		c     = ratio
	)
	if nSpan < 1 {
		panic(fmt.Errorf("%w: numPoints = %d with %d ghosts per side", ErrGridTooSmall, numPoints, g))
	}
	if c <= 0 {
		panic(fmt.Errorf("%w: ratio = %v", ErrBadRatio, c))
	}
	// Width of the first spanning cell, dr[g+1]: the spanning cells form a
	// geometric series summing to rMax
	var h0 float64
	if c == 1 {
		h0 = rMax / float64(nSpan)
	} else {
		h0 = rMax * (c - 1) / (utils.POW(c, nSpan) - 1)
	}
	dr := make([]float64, numPoints)
	dr[g+1] = h0
	for i := g + 2; i < numPoints; i++ {
		dr[i] = dr[i-1] * c
	}
	for i := g; i >= 0; i-- {
		dr[i] = dr[i+1] / c
	}
	r := make([]float64, numPoints)
	r[g] = 0
	for i := g + 1; i < numPoints; i++ {
		r[i] = r[i-1] + dr[i]
	}
	for i := g - 1; i >= 0; i-- {
		r[i] = r[i+1] - dr[i+1]
	}
	R = utils.NewVector(numPoints, r)
	Dr = utils.NewVector(numPoints, dr)
	return
}
