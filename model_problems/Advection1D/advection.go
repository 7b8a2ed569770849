package Advection1D

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"

	"github.com/nrgrid/stretchfd/FD1D"
	"github.com/nrgrid/stretchfd/utils"
)

// Advection solves u_t + a u_r = 0 on a geometrically stretched grid,
// upwinding through the one sided advection operators and damping grid noise
// with Kreiss-Oliger dissipation. It consumes the operator set strictly
// through matrix vector products, standing in for the evolution codes the
// operators are built for.
type Advection struct {
	a, CFL, FinalTime float64
	Sigma             float64
	Ops               *FD1D.Operators
	DAdvec, DDiss     *sparse.CSR
}

func NewAdvection(a, CFL, FinalTime, rMax float64, numPoints int, ratio, sigma float64) (c *Advection, err error) {
	R, Dr := FD1D.SimpleGrid1D(rMax, numPoints, ratio)
	ops, err := FD1D.NewOperators(R, Dr)
	if err != nil {
		return
	}
	c = &Advection{
		a:         a,
		CFL:       CFL,
		FinalTime: FinalTime,
		Sigma:     sigma,
		Ops:       ops,
	}
	// Upwind: positive wave speed pulls from the left
	if a >= 0 {
		c.DAdvec = ops.CSR(FD1D.OpAdvecLeft)
	} else {
		c.DAdvec = ops.CSR(FD1D.OpAdvecRight)
	}
	c.DDiss = ops.CSR(FD1D.OpDissipation)
	return
}

func (c *Advection) Run() {
	var (
		ops          = c.Ops
		n            = ops.NumPoints
		logFrequency = 50
	)
	if note := ops.ConditioningNote(); note != "" {
		fmt.Printf("warning: %s\n", note)
	}
	drMin := c.Ops.Dr.Min()
	dt := c.CFL * drMin / math.Abs(c.a)
	Ns := math.Ceil(c.FinalTime / dt)
	dt = c.FinalTime / Ns
	Nsteps := int(Ns)

	U := c.InitialCondition()
	fmt.Printf("Umin, Umax = %8.5f, %8.5f\n", U.Min(), U.Max())
	resid := utils.NewVector(n)

	var Time float64
	for tstep := 0; tstep < Nsteps; tstep++ {
		for INTRK := 0; INTRK < 5; INTRK++ {
			RHSU := c.RHS(U)
			resid.Scale(utils.RK4a[INTRK]).Add(RHSU.Scale(dt))
			U.Add(resid.Copy().Scale(utils.RK4b[INTRK]))
		}
		Time += dt
		if tstep%logFrequency == 0 {
			fmt.Printf("Time = %8.4f, max_resid[%d] = %8.4f, umin = %8.4f, umax = %8.4f\n",
				Time, tstep, resid.Max(), U.Min(), U.Max())
		}
	}
	fmt.Printf("Final Umin, Umax = %8.5f, %8.5f\n", U.Min(), U.Max())
}

// InitialCondition is a Gaussian pulse centered in the fine region of the
// grid, width a tenth of the domain.
func (c *Advection) InitialCondition() (U utils.Vector) {
	var (
		r    = c.Ops.R
		n    = c.Ops.NumPoints
		rMax = r.AtVec(n - 1 - FD1D.NumGhosts)
		r0   = 0.25 * rMax
		w    = 0.1 * rMax
	)
	U = utils.NewVector(n)
	for i := 0; i < n; i++ {
		x := (r.AtVec(i) - r0) / w
		U.V.SetVec(i, math.Exp(-x*x))
	}
	return
}

// RHS evaluates -a du/dr + sigma Diss(u). The advection and dissipation
// operators leave their unsupported boundary rows zero; those rows get the
// nearest computed value instead so the boundary follows the interior
// (copy out boundary, appropriate for a pulse that exits the domain).
func (c *Advection) RHS(U utils.Vector) (RHSU utils.Vector) {
	var (
		n = c.Ops.NumPoints
	)
	RHSU = matVec(c.DAdvec, U).Scale(-c.a).Add(matVec(c.DDiss, U).Scale(c.Sigma))
	for i := 0; i < 3; i++ {
		RHSU.V.SetVec(i, RHSU.AtVec(3))
	}
	for i := n - 3; i < n; i++ {
		RHSU.V.SetVec(i, RHSU.AtVec(n-4))
	}
	return
}

func matVec(A *sparse.CSR, U utils.Vector) (R utils.Vector) {
	R = utils.NewVector(U.Len())
	R.V.MulVec(A, U.V)
	return
}
