package FD1D

import (
	"github.com/james-bowman/sparse"

	"github.com/nrgrid/stretchfd/utils"
)

// OperatorKind selects one of the five differentiation matrices.
type OperatorKind uint8

const (
	OpD1 OperatorKind = iota
	OpD2
	OpAdvecLeft
	OpAdvecRight
	OpDissipation
)

func (k OperatorKind) String() string {
	switch k {
	case OpD1:
		return "D1"
	case OpD2:
		return "D2"
	case OpAdvecLeft:
		return "AdvecLeft"
	case OpAdvecRight:
		return "AdvecRight"
	case OpDissipation:
		return "Dissipation"
	}
	return "unknown"
}

// Matrix returns the dense form of the selected operator.
func (ops *Operators) Matrix(kind OperatorKind) utils.Matrix {
	switch kind {
	case OpD1:
		return ops.D1
	case OpD2:
		return ops.D2
	case OpAdvecLeft:
		return ops.AdvecLeft
	case OpAdvecRight:
		return ops.AdvecRight
	case OpDissipation:
		return ops.Dissipation
	}
	panic("unknown operator kind")
}

// CSR converts the selected operator to compressed sparse row form for
// repeated matrix vector products. The operators are banded, so the CSR form
// carries O(N) structural nonzeros instead of the dense N^2; matvec results
// are identical to the dense matrix.
func (ops *Operators) CSR(kind OperatorKind) (R *sparse.CSR) {
	var (
		M      = ops.Matrix(kind)
		nr, nc = M.Dims()
	)
	DOK := sparse.NewDOK(nr, nc)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if val := M.At(i, j); val != 0 {
				DOK.Set(i, j, val)
			}
		}
	}
	R = DOK.ToCSR()
	return
}
