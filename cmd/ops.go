/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/nrgrid/stretchfd/FD1D"
	"github.com/nrgrid/stretchfd/InputParameters"
)

// OpsCmd represents the ops command
var OpsCmd = &cobra.Command{
	Use:   "ops",
	Short: "Build the differentiation operator set and report diagnostics",
	Long: `
Builds the five differentiation matrices (first and second derivative, left
and right advection, Kreiss-Oliger dissipation) for a geometric grid and
prints the grid ratio, stencil weights and a conditioning advisory.

stretchfd ops -I input.yaml
stretchfd ops --rMax 10 --numPoints 64 --ratio 1.05`,
	Run: func(cmd *cobra.Command, args []string) {
		ip := opsInput(cmd)
		RunOps(ip)
	},
}

func opsInput(cmd *cobra.Command) (ip *InputParameters.InputParameters) {
	var (
		err    error
		icFile string
	)
	icFile, _ = cmd.Flags().GetString("inputFile")
	ip = &InputParameters.InputParameters{}
	if len(icFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(icFile); err != nil {
			panic(err)
		}
		if err = ip.Parse(data); err != nil {
			panic(err)
		}
	} else {
		ip.Title = "command line grid"
		ip.RMax, _ = cmd.Flags().GetFloat64("rMax")
		ip.NumPoints, _ = cmd.Flags().GetInt("numPoints")
		ip.StretchRatio, _ = cmd.Flags().GetFloat64("ratio")
	}
	return
}

func RunOps(ip *InputParameters.InputParameters) {
	ip.Print()
	R, Dr := FD1D.SimpleGrid1D(ip.RMax, ip.NumPoints, ip.StretchRatio)
	ops, err := FD1D.NewOperators(R, Dr)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	fmt.Printf("N = %d, c = %v, dr[%d] = %v\n",
		ops.NumPoints, ops.Ratio, FD1D.NumGhosts, ops.Dr.AtVec(FD1D.NumGhosts))
	if note := ops.ConditioningNote(); note != "" {
		fmt.Printf("warning: %s\n", note)
	}
	fmt.Printf("centered d1 stencil = %v\n", ops.Stencils.D1)
	fmt.Printf("centered d2 stencil = %v\n", ops.Stencils.D2)
	fmt.Printf("dissipation stencil = %v\n", ops.Stencils.Dissipation)
	for _, kind := range []FD1D.OperatorKind{FD1D.OpD1, FD1D.OpD2, FD1D.OpAdvecLeft, FD1D.OpAdvecRight, FD1D.OpDissipation} {
		nnz := structuralNonzeros(ops, kind)
		fmt.Printf("%-12s %d structural nonzeros\n", kind, nnz)
	}
	if ops.NumPoints <= 12 {
		fmt.Printf("D1 = \n%v\n", mat.Formatted(ops.D1, mat.Squeeze()))
	}
}

func structuralNonzeros(ops *FD1D.Operators, kind FD1D.OperatorKind) (nnz int) {
	var (
		M      = ops.Matrix(kind)
		nr, nc = M.Dims()
	)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if M.At(i, j) != 0 {
				nnz++
			}
		}
	}
	return
}

func init() {
	rootCmd.AddCommand(OpsCmd)
	OpsCmd.Flags().StringP("inputFile", "I", "", "YAML file with grid parameters (RMax, NumPoints, StretchRatio)")
	OpsCmd.Flags().Float64("rMax", 10., "outer radius of the interior grid")
	OpsCmd.Flags().Int("numPoints", 64, "total number of grid points, including ghosts")
	OpsCmd.Flags().Float64("ratio", 1.05, "grid spacing ratio c")
}
