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

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/nrgrid/stretchfd/InputParameters"
	"github.com/nrgrid/stretchfd/model_problems/Advection1D"
)

// EvolveCmd represents the evolve command
var EvolveCmd = &cobra.Command{
	Use:   "evolve",
	Short: "Advect a Gaussian pulse across the stretched grid",
	Long: `
Evolves u_t + a u_r = 0 with upwind differencing and Kreiss-Oliger
dissipation on a geometrically stretched grid, exercising the operator set
the way an evolution code does.

stretchfd evolve -I input.yaml
stretchfd evolve --numPoints 128 --ratio 1.02 --CFL 0.5`,
	Run: func(cmd *cobra.Command, args []string) {
		ip := opsInput(cmd)
		if ip.CFL == 0 {
			ip.CFL, _ = cmd.Flags().GetFloat64("CFL")
		}
		if ip.FinalTime == 0 {
			ip.FinalTime, _ = cmd.Flags().GetFloat64("finalTime")
		}
		if ip.WaveSpeed == 0 {
			ip.WaveSpeed, _ = cmd.Flags().GetFloat64("waveSpeed")
		}
		if ip.Sigma == 0 {
			ip.Sigma, _ = cmd.Flags().GetFloat64("sigma")
		}
		if prof, _ := cmd.Flags().GetBool("cpuprofile"); prof {
			defer profile.Start(profile.CPUProfile).Stop()
		}
		RunEvolve(ip)
	},
}

func RunEvolve(ip *InputParameters.InputParameters) {
	ip.Print()
	c, err := Advection1D.NewAdvection(
		ip.WaveSpeed, ip.CFL, ip.FinalTime, ip.RMax,
		ip.NumPoints, ip.StretchRatio, ip.Sigma)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	c.Run()
}

func init() {
	rootCmd.AddCommand(EvolveCmd)
	EvolveCmd.Flags().StringP("inputFile", "I", "", "YAML file with grid and evolution parameters")
	EvolveCmd.Flags().Float64("rMax", 10., "outer radius of the interior grid")
	EvolveCmd.Flags().Int("numPoints", 128, "total number of grid points, including ghosts")
	EvolveCmd.Flags().Float64("ratio", 1.02, "grid spacing ratio c")
	EvolveCmd.Flags().Float64("CFL", 0.5, "CFL - increase for speedup, decrease for stability")
	EvolveCmd.Flags().Float64("finalTime", 5., "target end time for the sim")
	EvolveCmd.Flags().Float64("waveSpeed", 1., "advection speed a, sign selects the upwind direction")
	EvolveCmd.Flags().Float64("sigma", 0.1, "Kreiss-Oliger dissipation strength")
	EvolveCmd.Flags().Bool("cpuprofile", false, "write a CPU profile for the run")
}
