package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title        string  `yaml:"Title"`
	RMax         float64 `yaml:"RMax"`
	NumPoints    int     `yaml:"NumPoints"`    // total, including ghost points
	StretchRatio float64 `yaml:"StretchRatio"` // grid spacing ratio c
	CFL          float64 `yaml:"CFL"`
	FinalTime    float64 `yaml:"FinalTime"`
	WaveSpeed    float64 `yaml:"WaveSpeed"`
	Sigma        float64 `yaml:"Sigma"` // Kreiss-Oliger dissipation strength
}

func (ip *InputParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, ip); err != nil {
		return err
	}
	if ip.NumPoints <= 0 {
		return fmt.Errorf("NumPoints must be positive, got %d", ip.NumPoints)
	}
	if ip.StretchRatio <= 0 {
		return fmt.Errorf("StretchRatio must be positive, got %v", ip.StretchRatio)
	}
	return nil
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%8.5f\t\t= RMax\n", ip.RMax)
	fmt.Printf("[%d]\t\t\t= NumPoints\n", ip.NumPoints)
	fmt.Printf("%8.5f\t\t= StretchRatio\n", ip.StretchRatio)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("%8.5f\t\t= WaveSpeed\n", ip.WaveSpeed)
	fmt.Printf("%8.5f\t\t= Sigma\n", ip.Sigma)
}
