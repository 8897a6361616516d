package main

import (
	"fmt"

	"github.com/philipparndt/godim/pkg/analysis"
	"github.com/spf13/cobra"
)

var measureCmd = &cobra.Command{
	Use:   "measure [file] [job]",
	Short: "Measure the dimensions of a job file",
	Long: `Measure every dimension listed in a YAML job file. Dimension points are
snapped to the nearest mesh vertex within the job tolerance.`,
	Args: cobra.ExactArgs(2),
	RunE: runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)
}

func runMeasure(cmd *cobra.Command, args []string) error {
	s, err := open(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	printMeasurements(s)
	return nil
}

func printMeasurements(s *session) {
	fmt.Println("Dimensions")
	fmt.Println("==========")
	for i, d := range s.dims {
		d.Update(s.mesh)
		fmt.Printf("%-12s %s\n", s.name(i), analysis.FormatDimension(s.mesh, d))
		if v := s.job.Dimensions[i].Value; v != nil {
			fmt.Printf("%-12s target %s\n", "", analysis.FormatMeasurement(*v, analysis.Unit(d.Kind)))
		}
	}
}
