package main

import (
	"fmt"

	"github.com/philipparndt/godim/pkg/analysis"
	"github.com/philipparndt/godim/pkg/dimension"
	"github.com/philipparndt/godim/pkg/mesh"
	"github.com/philipparndt/godim/pkg/stl"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	applyOutput string
	applyASCII  bool
)

var applyCmd = &cobra.Command{
	Use:   "apply [file] [job]",
	Short: "Set dimensions to their target values and save the mesh",
	Long: `Apply every dimension of a job file that has a value, in file order.
Each edit moves the controlling vertices and the vertices its constraints
select. Circles and arcs are detected again after every edit.`,
	Args: cobra.ExactArgs(2),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringVarP(&applyOutput, "output", "o", "", "Output STL file")
	applyCmd.Flags().BoolVar(&applyASCII, "ascii", false, "Write ASCII instead of binary STL")
	_ = applyCmd.MarkFlagRequired("output")
}

func runApply(cmd *cobra.Command, args []string) error {
	s, err := open(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	if err := applyJob(s); err != nil {
		return err
	}

	format := stl.Binary
	if applyASCII {
		format = stl.ASCII
	}
	if err := stl.WriteFile(applyOutput, s.mesh.ToModel(), format); err != nil {
		return err
	}
	fmt.Printf("\nWrote %s\n", applyOutput)
	return nil
}

// applyJob edits the mesh of s dimension by dimension
func applyJob(s *session) error {
	defaults, err := cfg.DefaultConstraints()
	if err != nil {
		return err
	}
	solver := dimension.NewSolver(s.mesh, s.features)
	solver.Defaults = defaults
	solver.Log = log.Logger
	marks := mesh.NewMarks()

	fmt.Println("Edits")
	fmt.Println("=====")
	for i, d := range s.dims {
		target := s.job.Dimensions[i].Value
		if target == nil {
			continue
		}
		unit := analysis.Unit(d.Kind)
		before := d.Value(s.mesh)

		solver.Apply(d, *target, marks)
		s.features = s.detector.Update(s.mesh, s.features, marks)
		solver.Features = s.features

		after := d.Value(s.mesh)
		fmt.Printf("%-12s %s -> %s\n", s.name(i),
			analysis.FormatMeasurement(before, unit),
			analysis.FormatMeasurement(after, unit))
		if diff := after - *target; diff > dimension.ConstraintPrecision || diff < -dimension.ConstraintPrecision {
			log.Warn().Str("dimension", s.name(i)).Float64("target", *target).Float64("value", after).
				Msg("dimension did not reach its target")
		}
	}
	fmt.Println()
	printMeasurements(s)
	return nil
}
