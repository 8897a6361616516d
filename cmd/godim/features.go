package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/godim/pkg/analysis"
	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var featuresYAML bool

var featuresCmd = &cobra.Command{
	Use:   "features [file]",
	Short: "List the circles and arcs found in a model",
	Long: `Detect circular and arc shaped edge loops. The printed index is the one
a job file refers to with "feature:".`,
	Args: cobra.ExactArgs(1),
	RunE: runFeatures,
}

func init() {
	rootCmd.AddCommand(featuresCmd)

	featuresCmd.Flags().BoolVar(&featuresYAML, "yaml", false, "Print the features as YAML")
}

func runFeatures(cmd *cobra.Command, args []string) error {
	s, err := open(cmd.Context(), args[0], "")
	if err != nil {
		return err
	}
	infos := analysis.DescribeFeatures(s.mesh, s.features)

	if featuresYAML {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(infos)
	}

	if len(infos) == 0 {
		fmt.Println("No circles or arcs found.")
		return nil
	}
	fmt.Printf("%-6s %-7s %-35s %-12s %-10s %-6s\n", "Index", "Kind", "Center", "Diameter", "Sweep", "Verts")
	for _, f := range infos {
		fmt.Printf("%-6d %-7s %-35s %-12.6f %-10s %-6d\n",
			f.Index,
			f.Kind,
			analysis.FormatVector(geometry.NewVector3(f.Center[0], f.Center[1], f.Center[2])),
			f.Diameter,
			analysis.FormatMeasurement(f.Sweep, "°"),
			len(f.Verts))
	}
	return nil
}
