package main

import (
	"fmt"

	"github.com/philipparndt/godim/pkg/analysis"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a model",
	Long:  "Show mesh statistics, bounding box, edge lengths and the number of detected circles and arcs.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	s, err := open(cmd.Context(), filename, "")
	if err != nil {
		return err
	}
	result := analysis.Summarize(s.mesh, s.features)

	fmt.Println("Model Information")
	fmt.Println("=================")
	if result.Name != "" {
		fmt.Printf("Name: %s\n", result.Name)
	}
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Mesh:")
	fmt.Printf("  Vertices: %d\n", result.VertexCount)
	fmt.Printf("  Edges: %d\n", result.EdgeCount)
	fmt.Printf("  Faces: %d\n", result.FaceCount)
	fmt.Printf("  Surface Area: %.6f square units\n\n", result.SurfaceArea)

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Printf("  Center: %s\n", analysis.FormatVector(result.BoundingBox.Center()))
	fmt.Printf("  Size: %s\n", analysis.FormatVector(result.Dimensions))
	fmt.Printf("  Diagonal: %.6f units\n\n", result.BoundingBox.Diagonal())

	fmt.Println("Edge Lengths:")
	fmt.Printf("  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Printf("  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Printf("  Average: %.6f units\n\n", result.AvgEdgeLength)

	fmt.Println("Features:")
	fmt.Printf("  Circles: %d\n", result.Circles)
	fmt.Printf("  Arcs: %d\n", result.Arcs)
	return nil
}
