package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/godim/internal/config"
	"github.com/philipparndt/godim/version"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	weld       float64

	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "godim",
	Short: "Measure and edit dimensions of polygon meshes",
	Long: `godim finds circles and arcs in STL and OpenSCAD models, measures
linear, radial and angular dimensions between mesh vertices and moves the
mesh so that a dimension takes a new value.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML settings file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().Float64Var(&weld, "weld", 0, "Distance under which STL corners are merged")
}

// setup installs the console logger and reads the settings; flags win over
// the settings file
func setup(cmd *cobra.Command, _ []string) error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		c.Log.Level = logLevel
	}
	if cmd.Flags().Changed("weld") {
		if weld <= 0 {
			return fmt.Errorf("--weld must be positive, got %g", weld)
		}
		c.Mesh.WeldTolerance = weld
	}

	level, err := c.LogLevel()
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)

	cfg = c
	log.Debug().Str("config", configPath).Str("level", level.String()).Msg("settings loaded")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
