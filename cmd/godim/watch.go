package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/philipparndt/godim/pkg/watcher"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [file] [job]",
	Short: "Measure again whenever the model or the job changes",
	Long: `Watch the model, the files an OpenSCAD model uses or includes, and the
job file. Every change reloads the model and prints the measurements again.`,
	Args: cobra.ExactArgs(2),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "Delay before reloading after a change")
}

func runWatch(cmd *cobra.Command, args []string) error {
	modelPath, jobPath := args[0], args[1]

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fw, err := watcher.NewFileWatcher(watchDebounce)
	if err != nil {
		return err
	}
	defer fw.Close()
	fw.Log = log.Logger

	reload := make(chan string, 1)
	watch := func() error {
		sources, err := newLoader().Sources(modelPath)
		if err != nil {
			return err
		}
		return fw.Watch(append(sources, jobPath), func(changed string) {
			select {
			case reload <- changed:
			default:
			}
		})
	}
	if err := watch(); err != nil {
		return err
	}

	measure(ctx, modelPath, jobPath)
	go fw.Run(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case changed := <-reload:
			fmt.Printf("\nFile changed: %s\n", changed)
			// an OpenSCAD model may have gained or lost includes
			if err := fw.RemoveAll(); err != nil {
				log.Debug().Err(err).Msg("unwatch")
			}
			if err := watch(); err != nil {
				log.Error().Err(err).Msg("failed to watch files")
			}
			measure(ctx, modelPath, jobPath)
		}
	}
}

func measure(ctx context.Context, modelPath, jobPath string) {
	s, err := open(ctx, modelPath, jobPath)
	if err != nil {
		log.Error().Err(err).Msg("reload failed")
		return
	}
	printMeasurements(s)
}
