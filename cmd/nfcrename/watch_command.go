package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"nfcrename/internal/gate"
	"nfcrename/internal/logging"
	"nfcrename/internal/queue"
	"nfcrename/internal/rename"
	"nfcrename/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "watch <dir>...",
		Short: "Normalize new entries in directories as they appear",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.logger()
			g := gate.New(cfg, rename.NewEngine(cfg, logger), logger)

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w, err := watch.NewWatcher(args, watch.Options{
				Debounce:  cfg.WatchDebounce(),
				Recursive: recursive,
				Logger:    logger,
				Submit: func(jobs []queue.Job) {
					if code := g.Submit(runCtx, jobs); code != gate.ExitOK {
						logger.Warn("watch batch failed", logging.Int("exit_code", code))
					}
				},
			})
			if err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}
			defer w.Close()

			out := cmd.OutOrStdout()
			for _, root := range w.Roots() {
				fmt.Fprintf(out, "Watching %s\n", root)
			}
			return w.Run(runCtx)
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Watch subdirectories and queue new directories recursively")
	return cmd
}
