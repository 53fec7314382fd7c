package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nfcrename/internal/gate"
	"nfcrename/internal/rename"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "nfcrename [--config path] [--] [paths...] [-r]",
		Short: "Rename files and directories to Unicode NFC names",
		Long: "Rename the given files and directories so their names are in Unicode\n" +
			"Normalization Form C. With -r (or /r) directories are processed with\n" +
			"everything below them. Concurrent invocations are merged into one batch.\n\n" +
			"Path arguments are taken verbatim, including names that begin with a dash.\n" +
			"Pass -- before the paths when one may collide with a subcommand name.",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The root resolves --config itself after splitting its raw args.
			if cmd.DisableFlagParsing || shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := splitRootArgs(args)
			if err != nil {
				return err
			}
			if parsed.help {
				return cmd.Help()
			}
			if parsed.configPath != "" {
				configFlag = parsed.configPath
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			inv := gate.ParseInvocation(parsed.paths)

			logger := ctx.logger()
			g := gate.New(cfg, rename.NewEngine(cfg, logger), logger)
			if code := g.Run(cmd.Context(), inv); code != gate.ExitOK {
				return exitCodeError{code: code}
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newQueueCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newWatchCommand(ctx))

	return rootCmd
}

type rootArgs struct {
	configPath string
	help       bool
	paths      []string
}

// splitRootArgs separates the root's own options from path arguments.
// Only whole tokens are options, so a file named "-café.txt" stays a path.
// Everything after "--" is passed through untouched.
func splitRootArgs(args []string) (rootArgs, error) {
	var parsed rootArgs
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			parsed.paths = append(parsed.paths, args[i+1:]...)
			return parsed, nil
		case arg == "--config" || arg == "-c":
			if i+1 >= len(args) {
				return parsed, fmt.Errorf("flag needs an argument: %s", arg)
			}
			i++
			parsed.configPath = args[i]
		case strings.HasPrefix(arg, "--config="):
			parsed.configPath = strings.TrimPrefix(arg, "--config=")
		case arg == "-h" || arg == "--help":
			parsed.help = true
		default:
			parsed.paths = append(parsed.paths, arg)
		}
	}
	return parsed, nil
}
