package main

import (
	"github.com/spf13/cobra"

	"nfcrename/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show application directory, leader, and queue state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			printer := newStatusPrinter(cmd.OutOrStdout())
			printer.header("nfcrename status")
			printer.line("Config", statusInfo, ctx.configPath)
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				kind := statusOK
				if !result.Passed {
					kind = statusError
				}
				printer.line(result.Name, kind, result.Detail)
			}
			return nil
		},
	}
}
