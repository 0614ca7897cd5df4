package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stitchbook/internal/logs"
)

const followWait = time.Second

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var follow bool
	var lines int
	var day string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Display the activity log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			when := time.Now()
			if strings.TrimSpace(day) != "" {
				when, err = time.ParseInLocation(time.DateOnly, strings.TrimSpace(day), time.Local)
				if err != nil {
					return fmt.Errorf("parse --day: %w", err)
				}
			}
			path := cfg.LogPath(when)

			opts := logs.TailOptions{Offset: -1, Limit: max(lines, 0), Follow: follow, Wait: followWait}
			if lines <= 0 {
				opts.Offset = 0
			}
			printed := false
			for {
				res, err := logs.Tail(cmd.Context(), path, opts)
				if err != nil {
					if errors.Is(err, context.Canceled) {
						return nil
					}
					return fmt.Errorf("tail logs: %w", err)
				}
				for _, line := range res.Lines {
					fmt.Fprintln(cmd.OutOrStdout(), line)
					printed = true
				}
				if !follow {
					if !printed {
						fmt.Fprintf(cmd.OutOrStdout(), "No log entries in %s\n", path)
					}
					return nil
				}
				if cmd.Context().Err() != nil {
					return nil
				}
				opts.Offset = res.Offset
				opts.Limit = 0
			}
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Follow log output")
	cmd.Flags().IntVarP(&lines, "lines", "n", 10, "Number of lines to show (0 for all)")
	cmd.Flags().StringVar(&day, "day", "", "Show the log for this day (YYYY-MM-DD)")
	return cmd
}
