package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"stitchbook/internal/catalog"
	"stitchbook/internal/pattern"
	"stitchbook/internal/project"
	"stitchbook/internal/tracker"
)

func newStitchCommand(ctx *commandContext) *cobra.Command {
	stitchCmd := &cobra.Command{
		Use:   "stitch",
		Short: "Add stitches to a row",
	}

	stitchCmd.AddCommand(newStitchAppendCommand(ctx))
	stitchCmd.AddCommand(newStitchAdjustCommand(ctx))

	return stitchCmd
}

func newStitchAppendCommand(ctx *commandContext) *cobra.Command {
	var flags rowFlags
	var mode string
	var times int

	cmd := &cobra.Command{
		Use:   "append <project-id> <stitch>",
		Short: "Append a stitch to the end of a row",
		Long:  "Append a stitch by id, symbol (X, V, T...) or name. --mode same-stitch works it into the same base stitch as the previous one.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := flags.ref()
			if err != nil {
				return err
			}
			stitchID, err := parseStitch(args[1])
			if err != nil {
				return err
			}
			appendMode, err := pattern.ParseMode(mode)
			if err != nil {
				return err
			}
			if times < 1 {
				return errors.New("--times must be 1 or greater")
			}
			return ctx.withService(cmd, func(svc *tracker.Service, owner string) error {
				var row project.Row
				for i := 0; i < times; i++ {
					row, err = svc.AppendStitch(cmd.Context(), owner, args[0], ref, stitchID, appendMode)
					if err != nil {
						return err
					}
				}
				printRow(cmd, flags.row, row)
				return nil
			})
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&mode, "mode", "normal", "Append mode: normal or same-stitch")
	cmd.Flags().IntVar(&times, "times", 1, "Append the stitch this many times")
	return cmd
}

func newStitchAdjustCommand(ctx *commandContext) *cobra.Command {
	var flags rowFlags
	var variant string

	cmd := &cobra.Command{
		Use:   "adjust <project-id> <stitch>",
		Short: "Turn the row's last stitch into an increase or decrease",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := flags.ref()
			if err != nil {
				return err
			}
			stitchID, err := parseStitch(args[1])
			if err != nil {
				return err
			}
			v, err := catalog.ParseVariant(variant)
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(svc *tracker.Service, owner string) error {
				row, err := svc.Adjust(cmd.Context(), owner, args[0], ref, pattern.Adjust{Variant: v, StitchID: stitchID})
				if err != nil {
					return err
				}
				printRow(cmd, flags.row, row)
				return nil
			})
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&variant, "variant", "increase", "increase or decrease")
	return cmd
}

func printRow(cmd *cobra.Command, position int, row project.Row) {
	stats := row.Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "Row %d: %s (consume %d, generate %d)\n",
		position, pattern.DescribeList(row.Content.StitchNodeList), stats.Consume, stats.Generate)
}
