package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"stitchbook/internal/tracker"
)

func newProgressCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "progress <record-id>",
		Short: "Show completion per component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *tracker.Service, owner string) error {
				report, err := svc.Progress(cmd.Context(), owner, args[0])
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, report)
				}
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				rows := make([][]string, 0, len(report))
				for _, c := range report {
					rows = append(rows, []string{
						c.Name,
						formatEndAt(c.EndAt),
						strconv.Itoa(c.Generated) + "/" + strconv.Itoa(c.Total),
						renderProgressBar(c.Percent, colorize),
					})
				}
				fmt.Fprint(out, renderTable(
					[]string{"Component", "At", "Stitches", "Progress"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON")
	return cmd
}
