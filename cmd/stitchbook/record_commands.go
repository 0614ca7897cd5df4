package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stitchbook/internal/pattern"
	"stitchbook/internal/progress"
	"stitchbook/internal/project"
	"stitchbook/internal/selection"
	"stitchbook/internal/store"
	"stitchbook/internal/tracker"
)

func newRecordCommand(ctx *commandContext) *cobra.Command {
	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "Track progress through a project",
	}

	recordCmd.AddCommand(newRecordStartCommand(ctx))
	recordCmd.AddCommand(newRecordListCommand(ctx))
	recordCmd.AddCommand(newRecordShowCommand(ctx))
	recordCmd.AddCommand(newRecordAdvanceCommand(ctx))
	recordCmd.AddCommand(newRecordLocateCommand(ctx))
	recordCmd.AddCommand(newRecordDeleteCommand(ctx))

	return recordCmd
}

func newRecordStartCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "start <project-id>",
		Short: "Start a new progress record for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *tracker.Service, owner string) error {
				rec, err := svc.StartRecord(cmd.Context(), owner, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Started record %s for %s (%d components)\n",
					rec.ID, rec.ProjectName, len(rec.ComponentList))
				return nil
			})
		},
	}
}

func newRecordListCommand(ctx *commandContext) *cobra.Command {
	var projectID string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List progress records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *tracker.Service, owner string) error {
				summaries, err := recordSummaries(cmd, svc, owner, strings.TrimSpace(projectID))
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, summaries)
				}
				if len(summaries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No records")
					return nil
				}
				rows := make([][]string, 0, len(summaries))
				for _, s := range summaries {
					rows = append(rows, []string{s.ID, s.ProjectName, formatWhen(s.LatestStart)})
				}
				fmt.Fprint(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Project", "Last worked"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Only records started from this project")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON")
	return cmd
}

func recordSummaries(cmd *cobra.Command, svc *tracker.Service, owner, projectID string) ([]store.RecordSummary, error) {
	if projectID == "" {
		summaries, err := svc.Records(cmd.Context(), owner)
		if summaries == nil {
			summaries = []store.RecordSummary{}
		}
		return summaries, err
	}
	records, err := svc.RecordsForProject(cmd.Context(), owner, projectID)
	if err != nil {
		return nil, err
	}
	summaries := make([]store.RecordSummary, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, store.RecordSummary{
			ID:          r.ID,
			ProjectID:   r.ProjectID,
			ProjectName: r.ProjectName,
			LatestStart: r.LatestStart(),
		})
	}
	return summaries, nil
}

func newRecordShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <record-id>",
		Short: "Show a record's sessions and progress markers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *tracker.Service, owner string) error {
				rec, err := svc.Record(cmd.Context(), owner, args[0])
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, rec)
				}
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				fmt.Fprintf(out, "%s (%s)\n", rec.ProjectName, rec.ID)

				fmt.Fprintln(out, renderHeading("Components", colorize))
				rows := make([][]string, 0, len(rec.ComponentList))
				for i := range rec.ComponentList {
					c := &rec.ComponentList[i]
					rows = append(rows, []string{
						strconv.Itoa(i + 1),
						c.DisplayName(),
						formatEndAt(c.EndAt),
						strconv.Itoa(progress.Occurrences(c)),
					})
				}
				fmt.Fprint(out, renderTable(
					[]string{"#", "Component", "At", "Rows"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
				))

				if len(rec.TimeSlots) == 0 {
					fmt.Fprintln(out, "No sessions yet")
					return nil
				}
				fmt.Fprintln(out, renderHeading("Sessions", colorize))
				sessions := make([][]string, 0, len(rec.TimeSlots))
				for _, slot := range rec.TimeSlots {
					duration := ""
					if !slot.End.IsZero() {
						duration = slot.End.Sub(slot.Start).Round(time.Minute).String()
					}
					sessions = append(sessions, []string{formatWhen(slot.Start), duration})
				}
				fmt.Fprint(out, renderTable([]string{"Started", "Duration"}, sessions, []columnAlignment{alignLeft, alignRight}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON")
	return cmd
}

func newRecordAdvanceCommand(ctx *commandContext) *cobra.Command {
	var component, row, stitches int
	var at string

	cmd := &cobra.Command{
		Use:   "advance <record-id>",
		Short: "Mark how far a component has been worked",
		Long: "Mark progress at --row (the 1-based row occurrence, counting repeats) and either " +
			"--stitches generated within it or --at, a node path such as 2x3/1.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := position("component", component)
			if err != nil {
				return err
			}
			if row < 1 {
				return errors.New("--row must be 1 or greater")
			}
			useStitches := cmd.Flags().Changed("stitches")
			useAt := strings.TrimSpace(at) != ""
			if useStitches == useAt {
				return errors.New("specify exactly one of --stitches or --at")
			}

			return ctx.withService(cmd, func(svc *tracker.Service, owner string) error {
				var (
					rec *project.Record
					err error
				)
				if useStitches {
					rec, err = svc.AdvanceStitches(cmd.Context(), owner, args[0], index, row, stitches)
				} else {
					rec, err = advanceAt(cmd, svc, owner, args[0], index, row, at)
				}
				if err != nil {
					return err
				}
				c := rec.ComponentList[index]
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%d%%)\n", c.DisplayName(), formatEndAt(c.EndAt), progress.Percent(&c))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&component, "component", 1, "Component number (1-based)")
	cmd.Flags().IntVar(&row, "row", 1, "Row occurrence (1-based, counting repeats)")
	cmd.Flags().IntVar(&stitches, "stitches", 0, "Stitches generated within the row")
	cmd.Flags().StringVar(&at, "at", "", "Node path within the row, e.g. 2x3/1")
	return cmd
}

func advanceAt(cmd *cobra.Command, svc *tracker.Service, owner, recordID string, component, row int, at string) (*project.Record, error) {
	rec, err := svc.Record(cmd.Context(), owner, recordID)
	if err != nil {
		return nil, err
	}
	if component >= len(rec.ComponentList) {
		return nil, fmt.Errorf("component %d: %w", component+1, tracker.ErrOutOfRange)
	}
	located, ok := progress.LocateRow(&rec.ComponentList[component], row)
	if !ok {
		return nil, fmt.Errorf("row %d: %w", row, tracker.ErrOutOfRange)
	}
	pos, err := selection.Parse(at, located.Content.StitchNodeList)
	if err != nil {
		return nil, fmt.Errorf("parse --at: %w", err)
	}
	return svc.Advance(cmd.Context(), owner, recordID, tracker.Mark{Component: component, Row: row, Position: pos})
}

func newRecordLocateCommand(ctx *commandContext) *cobra.Command {
	var component int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "locate <record-id>",
		Short: "Show where in its row a component's progress marker sits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := position("component", component)
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(svc *tracker.Service, owner string) error {
				loc, err := svc.Locate(cmd.Context(), owner, args[0], index)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, loc)
				}
				out := cmd.OutOrStdout()
				if loc.EndAt == nil || loc.Row == nil {
					fmt.Fprintf(out, "%s: not started\n", loc.Component)
					return nil
				}
				list := loc.Row.Content.StitchNodeList
				fmt.Fprintf(out, "%s: %s\n", loc.Component, formatEndAt(loc.EndAt))
				fmt.Fprintf(out, "Row pattern: %s\n", pattern.DescribeList(list))
				fmt.Fprintf(out, "Position: %s\n", selection.Format(loc.Position, list))
				if sel, ok := selection.Current(loc.Position.Path, list); ok {
					fmt.Fprintf(out, "Selected %s: %s\n", sel.NodeKind, pattern.DescribeList(sel.Items))
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&component, "component", 1, "Component number (1-based)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON")
	return cmd
}

func newRecordDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <record-id>",
		Short: "Delete a progress record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *tracker.Service, owner string) error {
				if err := svc.DeleteRecord(cmd.Context(), owner, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted record %s\n", args[0])
				return nil
			})
		},
	}
}

func formatEndAt(e *project.EndAt) string {
	if e == nil {
		return "not started"
	}
	return fmt.Sprintf("row %d, %d stitches", e.RowIndex, e.CrochetCount)
}

func formatWhen(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}
