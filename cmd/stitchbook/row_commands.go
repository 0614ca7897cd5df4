package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"stitchbook/internal/pattern"
	"stitchbook/internal/tracker"
)

// rowFlags binds the --component/--row pair shared by row and stitch edits.
type rowFlags struct {
	component int
	row       int
}

func (f *rowFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.component, "component", 1, "Component number (1-based)")
	cmd.Flags().IntVar(&f.row, "row", 1, "Row position in the component (1-based)")
}

func (f rowFlags) ref() (tracker.RowRef, error) {
	component, err := position("component", f.component)
	if err != nil {
		return tracker.RowRef{}, err
	}
	row, err := position("row", f.row)
	if err != nil {
		return tracker.RowRef{}, err
	}
	return tracker.RowRef{Component: component, Row: row}, nil
}

func newRowCommand(ctx *commandContext) *cobra.Command {
	rowCmd := &cobra.Command{
		Use:   "row",
		Short: "Edit a project's rows",
	}

	rowCmd.AddCommand(newRowAddCommand(ctx))
	rowCmd.AddCommand(newRowRepeatCommand(ctx))
	rowCmd.AddCommand(newRowGroupCommand(ctx))
	rowCmd.AddCommand(newRowCanonicalizeCommand(ctx))

	return rowCmd
}

func newRowAddCommand(ctx *commandContext) *cobra.Command {
	var component int

	cmd := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Append an empty row to a component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := position("component", component)
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(svc *tracker.Service, owner string) error {
				row, err := svc.AddRow(cmd.Context(), owner, args[0], index)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added row %d to component %d\n", row+1, component)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&component, "component", 1, "Component number (1-based)")
	return cmd
}

func newRowRepeatCommand(ctx *commandContext) *cobra.Command {
	var flags rowFlags

	cmd := &cobra.Command{
		Use:   "repeat <project-id> <times>",
		Short: "Set how many times a row is worked",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := flags.ref()
			if err != nil {
				return err
			}
			times, err := strconv.Atoi(args[1])
			if err != nil || times < 1 {
				return fmt.Errorf("times must be a positive number, got %q", args[1])
			}
			return ctx.withService(cmd, func(svc *tracker.Service, owner string) error {
				if err := svc.SetRowCount(cmd.Context(), owner, args[0], ref, times); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Row %d is worked %d times\n", flags.row, times)
				return nil
			})
		},
	}

	flags.bind(cmd)
	return cmd
}

func newRowGroupCommand(ctx *commandContext) *cobra.Command {
	var component, first, last, repeat int

	cmd := &cobra.Command{
		Use:   "group <project-id>",
		Short: "Repeat a run of rows as a unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			componentIndex, err := position("component", component)
			if err != nil {
				return err
			}
			firstIndex, err := position("first", first)
			if err != nil {
				return err
			}
			lastIndex, err := position("last", last)
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(svc *tracker.Service, owner string) error {
				group, err := svc.GroupRows(cmd.Context(), owner, args[0], componentIndex, firstIndex, lastIndex, repeat)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Rows %d-%d form group %d, worked %d times\n", first, last, group, repeat)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&component, "component", 1, "Component number (1-based)")
	cmd.Flags().IntVar(&first, "first", 1, "First row position (1-based)")
	cmd.Flags().IntVar(&last, "last", 1, "Last row position (1-based, inclusive)")
	cmd.Flags().IntVar(&repeat, "repeat", 2, "How many times the group is worked")
	return cmd
}

func newRowCanonicalizeCommand(ctx *commandContext) *cobra.Command {
	var flags rowFlags

	cmd := &cobra.Command{
		Use:   "canonicalize <project-id>",
		Short: "Rewrite a row into its simplest equivalent form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := flags.ref()
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(svc *tracker.Service, owner string) error {
				row, err := svc.CanonicalizeRow(cmd.Context(), owner, args[0], ref)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Row %d: %s\n", flags.row, pattern.DescribeList(row.Content.StitchNodeList))
				return nil
			})
		},
	}

	flags.bind(cmd)
	return cmd
}
