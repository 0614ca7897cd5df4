package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stitchbook/internal/catalog"
	"stitchbook/internal/pattern"
	"stitchbook/internal/project"
	"stitchbook/internal/textutil"
	"stitchbook/internal/tracker"
)

func newProjectCommand(ctx *commandContext) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Create and inspect pattern projects",
	}

	projectCmd.AddCommand(newProjectCreateCommand(ctx))
	projectCmd.AddCommand(newProjectListCommand(ctx))
	projectCmd.AddCommand(newProjectShowCommand(ctx))
	projectCmd.AddCommand(newProjectImportCommand(ctx))
	projectCmd.AddCommand(newProjectExportCommand(ctx))
	projectCmd.AddCommand(newProjectDeleteCommand(ctx))

	return projectCmd
}

func newProjectCreateCommand(ctx *commandContext) *cobra.Command {
	var castOn string
	var components []string
	var rows int

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return errors.New("project name is required")
			}
			castOnID, err := parseCastOn(castOn)
			if err != nil {
				return err
			}
			if len(components) == 0 {
				components = []string{"main"}
			}
			p := &project.Project{Name: name, CastOn: castOnID}
			for _, spec := range components {
				c, err := parseComponentSpec(spec)
				if err != nil {
					return err
				}
				for i := 0; i < rows; i++ {
					c.AddRow()
				}
				p.ComponentList = append(p.ComponentList, c)
			}

			return ctx.withService(cmd, func(svc *tracker.Service, owner string) error {
				created, err := svc.CreateProject(cmd.Context(), owner, p)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", created.Name, created.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&castOn, "cast-on", "magicRing", "Cast-on id or name")
	cmd.Flags().StringArrayVar(&components, "component", nil, "Component as name or name:count (repeatable)")
	cmd.Flags().IntVar(&rows, "rows", 1, "Empty rows to create in each component")
	return cmd
}

func newProjectListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *tracker.Service, owner string) error {
				projects, err := svc.Projects(cmd.Context(), owner)
				if err != nil {
					return err
				}
				if jsonOut {
					if projects == nil {
						projects = []*project.Project{}
					}
					return writeJSON(cmd, projects)
				}
				if len(projects) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No projects")
					return nil
				}
				tag := ctx.config.LanguageTag()
				rows := make([][]string, 0, len(projects))
				for _, p := range projects {
					rows = append(rows, []string{
						p.ID,
						p.Name,
						catalog.DisplayName(p.CastOnName(), tag),
						strconv.Itoa(len(p.ComponentList)),
						p.UpdatedAt.Local().Format(time.DateTime),
					})
				}
				fmt.Fprint(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Name", "Cast-on", "Components", "Updated"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON")
	return cmd
}

func newProjectShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project's components and rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *tracker.Service, owner string) error {
				p, err := svc.Project(cmd.Context(), owner, args[0])
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, p)
				}
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				fmt.Fprintf(out, "%s (%s)\n", p.Name, catalog.DisplayName(p.CastOnName(), ctx.config.LanguageTag()))
				for i, c := range p.ComponentList {
					title := fmt.Sprintf("%d. %s %s", i+1, c.Name, countLabel(c.Count))
					fmt.Fprintln(out, renderHeading(title, colorize))
					fmt.Fprint(out, renderTable(
						[]string{"Row", "Times", "Group", "Stitches", "Consume", "Generate"},
						componentRows(c),
						[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignRight, alignRight},
					))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON")
	return cmd
}

func componentRows(c project.Component) [][]string {
	rows := make([][]string, 0, len(c.Content.RowList))
	for i, r := range c.Content.RowList {
		label := strconv.Itoa(r.RowIndex)
		if r.Repeat() > 1 {
			label = fmt.Sprintf("%d-%d", r.RowIndex, r.RowIndex+r.Repeat()-1)
		}
		group := ""
		if r.Grouped() {
			group = "|"
			if project.IsGroupedStart(c.Content.RowList, i) {
				repeat := 1
				if g, ok := c.Group(*r.GroupIndex); ok {
					repeat = g.RepeatCount
				}
				group = fmt.Sprintf("+ group %d x%d", *r.GroupIndex, repeat)
			}
		}
		stats := r.Stats()
		rows = append(rows, []string{
			label,
			strconv.Itoa(r.Repeat()),
			group,
			pattern.DescribeList(r.Content.StitchNodeList),
			strconv.Itoa(stats.Consume),
			strconv.Itoa(stats.Generate),
		})
	}
	return rows
}

func newProjectImportCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a project document (JSON or YAML)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read project file: %w", err)
			}
			docFormat, err := parseFormat(format)
			if err != nil {
				return err
			}
			if docFormat == "" {
				docFormat = project.FormatFromPath(args[0])
			}

			return ctx.withService(cmd, func(svc *tracker.Service, owner string) error {
				p, err := svc.ImportProject(cmd.Context(), owner, data, docFormat)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported project %s (%s)\n", p.Name, p.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Document format (json or yaml); detected from the extension by default")
	return cmd
}

func newProjectExportCommand(ctx *commandContext) *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "export <project-id>",
		Short: "Write a project document that can be imported again",
		Long: "Write the project as JSON or YAML. --output may name a file, a directory " +
			"(the file is named after the project) or - for standard output.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docFormat, err := parseFormat(format)
			if err != nil {
				return err
			}
			if docFormat == "" {
				docFormat = project.FormatJSON
			}

			return ctx.withService(cmd, func(svc *tracker.Service, owner string) error {
				p, data, err := svc.ExportProject(cmd.Context(), owner, args[0], docFormat)
				if err != nil {
					return err
				}
				target := strings.TrimSpace(output)
				if target == "-" {
					_, err := cmd.OutOrStdout().Write(data)
					return err
				}
				if target == "" {
					target = "."
				}
				if info, err := os.Stat(target); err == nil && info.IsDir() {
					target = filepath.Join(target, textutil.Slug(p.Name, "project")+"."+string(docFormat))
				}
				if err := os.WriteFile(target, data, 0o644); err != nil {
					return fmt.Errorf("write project file: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported project %s to %s\n", p.Name, target)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Document format (json or yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "File, directory or - (default: current directory)")
	return cmd
}

// parseFormat returns "" for an empty value so callers can pick a default.
func parseFormat(value string) (project.Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return "", nil
	case "json":
		return project.FormatJSON, nil
	case "yaml", "yml":
		return project.FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json or yaml)", value)
	}
}

func newProjectDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *tracker.Service, owner string) error {
				if err := svc.DeleteProject(cmd.Context(), owner, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", args[0])
				return nil
			})
		},
	}
}
