package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"stitchbook/internal/catalog"
)

type catalogStitch struct {
	ID       int    `json:"id"`
	Symbol   string `json:"symbol"`
	NameKey  string `json:"name_key"`
	Name     string `json:"name"`
	Consume  int    `json:"consume"`
	Generate int    `json:"generate"`
}

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List stitches and cast-ons",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			tag := cfg.LanguageTag()

			stitches := catalog.All()
			entries := make([]catalogStitch, 0, len(stitches))
			for _, s := range stitches {
				entries = append(entries, catalogStitch{
					ID:       s.ID,
					Symbol:   s.Symbol,
					NameKey:  s.NameKey,
					Name:     catalog.DisplayName(s.NameKey, tag),
					Consume:  s.Consume,
					Generate: s.Generate,
				})
			}
			if jsonOut {
				return writeJSON(cmd, entries)
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					strconv.Itoa(e.ID), e.Symbol, e.Name,
					strconv.Itoa(e.Consume), strconv.Itoa(e.Generate),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, renderTable(
				[]string{"ID", "Symbol", "Stitch", "Consume", "Generate"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight},
			))

			castRows := make([][]string, 0)
			for _, c := range catalog.CastOns() {
				castRows = append(castRows, []string{strconv.Itoa(c.ID), catalog.DisplayName(c.NameKey, tag)})
			}
			fmt.Fprint(out, renderTable([]string{"ID", "Cast-on"}, castRows, []columnAlignment{alignRight, alignLeft}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON")
	return cmd
}
