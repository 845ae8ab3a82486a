package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cabletrainer/cmd/cabletrainer/ui"
	"cabletrainer/internal/standard"
)

// standardCmd prints the reference wiring
var standardCmd = &cobra.Command{
	Use:   "standard",
	Short: "Show the T568A reference",
	Args:  cobra.NoArgs,
	RunE:  runStandard,
}

func runStandard(cmd *cobra.Command, args []string) error {
	styles := ui.NewStyles(ui.ThemeFor(cfg.UI.Theme))

	cores := ui.NewSimpleTable(standard.Name+" cores", "Pin", "Colour", "Core", "Pair", "Key")
	for _, c := range standard.Cores() {
		cores.AddRow(fmt.Sprint(c.Pin), ui.Swatch(c.ID), c.Name, fmt.Sprint(c.Pair), string(c.ID))
	}
	fmt.Println(cores.View(styles))

	lsa := ui.NewSimpleTable("LSA terminals", "Row", "0", "1", "2", "3")
	for _, row := range standard.Rows() {
		cells := []string{string(row)}
		for _, id := range standard.Layout(row) {
			cells = append(cells, standard.CoreName(id))
		}
		lsa.AddRow(cells...)
	}
	fmt.Println(lsa.View(styles))
	return nil
}
