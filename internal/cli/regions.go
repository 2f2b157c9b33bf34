package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pinmap/pkg/layout"
	"github.com/matzehuels/pinmap/pkg/projection"
	"github.com/matzehuels/pinmap/pkg/region"
)

// regionsCommand lists the region catalog, optionally as an interactive picker.
func (c *CLI) regionsCommand() *cobra.Command {
	var pick bool

	cmd := &cobra.Command{
		Use:   "regions",
		Short: "List map regions, projections and slide formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pick {
				return c.runRegionPicker(cmd)
			}
			printRegions()
			return nil
		},
	}

	cmd.Flags().BoolVar(&pick, "pick", false, "choose a region interactively")
	return cmd
}

func printRegions() {
	var rows [][]string
	for _, code := range region.All() {
		rows = append(rows, regionRow(code))
	}
	fmt.Println(regionTable(rows, func(row int) bool { return region.All()[row] == region.Default }).Render())
	printNewline()

	fmt.Println(StyleTitle.Render("Projections"))
	for _, p := range projection.All() {
		printKeyValue(string(p), p.Label()+" "+StyleDim.Render(p.SRID()))
	}
	printNewline()

	fmt.Println(StyleTitle.Render("Slide formats"))
	for _, a := range layout.Aspects() {
		s := a.Size()
		printKeyValue(string(a), fmt.Sprintf("%.3g × %.3g in", s.Width.Float(), s.Height.Float()))
	}
}

func (c *CLI) runRegionPicker(cmd *cobra.Command) error {
	model := NewRegionListModel(region.All())
	final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
	if err != nil {
		return fmt.Errorf("region picker: %w", err)
	}
	m, ok := final.(RegionListModel)
	if !ok || m.Selected == nil {
		printInfo("No region selected")
		return nil
	}

	code := *m.Selected
	printSuccess("Selected %s", StyleHighlight.Render(code.Label()))
	printDetail("%s", code.FixedArea())
	printNewline()
	printNextStep("Render", fmt.Sprintf("%s render --region %s <locations.csv>", appName, code))
	return nil
}
