package cmd

import (
	"fmt"

	"github.com/impactmap/impactmap-cli/internal/heatmap"
	"github.com/spf13/cobra"
)

var indicatorsSnapshotRef string

var indicatorsCmd = &cobra.Command{
	Use:   "indicators",
	Short: "List the indicator catalog grouped by indicator group",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(cmd, indicatorsSnapshotRef)
		if err != nil {
			return err
		}
		if len(ds.Indicators) == 0 {
			fmt.Println("(no indicators)")
			return nil
		}
		// Selecting against the full code set reuses the group/code ordering.
		codes := make([]string, 0, len(ds.Indicators))
		for _, ind := range ds.Indicators {
			codes = append(codes, ind.Code)
		}
		ordered := heatmap.SelectIndicators(ds.Indicators, codes)

		var current heatmap.Group
		for i, ind := range ordered {
			if i == 0 || ind.Group != current {
				current = ind.Group
				fmt.Printf("%s:\n", current)
			}
			fmt.Printf("  %-6s %s (%s)\n", ind.Code, ind.Name, ind.Unit)
		}
		return nil
	},
}

func init() {
	indicatorsCmd.Flags().StringVar(&indicatorsSnapshotRef, "snapshot", "", "list from a stored snapshot instead of the API")
	rootCmd.AddCommand(indicatorsCmd)
}
