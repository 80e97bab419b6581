package cmd

import (
	"fmt"

	"github.com/impactmap/impactmap-cli/internal/heatmap"
	"github.com/spf13/cobra"
)

var sectorsSnapshotRef string

var sectorsCmd = &cobra.Command{
	Use:   "sectors",
	Short: "List sectors alphabetically",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(cmd, sectorsSnapshotRef)
		if err != nil {
			return err
		}
		if len(ds.Sectors) == 0 {
			fmt.Println("(no sectors)")
			return nil
		}
		// The ranker's name fallback gives the alphabetical ordering.
		ordered := heatmap.RankSectors(ds.Sectors, nil, nil, heatmap.RankOptions{Limit: len(ds.Sectors)})
		for _, s := range ordered {
			fmt.Printf("%4d  %s\n", s.Index, s.Name)
		}
		return nil
	},
}

func init() {
	sectorsCmd.Flags().StringVar(&sectorsSnapshotRef, "snapshot", "", "list from a stored snapshot instead of the API")
	rootCmd.AddCommand(sectorsCmd)
}
