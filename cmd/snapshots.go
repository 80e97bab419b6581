package cmd

import (
	"fmt"

	"github.com/impactmap/impactmap-cli/internal/snapshot"
	"github.com/spf13/cobra"
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List stored dataset snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			return fmt.Errorf("no configuration loaded")
		}
		all, err := snapshot.List(cfg.SnapshotsDir)
		if err != nil {
			return err
		}
		if len(all) == 0 {
			fmt.Println("(no snapshots)")
			return nil
		}
		for _, s := range all {
			fmt.Printf("- %s  %s  matrix=%s  %d sectors, %d indicators\n",
				s.ID, s.CreatedAt.Format("2006-01-02 15:04"), s.MatrixName,
				len(s.Sectors), len(s.Indicators))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotsCmd)
}
