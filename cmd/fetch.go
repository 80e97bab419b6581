package cmd

import (
	"fmt"

	"github.com/impactmap/impactmap-cli/internal/snapshot"
	"github.com/spf13/cobra"
)

var fetchMatrixName string

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the dataset and store it as a local snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		matrixName := fetchMatrixName
		if matrixName == "" {
			matrixName = cfg.MatrixName
		}
		ctx := cmd.Context()

		sectors, err := client.Sectors(ctx)
		if err != nil {
			return err
		}
		debugf("fetched %d sectors", len(sectors))
		indicators, err := client.Indicators(ctx)
		if err != nil {
			return err
		}
		debugf("fetched %d indicators", len(indicators))
		matrix, err := client.Matrix(ctx, matrixName)
		if err != nil {
			return err
		}
		debugf("fetched matrix %s with %d rows", matrixName, len(matrix))

		snap := snapshot.New(cfg.BaseURL, matrixName, sectors, indicators, matrix)
		if err := snap.Save(cfg.SnapshotsDir); err != nil {
			return err
		}
		fmt.Printf("✓ Saved snapshot %s (%d sectors, %d indicators) to %s\n",
			snap.ID, len(sectors), len(indicators), snap.Path(cfg.SnapshotsDir))
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchMatrixName, "matrix", "", "result matrix to fetch (default from config, usually U)")
	rootCmd.AddCommand(fetchCmd)
}
