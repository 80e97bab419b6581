package cmd

import (
	"fmt"
	"strings"

	cfgpkg "github.com/impactmap/impactmap-cli/internal/config"
	"github.com/impactmap/impactmap-cli/internal/heatmap"
	"github.com/impactmap/impactmap-cli/internal/render"
	"github.com/impactmap/impactmap-cli/internal/snapshot"
	"github.com/spf13/cobra"
)

var (
	heatmapSnapshotRef string
	heatmapSearch      string
	heatmapSortBy      string
	heatmapLimit       int
	heatmapFormat      string
	heatmapIndicators  string
)

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Render the impact heatmap",
	Long: `Render the impact heatmap: indicator columns ordered by group and code,
sector rows ranked by search match, an explicit sort indicator, or aggregate
magnitude, with cell intensity normalized per indicator over the shown rows.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := render.ParseFormat(heatmapFormat)
		if err != nil {
			return err
		}
		ds, err := loadDataset(cmd, heatmapSnapshotRef)
		if err != nil {
			return err
		}

		opts := heatmap.Options{
			IndicatorCodes: cfg.IndicatorCodes,
			MaxRows:        cfg.MaxRows,
			SearchTerm:     heatmapSearch,
			SortBy:         heatmapSortBy,
		}
		if heatmapIndicators != "" {
			opts.IndicatorCodes = splitCodes(heatmapIndicators)
		}
		if cmd.Flags().Changed("limit") {
			opts.MaxRows = heatmapLimit
		}

		view := heatmap.Build(ds, opts)
		debugf("view: %d indicators, %d sectors", len(view.Indicators), len(view.Sectors))
		out, err := render.Table(view, format)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

// loadDataset reads from a snapshot when a ref is given, otherwise fetches
// live from the API.
func loadDataset(cmd *cobra.Command, snapshotRef string) (heatmap.Dataset, error) {
	if cfg == nil {
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return heatmap.Dataset{}, err
		}
		cfg = c
	}
	if snapshotRef != "" {
		snap, err := snapshot.Resolve(cfg.SnapshotsDir, snapshotRef)
		if err != nil {
			return heatmap.Dataset{}, err
		}
		debugf("using snapshot %s from %s", snap.ID, snap.CreatedAt)
		return snap.Dataset(), nil
	}
	client, err := newClient()
	if err != nil {
		return heatmap.Dataset{}, err
	}
	return client.FetchDataset(cmd.Context(), cfg.MatrixName)
}

// splitCodes parses a comma-separated allow-list, dropping empty entries.
func splitCodes(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if code := strings.TrimSpace(part); code != "" {
			out = append(out, code)
		}
	}
	return out
}

func init() {
	heatmapCmd.Flags().StringVar(&heatmapSnapshotRef, "snapshot", "", "render from a stored snapshot (id, id prefix, or 'latest')")
	heatmapCmd.Flags().StringVar(&heatmapSearch, "search", "", "filter sectors by name match")
	heatmapCmd.Flags().StringVar(&heatmapSortBy, "sort-by", "", "sort sectors by this indicator code (ignored when --search is set)")
	heatmapCmd.Flags().IntVar(&heatmapLimit, "limit", 0, "maximum sector rows (overrides config)")
	heatmapCmd.Flags().StringVar(&heatmapFormat, "format", "markdown", "output format: markdown, csv, or plain")
	heatmapCmd.Flags().StringVar(&heatmapIndicators, "indicators", "", "comma-separated indicator codes (overrides config)")
	rootCmd.AddCommand(heatmapCmd)
}
