package heatmap

import (
	"math"
	"sort"
	"strings"
)

// RankOptions selects a ranking mode for RankSectors. When SearchTerm is
// non-empty it wins over SortBy; when both are absent sectors rank by
// aggregate magnitude across the selected indicators.
type RankOptions struct {
	// Limit bounds the number of returned sectors. Zero or negative yields
	// an empty result.
	Limit int
	// SearchTerm filters sectors to those whose name contains the term and
	// orders them by earliest match position.
	SearchTerm string
	// SortBy orders sectors descending by this indicator's value.
	SortBy *Indicator
}

// rankMode tags the strategy chosen for one RankSectors invocation.
type rankMode int

const (
	modeName rankMode = iota // no indicators or matrix: alphabetical fallback
	modeSearch
	modeSortBy
	modeMagnitude
)

// RankSectors orders sectors by relevance under the mode implied by opts and
// truncates the result to opts.Limit rows. The sort is stable, so equal keys
// keep their input order and the output is deterministic for identical
// inputs. A nil sector slice or non-positive limit yields an empty result.
func RankSectors(sectors []Sector, indicators []Indicator, matrix Matrix, opts RankOptions) []Sector {
	if len(sectors) == 0 || opts.Limit <= 0 {
		return nil
	}

	mode := modeMagnitude
	term := strings.ToLower(strings.TrimSpace(opts.SearchTerm))
	switch {
	case len(indicators) == 0 || matrix == nil:
		mode = modeName
	case term != "":
		mode = modeSearch
	case opts.SortBy != nil:
		mode = modeSortBy
	}

	if mode == modeName {
		out := make([]Sector, len(sectors))
		copy(out, sectors)
		coll := newCollator()
		sort.SliceStable(out, func(i, j int) bool {
			return coll.CompareString(out[i].Name, out[j].Name) < 0
		})
		return truncate(out, opts.Limit)
	}

	// The remaining modes all reduce to one (sector, key) pairing followed
	// by a single stable sort.
	type scored struct {
		sector Sector
		key    float64
	}
	keep := make([]scored, 0, len(sectors))
	for _, s := range sectors {
		switch mode {
		case modeSearch:
			pos := strings.Index(strings.ToLower(s.Name), term)
			if pos < 0 {
				continue
			}
			keep = append(keep, scored{sector: s, key: float64(pos)})
		case modeSortBy:
			keep = append(keep, scored{sector: s, key: matrix.Value(opts.SortBy.Index, s.Index)})
		case modeMagnitude:
			var sum float64
			for _, ind := range indicators {
				v := matrix.Value(ind.Index, s.Index)
				sum += v * v
			}
			keep = append(keep, scored{sector: s, key: math.Sqrt(sum)})
		}
	}
	// Search scores ascend (earlier match is better); value keys descend.
	ascending := mode == modeSearch
	sort.SliceStable(keep, func(i, j int) bool {
		if ascending {
			return keep[i].key < keep[j].key
		}
		return keep[i].key > keep[j].key
	})

	out := make([]Sector, len(keep))
	for i, sc := range keep {
		out[i] = sc.sector
	}
	return truncate(out, opts.Limit)
}

func truncate(sectors []Sector, limit int) []Sector {
	if limit < len(sectors) {
		return sectors[:limit]
	}
	return sectors
}
