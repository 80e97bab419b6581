package heatmap

// Options configures one view computation. The zero value selects nothing;
// callers supply at least the allow-list and a row limit.
type Options struct {
	// IndicatorCodes is the fixed allow-list of indicator codes shown as
	// columns.
	IndicatorCodes []string
	// MaxRows bounds the number of sector rows.
	MaxRows int
	// SearchTerm, when non-empty, switches the ranker to search mode.
	SearchTerm string
	// SortBy, when set to a selected indicator's code, switches the ranker
	// to explicit sort mode. Ignored when SearchTerm is present or the code
	// is not among the selected indicators.
	SortBy string
}

// Cell is one rendered heatmap cell: the raw value and unit for labels, and
// the normalized intensity share for visual encoding.
type Cell struct {
	Value float64 `json:"value"`
	Share float64 `json:"share"`
	Unit  string  `json:"unit"`
}

// View is a fully computed heatmap: ordered columns, their group spans,
// ranked rows, and per-column ranges. It is an immutable snapshot; build a
// new one whenever the inputs or options change.
type View struct {
	Indicators  []Indicator
	GroupCounts []GroupCount
	Sectors     []Sector
	Ranges      []ResultRange

	matrix       Matrix
	rangeByIndex map[int]ResultRange
}

// Build runs the whole engine over the dataset: selects and orders
// indicator columns, ranks and truncates sector rows, and computes the
// per-indicator ranges over the selected rows. The result is a pure
// function of (dataset, options).
func Build(ds Dataset, opts Options) *View {
	selected := SelectIndicators(ds.Indicators, opts.IndicatorCodes)

	var sortBy *Indicator
	if opts.SortBy != "" {
		for i := range selected {
			if selected[i].Code == opts.SortBy {
				sortBy = &selected[i]
				break
			}
		}
	}
	ranked := RankSectors(ds.Sectors, selected, ds.Matrix, RankOptions{
		Limit:      opts.MaxRows,
		SearchTerm: opts.SearchTerm,
		SortBy:     sortBy,
	})
	ranges := Ranges(selected, ranked, ds.Matrix)

	byIndex := make(map[int]ResultRange, len(ranges))
	for _, r := range ranges {
		byIndex[r.Indicator.Index] = r
	}
	return &View{
		Indicators:   selected,
		GroupCounts:  GroupCounts(selected),
		Sectors:      ranked,
		Ranges:       ranges,
		matrix:       ds.Matrix,
		rangeByIndex: byIndex,
	}
}

// Cell returns the raw value, normalized share, and unit for one
// (indicator, sector) pair of the view.
func (v *View) Cell(ind Indicator, s Sector) Cell {
	var value float64
	if v.matrix != nil {
		value = v.matrix.Value(ind.Index, s.Index)
	}
	return Cell{
		Value: value,
		Share: Share(value, v.rangeByIndex[ind.Index]),
		Unit:  ind.Unit,
	}
}

// Empty reports whether the view has nothing to render, either because no
// indicators were selected or no sectors matched.
func (v *View) Empty() bool {
	return len(v.Indicators) == 0 || len(v.Sectors) == 0
}
