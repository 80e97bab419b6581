// Package heatmap implements the selection and scaling engine behind the
// impact heatmap: choosing and ordering indicator columns, ranking and
// truncating sector rows, computing per-indicator value ranges over the
// selected rows, and normalizing raw cell values into [0,1] intensity
// shares. Every function here is a pure computation over its inputs; the
// package holds no state and performs no I/O.
package heatmap

// Group classifies an indicator for column grouping and sort precedence.
// The five known groups follow the USEEIO indicator taxonomy; values read
// from the wire that are not among them still round-trip, they just sort
// after the known groups.
type Group string

const (
	GroupImpactPotential  Group = "Impact Potential"
	GroupResourceUse      Group = "Resource Use"
	GroupChemicalReleases Group = "Chemical Releases"
	GroupWasteGenerated   Group = "Waste Generated"
	GroupEconomicSocial   Group = "Economic & Social"
)

// groupOrder fixes the column-group ordering used by SelectIndicators and
// GroupCounts.
var groupOrder = []Group{
	GroupImpactPotential,
	GroupResourceUse,
	GroupChemicalReleases,
	GroupWasteGenerated,
	GroupEconomicSocial,
}

// groupRank returns the position of g in the fixed group order. Unknown
// groups rank after all known ones.
func groupRank(g Group) int {
	for i, known := range groupOrder {
		if g == known {
			return i
		}
	}
	return len(groupOrder)
}

// Indicator is one environmental-impact metric: a column of the heatmap and
// a row of the result matrix. Index is the matrix row id and is never
// renumbered here.
type Indicator struct {
	Index int    `json:"index"`
	ID    string `json:"id,omitempty"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Unit  string `json:"unit"`
	Group Group  `json:"group"`
}

// Sector is one economic sector: a row of the heatmap and a column of the
// result matrix. Index is the matrix column id.
type Sector struct {
	Index int    `json:"index"`
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
}

// GroupCount pairs a group with the number of selected indicators in it.
// Used to size column-header spans.
type GroupCount struct {
	Group Group `json:"group"`
	Count int   `json:"count"`
}

// ResultRange holds the minimum and maximum value of an indicator across
// the currently selected sectors. Ranges are always relative to a selection,
// never to the full dataset, and are recomputed whenever the selection
// changes.
type ResultRange struct {
	Indicator Indicator `json:"indicator"`
	Min       float64   `json:"min"`
	Max       float64   `json:"max"`
}

// Degenerate reports whether all selected sectors tie on this indicator,
// including the single-sector case.
func (r ResultRange) Degenerate() bool { return r.Min == r.Max }

// Matrix is the precomputed result table the engine reads from. Value must
// return a finite number for every pair; implementations report 0 for
// absent or undefined cells.
type Matrix interface {
	Value(indicatorIndex, sectorIndex int) float64
}

// Dataset bundles the three read-only collections the engine consumes.
type Dataset struct {
	Sectors    []Sector
	Indicators []Indicator
	Matrix     Matrix
}
