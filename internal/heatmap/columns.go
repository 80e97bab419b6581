package heatmap

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// newCollator returns a fresh collator for locale-aware comparisons. A
// collate.Collator buffers state between calls, so each sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.English)
}

// SelectIndicators filters catalog down to the indicators whose code appears
// in allowedCodes and orders the result by group (fixed group order) and
// then by code. Codes in the allow-list that are not in the catalog are
// silently dropped, as are catalog entries outside the allow-list. An empty
// catalog or allow-list yields an empty result; that is a normal "no data"
// condition, not an error.
func SelectIndicators(catalog []Indicator, allowedCodes []string) []Indicator {
	if len(catalog) == 0 || len(allowedCodes) == 0 {
		return nil
	}
	allowed := make(map[string]bool, len(allowedCodes))
	for _, code := range allowedCodes {
		allowed[code] = true
	}
	out := make([]Indicator, 0, len(allowedCodes))
	for _, ind := range catalog {
		if allowed[ind.Code] {
			out = append(out, ind)
		}
	}
	coll := newCollator()
	sort.SliceStable(out, func(i, j int) bool {
		gi, gj := groupRank(out[i].Group), groupRank(out[j].Group)
		if gi != gj {
			return gi < gj
		}
		return coll.CompareString(out[i].Code, out[j].Code) < 0
	})
	return out
}

// GroupCounts tallies the selected indicators per group, in the fixed group
// order, omitting groups with no selected indicators. Groups outside the
// known five follow in first-seen order. The counts sum to len(selected).
func GroupCounts(selected []Indicator) []GroupCount {
	if len(selected) == 0 {
		return nil
	}
	counts := make(map[Group]int, len(groupOrder))
	var extra []Group
	for _, ind := range selected {
		if counts[ind.Group] == 0 && groupRank(ind.Group) == len(groupOrder) {
			extra = append(extra, ind.Group)
		}
		counts[ind.Group]++
	}
	out := make([]GroupCount, 0, len(counts))
	for _, g := range groupOrder {
		if n := counts[g]; n > 0 {
			out = append(out, GroupCount{Group: g, Count: n})
		}
	}
	for _, g := range extra {
		out = append(out, GroupCount{Group: g, Count: counts[g]})
	}
	return out
}
