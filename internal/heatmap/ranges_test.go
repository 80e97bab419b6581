package heatmap

import "testing"

func TestRangesPerIndicator(t *testing.T) {
	indicators := rankIndicators()
	sectors := testSectors()
	matrix := rankMatrix()
	got := Ranges(indicators, sectors, matrix)
	if len(got) != len(indicators) {
		t.Fatalf("expected %d ranges, got %d", len(indicators), len(got))
	}
	// Ranges follow indicator order and bracket every selected sector value.
	for i, r := range got {
		if r.Indicator.Code != indicators[i].Code {
			t.Fatalf("range %d: expected indicator %s, got %s", i, indicators[i].Code, r.Indicator.Code)
		}
		for _, s := range sectors {
			v := matrix.Value(r.Indicator.Index, s.Index)
			if v < r.Min || v > r.Max {
				t.Fatalf("indicator %s sector %d: value %f outside [%f,%f]", r.Indicator.Code, s.Index, v, r.Min, r.Max)
			}
		}
	}
	if got[0].Min != 10 || got[0].Max != 40 {
		t.Fatalf("GHG range: expected [10,40], got [%f,%f]", got[0].Min, got[0].Max)
	}
	if got[1].Min != 1 || got[1].Max != 8 {
		t.Fatalf("WATR range: expected [1,8], got [%f,%f]", got[1].Min, got[1].Max)
	}
}

func TestRangesSubsetOfSectors(t *testing.T) {
	// Ranges are over the selected sectors only, not the full dataset.
	selected := testSectors()[:2] // GHG values 10 and 40 -> but only cols 0,1
	got := Ranges(rankIndicators(), selected, rankMatrix())
	if got[0].Min != 10 || got[0].Max != 40 {
		t.Fatalf("GHG over 2 sectors: expected [10,40], got [%f,%f]", got[0].Min, got[0].Max)
	}
	if got[1].Min != 1 || got[1].Max != 5 {
		t.Fatalf("WATR over 2 sectors: expected [1,5], got [%f,%f]", got[1].Min, got[1].Max)
	}
}

func TestRangesEmptySelection(t *testing.T) {
	if got := Ranges(rankIndicators(), nil, rankMatrix()); len(got) != 0 {
		t.Fatalf("no sectors should yield no ranges, got %d", len(got))
	}
	if got := Ranges(rankIndicators(), testSectors(), nil); len(got) != 0 {
		t.Fatalf("nil matrix should yield no ranges, got %d", len(got))
	}
}

func TestRangesSingleSectorIsDegenerate(t *testing.T) {
	got := Ranges(rankIndicators(), testSectors()[:1], rankMatrix())
	for _, r := range got {
		if !r.Degenerate() {
			t.Fatalf("indicator %s: single-sector range should be degenerate, got [%f,%f]", r.Indicator.Code, r.Min, r.Max)
		}
	}
}

func TestRangesNegativeValues(t *testing.T) {
	indicators := []Indicator{{Index: 0, Code: "NET"}}
	sectors := []Sector{{Index: 0}, {Index: 1}, {Index: 2}}
	matrix := NewDenseMatrix([][]float64{{-4, 0, 6}})
	got := Ranges(indicators, sectors, matrix)
	if got[0].Min != -4 || got[0].Max != 6 {
		t.Fatalf("expected [-4,6], got [%f,%f]", got[0].Min, got[0].Max)
	}
}

func TestShareBounds(t *testing.T) {
	r := ResultRange{Min: 10, Max: 30}
	cases := []struct {
		value float64
		want  float64
	}{
		{10, 0},
		{20, 0.5},
		{30, 1},
	}
	for _, c := range cases {
		if got := Share(c.value, r); got != c.want {
			t.Fatalf("share(%f): expected %f, got %f", c.value, c.want, got)
		}
	}
	for _, v := range []float64{10, 12.5, 17, 29.99, 30} {
		s := Share(v, r)
		if s < 0 || s > 1 {
			t.Fatalf("share(%f)=%f outside [0,1]", v, s)
		}
	}
}

func TestShareZeroValueIsNoSignal(t *testing.T) {
	if got := Share(0, ResultRange{Min: -5, Max: 5}); got != 0 {
		t.Fatalf("zero value should map to 0, got %f", got)
	}
	if got := Share(0, ResultRange{Min: 3, Max: 3}); got != 0 {
		t.Fatalf("zero value beats the degenerate rule, got %f", got)
	}
}

func TestShareDegenerateRangeSaturates(t *testing.T) {
	r := ResultRange{Min: 5, Max: 5}
	if got := Share(5, r); got != 1 {
		t.Fatalf("degenerate range should saturate, got %f", got)
	}
	if got := Share(2, r); got != 1 {
		t.Fatalf("degenerate range saturates any non-zero value, got %f", got)
	}
}

// TestHeatmapEndToEnd walks the documented scenario: three indicators across
// two groups, two sectors, default magnitude ranking.
func TestHeatmapEndToEnd(t *testing.T) {
	catalog := []Indicator{
		{Code: "GHG", Group: GroupImpactPotential, Index: 0},
		{Code: "ACID", Group: GroupImpactPotential, Index: 1},
		{Code: "WATR", Group: GroupResourceUse, Index: 2},
	}
	sectors := []Sector{{Index: 0, Name: "S0"}, {Index: 1, Name: "S1"}}
	matrix := NewDenseMatrix([][]float64{
		{10, 30}, // GHG
		{5, 5},   // ACID
		{1, 2},   // WATR
	})

	selected := SelectIndicators(catalog, []string{"GHG", "ACID", "WATR"})
	wantOrder := []string{"ACID", "GHG", "WATR"}
	for i, code := range wantOrder {
		if selected[i].Code != code {
			t.Fatalf("selection order: expected %v, got position %d = %s", wantOrder, i, selected[i].Code)
		}
	}

	ranked := RankSectors(sectors, selected, matrix, RankOptions{Limit: 2})
	// Magnitudes: sector0 ≈ 11.22, sector1 ≈ 30.43.
	if ranked[0].Index != 1 || ranked[1].Index != 0 {
		t.Fatalf("expected [sector1, sector0], got [%d, %d]", ranked[0].Index, ranked[1].Index)
	}

	ranges := Ranges(selected, ranked, matrix)
	var ghg, acid ResultRange
	for _, r := range ranges {
		switch r.Indicator.Code {
		case "GHG":
			ghg = r
		case "ACID":
			acid = r
		}
	}
	if ghg.Min != 10 || ghg.Max != 30 {
		t.Fatalf("GHG range: expected (10,30), got (%f,%f)", ghg.Min, ghg.Max)
	}
	if Share(10, ghg) != 0 {
		t.Fatalf("share of GHG 10 should be 0")
	}
	if Share(30, ghg) != 1 {
		t.Fatalf("share of GHG 30 should be 1")
	}
	if !acid.Degenerate() {
		t.Fatalf("ACID range should be degenerate, got (%f,%f)", acid.Min, acid.Max)
	}
	if Share(5, acid) != 1 {
		t.Fatalf("degenerate ACID shares should be 1")
	}
}
