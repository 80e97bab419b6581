package render

import (
	"strings"
	"testing"

	"github.com/impactmap/impactmap-cli/internal/heatmap"
)

func testView() *heatmap.View {
	ds := heatmap.Dataset{
		Sectors: []heatmap.Sector{
			{Index: 0, Name: "Grain Farming"},
			{Index: 1, Name: "Oil and Gas Extraction"},
		},
		Indicators: []heatmap.Indicator{
			{Index: 0, Code: "GHG", Name: "Greenhouse Gases", Unit: "kg CO2 eq", Group: heatmap.GroupImpactPotential},
			{Index: 1, Code: "WATR", Name: "Water Use", Unit: "m3", Group: heatmap.GroupResourceUse},
		},
		Matrix: heatmap.NewDenseMatrix([][]float64{
			{10, 30},
			{2, 1},
		}),
	}
	return heatmap.Build(ds, heatmap.Options{
		IndicatorCodes: []string{"GHG", "WATR"},
		MaxRows:        2,
	})
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(""); err != nil || f != FormatMarkdown {
		t.Fatalf("empty should default to markdown, got %q, %v", f, err)
	}
	if f, err := ParseFormat(" CSV "); err != nil || f != FormatCSV {
		t.Fatalf("expected csv, got %q, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestGlyphRamp(t *testing.T) {
	cases := []struct {
		share float64
		want  rune
	}{
		{0, ' '},
		{-0.5, ' '},
		{0.1, '░'},
		{0.5, '▒'},
		{0.8, '▓'},
		{1, '█'},
		{1.5, '█'},
	}
	for _, c := range cases {
		if got := glyph(c.share); got != c.want {
			t.Fatalf("glyph(%f): expected %q, got %q", c.share, c.want, got)
		}
	}
}

func TestMarkdownTable(t *testing.T) {
	out, err := Table(testView(), FormatMarkdown)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Impact Potential") || !strings.Contains(out, "Resource Use") {
		t.Fatalf("missing group headers:\n%s", out)
	}
	if !strings.Contains(out, "| GHG |") || !strings.Contains(out, "WATR") {
		t.Fatalf("missing indicator codes:\n%s", out)
	}
	if !strings.Contains(out, "Grain Farming") {
		t.Fatalf("missing sector row:\n%s", out)
	}
	// Both sectors rank by magnitude, so the bigger GHG emitter comes first.
	if strings.Index(out, "Oil and Gas Extraction") > strings.Index(out, "Grain Farming") {
		t.Fatalf("expected magnitude ordering:\n%s", out)
	}
}

func TestCSVTableCarriesValuesAndShares(t *testing.T) {
	out, err := Table(testView(), FormatCSV)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "GHG [kg CO2 eq]") || !strings.Contains(lines[0], "GHG share") {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	// GHG range over both sectors is (10,30): shares are 1 and 0.
	if !strings.Contains(lines[1], "30") || !strings.Contains(lines[1], ",1,") {
		t.Fatalf("expected top row with saturated GHG share: %s", lines[1])
	}
}

func TestTableEmptyView(t *testing.T) {
	empty := heatmap.Build(heatmap.Dataset{}, heatmap.Options{})
	for _, f := range []Format{FormatMarkdown, FormatPlain} {
		out, err := Table(empty, f)
		if err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		if !strings.Contains(out, "no data") {
			t.Fatalf("%s: expected placeholder, got %q", f, out)
		}
	}
}
