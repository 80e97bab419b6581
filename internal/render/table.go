// Package render turns a computed heatmap view into terminal-friendly
// tables. It only consumes the engine's outputs: ordered columns, ordered
// rows, and per-cell shares. Color interpolation stays with richer
// presentation layers; here intensity maps onto a five-step glyph ramp.
package render

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/impactmap/impactmap-cli/internal/heatmap"
)

// Format names a supported output format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatPlain    Format = "plain"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatMarkdown, Format(""):
		return FormatMarkdown, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatPlain:
		return FormatPlain, nil
	}
	return "", fmt.Errorf("unknown format %q (use markdown, csv, or plain)", s)
}

// intensityRamp encodes a share in [0,1] as one of five glyphs, blank for
// no signal through full block for saturation.
var intensityRamp = []rune{' ', '░', '▒', '▓', '█'}

func glyph(share float64) rune {
	if share <= 0 {
		return intensityRamp[0]
	}
	if share >= 1 {
		return intensityRamp[len(intensityRamp)-1]
	}
	i := int(share*float64(len(intensityRamp)-1) + 0.5)
	if i >= len(intensityRamp) {
		i = len(intensityRamp) - 1
	}
	return intensityRamp[i]
}

// Table renders the view in the requested format. An empty view renders a
// placeholder line rather than failing.
func Table(v *heatmap.View, format Format) (string, error) {
	switch format {
	case FormatMarkdown:
		return markdownTable(v), nil
	case FormatCSV:
		return csvTable(v)
	case FormatPlain:
		return plainTable(v), nil
	}
	return "", fmt.Errorf("unknown format %q", format)
}

func markdownTable(v *heatmap.View) string {
	if v.Empty() {
		return "(no data)\n"
	}
	var b strings.Builder

	// Group header row sized by the group counts.
	b.WriteString("| |")
	for _, gc := range v.GroupCounts {
		label := string(gc.Group)
		if gc.Count > 1 {
			label = fmt.Sprintf("%s (%d)", label, gc.Count)
		}
		b.WriteString(" " + label + " |")
		for i := 1; i < gc.Count; i++ {
			b.WriteString(" |")
		}
	}
	b.WriteString("\n")

	b.WriteString("| Sector |")
	for _, ind := range v.Indicators {
		b.WriteString(" " + ind.Code + " |")
	}
	b.WriteString("\n")

	b.WriteString("| --- |")
	for range v.Indicators {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")

	for _, s := range v.Sectors {
		b.WriteString("| " + escapeCell(s.Name) + " |")
		for _, ind := range v.Indicators {
			c := v.Cell(ind, s)
			b.WriteString(fmt.Sprintf(" %c |", glyph(c.Share)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func plainTable(v *heatmap.View) string {
	if v.Empty() {
		return "(no data)\n"
	}
	width := 0
	for _, s := range v.Sectors {
		if n := len([]rune(s.Name)); n > width {
			width = n
		}
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-*s ", width, ""))
	for _, ind := range v.Indicators {
		b.WriteString(ind.Code + " ")
	}
	b.WriteString("\n")
	for _, s := range v.Sectors {
		b.WriteString(fmt.Sprintf("%-*s ", width, s.Name))
		for _, ind := range v.Indicators {
			c := v.Cell(ind, s)
			pad := len(ind.Code) - 1
			b.WriteString(string(glyph(c.Share)) + strings.Repeat(" ", pad+1))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// csvTable emits raw values and shares so downstream tooling keeps the
// numbers, not just the glyphs.
func csvTable(v *heatmap.View) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	header := []string{"sector"}
	for _, ind := range v.Indicators {
		unit := ind.Unit
		if unit == "" {
			unit = "value"
		}
		header = append(header, ind.Code+" ["+unit+"]", ind.Code+" share")
	}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, s := range v.Sectors {
		row := []string{s.Name}
		for _, ind := range v.Indicators {
			c := v.Cell(ind, s)
			row = append(row,
				strconv.FormatFloat(c.Value, 'g', -1, 64),
				strconv.FormatFloat(c.Share, 'g', 4, 64),
			)
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return b.String(), nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
