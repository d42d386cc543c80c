package render

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

const (
	columnGap      = "  "
	maxAllowedCell = 48
	explicitMark   = "*"
)

// Report writes styled text to an output.
type Report struct {
	out     *termenv.Output
	profile termenv.Profile
}

// NewReport creates a report writing to w with the given color profile.
// termenv.Ascii disables all styling.
func NewReport(w io.Writer, profile termenv.Profile) *Report {
	return &Report{
		out:     termenv.NewOutput(w, termenv.WithProfile(profile)),
		profile: profile,
	}
}

func (r *Report) heading(s string) string {
	return r.out.String(s).Bold().Underline().String()
}

func (r *Report) header(s string) string {
	return r.out.String(s).Bold().Foreground(r.out.Color("12")).String()
}

func (r *Report) faint(s string) string {
	return r.out.String(s).Faint().String()
}

// table lays out rows in left-aligned columns. Widths are measured in
// terminal cells, so wide runes line up.
func table(header []string, rows [][]string) (string, []string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	format := func(cells []string) string {
		var b strings.Builder
		for i, cell := range cells {
			if i > 0 {
				b.WriteString(columnGap)
			}
			if i == len(cells)-1 {
				b.WriteString(cell)
				continue
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
		}
		return strings.TrimRight(b.String(), " ")
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, format(row))
	}
	return format(header), lines
}
