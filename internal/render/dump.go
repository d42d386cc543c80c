package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/vk/attrinspect/internal/inspector"
)

var dumpHeader = []string{"", "NAME", "VALUE", "DEFAULT", "ALLOWED"}

// Dump writes every tab of the window as a table. Explicitly set values are
// marked with an asterisk.
func (r *Report) Dump(win *inspector.Window) error {
	if _, err := fmt.Fprintln(r.out, r.heading(win.Title())); err != nil {
		return err
	}

	for _, tab := range win.Tabs() {
		rows := make([][]string, 0)
		for _, row := range win.Rows(tab.Kind) {
			mark := ""
			if row.Explicit {
				mark = explicitMark
			}
			allowed := ""
			if row.Descriptor.ClosedChoice() {
				allowed = runewidth.Truncate(strings.Join(row.Descriptor.AllowedValues, "|"), maxAllowedCell, "…")
			}
			rows = append(rows, []string{mark, row.Descriptor.Name, row.Value, row.Descriptor.DefaultValue(), allowed})
		}

		header, lines := table(dumpHeader, rows)
		if _, err := fmt.Fprintf(r.out, "\n%s\n%s\n", tab.Title, r.header(header)); err != nil {
			return err
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(r.out, line); err != nil {
				return err
			}
		}

		if extra := win.Undescribed(tab.Kind); len(extra) > 0 {
			if _, err := fmt.Fprintln(r.out, r.faint("not in schema: "+strings.Join(extra, ", "))); err != nil {
				return err
			}
		}
	}
	return nil
}
