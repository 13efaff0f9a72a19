package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"golang.org/x/term"
)

const (
	defaultTermWidth = 80
	colPadding       = 2
	minLastCol       = 12
)

// getTermWidth returns the current terminal width, defaulting to 80.
func getTermWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultTermWidth
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// bold wraps s in ANSI bold escape codes.
func bold(s string, color bool) string {
	if !color {
		return s
	}
	return "\033[1m" + s + "\033[0m"
}

// truncate shortens s to at most max runes, appending "..." if truncated.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	if max < 4 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// Table buffers rows and writes them column-aligned on Flush. On a TTY the
// header is bold and the last column is cut to fit the terminal width.
type Table struct {
	w       io.Writer
	headers []string
	rows    [][]string
	color   bool
	width   int
}

// NewTable creates a Table that writes to w. Headers are optional.
func NewTable(w io.Writer, headers ...string) *Table {
	color := isTTY(w)
	width := defaultTermWidth
	if color {
		width = getTermWidth()
	}
	return &Table{w: w, headers: headers, color: color, width: width}
}

// Row adds a data row.
func (t *Table) Row(vals ...string) {
	t.rows = append(t.rows, vals)
}

// Flush writes the header and all buffered rows.
func (t *Table) Flush() error {
	if t.color {
		t.fitLastColumn()
	}
	tw := tabwriter.NewWriter(t.w, 0, 4, colPadding, ' ', 0)
	if len(t.headers) > 0 {
		row := make([]string, len(t.headers))
		for i, h := range t.headers {
			row[i] = bold(h, t.color)
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	for _, r := range t.rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	t.rows = nil
	return tw.Flush()
}

// fitLastColumn truncates the final cell of each row so lines stay within
// the terminal width. The last column keeps at least minLastCol runes.
func (t *Table) fitLastColumn() {
	widths := map[int]int{}
	measure := func(r []string) {
		for i := 0; i < len(r)-1; i++ {
			if n := utf8.RuneCountInString(r[i]); n > widths[i] {
				widths[i] = n
			}
		}
	}
	measure(t.headers)
	for _, r := range t.rows {
		measure(r)
	}
	for _, r := range t.rows {
		if len(r) == 0 {
			continue
		}
		used := 0
		for i := 0; i < len(r)-1; i++ {
			used += widths[i] + colPadding
		}
		avail := t.width - used
		if avail < minLastCol {
			avail = minLastCol
		}
		r[len(r)-1] = truncate(r[len(r)-1], avail)
	}
}

// Bold wraps text in ANSI bold if color is enabled for this table.
func (t *Table) Bold(s string) string {
	return bold(s, t.color)
}

// Color reports whether color output is enabled.
func (t *Table) Color() bool {
	return t.color
}

// Width returns the detected terminal width, or defaultTermWidth when the
// output is not a TTY.
func (t *Table) Width() int {
	return t.width
}
