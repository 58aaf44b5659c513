package formatter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/penwyp/go-feed-digest/internal/util"
	"golang.org/x/term"
)

const (
	defaultTableWidth = 120
	minTextWidth      = 20

	emptyTableText = "no items in window"
)

// TableFormatter renders items in a box-drawn table sized to the terminal.
type TableFormatter struct {
	headers []string
	width   int
}

// NewTableFormatter returns a table formatter. A width of zero means the
// current terminal width.
func NewTableFormatter(width int) *TableFormatter {
	return &TableFormatter{
		headers: []string{"ID", "Created At", "Author", "Text"},
		width:   width,
	}
}

func (f *TableFormatter) Format(w io.Writer, pub Publication) error {
	tw := &tableWriter{w: w}

	tw.printf("%s\n", util.FormatHeaderTitle(fmt.Sprintf("Publication %s → %s (%s)",
		pub.Start.Format(displayTimeLayout), pub.End.Format(displayTimeLayout), pub.Timezone)))

	rows := make([][]string, 0, len(pub.Items))
	for _, item := range pub.Items {
		author := item.Author
		if author != "" {
			author = "@" + author
		}
		rows = append(rows, []string{
			item.ID,
			item.CreatedAt.Format(displayTimeLayout),
			author,
			item.Text,
		})
	}

	if len(rows) == 0 {
		rows = append(rows, []string{"", "", "", emptyTableText})
	}

	widths := f.calculateColumnWidths(rows)

	tw.printBorder(widths, "top")
	tw.printRow(f.headers, widths)
	tw.printBorder(widths, "middle")
	for _, row := range rows {
		tw.printRow(row, widths)
	}
	tw.printBorder(widths, "bottom")

	tw.printf("%d items, %d pages fetched\n", len(pub.Items), pub.Fetches)
	if pub.Message != "" {
		tw.printf("%s\n", util.FormatWarningTitle("Warning: "+pub.Message))
	}
	return tw.err
}

// calculateColumnWidths fits the fixed columns to their content and gives
// the text column whatever is left of the table width.
func (f *TableFormatter) calculateColumnWidths(rows [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, h := range f.headers {
		widths[i] = util.GetDisplayWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := util.GetDisplayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	// Each column adds two spaces of padding and one border.
	total := f.tableWidth()
	fixed := 1
	for i := 0; i < len(widths)-1; i++ {
		fixed += widths[i] + 3
	}
	available := total - fixed - 3
	if available < minTextWidth {
		available = minTextWidth
	}
	last := len(widths) - 1
	if widths[last] > available {
		widths[last] = available
	}
	return widths
}

func (f *TableFormatter) tableWidth() int {
	if f.width > 0 {
		return f.width
	}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return defaultTableWidth
}

// tableWriter keeps the first write error so rendering reads linearly.
type tableWriter struct {
	w   io.Writer
	err error
}

func (t *tableWriter) printf(format string, args ...interface{}) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

// printBorder prints table borders (top, middle, bottom)
func (t *tableWriter) printBorder(widths []int, borderType string) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	default:
		left, middle, right = "└", "┴", "┘"
	}

	var b strings.Builder
	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	t.printf("%s\n", b.String())
}

// printRow prints one row, truncating cells that exceed their column
func (t *tableWriter) printRow(values []string, widths []int) {
	var b strings.Builder
	b.WriteString("│")
	for i, value := range values {
		cell := util.TruncateDisplay(value, widths[i])
		b.WriteString(" ")
		b.WriteString(util.PadDisplay(cell, widths[i], true))
		b.WriteString(" │")
	}
	t.printf("%s\n", b.String())
}
