package pretty

import (
	"fmt"
	"strings"
)

// Table formatting constants.
const (
	tablePadding   = 2
	minColumnWidth = 4
	heavySeparator = "="
)

// TableFormatter formats rows as an aligned, styled table. The last column
// absorbs any narrowing needed to fit the terminal width.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = DefaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// FormatTable formats header and rows. Rows shorter than the header are
// padded with empty cells.
func (t *TableFormatter) FormatTable(header []string, rows [][]string) string {
	if len(header) == 0 {
		return ""
	}

	widths := t.columnWidths(header, rows)

	var builder strings.Builder
	builder.WriteString(t.styles.TableHeader.Render(t.formatRow(header, widths)))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")
	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}
	return builder.String()
}

func (t *TableFormatter) columnWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, cell := range header {
		widths[i] = max(minColumnWidth, len(cell))
	}
	for _, row := range rows {
		for i := range min(len(row), len(widths)) {
			widths[i] = max(widths[i], len(row[i]))
		}
	}

	total := tablePadding * len(widths)
	for _, w := range widths {
		total += w
	}
	if total > t.termWidth {
		last := len(widths) - 1
		widths[last] = max(minColumnWidth, widths[last]-(total-t.termWidth))
	}
	return widths
}

func (t *TableFormatter) formatRow(row []string, widths []int) string {
	cells := make([]string, len(widths))
	for i, width := range widths {
		var cell string
		if i < len(row) {
			cell = truncateString(row[i], width)
		}
		cells[i] = fmt.Sprintf("%-*s", width, cell)
	}
	return strings.TrimRight(" "+strings.Join(cells, strings.Repeat(" ", tablePadding)), " ")
}

func (t *TableFormatter) formatSeparator(widths []int) string {
	total := 1 + tablePadding*(len(widths)-1)
	for _, w := range widths {
		total += w
	}
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total))
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}
