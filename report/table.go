package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type column struct {
	name  string
	width int
	right bool
}

// table is a fixed-width table whose cells may carry ANSI styling.
type table struct {
	columns []column
	rows    [][]string
}

func newTable(columns ...column) *table {
	return &table{columns: columns}
}

func (t *table) addRow(values ...string) {
	for len(values) < len(t.columns) {
		values = append(values, "")
	}
	t.rows = append(t.rows, values)
}

func (t *table) render() string {
	var sb strings.Builder

	sb.WriteString("  ")
	total := 0
	for i, col := range t.columns {
		sb.WriteString(pad(headerStyle.Render(col.name), col.width, col.right))
		total += col.width
		if i < len(t.columns)-1 {
			sb.WriteString(" ")
			total++
		}
	}
	sb.WriteString("\n  ")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", total)))
	sb.WriteString("\n")

	for _, row := range t.rows {
		sb.WriteString("  ")
		for i, col := range t.columns {
			sb.WriteString(pad(row[i], col.width, col.right))
			if i < len(t.columns)-1 {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// pad pads styled text to width using its printable width.
func pad(s string, width int, right bool) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	fill := strings.Repeat(" ", width-n)
	if right {
		return fill + s
	}
	return s + fill
}
