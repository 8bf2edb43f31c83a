package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableColumn is one TableGrid column. Width counts content cells only.
type TableColumn struct {
	Header string
	Width  int
	Align  lipgloss.Position
}

const (
	gridIndent = 2
	gridSep    = "│"
	gridCross  = "┼"
	gridRule   = "─"
)

var (
	gridRuleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#273540"))
	gridHeaderStyle = boxLabelStyle.Bold(true)
)

// TableGrid lays rows out under a header line and a rule. Every line is
// exactly width cells wide and the last column absorbs the slack.
func TableGrid(columns []TableColumn, rows [][]string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(columns) == 0 {
		return strings.Repeat(" ", width)
	}

	g := newGrid(columns, width)
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.Header
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, g.line(headers, gridHeaderStyle), g.rule())
	for _, row := range rows {
		lines = append(lines, g.line(row, boxValueStyle))
	}
	return strings.Join(lines, "\n")
}

type grid struct {
	cols  []TableColumn
	width int
}

func newGrid(columns []TableColumn, width int) grid {
	cols := make([]TableColumn, len(columns))
	copy(cols, columns)

	avail := width - gridIndent - (len(cols)-1)*lipgloss.Width(gridSep)
	if avail < len(cols) {
		avail = len(cols)
	}
	used := 0
	for i := range cols {
		cols[i].Width = maxInt(1, cols[i].Width)
		used += cols[i].Width
	}
	last := &cols[len(cols)-1]
	last.Width = maxInt(1, last.Width+avail-used)
	return grid{cols: cols, width: width}
}

func (g grid) line(cells []string, style lipgloss.Style) string {
	sep := gridRuleStyle.Inline(true).Render(gridSep)
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gridIndent))
	for i, col := range g.cols {
		if i > 0 {
			b.WriteString(sep)
		}
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		b.WriteString(style.Inline(true).Render(alignCell(text, col.Width, col.Align)))
	}
	return padRight(b.String(), g.width)
}

func (g grid) rule() string {
	parts := make([]string, len(g.cols))
	for i, col := range g.cols {
		parts[i] = strings.Repeat(gridRule, col.Width)
	}
	line := strings.Repeat(" ", gridIndent) + strings.Join(parts, gridCross)
	return gridRuleStyle.Inline(true).Render(padRight(line, g.width))
}

// alignCell clamps text to width and pads it according to align.
func alignCell(text string, width int, align lipgloss.Position) string {
	cell := ClampTextWidth(text, width)
	pad := width - lipgloss.Width(cell)
	if pad <= 0 {
		return cell
	}
	switch align {
	case lipgloss.Right:
		return strings.Repeat(" ", pad) + cell
	case lipgloss.Center:
		left := pad / 2
		return strings.Repeat(" ", left) + cell + strings.Repeat(" ", pad-left)
	default:
		return cell + strings.Repeat(" ", pad)
	}
}
