package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	hintKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#16161d")).
			Background(lipgloss.Color("#31bb6b")).
			Bold(true).
			Padding(0, 1)
	hintDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ba0bf"))
	hintGap = "  "
)

// Hint renders one key binding as a key cap followed by its action.
func Hint(key, action string) string {
	return hintKeyStyle.Render(key) + " " + hintDescStyle.Render(action)
}

// StatusBar lays hints out left to right, starting a new line whenever the
// next hint would overflow width. A width of zero keeps everything on one line.
func StatusBar(hints []string, width int) string {
	rows := hintRows(hints, width-gridIndent)
	if len(rows) == 0 {
		return ""
	}
	indent := strings.Repeat(" ", gridIndent)
	return indent + strings.Join(rows, "\n"+indent)
}

func hintRows(hints []string, width int) []string {
	var rows []string
	var row strings.Builder
	for _, h := range hints {
		if h == "" {
			continue
		}
		if row.Len() > 0 {
			if width > 0 && lipgloss.Width(row.String())+len(hintGap)+lipgloss.Width(h) > width {
				rows = append(rows, row.String())
				row.Reset()
			} else {
				row.WriteString(hintGap)
			}
		}
		row.WriteString(h)
	}
	if row.Len() > 0 {
		rows = append(rows, row.String())
	}
	return rows
}
