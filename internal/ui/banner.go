package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var bannerArt = []string{
	" _____     _",
	"|_   _|_ _| | __ ___      ____ _",
	"  | |/ _` | |/ _` \\ \\ /\\ / / _` |",
	"  | | (_| | | (_| |\\ V  V / (_| |",
	"  |_|\\__,_|_|\\__,_| \\_/\\_/ \\__,_|",
}

const bannerSubtitle = "Organization Admin • Command-Line Interface"

// RenderBanner returns the styled ASCII banner.
func RenderBanner() string {
	maxWidth := 0
	for _, line := range bannerArt {
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
	}

	subtitleWidth := lipgloss.Width(bannerSubtitle)
	blockWidth := maxWidth
	if blockWidth < subtitleWidth {
		blockWidth = subtitleWidth
	}

	art := lipgloss.NewStyle().Width(blockWidth).Align(lipgloss.Center)
	rendered := make([]string, 0, len(bannerArt))
	for _, line := range bannerArt {
		padded := line + strings.Repeat(" ", maxWidth-lipgloss.Width(line))
		rendered = append(rendered, art.Render(BannerStyle.Render(padded)))
	}

	subtitle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Width(blockWidth).
		Align(lipgloss.Center).
		Render(bannerSubtitle)

	underline := lipgloss.NewStyle().
		Foreground(ColorBorder).
		Width(blockWidth).
		Align(lipgloss.Center).
		Render(strings.Repeat("─", subtitleWidth))

	return "\n" + strings.Join(rendered, "\n") + "\n\n" + subtitle + "\n" + underline + "\n"
}
