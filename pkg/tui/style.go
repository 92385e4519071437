package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette "Blue Moon" from https://gogh-co.github.io/Gogh/
const (
	colorGray     = "#353b52"
	colorWhite    = "#ffffff"
	colorGreen    = "#acfab4"
	colorGreenDim = "#b4c4b4"
	colorRed      = "#e61f44"
	colorPurple   = "#b9a3eb"
	colorBlue     = "#89ddff"

	bordersAndPaddingWidth = 4
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorBlue)).
			Background(lipgloss.Color(colorGray)).
			Padding(0, 2).Align(lipgloss.Center)
	subtitleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorBlue))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGray)).
			Background(lipgloss.Color(colorGreen))
	dangerSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(colorGray)).
				Background(lipgloss.Color(colorRed))
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWhite))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorBlue))
	unitStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorPurple))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreenDim))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray))
)

// Generates pointer symbol when line in focus
func generateLinePointer(isPoint bool, length int) string {
	if isPoint {
		return ">" + strings.Repeat(" ", length-1)
	}
	return strings.Repeat(" ", length)
}

// Shortens text to width, marking the cut with two dots
func truncate(text string, width int) string {
	if width <= 3 || len(text) <= width {
		return text
	}
	return text[:width-2] + ".."
}

func (m model) columnWidths() (int, int) {
	leftWidth := (m.width * 55) / 100
	return leftWidth, m.width - leftWidth
}
