package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/trex-runner/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorRed:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBlue:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorCyan:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorWhite:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorGray:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	core.ColorDarkGray: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells of one colour share a single styled run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
