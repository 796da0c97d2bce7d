package styles

import "github.com/charmbracelet/lipgloss"

const defaultWidth = 80

func clampWidth(width int) int {
	if width <= 0 {
		return defaultWidth
	}
	return width
}

func InputStyle(width int, focused bool) lipgloss.Style {
	border := lipgloss.Color("240")
	if focused {
		border = lipgloss.Color("62")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(clampWidth(width) - 4)
}

func PlaceholderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true)
}

func ButtonStyle(focused, enabled bool) lipgloss.Style {
	style := lipgloss.NewStyle().
		Padding(0, 2).
		MarginLeft(2).
		Bold(true)
	switch {
	case !enabled:
		return style.Foreground(lipgloss.Color("241")).Background(lipgloss.Color("236"))
	case focused:
		return style.Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	default:
		return style.Foreground(lipgloss.Color("62")).Background(lipgloss.Color("236"))
	}
}

func SpinnerStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		MarginLeft(2)
}

func StatusStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(clampWidth(width))
}

func ErrorStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("203")).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("203")).
		Padding(0, 1).
		MarginLeft(2).
		Width(clampWidth(width) - 4)
}

func ResultLabelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Bold(true).
		MarginLeft(2)
}

// ResultStyle colours the Wolof fields like the user and the
// intermediate-language fields like the assistant.
func ResultStyle(width int, wolof bool) lipgloss.Style {
	color := lipgloss.Color("214")
	if wolof {
		color = lipgloss.Color("39")
	}
	return lipgloss.NewStyle().
		Foreground(color).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(color).
		Padding(0, 1).
		MarginLeft(2).
		Width(clampWidth(width) - 4)
}

func ProgramStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("141")).
		Bold(true).
		Padding(0, 2)
}

func HintStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Padding(0, 2)
}
