package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Card is one recipe tile in a grid.
type Card struct {
	Title    string
	Subtitle string
	Favorite bool
}

// Marker returns the favourite marker, falling back to ASCII.
func Marker(favorite, unicode bool) string {
	switch {
	case favorite && unicode:
		return "♥"
	case favorite:
		return "*"
	case unicode:
		return "♡"
	default:
		return " "
	}
}

// cardWidths splits an outer width into the style width, which includes
// padding, and the usable content width. Borders and the right margin take 3.
func cardWidths(width int) (styleWidth, content int) {
	styleWidth = width - 3
	if styleWidth < 10 {
		styleWidth = 10
	}
	return styleWidth, styleWidth - 2
}

// RenderCard draws c at the given outer width.
func (s Styles) RenderCard(c Card, selected, unicode bool, width int) string {
	styleWidth, inner := cardWidths(width)

	title := truncate(c.Title, inner-2)
	marker := s.Muted.Render(Marker(c.Favorite, unicode))
	if c.Favorite {
		marker = s.Favorite.Render(Marker(true, unicode))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render(title)+" "+marker,
		s.Muted.Render(truncate(c.Subtitle, inner)),
	)

	style := s.Card
	if selected {
		style = s.SelectedCard
	}
	return style.Width(styleWidth).Render(body)
}

// RenderSkeleton draws a placeholder card.
func (s Styles) RenderSkeleton(width int) string {
	styleWidth, inner := cardWidths(width)
	bar := strings.Repeat("░", inner)
	short := strings.Repeat("░", inner/2)
	return s.Skeleton.Width(styleWidth).Render(bar + "\n" + short)
}

// Grid lays cells out in rows of columns.
func Grid(cells []string, columns int) string {
	if columns < 1 {
		columns = 1
	}
	var rows []string
	for start := 0; start < len(cells); start += columns {
		end := start + columns
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells[start:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if max <= 3 || len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
