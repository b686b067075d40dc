package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/recipedia/internal/theme"
)

// Palette is the colour set for one appearance.
type Palette struct {
	Appearance theme.Appearance
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Surface    lipgloss.Color
}

var (
	DarkPalette = Palette{
		Appearance: theme.AppearanceDark,
		Primary:    lipgloss.Color("99"),  // Purple
		Accent:     lipgloss.Color("212"), // Pink
		Text:       lipgloss.Color("252"),
		Muted:      lipgloss.Color("245"),
		Error:      lipgloss.Color("196"),
		Success:    lipgloss.Color("42"),
		Surface:    lipgloss.Color("235"),
	}

	LightPalette = Palette{
		Appearance: theme.AppearanceLight,
		Primary:    lipgloss.Color("55"),
		Accent:     lipgloss.Color("162"),
		Text:       lipgloss.Color("235"),
		Muted:      lipgloss.Color("243"),
		Error:      lipgloss.Color("160"),
		Success:    lipgloss.Color("28"),
		Surface:    lipgloss.Color("254"),
	}
)

// PaletteFor returns the palette for a resolved appearance.
func PaletteFor(a theme.Appearance) Palette {
	if a == theme.AppearanceDark {
		return DarkPalette
	}
	return LightPalette
}

// Styles are the lipgloss styles derived from a Palette.
type Styles struct {
	Palette Palette

	Title        lipgloss.Style
	Header       lipgloss.Style
	Footer       lipgloss.Style
	Section      lipgloss.Style
	Text         lipgloss.Style
	Muted        lipgloss.Style
	Badge        lipgloss.Style
	Link         lipgloss.Style
	Favorite     lipgloss.Style
	Card         lipgloss.Style
	SelectedCard lipgloss.Style
	Skeleton     lipgloss.Style
	ErrorBanner  lipgloss.Style
	ErrorText    lipgloss.Style
	Button       lipgloss.Style
	Input        lipgloss.Style
	Dropdown     lipgloss.Style
	Selected     lipgloss.Style
	HelpKey      lipgloss.Style
	HelpDesc     lipgloss.Style
	Spinner      lipgloss.Style
}

// NewStyles builds the style set for p.
func NewStyles(p Palette) Styles {
	card := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Muted).
		Padding(0, 1).
		MarginRight(1)

	return Styles{
		Palette: p,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			PaddingLeft(1).
			PaddingRight(1),

		Header: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(p.Muted).
			MarginBottom(1),

		Footer: lipgloss.NewStyle().
			Foreground(p.Muted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(p.Muted).
			MarginTop(1),

		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			MarginTop(1),

		Text:  lipgloss.NewStyle().Foreground(p.Text),
		Muted: lipgloss.NewStyle().Foreground(p.Muted),

		Badge: lipgloss.NewStyle().
			Foreground(p.Surface).
			Background(p.Primary).
			Padding(0, 1).
			MarginRight(1),

		Link:     lipgloss.NewStyle().Foreground(p.Accent).Underline(true),
		Favorite: lipgloss.NewStyle().Foreground(p.Accent).Bold(true),

		Card: card,
		SelectedCard: card.
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(p.Primary),

		Skeleton: card.Foreground(p.Muted),

		ErrorBanner: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true).
			Padding(1, 2).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(p.Error),

		ErrorText: lipgloss.NewStyle().Foreground(p.Error),

		Button: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.Primary).
			Padding(0, 2),

		Input: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(0, 1),

		Dropdown: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.Muted).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().Foreground(p.Accent).Bold(true),

		HelpKey:  lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		HelpDesc: lipgloss.NewStyle().Foreground(p.Text),
		Spinner:  lipgloss.NewStyle().Foreground(p.Primary),
	}
}
