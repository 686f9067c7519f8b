package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/leuz9/oolu-kpis-sub000/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusColor returns the lipgloss style for an objective or KPI status.
func StatusColor(status domain.Status) lipgloss.Style {
	switch status {
	case domain.StatusOnTrack:
		return StyleGreen
	case domain.StatusAtRisk:
		return StyleYellow
	case domain.StatusBehind:
		return StyleRed
	default:
		return StyleDim
	}
}

// StatusPill returns a colored status indicator such as "● ON TRACK".
func StatusPill(status domain.Status) string {
	switch status {
	case domain.StatusOnTrack:
		return StyleGreen.Render("● ON TRACK")
	case domain.StatusAtRisk:
		return StyleYellow.Render("● AT RISK")
	case domain.StatusBehind:
		return StyleRed.Render("● BEHIND")
	case domain.StatusArchived:
		return StyleDim.Render("● ARCHIVED")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// LevelBadge renders the hierarchy level in a level-specific color.
func LevelBadge(level domain.Level) string {
	switch level {
	case domain.LevelCompany:
		return StylePurple.Render("COMPANY")
	case domain.LevelDepartment:
		return StyleBlue.Render("DEPT")
	case domain.LevelIndividual:
		return StyleFg.Render("INDIV")
	default:
		return StyleDim.Render(strings.ToUpper(string(level)))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
