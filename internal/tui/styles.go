package tui

import (
	"github.com/charmbracelet/lipgloss"

	"starfolk-client/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "5", Dark: "13"})

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "240", Dark: "240"}).
			Padding(0, 1)
)

var factionColors = map[string]lipgloss.AdaptiveColor{
	models.FactionRebel:  {Light: "208", Dark: "208"},
	models.FactionEmpire: {Light: "240", Dark: "250"},
}

// FactionBadge returns a styled faction label, or "" for an unknown faction.
func FactionBadge(faction *string) string {
	if faction == nil || *faction == "" {
		return ""
	}
	color, ok := factionColors[*faction]
	if !ok {
		return dimStyle.Render(*faction)
	}
	return lipgloss.NewStyle().Foreground(color).Render(*faction)
}
