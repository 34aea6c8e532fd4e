package tui

import (
	"fmt"
	"strings"

	"starfolk-client/internal/app"
	"starfolk-client/internal/coordinator"
	"starfolk-client/internal/models"
	"starfolk-client/internal/navigation"
)

const aboutText = `StarFolk is a fan catalog of characters from a galaxy far, far away.
Type to search by name, or pick one of the featured characters below the search box.`

// View renders the browser.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("StarFolk"))
	if m.ready {
		b.WriteString("  " + dimStyle.Render(m.view.Path))
	}
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if !m.ready {
		b.WriteString(m.spinner.View() + " Starting…\n")
	} else {
		switch m.view.Route {
		case navigation.About.String():
			b.WriteString(aboutText + "\n")
		case navigation.Detail.String():
			b.WriteString(m.renderDetail(m.view.Detail))
		default:
			if m.view.ShowList {
				b.WriteString(titleStyle.Render(fmt.Sprintf("Results for %q", m.view.Query)) + "\n")
				b.WriteString(m.renderList(m.view.List, "Searching…", "No characters found."))
			} else {
				b.WriteString(titleStyle.Render("Featured") + "\n")
				b.WriteString(m.renderList(m.view.Featured, "Loading featured…", "No featured characters."))
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderList(list app.ListView, loadingText, emptyText string) string {
	switch {
	case list.State == coordinator.Failed:
		return errorStyle.Render(list.Error) + "\n"
	case list.State == coordinator.Loading && len(list.Items) == 0:
		return m.spinner.View() + " " + loadingText + "\n"
	case len(list.Items) == 0:
		return dimStyle.Render(emptyText) + "\n"
	}

	var b strings.Builder
	for i, c := range list.Items {
		line := c.Name
		if badge := FactionBadge(c.Faction); badge != "" {
			line += "  " + badge
		}
		if i == m.selected {
			b.WriteString(selectedStyle.Render("› "+c.Name) + strings.TrimPrefix(line, c.Name) + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}
	if list.State == coordinator.Loading {
		b.WriteString(m.spinner.View() + " " + dimStyle.Render(loadingText) + "\n")
	}
	return b.String()
}

func (m *Model) renderDetail(d app.DetailView) string {
	switch d.State {
	case coordinator.Failed:
		return errorStyle.Render(d.Error) + "\n"
	case coordinator.Loading:
		return m.spinner.View() + " Loading character…\n"
	}
	if d.Character == nil {
		return ""
	}
	return cardStyle.Render(characterCard(*d.Character)) + "\n"
}

func characterCard(c models.Character) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(c.Name))
	if badge := FactionBadge(c.Faction); badge != "" {
		b.WriteString("  " + badge)
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Born: ") + orUnknown(c.BirthYear) + "\n")
	if c.Description != nil && *c.Description != "" {
		b.WriteString("\n" + *c.Description)
	}
	return b.String()
}

func orUnknown(s *string) string {
	if s == nil || *s == "" {
		return "unknown"
	}
	return *s
}
