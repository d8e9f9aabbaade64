package application

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/JonMunkholm/hwinventory/internal/core"
)

const (
	colorAccent  = "#bd93f9"
	colorMuted   = "#6272a4"
	colorSuccess = "#50fa7b"
	colorError   = "#ff5555"
	colorText    = "#f8f8f2"
)

var styles = struct {
	title, label, help, success, error, app lipgloss.Style
}{
	title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorAccent)),
	label:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent)),
	help:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)),
	success: lipgloss.NewStyle().Foreground(lipgloss.Color(colorSuccess)),
	error:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorError)).Bold(true),
	app: lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colorMuted)).
		Foreground(lipgloss.Color(colorText)),
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(colorMuted)).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(colorText)).
		Background(lipgloss.Color(colorAccent)).
		Bold(false)
	return s
}

// View implements tea.Model.
func (m *Model) View() string {
	pageLine := styles.help.Render(fmt.Sprintf("%d entries, page %d of %d",
		m.page.TotalRows, m.page.Page+1, m.page.TotalPages))

	var status string
	switch {
	case m.err != nil:
		status = styles.error.Render(core.FormatUserError(m.err))
	case m.status != "":
		status = styles.success.Render(m.status)
	}

	help := styles.help.Render(strings.Join([]string{
		"tab focus", "enter select", "pgup/pgdn page", "ctrl+e export", "ctrl+r reload", "esc quit",
	}, " • "))

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.title.Render("Hardware inventory"),
		m.search.View(),
		m.table.View(),
		pageLine,
		m.date.View(),
		status,
		help,
	)
	return styles.app.Render(body)
}
