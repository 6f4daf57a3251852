package terminal

import "github.com/charmbracelet/lipgloss"

type styles struct {
	rule      lipgloss.Style
	title     lipgloss.Style
	text      lipgloss.Style
	faint     lipgloss.Style
	heading   lipgloss.Style
	command   lipgloss.Style
	user      lipgloss.Style
	assistant lipgloss.Style
	errLabel  lipgloss.Style
	errText   lipgloss.Style
	infoLabel lipgloss.Style
	infoText  lipgloss.Style
	warnLabel lipgloss.Style
	warnText  lipgloss.Style
	thinking  lipgloss.Style
	spinner   lipgloss.Style
	index     lipgloss.Style
	farewell  lipgloss.Style
	goodbye   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		rule:      r.NewStyle().Foreground(lipgloss.Color("14")),
		title:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		text:      r.NewStyle().Foreground(lipgloss.Color("15")),
		faint:     r.NewStyle().Foreground(lipgloss.Color("8")),
		heading:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		command:   r.NewStyle().Foreground(lipgloss.Color("11")),
		user:      r.NewStyle().Foreground(lipgloss.Color("12")),
		assistant: r.NewStyle().Foreground(lipgloss.Color("10")),
		errLabel:  r.NewStyle().Foreground(lipgloss.Color("9")),
		errText:   r.NewStyle().Foreground(lipgloss.Color("1")),
		infoLabel: r.NewStyle().Foreground(lipgloss.Color("14")),
		infoText:  r.NewStyle().Foreground(lipgloss.Color("6")),
		warnLabel: r.NewStyle().Foreground(lipgloss.Color("11")),
		warnText:  r.NewStyle().Foreground(lipgloss.Color("3")),
		thinking:  r.NewStyle().Foreground(lipgloss.Color("11")),
		spinner:   r.NewStyle().Foreground(lipgloss.Color("69")),
		index:     r.NewStyle().Foreground(lipgloss.Color("8")),
		farewell:  r.NewStyle().Foreground(lipgloss.Color("10")),
		goodbye:   r.NewStyle().Foreground(lipgloss.Color("14")),
	}
}
