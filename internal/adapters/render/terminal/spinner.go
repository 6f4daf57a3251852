package terminal

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type thinkingDoneMsg struct{}

type thinkingModel struct {
	spinner spinner.Model
	label   string
	done    bool
}

func newThinkingModel(label string, style lipgloss.Style) thinkingModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(style),
	)

	return thinkingModel{spinner: s, label: label}
}

func (m thinkingModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m thinkingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case thinkingDoneMsg:
		m.done = true
		return m, tea.Quit
	default:
		return m, nil
	}
}

// View renders nothing once done so the indicator line is wiped on exit.
func (m thinkingModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// thinkingIndicator is one running spinner program. stop blocks until the
// program has restored the terminal.
type thinkingIndicator struct {
	program *tea.Program
	exited  chan struct{}
}

func startThinking(output io.Writer, label string, style lipgloss.Style) *thinkingIndicator {
	p := tea.NewProgram(
		newThinkingModel(label, style),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithoutSignalHandler(),
	)

	indicator := &thinkingIndicator{program: p, exited: make(chan struct{})}
	go func() {
		defer close(indicator.exited)
		_, _ = p.Run()
	}()

	return indicator
}

func (t *thinkingIndicator) stop() {
	t.program.Send(thinkingDoneMsg{})
	<-t.exited
}
