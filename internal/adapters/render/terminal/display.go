package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/bnema/deepseek-chat-cli/internal/ports"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const (
	DefaultAssistantName = "DeepSeek"
	DefaultWrapWidth     = 80
)

type Options struct {
	AssistantName string
	// Animate runs a spinner while waiting for a reply. Leave it off when
	// the output is not a terminal.
	Animate bool
	// Markdown renders replies with glamour.
	Markdown bool
	// MarkdownStyle is a glamour standard style name; empty picks one from
	// the terminal background.
	MarkdownStyle string
	WrapWidth     int
}

// Display writes the chat session to a terminal. Thinking and ClearThinking
// must be called in pairs.
type Display struct {
	out      io.Writer
	styles   styles
	name     string
	animate  bool
	markdown *glamour.TermRenderer

	mu       sync.Mutex
	thinking *thinkingIndicator
	pending  int
}

var _ ports.Display = (*Display)(nil)

func NewDisplay(out io.Writer, opts Options) (*Display, error) {
	name := strings.TrimSpace(opts.AssistantName)
	if name == "" {
		name = DefaultAssistantName
	}

	d := &Display{
		out:     out,
		styles:  newStyles(lipgloss.NewRenderer(out)),
		name:    name,
		animate: opts.Animate,
	}

	if opts.Markdown {
		width := opts.WrapWidth
		if width <= 0 {
			width = DefaultWrapWidth
		}
		style := glamour.WithAutoStyle()
		if opts.MarkdownStyle != "" {
			style = glamour.WithStandardStyle(opts.MarkdownStyle)
		}

		renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
		if err != nil {
			return nil, fmt.Errorf("create markdown renderer: %w", err)
		}
		d.markdown = renderer
	}

	return d, nil
}

func (d *Display) Welcome() {
	d.println(renderWelcome(d.name, d.styles))
}

func (d *Display) Help() {
	d.println(renderHelp(d.styles))
}

func (d *Display) User(text string) {
	d.println(renderUser(text, d.styles))
}

func (d *Display) Assistant(text string) {
	d.println(renderAssistant(d.name, d.renderMarkdown(text), d.styles))
}

func (d *Display) Error(message string) {
	d.println(renderError(message, d.styles))
}

func (d *Display) Info(message string) {
	d.println(renderInfo(message, d.styles))
}

func (d *Display) Warning(message string) {
	d.println(renderWarning(message, d.styles))
}

func (d *Display) History(entries []string) {
	d.println(renderHistory(entries, d.styles))
}

func (d *Display) Goodbye(summary ports.Summary) {
	d.println(renderGoodbye(d.name, summary, d.styles))
}

func (d *Display) Thinking() {
	label := fmt.Sprintf("🤔 %s is thinking...", d.name)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.animate {
		d.thinking = startThinking(d.out, label, d.styles.thinking)
		return
	}

	rendered := d.styles.thinking.Render(label)
	d.pending = lipgloss.Width(rendered)
	_, _ = io.WriteString(d.out, rendered)
}

func (d *Display) ClearThinking() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.thinking != nil {
		d.thinking.stop()
		d.thinking = nil
		return
	}

	if d.pending > 0 {
		_, _ = fmt.Fprintf(d.out, "\r%s\r", strings.Repeat(" ", d.pending))
		d.pending = 0
	}
}

func (d *Display) renderMarkdown(text string) string {
	if d.markdown == nil {
		return text
	}

	rendered, err := d.markdown.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(rendered, "\n")
}

func (d *Display) println(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, _ = fmt.Fprintln(d.out, text)
}
