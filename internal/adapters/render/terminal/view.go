package terminal

import (
	"fmt"
	"strings"

	"github.com/bnema/deepseek-chat-cli/internal/ports"
	"github.com/charmbracelet/lipgloss"
)

const ruleWidth = 60

type commandHelp struct {
	token string
	text  string
}

var welcomeCommands = []commandHelp{
	{token: "/help", text: "Show this help"},
	{token: "/clear", text: "Clear conversation history"},
	{token: "/history", text: "Show conversation history"},
	{token: "/exit or Ctrl+C", text: "Exit the application"},
}

var helpCommands = []commandHelp{
	{token: "/help", text: "Show this help message"},
	{token: "/clear", text: "Clear conversation history"},
	{token: "/history", text: "Show conversation history"},
	{token: "/exit", text: "Exit the application"},
}

var helpTips = []string{
	"Press Ctrl+C to exit at any time",
	"Your conversation history is maintained during the session",
	"Use clear, specific questions for better responses",
}

func renderWelcome(name string, s styles) string {
	lines := []string{
		s.rule.Render(strings.Repeat("=", ruleWidth)),
		s.title.Render(fmt.Sprintf("🤖 %s Chat Console", name)),
		s.rule.Render(strings.Repeat("=", ruleWidth)),
		"",
		s.text.Render(fmt.Sprintf("Welcome to %s Chat!", name)),
		s.text.Render("Type your message and press Enter to chat."),
		s.warnText.Render("Special commands:"),
	}
	lines = append(lines, commandLines(welcomeCommands, s)...)
	lines = append(lines,
		"",
		s.faint.Render(strings.Repeat("─", ruleWidth)),
		"",
	)

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderHelp(s styles) string {
	lines := []string{s.heading.Render("📖 Available Commands:"), ""}
	lines = append(lines, commandLines(helpCommands, s)...)
	lines = append(lines, "", s.heading.Render("💡 Tips:"))
	for _, tip := range helpTips {
		lines = append(lines, "  • "+tip)
	}
	lines = append(lines, "")

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func commandLines(commands []commandHelp, s styles) []string {
	lines := make([]string, 0, len(commands))
	for _, c := range commands {
		lines = append(lines, fmt.Sprintf("  %s - %s", s.command.Render(c.token), c.text))
	}
	return lines
}

func renderUser(text string, s styles) string {
	return s.user.Render("👤 You: " + text)
}

// renderAssistant puts body on its own lines when it is multi-line, which is
// the case for markdown output.
func renderAssistant(name, body string, s styles) string {
	label := fmt.Sprintf("🤖 %s:", name)
	if strings.Contains(body, "\n") {
		return s.assistant.Render(label) + "\n" + body + "\n"
	}
	return s.assistant.Render(label+" "+body) + "\n"
}

func renderError(message string, s styles) string {
	return s.errLabel.Render("❌ Error:") + " " + s.errText.Render(message) + "\n"
}

func renderInfo(message string, s styles) string {
	return s.infoLabel.Render("ℹ️  Info:") + " " + s.infoText.Render(message) + "\n"
}

func renderWarning(message string, s styles) string {
	return s.warnLabel.Render("⚠️  Warning:") + " " + s.warnText.Render(message) + "\n"
}

func renderHistory(entries []string, s styles) string {
	lines := []string{s.heading.Render("📜 Conversation History:"), ""}
	for i, entry := range entries {
		lines = append(lines, fmt.Sprintf("%s. %s", s.index.Render(fmt.Sprint(i+1)), entry))
	}
	lines = append(lines, "")

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderGoodbye(name string, summary ports.Summary, s styles) string {
	lines := []string{"", s.farewell.Render(fmt.Sprintf("👋 Thank you for using %s Chat!", name))}
	if summary.Turns > 0 {
		lines = append(lines, s.faint.Render(summaryLine(summary)))
	}
	lines = append(lines, s.goodbye.Render("Goodbye! 🚀"), "")

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func summaryLine(summary ports.Summary) string {
	exchanges := "exchanges"
	if summary.Turns == 1 {
		exchanges = "exchange"
	}

	line := fmt.Sprintf("%d %s · %s tokens", summary.Turns, exchanges, summary.Usage.TotalCompact())
	if summary.Usage.CachedInputTokens > 0 {
		line += fmt.Sprintf(" (%d cached)", summary.Usage.CachedInputTokens)
	}
	return line
}
