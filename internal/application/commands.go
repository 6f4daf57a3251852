package application

import (
	"fmt"

	"github.com/bnema/deepseek-chat-cli/internal/domain"
)

type OutcomeKind int

const (
	OutcomeHandled OutcomeKind = iota
	OutcomeExit
	OutcomeChat
)

// Outcome is what the loop does with one input line. Text is set only for
// OutcomeChat.
type Outcome struct {
	Kind OutcomeKind
	Text string
}

// Dispatch classifies a line and runs the side effects of control commands.
// Nothing here touches the completion service.
func (s *Session) Dispatch(line string) Outcome {
	cmd := domain.ParseCommand(line)

	switch cmd.Kind {
	case domain.CommandChat:
		return Outcome{Kind: OutcomeChat, Text: cmd.Text}
	case domain.CommandExit:
		return Outcome{Kind: OutcomeExit}
	case domain.CommandHelp:
		s.display.Help()
	case domain.CommandClear:
		s.transcript.Clear()
		s.display.Info("Conversation history cleared!")
	case domain.CommandHistory:
		if s.transcript.Len() == 0 {
			s.display.Info("No conversation history yet.")
		} else {
			s.display.History(s.transcript.Entries())
		}
	case domain.CommandUnknown:
		s.display.Error(fmt.Sprintf("Unknown command: %s", cmd.Text))
		s.display.Info("Type /help to see available commands")
	case domain.CommandEmpty:
	}

	return Outcome{Kind: OutcomeHandled}
}
