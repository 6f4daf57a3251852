package ports

import "github.com/bnema/deepseek-chat-cli/internal/domain"

type Summary struct {
	Turns int
	Usage domain.Usage
}

type Display interface {
	Welcome()
	Help()
	User(text string)
	Assistant(text string)
	Error(message string)
	Info(message string)
	Warning(message string)
	Thinking()
	ClearThinking()
	History(entries []string)
	Goodbye(summary Summary)
}
