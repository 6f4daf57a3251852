package domain

import "strings"

type CommandKind int

const (
	CommandEmpty CommandKind = iota
	CommandChat
	CommandHelp
	CommandClear
	CommandHistory
	CommandExit
	CommandUnknown
)

func (k CommandKind) String() string {
	switch k {
	case CommandEmpty:
		return "empty"
	case CommandChat:
		return "chat"
	case CommandHelp:
		return "help"
	case CommandClear:
		return "clear"
	case CommandHistory:
		return "history"
	case CommandExit:
		return "exit"
	case CommandUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Command is the classification of one input line. Text holds the trimmed
// line for chat and unknown commands and is empty otherwise.
type Command struct {
	Kind CommandKind
	Text string
}

const commandPrefix = "/"

var commandTokens = map[string]CommandKind{
	"/help":    CommandHelp,
	"/clear":   CommandClear,
	"/history": CommandHistory,
	"/exit":    CommandExit,
	"/quit":    CommandExit,
}

// ParseCommand classifies a raw input line. It has no side effects.
func ParseCommand(line string) Command {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Command{Kind: CommandEmpty}
	}

	if kind, ok := commandTokens[strings.ToLower(trimmed)]; ok {
		return Command{Kind: kind}
	}

	if strings.HasPrefix(trimmed, commandPrefix) {
		return Command{Kind: CommandUnknown, Text: trimmed}
	}

	return Command{Kind: CommandChat, Text: trimmed}
}
