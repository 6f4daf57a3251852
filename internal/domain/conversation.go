package domain

import (
	"fmt"
	"slices"
)

const (
	DefaultMaxMessages  = 41
	DefaultKeepMessages = 20
)

// Window bounds how many messages a Conversation carries. Once the buffer
// grows past MaxMessages it is cut back to the system message plus the
// KeepMessages most recent entries.
type Window struct {
	MaxMessages  int
	KeepMessages int
}

func DefaultWindow() Window {
	return Window{MaxMessages: DefaultMaxMessages, KeepMessages: DefaultKeepMessages}
}

func (w Window) Validate() error {
	if w.MaxMessages < 2 {
		return fmt.Errorf("%w: max messages must be at least 2, got %d", ErrInvalidWindow, w.MaxMessages)
	}
	if w.KeepMessages < 1 {
		return fmt.Errorf("%w: keep messages must be positive, got %d", ErrInvalidWindow, w.KeepMessages)
	}
	if w.KeepMessages >= w.MaxMessages {
		return fmt.Errorf("%w: keep messages (%d) must be below max messages (%d)", ErrInvalidWindow, w.KeepMessages, w.MaxMessages)
	}

	return nil
}

// RetainRange reports the half-open index range [from, to) that must be
// dropped from a buffer of the given length. ok is false when nothing has to
// go. Index 0 is never part of the range.
func RetainRange(length int, w Window) (from, to int, ok bool) {
	if length <= w.MaxMessages {
		return 0, 0, false
	}

	from, to = 1, length-w.KeepMessages
	if to <= from {
		return 0, 0, false
	}

	return from, to, true
}

// Conversation is the ordered message buffer sent to the completion service.
// Index 0 always holds the system instruction and no other entry has the
// system role.
type Conversation struct {
	system   Message
	messages []Message
	window   Window
}

func NewConversation(systemPrompt string, window Window) (*Conversation, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	system := SystemMessage(systemPrompt)
	return &Conversation{
		system:   system,
		messages: []Message{system},
		window:   window,
	}, nil
}

func (c *Conversation) Append(role Role, content string) error {
	switch role {
	case RoleUser, RoleAssistant:
	case RoleSystem:
		return ErrSystemMessage
	default:
		return fmt.Errorf("%w %q", ErrUnknownRole, role)
	}

	c.messages = append(c.messages, Message{Role: role, Content: content})
	return nil
}

// Trim drops the oldest user/assistant messages when the buffer exceeds the
// window and returns how many were removed.
func (c *Conversation) Trim() int {
	from, to, ok := RetainRange(len(c.messages), c.window)
	if !ok {
		return 0
	}

	c.messages = slices.Delete(c.messages, from, to)
	c.messages[0] = c.system

	return to - from
}

func (c *Conversation) Len() int {
	return len(c.messages)
}

func (c *Conversation) System() Message {
	return c.system
}

func (c *Conversation) Window() Window {
	return c.window
}

// Messages returns a copy of the buffer in order.
func (c *Conversation) Messages() []Message {
	return slices.Clone(c.messages)
}
