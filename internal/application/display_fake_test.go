package application

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/deepseek-chat-cli/internal/ports"
)

type recordingDisplay struct {
	mu       sync.Mutex
	events   []string
	summary  ports.Summary
	history  []string
	goodbyes int
}

var _ ports.Display = (*recordingDisplay)(nil)

func (d *recordingDisplay) record(event string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *recordingDisplay) Welcome()              { d.record("welcome") }
func (d *recordingDisplay) Help()                 { d.record("help") }
func (d *recordingDisplay) User(text string)      { d.record("user: " + text) }
func (d *recordingDisplay) Assistant(text string) { d.record("assistant: " + text) }
func (d *recordingDisplay) Error(message string)  { d.record("error: " + message) }
func (d *recordingDisplay) Info(message string)   { d.record("info: " + message) }
func (d *recordingDisplay) Warning(message string) {
	d.record("warning: " + message)
}
func (d *recordingDisplay) Thinking()      { d.record("thinking") }
func (d *recordingDisplay) ClearThinking() { d.record("clear-thinking") }

func (d *recordingDisplay) History(entries []string) {
	d.mu.Lock()
	d.history = entries
	d.mu.Unlock()
	d.record(fmt.Sprintf("history: %d", len(entries)))
}

func (d *recordingDisplay) Goodbye(summary ports.Summary) {
	d.mu.Lock()
	d.summary = summary
	d.goodbyes++
	d.mu.Unlock()
	d.record("goodbye")
}

func (d *recordingDisplay) Events() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.events...)
}

func (d *recordingDisplay) Count(prefix string) int {
	count := 0
	for _, event := range d.Events() {
		if strings.HasPrefix(event, prefix) {
			count++
		}
	}
	return count
}
