package application

import (
	"testing"

	"github.com/bnema/deepseek-chat-cli/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDispatchOutcomes(t *testing.T) {
	tests := []struct {
		line string
		want Outcome
	}{
		{line: "", want: Outcome{Kind: OutcomeHandled}},
		{line: "   ", want: Outcome{Kind: OutcomeHandled}},
		{line: "/help", want: Outcome{Kind: OutcomeHandled}},
		{line: "/CLEAR", want: Outcome{Kind: OutcomeHandled}},
		{line: " /history ", want: Outcome{Kind: OutcomeHandled}},
		{line: "/unknown", want: Outcome{Kind: OutcomeHandled}},
		{line: "/exit", want: Outcome{Kind: OutcomeExit}},
		{line: "/QUIT", want: Outcome{Kind: OutcomeExit}},
		{line: "  Hello there ", want: Outcome{Kind: OutcomeChat, Text: "Hello there"}},
	}

	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			f := newSessionFixture(t, domain.DefaultWindow())

			assert.Equal(t, tc.want, f.session.Dispatch(tc.line))
			assert.Equal(t, 1, f.conversation.Len())
		})
	}
}

func TestDispatchEmptyLineHasNoSideEffects(t *testing.T) {
	f := newSessionFixture(t, domain.DefaultWindow())

	f.session.Dispatch("  \t ")

	assert.Empty(t, f.display.Events())
}

func TestTranscriptEntriesAreCopies(t *testing.T) {
	var transcript Transcript
	transcript.Add("You: Hello")

	entries := transcript.Entries()
	entries[0] = "tampered"

	assert.Equal(t, []string{"You: Hello"}, transcript.Entries())
	transcript.Clear()
	assert.Zero(t, transcript.Len())
}
