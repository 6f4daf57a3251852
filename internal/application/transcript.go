package application

import "slices"

// Transcript is the display log listed by /history. It holds rendered lines,
// not the messages sent to the service.
type Transcript struct {
	entries []string
}

func (t *Transcript) Add(entry string) {
	t.entries = append(t.entries, entry)
}

func (t *Transcript) Entries() []string {
	return slices.Clone(t.entries)
}

func (t *Transcript) Len() int {
	return len(t.entries)
}

func (t *Transcript) Clear() {
	t.entries = nil
}
