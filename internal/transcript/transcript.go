// Package transcript holds the ordered conversation shown to the user.
//
// A Transcript is append-only except for two operations: ReplaceLast, which
// swaps the pending placeholder for its reply, and Clear. Clear bumps the
// generation so that replies issued against the old conversation can be
// recognised and dropped.
package transcript

import "fmt"

type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("transcript %s: %s", e.Op, e.Reason)
}

type Transcript struct {
	messages   []Message
	generation uint64
}

func New(seed ...Message) *Transcript {
	t := &Transcript{}
	t.messages = append(t.messages, seed...)
	return t
}

func (t *Transcript) Append(m Message) {
	t.messages = append(t.messages, m)
}

// ReplaceLast substitutes the final message. The slot is overwritten in
// place, so there is no state in which the transcript is one message short.
func (t *Transcript) ReplaceLast(m Message) error {
	if len(t.messages) == 0 {
		return &PreconditionError{Op: "replace last", Reason: "transcript is empty"}
	}
	t.messages[len(t.messages)-1] = m
	return nil
}

func (t *Transcript) Clear() {
	t.messages = nil
	t.generation++
}

func (t *Transcript) Generation() uint64 {
	return t.generation
}

func (t *Transcript) Len() int {
	return len(t.messages)
}

// Messages returns a copy in display order.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// Pending reports whether the last message is a placeholder.
func (t *Transcript) Pending() bool {
	last, ok := t.Last()
	return ok && last.Pending
}
