// Package why implements the five-whys root-cause state machine.
//
// A session owns exactly Depth question slots. Slot 0's question comes from
// the problem statement; every later slot's question is derived from the
// answer recorded one level above it, so answers arrive strictly in order.
// The session completes when the last slot is answered.
package why

import (
	"fmt"
	"time"
)

// Depth is the number of "why" levels in every analysis.
const Depth = 5

// Status is the lifecycle state of an analysis.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Slot is one level of the why chain.
type Slot struct {
	Level      int        `json:"level"`
	Question   string     `json:"question,omitempty"`
	Answer     string     `json:"answer,omitempty"`
	AnsweredAt *time.Time `json:"answered_at,omitempty"`
}

// Answered reports whether an answer has been recorded.
func (s Slot) Answered() bool { return s.AnsweredAt != nil }

// Defined reports whether the slot's question can be asked yet.
func (s Slot) Defined() bool { return s.Question != "" }

// Session is the record kept per analysis.
type Session struct {
	ID        string      `json:"id"`
	Problem   string      `json:"problem"`
	Context   string      `json:"context,omitempty"`
	Whys      [Depth]Slot `json:"whys"`
	Status    Status      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

// SessionID implements session.Record.
func (s *Session) SessionID() string { return s.ID }

// Clone implements session.Record. Slots are values and AnsweredAt points
// at an immutable time, so a struct copy is a deep copy.
func (s *Session) Clone() *Session {
	c := *s
	return &c
}

// AnsweredCount returns how many levels hold an answer.
func (s *Session) AnsweredCount() int {
	n := 0
	for _, slot := range s.Whys {
		if slot.Answered() {
			n++
		}
	}
	return n
}

// Progress renders the answered count as "n/5".
func (s *Session) Progress() string {
	return fmt.Sprintf("%d/%d", s.AnsweredCount(), Depth)
}

// Current returns the first slot that has a question but no answer.
// ok is false once the analysis is complete.
func (s *Session) Current() (slot Slot, ok bool) {
	for _, w := range s.Whys {
		if w.Defined() && !w.Answered() {
			return w, true
		}
	}
	return Slot{}, false
}

// ChainLink is one answered level inside a Summary.
type ChainLink struct {
	Level    int    `json:"level"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Summary describes a completed (or partially completed) why chain.
type Summary struct {
	OriginalProblem string      `json:"original_problem"`
	RootCause       string      `json:"root_cause"`
	Chain           []ChainLink `json:"why_chain"`
	Depth           int         `json:"depth"`
	Complete        bool        `json:"complete"`
}

// AnswerResult is returned by Engine.AddAnswer.
type AnswerResult struct {
	SessionID    string   `json:"analysis_id"`
	Recorded     Slot     `json:"recorded"`
	Status       Status   `json:"status"`
	Progress     string   `json:"progress"`
	NextLevel    *int     `json:"next_level,omitempty"`
	NextQuestion string   `json:"next_question,omitempty"`
	Summary      *Summary `json:"summary,omitempty"`
}

// Listing is the compact row returned by Engine.List.
type Listing struct {
	ID        string    `json:"id"`
	Problem   string    `json:"problem"`
	Status    Status    `json:"status"`
	Progress  string    `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
}
