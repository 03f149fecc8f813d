package why

import (
	"fmt"

	"github.com/HendryAvila/analysis-support/internal/locale"
)

// RootQuestion is the level-0 question asked about the problem itself.
func RootQuestion(l locale.Locale, problem string) string {
	return fmt.Sprintf(l.Pick("なぜ「%s」が起きているのですか？", "Why does \"%s\" happen?"), problem)
}

// FollowUpQuestion is asked one level below the given answer.
func FollowUpQuestion(l locale.Locale, answer string) string {
	return fmt.Sprintf(l.Pick("なぜ「%s」なのですか？", "Why is it that \"%s\"?"), answer)
}

// BuildSummary collects the answered levels of s. The root cause is the
// deepest level's answer; it is empty until that level is answered.
func BuildSummary(s *Session) Summary {
	chain := make([]ChainLink, 0, Depth)
	for _, slot := range s.Whys {
		if !slot.Answered() {
			continue
		}
		chain = append(chain, ChainLink{
			Level:    slot.Level,
			Question: slot.Question,
			Answer:   slot.Answer,
		})
	}

	last := s.Whys[Depth-1]
	root := ""
	if last.Answered() {
		root = last.Answer
	}

	return Summary{
		OriginalProblem: s.Problem,
		RootCause:       root,
		Chain:           chain,
		Depth:           len(chain),
		Complete:        len(chain) == Depth,
	}
}
