package why

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/HendryAvila/analysis-support/internal/locale"
	"github.com/HendryAvila/analysis-support/internal/session"
)

// Options configures an Engine. Zero fields get production defaults.
type Options struct {
	Clock  *session.Clock
	NewID  session.IDFunc
	Locale locale.Locale
	Logger *slog.Logger
}

// Engine drives why analyses stored in one registry.
type Engine struct {
	reg    session.Registry[*Session]
	clock  *session.Clock
	newID  session.IDFunc
	locale locale.Locale
	log    *slog.Logger
}

// NewEngine creates an Engine over reg.
func NewEngine(reg session.Registry[*Session], opts Options) *Engine {
	e := &Engine{
		reg:    reg,
		clock:  opts.Clock,
		newID:  opts.NewID,
		locale: opts.Locale,
		log:    opts.Logger,
	}
	if e.clock == nil {
		e.clock = session.NewClock(nil)
	}
	if e.newID == nil {
		e.newID = session.ShortID
	}
	if e.locale == "" {
		e.locale = locale.Default
	}
	if e.log == nil {
		e.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e
}

// Start opens a new analysis for problem and returns it. Only the level-0
// question is defined on the returned session.
func (e *Engine) Start(ctx context.Context, problem, background string) (*Session, error) {
	problem = strings.TrimSpace(problem)
	if problem == "" {
		return nil, session.Validationf("problem must not be empty")
	}
	background = strings.TrimSpace(background)

	now := e.clock.Now()
	s, err := session.InsertNew(ctx, e.reg, e.newID, func(id string) *Session {
		s := &Session{
			ID:        id,
			Problem:   problem,
			Context:   background,
			Status:    StatusActive,
			CreatedAt: now,
		}
		for i := range s.Whys {
			s.Whys[i].Level = i
		}
		s.Whys[0].Question = RootQuestion(e.locale, problem)
		return s
	})
	if err != nil {
		return nil, err
	}

	e.log.Debug("why analysis started", "analysis_id", s.ID)
	return s, nil
}

// AddAnswer records answer at level and derives the next question, or the
// root-cause summary when the final level is answered. Nothing is written
// when any check fails.
func (e *Engine) AddAnswer(ctx context.Context, id string, level int, answer string) (*AnswerResult, error) {
	answer = strings.TrimSpace(answer)

	var recorded Slot
	s, err := e.reg.Update(ctx, id, func(s *Session) error {
		if level < 0 || level >= Depth {
			return session.Validationf("level %d is out of range: must be 0 to %d", level, Depth-1)
		}
		if answer == "" {
			return session.Validationf("answer must not be empty")
		}

		slot := &s.Whys[level]
		if slot.Answered() {
			return session.Conflictf("level %d of analysis %q is already answered", level, id)
		}
		if level > 0 && !s.Whys[level-1].Answered() {
			return session.Conflictf("level %d cannot be answered before level %d", level, level-1)
		}

		now := e.clock.Now()
		slot.Answer = answer
		slot.AnsweredAt = &now

		if level < Depth-1 {
			s.Whys[level+1].Question = FollowUpQuestion(e.locale, answer)
		}
		if s.AnsweredCount() == Depth {
			s.Status = StatusCompleted
		}
		recorded = *slot
		return nil
	})
	if err != nil {
		e.log.Debug("why answer rejected", "analysis_id", id, "level", level, "error", err)
		return nil, err
	}

	res := &AnswerResult{
		SessionID: s.ID,
		Recorded:  recorded,
		Status:    s.Status,
		Progress:  s.Progress(),
	}
	if s.Status == StatusCompleted {
		summary := BuildSummary(s)
		res.Summary = &summary
		e.log.Debug("why analysis completed", "analysis_id", s.ID)
		return res, nil
	}

	next := level + 1
	res.NextLevel = &next
	res.NextQuestion = s.Whys[next].Question
	return res, nil
}

// Get returns the full slot history of an analysis.
func (e *Engine) Get(ctx context.Context, id string) (*Session, error) {
	return e.reg.Get(ctx, id)
}

// List returns every analysis in creation order. It never fails on an
// empty registry.
func (e *Engine) List(ctx context.Context) ([]Listing, error) {
	all, err := e.reg.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Listing, 0, len(all))
	for _, s := range all {
		out = append(out, Listing{
			ID:        s.ID,
			Problem:   s.Problem,
			Status:    s.Status,
			Progress:  s.Progress(),
			CreatedAt: s.CreatedAt,
		})
	}
	return out, nil
}
