package scamper

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/HendryAvila/analysis-support/internal/locale"
	"github.com/HendryAvila/analysis-support/internal/session"
)

const (
	// MaxScore bounds feasibility and impact scores; MinScore is 0.
	MaxScore = 10
	MinScore = 0

	recentIdeas = 5
	topIdeas    = 5
)

// Options configures an Engine. Zero fields get production defaults.
type Options struct {
	Clock  *session.Clock
	NewID  session.IDFunc
	Locale locale.Locale
	Logger *slog.Logger
}

// Engine drives SCAMPER sessions stored in one registry.
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
		e.newID = session.LongID
	}
	if e.locale == "" {
		e.locale = locale.Default
	}
	if e.log == nil {
		e.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e
}

// StartSession opens an empty session.
func (e *Engine) StartSession(ctx context.Context, topic, situation, background string) (*Started, error) {
	s, err := e.create(ctx, topic, situation, background, nil)
	if err != nil {
		return nil, err
	}
	overview := make([]TechniqueOverview, len(Techniques))
	for i, t := range Techniques {
		g := GuideFor(t, e.locale)
		overview[i] = TechniqueOverview{Technique: t, Name: g.Name, Description: g.Description}
	}
	return &Started{
		SessionID:  s.ID,
		Topic:      s.Topic,
		Overview:   overview,
		UsageGuide: usageGuide(e.locale),
	}, nil
}

// create inserts a new session. seed, when set, fills the session before it
// becomes visible.
func (e *Engine) create(ctx context.Context, topic, situation, background string, seed func(s *Session)) (*Session, error) {
	topic = strings.TrimSpace(topic)
	situation = strings.TrimSpace(situation)
	if topic == "" {
		return nil, session.Validationf("topic must not be empty")
	}
	if situation == "" {
		return nil, session.Validationf("current_situation must not be empty")
	}

	now := e.clock.Now()
	s, err := session.InsertNew(ctx, e.reg, e.newID, func(id string) *Session {
		s := &Session{
			ID:               id,
			Topic:            topic,
			CurrentSituation: situation,
			Context:          strings.TrimSpace(background),
			Ideas:            []Idea{},
			Notes:            []string{startedNote(e.locale)},
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if seed != nil {
			seed(s)
		}
		return s
	})
	if err != nil {
		return nil, err
	}
	e.log.Debug("scamper session started", "session", s.ID, "ideas", len(s.Ideas))
	return s, nil
}

// ApplyTechnique appends ideas under technique. explanations may be nil;
// otherwise it must pair up with ideas. The session is resolved before the
// input is validated, so an unknown id always reports ErrNotFound.
func (e *Engine) ApplyTechnique(ctx context.Context, id, technique string, ideas, explanations []string) (*Application, error) {
	var (
		t     Technique
		added []Idea
	)
	s, err := e.reg.Update(ctx, id, func(s *Session) error {
		tech, texts, err := checkIdeas(technique, ideas, explanations)
		if err != nil {
			return err
		}
		t = tech
		now := e.clock.Now()
		added = e.appendIdeas(s, t, texts, explanations, now)
		s.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.log.Debug("scamper technique applied", "session", id, "technique", t, "ideas", len(added))
	return e.application(s, t, added), nil
}

// checkIdeas resolves technique and returns the trimmed idea texts.
func checkIdeas(technique string, ideas, explanations []string) (Technique, []string, error) {
	t, err := ParseTechnique(technique)
	if err != nil {
		return "", nil, err
	}
	if len(ideas) == 0 {
		return "", nil, session.Validationf("ideas must not be empty")
	}
	if explanations != nil && len(explanations) != len(ideas) {
		return "", nil, session.Validationf("got %d explanations for %d ideas", len(explanations), len(ideas))
	}
	texts := make([]string, len(ideas))
	for i, idea := range ideas {
		texts[i] = strings.TrimSpace(idea)
		if texts[i] == "" {
			return "", nil, session.Validationf("idea %d must not be empty", i+1)
		}
	}
	return t, texts, nil
}

func (e *Engine) appendIdeas(s *Session, t Technique, texts, explanations []string, now time.Time) []Idea {
	start := len(s.Ideas)
	for i, text := range texts {
		idea := Idea{ID: e.newID(), Technique: t, Text: text, CreatedAt: now}
		if explanations != nil {
			idea.Explanation = strings.TrimSpace(explanations[i])
		}
		s.Ideas = append(s.Ideas, idea)
	}
	s.ActiveTechnique = t
	s.Notes = append(s.Notes, appliedNote(e.locale, t, len(texts)))
	return append([]Idea(nil), s.Ideas[start:]...)
}

func (e *Engine) application(s *Session, t Technique, added []Idea) *Application {
	return &Application{
		SessionID:  s.ID,
		Technique:  t,
		AddedIdeas: added,
		Guide:      GuideFor(t, e.locale),
		TotalIdeas: len(s.Ideas),
		Counts:     countByTechnique(s.Ideas),
	}
}

// EvaluateIdeas scores ideas addressed by exact text and returns every
// evaluated idea of the session ranked by combined score. Either all
// evaluations apply or none do.
func (e *Engine) EvaluateIdeas(ctx context.Context, id string, evals []Evaluation) (*Ranking, error) {
	s, err := e.reg.Update(ctx, id, func(s *Session) error {
		if err := checkEvaluations(evals); err != nil {
			return err
		}
		targets, err := matchIdeas(s.Ideas, evals)
		if err != nil {
			return err
		}
		for i, idx := range targets {
			f, im := evals[i].Feasibility, evals[i].Impact
			s.Ideas[idx].Feasibility = &f
			s.Ideas[idx].Impact = &im
		}
		s.Notes = append(s.Notes, evaluatedNote(e.locale, len(evals)))
		s.UpdatedAt = e.clock.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	ranked := rank(s.Ideas)
	top := ranked
	if len(top) > topIdeas {
		top = top[:topIdeas]
	}
	e.log.Debug("scamper ideas evaluated", "session", id, "evaluations", len(evals), "ranked", len(ranked))
	return &Ranking{
		SessionID: s.ID,
		Evaluated: len(evals),
		Ranking:   ranked,
		TopIdeas:  append([]RankedIdea(nil), top...),
		Stats:     techniqueStats(s.Ideas),
		Summary:   summarize(ranked),
	}, nil
}

// checkEvaluations rejects the whole batch when any entry is malformed.
func checkEvaluations(evals []Evaluation) error {
	if len(evals) == 0 {
		return session.Validationf("idea_evaluations must not be empty")
	}
	for i, ev := range evals {
		if strings.TrimSpace(ev.Idea) == "" {
			return session.Validationf("evaluation %d: idea must not be empty", i+1)
		}
		if ev.Feasibility < MinScore || ev.Feasibility > MaxScore {
			return session.Validationf("evaluation %d: feasibility %d is outside %d-%d", i+1, ev.Feasibility, MinScore, MaxScore)
		}
		if ev.Impact < MinScore || ev.Impact > MaxScore {
			return session.Validationf("evaluation %d: impact %d is outside %d-%d", i+1, ev.Impact, MinScore, MaxScore)
		}
	}
	return nil
}

// matchIdeas resolves each evaluation to an idea index. An evaluation
// targets the first idea with its text that is neither scored nor claimed
// earlier in the batch; when every such idea is taken it re-scores the first
// one.
func matchIdeas(ideas []Idea, evals []Evaluation) ([]int, error) {
	claimed := make(map[int]bool, len(evals))
	targets := make([]int, len(evals))
	for i, ev := range evals {
		text := strings.TrimSpace(ev.Idea)
		first, free := -1, -1
		for idx, idea := range ideas {
			if idea.Text != text {
				continue
			}
			if first < 0 {
				first = idx
			}
			if !idea.Evaluated() && !claimed[idx] {
				free = idx
				break
			}
		}
		switch {
		case free >= 0:
			targets[i] = free
		case first >= 0:
			targets[i] = first
		default:
			return nil, session.Conflictf("no idea with text %q in this session", text)
		}
		claimed[targets[i]] = true
	}
	return targets, nil
}

// rank orders evaluated ideas by combined score, keeping insertion order
// among equal scores.
func rank(ideas []Idea) []RankedIdea {
	ranked := []RankedIdea{}
	for _, idea := range ideas {
		if !idea.Evaluated() {
			continue
		}
		ranked = append(ranked, RankedIdea{
			IdeaID:      idea.ID,
			Idea:        idea.Text,
			Technique:   idea.Technique,
			Feasibility: *idea.Feasibility,
			Impact:      *idea.Impact,
			Total:       *idea.Feasibility + *idea.Impact,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Total > ranked[j].Total })
	return ranked
}

func summarize(ranked []RankedIdea) EvaluationSummary {
	sum := EvaluationSummary{TotalEvaluated: len(ranked)}
	if len(ranked) == 0 {
		return sum
	}
	var f, im int
	for _, r := range ranked {
		f += r.Feasibility
		im += r.Impact
	}
	sum.AvgFeasibility = float64(f) / float64(len(ranked))
	sum.AvgImpact = float64(im) / float64(len(ranked))
	return sum
}

func countByTechnique(ideas []Idea) []TechniqueCount {
	counts := make([]TechniqueCount, len(Techniques))
	for i, t := range Techniques {
		counts[i].Technique = t
		for _, idea := range ideas {
			if idea.Technique == t {
				counts[i].Ideas++
			}
		}
	}
	return counts
}

func techniqueStats(ideas []Idea) []TechniqueStats {
	stats := make([]TechniqueStats, len(Techniques))
	for i, t := range Techniques {
		st := TechniqueStats{Technique: t}
		var f, im int
		for _, idea := range ideas {
			if idea.Technique != t {
				continue
			}
			st.TotalIdeas++
			if idea.Evaluated() {
				st.EvaluatedIdeas++
				f += *idea.Feasibility
				im += *idea.Impact
			}
		}
		if st.EvaluatedIdeas > 0 {
			st.AvgFeasibility = float64(f) / float64(st.EvaluatedIdeas)
			st.AvgImpact = float64(im) / float64(st.EvaluatedIdeas)
			st.AvgTotal = st.AvgFeasibility + st.AvgImpact
		}
		stats[i] = st
	}
	return stats
}

// GetSession summarises a session: counts and scores per technique, the
// latest ideas (newest first) and the note history.
func (e *Engine) GetSession(ctx context.Context, id string) (*Overview, error) {
	s, err := e.reg.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	recent := make([]RecentIdea, 0, recentIdeas)
	for i := len(s.Ideas) - 1; i >= 0 && len(recent) < recentIdeas; i-- {
		idea := s.Ideas[i]
		recent = append(recent, RecentIdea{
			Idea:        idea.Text,
			Technique:   idea.Technique,
			Explanation: idea.Explanation,
			Evaluated:   idea.Evaluated(),
		})
	}
	return &Overview{
		SessionID:        s.ID,
		Topic:            s.Topic,
		CurrentSituation: s.CurrentSituation,
		Context:          s.Context,
		ActiveTechnique:  s.ActiveTechnique,
		TotalIdeas:       len(s.Ideas),
		Counts:           countByTechnique(s.Ideas),
		Stats:            techniqueStats(s.Ideas),
		RecentIdeas:      recent,
		Notes:            s.Notes,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}, nil
}

// ListSessions returns every session in creation order.
func (e *Engine) ListSessions(ctx context.Context) ([]Listing, error) {
	sessions, err := e.reg.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Listing, len(sessions))
	for i, s := range sessions {
		used := 0
		for _, c := range countByTechnique(s.Ideas) {
			if c.Ideas > 0 {
				used++
			}
		}
		out[i] = Listing{
			ID:             s.ID,
			Topic:          s.Topic,
			IdeaCount:      len(s.Ideas),
			TechniquesUsed: used,
			CreatedAt:      s.CreatedAt,
			UpdatedAt:      s.UpdatedAt,
		}
	}
	return out, nil
}

// GenerateComprehensive opens a session and applies all seven techniques in
// order, logging one placeholder idea per guiding question.
func (e *Engine) GenerateComprehensive(ctx context.Context, topic, situation, background string) (*Comprehensive, error) {
	apps := make([]Application, 0, len(Techniques))
	s, err := e.create(ctx, topic, situation, background, func(s *Session) {
		apps = apps[:0]
		for _, t := range Techniques {
			g := GuideFor(t, e.locale)
			texts := make([]string, len(g.Questions))
			explanations := make([]string, len(g.Questions))
			for i, q := range g.Questions {
				texts[i] = placeholderIdea(g, q)
				explanations[i] = placeholderExplanation(e.locale, s.Topic)
			}
			added := e.appendIdeas(s, t, texts, explanations, s.CreatedAt)
			apps = append(apps, Application{SessionID: s.ID, Technique: t, AddedIdeas: added, Guide: g})
		}
	})
	if err != nil {
		return nil, err
	}
	// Per-application totals are cumulative, as if applied one by one.
	total := 0
	for i := range apps {
		total += len(apps[i].AddedIdeas)
		apps[i].TotalIdeas = total
		apps[i].Counts = countByTechnique(s.Ideas[:total])
	}
	return &Comprehensive{
		SessionID:        s.ID,
		Topic:            s.Topic,
		CurrentSituation: s.CurrentSituation,
		Applications:     apps,
		TotalIdeas:       len(s.Ideas),
		Counts:           countByTechnique(s.Ideas),
		Approach:         comprehensiveApproach(e.locale),
		NextSteps:        comprehensiveNextSteps(e.locale),
	}, nil
}
