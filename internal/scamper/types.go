package scamper

import "time"

// Idea is one idea logged under a technique. Scores stay nil until the idea
// is evaluated.
type Idea struct {
	ID          string    `json:"id"`
	Technique   Technique `json:"technique"`
	Text        string    `json:"idea"`
	Explanation string    `json:"explanation,omitempty"`
	Feasibility *int      `json:"feasibility,omitempty"`
	Impact      *int      `json:"impact,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Evaluated reports whether both scores are set.
func (i Idea) Evaluated() bool { return i.Feasibility != nil && i.Impact != nil }

// Session is a brainstorming session. Ideas and Notes are append-only.
type Session struct {
	ID               string    `json:"session_id"`
	Topic            string    `json:"topic"`
	CurrentSituation string    `json:"current_situation"`
	Context          string    `json:"context,omitempty"`
	Ideas            []Idea    `json:"ideas"`
	ActiveTechnique  Technique `json:"active_technique,omitempty"`
	Notes            []string  `json:"session_notes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (s *Session) SessionID() string { return s.ID }

func (s *Session) Clone() *Session {
	c := *s
	c.Ideas = make([]Idea, len(s.Ideas))
	for i, idea := range s.Ideas {
		if idea.Feasibility != nil {
			v := *idea.Feasibility
			idea.Feasibility = &v
		}
		if idea.Impact != nil {
			v := *idea.Impact
			idea.Impact = &v
		}
		c.Ideas[i] = idea
	}
	c.Notes = append([]string(nil), s.Notes...)
	return &c
}

// TechniqueCount is the number of ideas logged under one technique.
type TechniqueCount struct {
	Technique Technique `json:"technique"`
	Ideas     int       `json:"ideas"`
}

// TechniqueStats summarises the scores of one technique's ideas.
type TechniqueStats struct {
	Technique      Technique `json:"technique"`
	TotalIdeas     int       `json:"total_ideas"`
	EvaluatedIdeas int       `json:"evaluated_ideas"`
	AvgFeasibility float64   `json:"avg_feasibility"`
	AvgImpact      float64   `json:"avg_impact"`
	AvgTotal       float64   `json:"avg_total_score"`
}

// TechniqueOverview is one line of the overview shown when a session starts.
type TechniqueOverview struct {
	Technique   Technique `json:"technique"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// Started is returned by StartSession.
type Started struct {
	SessionID  string              `json:"session_id"`
	Topic      string              `json:"topic"`
	Overview   []TechniqueOverview `json:"techniques_overview"`
	UsageGuide []string            `json:"usage_guide"`
}

// Application is returned by ApplyTechnique.
type Application struct {
	SessionID  string           `json:"session_id"`
	Technique  Technique        `json:"technique"`
	AddedIdeas []Idea           `json:"added_ideas"`
	Guide      Guide            `json:"technique_guide"`
	TotalIdeas int              `json:"total_ideas"`
	Counts     []TechniqueCount `json:"technique_distribution"`
}

// Evaluation scores one idea, addressed by its exact text.
type Evaluation struct {
	Idea        string `json:"idea"`
	Feasibility int    `json:"feasibility"`
	Impact      int    `json:"impact"`
}

// RankedIdea is an evaluated idea with its combined score.
type RankedIdea struct {
	IdeaID      string    `json:"idea_id"`
	Idea        string    `json:"idea"`
	Technique   Technique `json:"technique"`
	Feasibility int       `json:"feasibility"`
	Impact      int       `json:"impact"`
	Total       int       `json:"total_score"`
}

// EvaluationSummary aggregates the ranked ideas.
type EvaluationSummary struct {
	TotalEvaluated int     `json:"total_evaluated"`
	AvgFeasibility float64 `json:"avg_feasibility"`
	AvgImpact      float64 `json:"avg_impact"`
}

// Ranking is returned by EvaluateIdeas.
type Ranking struct {
	SessionID string            `json:"session_id"`
	Evaluated int               `json:"evaluated_now"`
	Ranking   []RankedIdea      `json:"evaluation_results"`
	TopIdeas  []RankedIdea      `json:"top_ideas"`
	Stats     []TechniqueStats  `json:"technique_statistics"`
	Summary   EvaluationSummary `json:"evaluation_summary"`
}

// RecentIdea is an idea as shown in a session overview.
type RecentIdea struct {
	Idea        string    `json:"idea"`
	Technique   Technique `json:"technique"`
	Explanation string    `json:"explanation,omitempty"`
	Evaluated   bool      `json:"evaluated"`
}

// Overview is returned by GetSession.
type Overview struct {
	SessionID        string           `json:"session_id"`
	Topic            string           `json:"topic"`
	CurrentSituation string           `json:"current_situation"`
	Context          string           `json:"context,omitempty"`
	ActiveTechnique  Technique        `json:"active_technique,omitempty"`
	TotalIdeas       int              `json:"total_ideas"`
	Counts           []TechniqueCount `json:"technique_distribution"`
	Stats            []TechniqueStats `json:"technique_statistics"`
	RecentIdeas      []RecentIdea     `json:"recent_ideas"`
	Notes            []string         `json:"session_notes"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// Listing is one entry of ListSessions.
type Listing struct {
	ID             string    `json:"id"`
	Topic          string    `json:"topic"`
	IdeaCount      int       `json:"total_ideas"`
	TechniquesUsed int       `json:"techniques_used"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Comprehensive is returned by GenerateComprehensive.
type Comprehensive struct {
	SessionID        string           `json:"session_id"`
	Topic            string           `json:"topic"`
	CurrentSituation string           `json:"current_situation"`
	Applications     []Application    `json:"applications"`
	TotalIdeas       int              `json:"total_ideas"`
	Counts           []TechniqueCount `json:"technique_distribution"`
	Approach         []string         `json:"comprehensive_approach"`
	NextSteps        []string         `json:"next_steps"`
}
