package mece

import (
	"io"
	"log/slog"
	"strings"

	"github.com/HendryAvila/analysis-support/internal/locale"
	"github.com/HendryAvila/analysis-support/internal/session"
)

// Options configures an Analyzer. Zero fields get production defaults.
type Options struct {
	Policy *Policy
	Locale locale.Locale
	Logger *slog.Logger
}

// Analyzer runs stateless MECE checks. It is safe for concurrent use.
type Analyzer struct {
	policy Policy
	tok    tokenizer
	locale locale.Locale
	log    *slog.Logger
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(opts Options) *Analyzer {
	a := &Analyzer{locale: opts.Locale, log: opts.Logger}
	if opts.Policy != nil {
		a.policy = *opts.Policy
	} else {
		a.policy = DefaultPolicy()
	}
	a.tok = newTokenizer(a.policy)
	if a.locale == "" {
		a.locale = locale.Default
	}
	if a.log == nil {
		a.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a
}

// AnalyzeCategories checks categories against each other for overlaps and,
// when the topic points clearly enough at a framework, against that
// framework for gaps.
func (a *Analyzer) AnalyzeCategories(topic string, categories []string) (*Analysis, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, session.Validationf("topic must not be empty")
	}
	if len(categories) < 2 {
		return nil, session.Validationf("at least 2 categories are required, got %d", len(categories))
	}

	cats := make([]Category, len(categories))
	for i, label := range categories {
		label = strings.TrimSpace(label)
		if label == "" {
			return nil, session.Validationf("category %d must not be empty", i+1)
		}
		n := Normalize(label)
		cats[i] = Category{Label: label, Normalized: n, Tokens: a.tok.tokens(n)}
	}

	res := &Analysis{
		Topic:              topic,
		OriginalCategories: append([]string(nil), categories...),
		MECECategories:     dedupe(cats),
		Overlaps:           a.findOverlaps(cats),
		Gaps:               []string{},
		Suggestions:        []string{},
		AnalysisNotes:      []string{},
	}

	fw, hits := SelectFramework(topic)
	missing, coverage := a.compare(fw, cats)
	res.FrameworkCoverage = coverage
	if hits >= a.policy.Gap.MinTopicHits && hits > 0 && coverage >= a.policy.Gap.MinCoverage {
		res.ComparedFramework = fw
		res.Gaps = missing
		res.AnalysisNotes = append(res.AnalysisNotes, frameworkNote(a.locale, fw, coverage))
	} else {
		res.AnalysisNotes = append(res.AnalysisNotes, gapSkippedNote(a.locale))
	}

	res.ViolationType = Classify(len(res.Overlaps) > 0, len(res.Gaps) > 0)
	res.IsMECECompliant = res.ViolationType == ViolationNone

	for _, o := range res.Overlaps {
		res.Suggestions = append(res.Suggestions, overlapSuggestion(a.locale, o))
	}
	for _, g := range res.Gaps {
		res.Suggestions = append(res.Suggestions, gapSuggestion(a.locale, g))
	}
	if res.IsMECECompliant {
		res.Suggestions = append(res.Suggestions, compliantNote(a.locale))
	}
	res.AnalysisNotes = append(res.AnalysisNotes, heuristicNote(a.locale))

	a.log.Debug("mece analysis",
		"categories", len(cats),
		"overlaps", len(res.Overlaps),
		"gaps", len(res.Gaps),
		"framework", fw,
		"topic_hits", hits,
		"coverage", coverage,
	)
	return res, nil
}

// findOverlaps reports each overlapping pair once, in input order.
func (a *Analyzer) findOverlaps(cats []Category) []Overlap {
	overlaps := []Overlap{}
	for i := 0; i < len(cats); i++ {
		for j := i + 1; j < len(cats); j++ {
			if o, ok := overlapOf(cats[i], cats[j]); ok {
				overlaps = append(overlaps, o)
			}
		}
	}
	return overlaps
}

func overlapOf(x, y Category) (Overlap, bool) {
	o := Overlap{First: x.Label, Second: y.Label}
	if strings.Contains(x.Normalized, y.Normalized) || strings.Contains(y.Normalized, x.Normalized) {
		o.Reason = ReasonSubstring
		return o, true
	}
	for _, tok := range x.Tokens {
		for _, other := range y.Tokens {
			if tok == other {
				o.Reason = ReasonSharedToken
				o.SharedToken = tok
				return o, true
			}
		}
	}
	return Overlap{}, false
}

// compare returns the framework categories no input covers and the share
// that is covered.
func (a *Analyzer) compare(fw Framework, cats []Category) (missing []string, coverage float64) {
	tmpl := templates[fw]
	missing = []string{}
	covered := 0
	for _, ct := range tmpl.Categories {
		if coveredBy(ct, cats) {
			covered++
		} else {
			missing = append(missing, ct.Label)
		}
	}
	if len(tmpl.Categories) == 0 {
		return missing, 0
	}
	return missing, float64(covered) / float64(len(tmpl.Categories))
}

func coveredBy(ct CategoryTemplate, cats []Category) bool {
	for _, term := range ct.Terms {
		t := Normalize(term)
		for _, c := range cats {
			if strings.Contains(c.Normalized, t) {
				return true
			}
		}
	}
	return false
}

func dedupe(cats []Category) []Category {
	out := make([]Category, 0, len(cats))
	seen := make(map[string]bool, len(cats))
	for _, c := range cats {
		if seen[c.Normalized] {
			continue
		}
		seen[c.Normalized] = true
		out = append(out, c)
	}
	return out
}

// CreateStructure proposes a categorization of topic. An empty or "auto"
// framework is chosen from the topic's keywords.
func (a *Analyzer) CreateStructure(topic, framework string) (*Structure, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, session.Validationf("topic must not be empty")
	}
	fw, err := ParseFramework(framework)
	if err != nil {
		return nil, err
	}
	auto := fw == FrameworkAuto
	if auto {
		fw, _ = SelectFramework(topic)
	}

	tmpl := templates[fw]
	cats := make([]ProposedCategory, len(tmpl.Categories))
	for i, ct := range tmpl.Categories {
		cats[i] = ProposedCategory{Label: ct.Label, Description: ct.describe(a.locale, topic)}
	}
	a.log.Debug("mece structure", "framework", fw, "auto", auto)
	return &Structure{
		Topic:           topic,
		Framework:       fw,
		AutoSelected:    auto,
		Categories:      cats,
		Characteristics: characteristics(a.locale),
		UsageTips:       usageTips(a.locale),
	}, nil
}
