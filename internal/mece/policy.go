package mece

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed policy.yaml
var defaultPolicyYAML []byte

// Policy holds the thresholds and stoplists the lexical checks run with.
type Policy struct {
	Overlap OverlapPolicy `yaml:"overlap"`
	Gap     GapPolicy     `yaml:"gap"`
}

// OverlapPolicy configures tokenization for overlap detection.
type OverlapPolicy struct {
	MinLatinRunes    int      `yaml:"min_latin_runes"`
	CJKChunkRunes    int      `yaml:"cjk_chunk_runes"`
	MinKatakanaRunes int      `yaml:"min_katakana_runes"`
	GenericTerms     []string `yaml:"generic_terms"`
}

// GapPolicy configures when gap detection runs.
type GapPolicy struct {
	MinTopicHits int     `yaml:"min_topic_hits"`
	MinCoverage  float64 `yaml:"min_coverage"`
}

// DefaultPolicy returns the built-in policy.
func DefaultPolicy() Policy {
	var p Policy
	if err := yaml.Unmarshal(defaultPolicyYAML, &p); err != nil {
		panic(fmt.Sprintf("mece: embedded policy: %v", err))
	}
	return p
}

// LoadPolicy reads a YAML override from path on top of the built-in policy.
// An empty path returns the built-in policy unchanged.
func LoadPolicy(path string) (Policy, error) {
	p := DefaultPolicy()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("reading MECE policy: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("parsing MECE policy %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, fmt.Errorf("MECE policy %s: %w", path, err)
	}
	return p, nil
}

// Validate rejects thresholds the tokenizer cannot work with.
func (p Policy) Validate() error {
	switch {
	case p.Overlap.MinLatinRunes < 1:
		return fmt.Errorf("overlap.min_latin_runes must be at least 1, got %d", p.Overlap.MinLatinRunes)
	case p.Overlap.CJKChunkRunes < 1:
		return fmt.Errorf("overlap.cjk_chunk_runes must be at least 1, got %d", p.Overlap.CJKChunkRunes)
	case p.Overlap.MinKatakanaRunes < 1:
		return fmt.Errorf("overlap.min_katakana_runes must be at least 1, got %d", p.Overlap.MinKatakanaRunes)
	case p.Gap.MinTopicHits < 0:
		return fmt.Errorf("gap.min_topic_hits must not be negative, got %d", p.Gap.MinTopicHits)
	case p.Gap.MinCoverage < 0 || p.Gap.MinCoverage > 1:
		return fmt.Errorf("gap.min_coverage must be within [0, 1], got %g", p.Gap.MinCoverage)
	}
	return nil
}

func (p Policy) genericSet() map[string]bool {
	set := make(map[string]bool, len(p.Overlap.GenericTerms))
	for _, term := range p.Overlap.GenericTerms {
		set[Normalize(term)] = true
	}
	return set
}
