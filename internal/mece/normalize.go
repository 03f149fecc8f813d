package mece

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds width variants, case and whitespace so that labels typed
// differently compare equal.
func Normalize(label string) string {
	s := norm.NFKC.String(label)
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}

type runeClass int

const (
	classSeparator runeClass = iota
	classLatin
	classHan
	classKatakana
	classHiragana
)

func classify(r rune) runeClass {
	switch {
	case unicode.Is(unicode.Han, r):
		return classHan
	case unicode.Is(unicode.Katakana, r), r == 'ー':
		return classKatakana
	case unicode.Is(unicode.Hiragana, r):
		return classHiragana
	case unicode.IsLetter(r), unicode.IsDigit(r):
		return classLatin
	default:
		return classSeparator
	}
}

// tokenizer splits normalized labels into comparable tokens.
//
// Latin and digit words are whole tokens, kanji runs are cut into aligned
// fixed-size chunks (a trailing partial chunk is dropped), katakana runs are
// whole tokens and hiragana only separates. Generic terms are discarded.
type tokenizer struct {
	policy  OverlapPolicy
	generic map[string]bool
}

func newTokenizer(p Policy) tokenizer {
	return tokenizer{policy: p.Overlap, generic: p.genericSet()}
}

func (t tokenizer) tokens(normalized string) []string {
	var (
		out  []string
		seen = map[string]bool{}
		run  []rune
		kind = classSeparator
	)
	emit := func(tok string) {
		if tok == "" || seen[tok] || t.generic[tok] {
			return
		}
		seen[tok] = true
		out = append(out, tok)
	}
	flush := func() {
		switch kind {
		case classLatin:
			if len(run) >= t.policy.MinLatinRunes {
				emit(string(run))
			}
		case classKatakana:
			if len(run) >= t.policy.MinKatakanaRunes {
				emit(string(run))
			}
		case classHan:
			size := t.policy.CJKChunkRunes
			for i := 0; i+size <= len(run); i += size {
				emit(string(run[i : i+size]))
			}
		}
		run = run[:0]
	}
	for _, r := range normalized {
		c := classify(r)
		if c != kind {
			flush()
			kind = c
		}
		if c != classSeparator && c != classHiragana {
			run = append(run, r)
		}
	}
	flush()
	return out
}
