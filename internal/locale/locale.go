// Package locale names the languages canned analysis text can be rendered in.
package locale

import (
	"fmt"
	"strings"
)

// Locale selects the language of generated questions, guidance and notes.
type Locale string

const (
	Japanese Locale = "ja"
	English  Locale = "en"
)

// Default is the language used when nothing is configured.
const Default = Japanese

// Parse accepts "ja"/"en" (any case, region suffixes ignored).
func Parse(s string) (Locale, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	switch Locale(tag) {
	case Japanese, English:
		return Locale(tag), nil
	case "":
		return Default, nil
	default:
		return "", fmt.Errorf("unsupported locale %q: must be one of: ja, en", s)
	}
}

// Pick returns ja when l is Japanese and en otherwise.
func (l Locale) Pick(ja, en string) string {
	if l == English {
		return en
	}
	return ja
}
