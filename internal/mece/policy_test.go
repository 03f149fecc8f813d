package mece

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	require.NoError(t, p.Validate())
	assert.Equal(t, 2, p.Overlap.CJKChunkRunes)
	assert.Equal(t, 1, p.Gap.MinTopicHits)
	assert.InDelta(t, 0.5, p.Gap.MinCoverage, 1e-9)
	assert.Contains(t, p.Overlap.GenericTerms, "要因")
}

func TestLoadPolicy_EmptyPath(t *testing.T) {
	p, err := LoadPolicy("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPolicy(), p)
}

func TestLoadPolicy_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		return path
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing file", filepath.Join(dir, "nope.yaml"), "reading MECE policy"},
		{"bad yaml", write("bad.yaml", "overlap: [\n"), "parsing MECE policy"},
		{"zero chunk", write("chunk.yaml", "overlap:\n  cjk_chunk_runes: 0\n"), "cjk_chunk_runes"},
		{"coverage above one", write("cov.yaml", "gap:\n  min_coverage: 1.5\n"), "min_coverage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPolicy(tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTokens(t *testing.T) {
	tok := newTokenizer(DefaultPolicy())

	tests := []struct {
		label string
		want  []string
	}{
		{"国内顧客", []string{"国内", "顧客"}},
		{"顧客満足度", []string{"顧客", "満足"}},
		{"マーケティング戦略", []string{"マーケティング", "戦略"}},
		{"Customer Retention", []string{"customer", "retention"}},
		{"UX of app", []string{"app"}},
		{"その他", nil},
		{"内部要因", []string{"内部"}},
		{"ＰＲ活動", []string{"活動"}},
		{"コスト・コスト", []string{"コスト"}},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, tok.tokens(Normalize(tt.label)))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "abc marketing", Normalize("  ＡＢＣ\tMarketing "))
	assert.Equal(t, "国内顧客", Normalize("国内顧客"))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, ViolationNone, Classify(false, false))
	assert.Equal(t, ViolationOverlap, Classify(true, false))
	assert.Equal(t, ViolationGap, Classify(false, true))
	assert.Equal(t, ViolationBoth, Classify(true, true))
}

func TestParseFramework(t *testing.T) {
	tests := map[string]Framework{
		"":                  FrameworkAuto,
		"AUTO":              FrameworkAuto,
		"SWOT":              FrameworkSWOT,
		"4p":                Framework4P,
		"Internal External": FrameworkInternalExternal,
		"internal/external": FrameworkInternalExternal,
		"内外":                FrameworkInternalExternal,
		"timeline":          FrameworkTimeline,
	}
	for in, want := range tests {
		got, err := ParseFramework(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
