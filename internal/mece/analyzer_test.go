package mece

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/analysis-support/internal/locale"
	"github.com/HendryAvila/analysis-support/internal/session"
)

func TestAnalyzeCategories_SharedPrefixIsOverlap(t *testing.T) {
	a := NewAnalyzer(Options{})

	res, err := a.AnalyzeCategories("市場分析", []string{"国内顧客", "国内市場"})
	require.NoError(t, err)

	assert.Equal(t, ViolationOverlap, res.ViolationType)
	assert.False(t, res.IsMECECompliant)
	require.Len(t, res.Overlaps, 1)
	assert.Equal(t, Overlap{First: "国内顧客", Second: "国内市場", Reason: ReasonSharedToken, SharedToken: "国内"}, res.Overlaps[0])
	assert.Empty(t, res.Gaps)
	assert.Empty(t, res.ComparedFramework, "3C coverage is too low to trust")
	assert.Equal(t, []string{"国内顧客", "国内市場"}, res.OriginalCategories)
	assert.Len(t, res.Suggestions, 1)
	assert.Contains(t, res.Suggestions[0], "国内")
}

func TestAnalyzeCategories_Compliant(t *testing.T) {
	a := NewAnalyzer(Options{})

	res, err := a.AnalyzeCategories("company SWOT", []string{"Strengths", "Weaknesses", "Opportunities", "Threats"})
	require.NoError(t, err)

	assert.Equal(t, ViolationNone, res.ViolationType)
	assert.True(t, res.IsMECECompliant)
	assert.Empty(t, res.Overlaps)
	assert.Empty(t, res.Gaps)
	assert.Equal(t, FrameworkSWOT, res.ComparedFramework)
	assert.InDelta(t, 1.0, res.FrameworkCoverage, 1e-9)
	require.Len(t, res.Suggestions, 1, "a compliant result still gets a note")
}

func TestAnalyzeCategories_Gap(t *testing.T) {
	a := NewAnalyzer(Options{})

	res, err := a.AnalyzeCategories("自社の強みと弱み", []string{"技術の強み", "人材の弱み", "市場機会"})
	require.NoError(t, err)

	assert.Equal(t, ViolationGap, res.ViolationType)
	assert.Empty(t, res.Overlaps)
	assert.Equal(t, []string{"Threats (脅威)"}, res.Gaps)
	assert.Equal(t, FrameworkSWOT, res.ComparedFramework)
	assert.InDelta(t, 0.75, res.FrameworkCoverage, 1e-9)
}

func TestAnalyzeCategories_Both(t *testing.T) {
	a := NewAnalyzer(Options{})

	res, err := a.AnalyzeCategories("自社の強みと弱み", []string{"売上の強み", "売上の弱み", "市場機会"})
	require.NoError(t, err)

	assert.Equal(t, ViolationBoth, res.ViolationType)
	require.Len(t, res.Overlaps, 1)
	assert.Equal(t, "売上", res.Overlaps[0].SharedToken)
	assert.Equal(t, []string{"Threats (脅威)"}, res.Gaps)
	assert.Len(t, res.Suggestions, 2)
}

func TestAnalyzeCategories_Substring(t *testing.T) {
	a := NewAnalyzer(Options{})

	res, err := a.AnalyzeCategories("サービス改善", []string{"顧客", "顧客満足"})
	require.NoError(t, err)

	require.Len(t, res.Overlaps, 1)
	assert.Equal(t, ReasonSubstring, res.Overlaps[0].Reason)
	assert.Empty(t, res.Overlaps[0].SharedToken)
}

func TestAnalyzeCategories_WidthAndCaseFolded(t *testing.T) {
	a := NewAnalyzer(Options{})

	res, err := a.AnalyzeCategories("topic", []string{"ＡＢＣ Marketing", "abc   MARKETING"})
	require.NoError(t, err)

	require.Len(t, res.Overlaps, 1)
	assert.Equal(t, ReasonSubstring, res.Overlaps[0].Reason)
	assert.Len(t, res.MECECategories, 1, "normalized duplicates collapse")
}

func TestAnalyzeCategories_GenericTermsIgnored(t *testing.T) {
	a := NewAnalyzer(Options{})

	res, err := a.AnalyzeCategories("売上低下の要因", []string{"内部要因", "外部要因"})
	require.NoError(t, err)

	assert.Empty(t, res.Overlaps)
	assert.Equal(t, FrameworkInternalExternal, res.ComparedFramework)
	assert.Equal(t, ViolationNone, res.ViolationType)
}

func TestAnalyzeCategories_EachPairOnce(t *testing.T) {
	a := NewAnalyzer(Options{})

	res, err := a.AnalyzeCategories("x", []string{"品質管理", "品質保証", "品質改善"})
	require.NoError(t, err)

	require.Len(t, res.Overlaps, 3)
	assert.Equal(t, "品質管理", res.Overlaps[0].First)
	assert.Equal(t, "品質保証", res.Overlaps[0].Second)
	assert.Equal(t, "品質管理", res.Overlaps[1].First)
	assert.Equal(t, "品質改善", res.Overlaps[1].Second)
	assert.Equal(t, "品質保証", res.Overlaps[2].First)
}

func TestAnalyzeCategories_Invalid(t *testing.T) {
	a := NewAnalyzer(Options{})

	tests := []struct {
		name       string
		topic      string
		categories []string
	}{
		{"no categories", "topic", nil},
		{"one category", "topic", []string{"only"}},
		{"blank category", "topic", []string{"a thing", "  "}},
		// Stricter than the category-count rule: gap detection needs a topic.
		{"blank topic rejected for gap detection", " ", []string{"first", "second"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.AnalyzeCategories(tt.topic, tt.categories)
			require.Error(t, err)
			assert.ErrorIs(t, err, session.ErrValidation)
		})
	}
}

func TestAnalyzeCategories_Deterministic(t *testing.T) {
	a := NewAnalyzer(Options{})
	in := []string{"国内顧客", "海外顧客", "競合他社"}

	first, err := a.AnalyzeCategories("市場分析", in)
	require.NoError(t, err)
	second, err := a.AnalyzeCategories("市場分析", in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyzeCategories_OverridePolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gap:\n  min_coverage: 0.9\noverlap:\n  generic_terms: []\n"), 0o600))

	p, err := LoadPolicy(path)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Overlap.MinLatinRunes, "unset keys keep defaults")

	a := NewAnalyzer(Options{Policy: &p})

	res, err := a.AnalyzeCategories("自社の強みと弱み", []string{"技術の強み", "人材の弱み", "市場機会"})
	require.NoError(t, err)
	assert.Empty(t, res.Gaps, "0.75 coverage is below the raised threshold")

	res, err = a.AnalyzeCategories("売上低下の要因", []string{"内部要因", "外部要因"})
	require.NoError(t, err)
	require.Len(t, res.Overlaps, 1)
	assert.Equal(t, "要因", res.Overlaps[0].SharedToken)
}

func TestAnalyzeCategories_English(t *testing.T) {
	a := NewAnalyzer(Options{Locale: locale.English})

	res, err := a.AnalyzeCategories("market analysis", []string{"domestic customers", "domestic market"})
	require.NoError(t, err)

	require.Len(t, res.Overlaps, 1)
	assert.Equal(t, "domestic", res.Overlaps[0].SharedToken)
	assert.Contains(t, res.Suggestions[0], "share")
}

func TestCreateStructure(t *testing.T) {
	a := NewAnalyzer(Options{})

	tests := []struct {
		name      string
		topic     string
		framework string
		want      Framework
		auto      bool
		labels    []string
	}{
		{"auto picks 4P", "新製品のマーケティング", "", Framework4P, true,
			[]string{"Product (製品)", "Price (価格)", "Place (流通)", "Promotion (販促)"}},
		{"auto picks 3C", "市場分析", "auto", Framework3C, true,
			[]string{"Customer (顧客)", "Competitor (競合)", "Company (自社)"}},
		{"auto tie goes to priority", "企業戦略", "auto", FrameworkSWOT, true,
			[]string{"Strengths (強み)", "Weaknesses (弱み)", "Opportunities (機会)", "Threats (脅威)"}},
		{"auto first priority match beats more hits", "企業の市場分析", "auto", FrameworkSWOT, true,
			[]string{"Strengths (強み)", "Weaknesses (弱み)", "Opportunities (機会)", "Threats (脅威)"}},
		{"auto falls back", "雑談", "auto", FrameworkInternalExternal, true,
			[]string{"Internal factors (内部要因)", "External factors (外部要因)"}},
		{"explicit lower case", "anything", "swot", FrameworkSWOT, false,
			[]string{"Strengths (強み)", "Weaknesses (弱み)", "Opportunities (機会)", "Threats (脅威)"}},
		{"japanese label", "anything", "時系列", FrameworkTimeline, false,
			[]string{"Past (過去)", "Present (現在)", "Future (未来)"}},
		{"full width", "anything", "３Ｃ", Framework3C, false,
			[]string{"Customer (顧客)", "Competitor (競合)", "Company (自社)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := a.CreateStructure(tt.topic, tt.framework)
			require.NoError(t, err)

			assert.Equal(t, tt.want, st.Framework)
			assert.Equal(t, tt.auto, st.AutoSelected)
			labels := make([]string, len(st.Categories))
			for i, c := range st.Categories {
				labels[i] = c.Label
				assert.Contains(t, c.Description, tt.topic)
			}
			assert.Equal(t, tt.labels, labels)
			assert.NotEmpty(t, st.Characteristics.MutuallyExclusive)
			assert.Len(t, st.UsageTips, 3)
		})
	}
}

func TestCreateStructure_UnknownFramework(t *testing.T) {
	a := NewAnalyzer(Options{})

	_, err := a.CreateStructure("topic", "PEST")
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrValidation)
	assert.Contains(t, err.Error(), "PEST")
}

func TestCreateStructure_IsStable(t *testing.T) {
	a := NewAnalyzer(Options{})

	first, err := a.CreateStructure("市場分析", "3C")
	require.NoError(t, err)
	second, err := a.CreateStructure("市場分析", "3C")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSelectFramework(t *testing.T) {
	tests := []struct {
		topic    string
		wantFW   Framework
		wantHits int
	}{
		{"企業の市場分析", FrameworkSWOT, 1},
		{"競合市場の分析", Framework3C, 3},
		{"company strength and weakness", FrameworkSWOT, 3},
		{"雑談", FrameworkInternalExternal, 0},
	}
	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			fw, hits := SelectFramework(tt.topic)
			assert.Equal(t, tt.wantFW, fw)
			assert.Equal(t, tt.wantHits, hits)
		})
	}
}
