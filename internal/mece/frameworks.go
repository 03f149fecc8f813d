// Package mece checks category lists for mutual exclusivity and collective
// exhaustiveness, and proposes categorizations from fixed framework
// templates.
//
// The checks are lexical heuristics driven by a Policy, not semantic
// understanding: overlaps come from shared tokens or substring containment,
// gaps from comparing the input against the framework the topic points to.
package mece

import (
	"fmt"
	"strings"

	"github.com/HendryAvila/analysis-support/internal/locale"
	"github.com/HendryAvila/analysis-support/internal/session"
)

// Framework is a named categorization template.
type Framework string

const (
	FrameworkSWOT             Framework = "SWOT"
	Framework4P               Framework = "4P"
	Framework3C               Framework = "3C"
	FrameworkTimeline         Framework = "timeline"
	FrameworkInternalExternal Framework = "internal_external"

	// FrameworkAuto asks CreateStructure to pick a template from the topic.
	FrameworkAuto Framework = "auto"
)

// Priority is the declared template order. Auto-selection ties are broken
// by position in this list.
var Priority = []Framework{
	FrameworkSWOT,
	Framework4P,
	Framework3C,
	FrameworkTimeline,
	FrameworkInternalExternal,
}

// frameworkLabels maps every accepted input label to its canonical variant.
var frameworkLabels = map[string]Framework{
	"auto":              FrameworkAuto,
	"swot":              FrameworkSWOT,
	"4p":                Framework4P,
	"3c":                Framework3C,
	"timeline":          FrameworkTimeline,
	"time_series":       FrameworkTimeline,
	"時系列":               FrameworkTimeline,
	"internal_external": FrameworkInternalExternal,
	"internal/external": FrameworkInternalExternal,
	"内外":                FrameworkInternalExternal,
}

// ParseFramework resolves a caller-supplied label (case-insensitive,
// full-width tolerant) to a Framework. An empty label means auto.
func ParseFramework(label string) (Framework, error) {
	key := strings.Join(strings.Fields(Normalize(label)), "_")
	if key == "" {
		return FrameworkAuto, nil
	}
	if fw, ok := frameworkLabels[key]; ok {
		return fw, nil
	}
	names := make([]string, 0, len(Priority)+1)
	names = append(names, string(FrameworkAuto))
	for _, fw := range Priority {
		names = append(names, string(fw))
	}
	return "", session.Validationf("unsupported framework %q: must be one of: %s", label, strings.Join(names, ", "))
}

// CategoryTemplate is one fixed category of a framework.
type CategoryTemplate struct {
	Label string
	// Terms mark an input label as covering this category for gap detection.
	Terms []string

	descJA string
	descEN string
}

// Template is a framework's fixed category list plus the topic keywords
// that make auto-selection choose it.
type Template struct {
	Framework  Framework
	Keywords   []string
	Categories []CategoryTemplate
}

var templates = map[Framework]Template{
	FrameworkSWOT: {
		Framework: FrameworkSWOT,
		Keywords:  []string{"組織", "企業", "会社", "強み", "弱み", "swot", "organization", "company", "strength", "weakness"},
		Categories: []CategoryTemplate{
			{Label: "Strengths (強み)", Terms: []string{"strength", "強み", "長所", "優位"},
				descJA: "%sにおける内部の強み、優位性、競争力について", descEN: "Internal strengths, advantages and competitiveness of %s"},
			{Label: "Weaknesses (弱み)", Terms: []string{"weakness", "弱み", "短所", "弱点"},
				descJA: "%sにおける内部の弱み、課題、改善点について", descEN: "Internal weaknesses, issues and improvement points of %s"},
			{Label: "Opportunities (機会)", Terms: []string{"opportunit", "機会", "チャンス"},
				descJA: "%sにおける外部の機会、チャンス、可能性について", descEN: "External opportunities and possibilities for %s"},
			{Label: "Threats (脅威)", Terms: []string{"threat", "脅威", "リスク"},
				descJA: "%sにおける外部の脅威、リスク、阻害要因について", descEN: "External threats, risks and obstacles to %s"},
		},
	},
	Framework4P: {
		Framework: Framework4P,
		Keywords:  []string{"マーケティング", "販売", "商品", "製品", "marketing", "product", "sales", "pricing"},
		Categories: []CategoryTemplate{
			{Label: "Product (製品)", Terms: []string{"product", "製品", "商品", "サービス"},
				descJA: "%sにおける製品・サービスの特徴、品質、機能について", descEN: "Features, quality and functions of the products and services in %s"},
			{Label: "Price (価格)", Terms: []string{"price", "pricing", "価格", "料金", "値段"},
				descJA: "%sの価格戦略、コスト構造、価値提案について", descEN: "Pricing strategy, cost structure and value proposition of %s"},
			{Label: "Place (流通)", Terms: []string{"place", "distribution", "channel", "流通", "チャネル", "販路"},
				descJA: "%sの販売チャネル、流通経路、アクセス方法について", descEN: "Sales channels, distribution and access for %s"},
			{Label: "Promotion (販促)", Terms: []string{"promotion", "advertis", "販促", "広告", "宣伝"},
				descJA: "%sの広告、宣伝、コミュニケーション戦略について", descEN: "Advertising, publicity and communication strategy of %s"},
		},
	},
	Framework3C: {
		Framework: Framework3C,
		Keywords:  []string{"戦略", "競合", "分析", "市場", "strategy", "competitor", "competition", "market", "analysis"},
		Categories: []CategoryTemplate{
			{Label: "Customer (顧客)", Terms: []string{"customer", "顧客", "ユーザー", "消費者"},
				descJA: "%sにおける顧客ニーズ、顧客行動、市場環境について", descEN: "Customer needs, customer behaviour and market conditions in %s"},
			{Label: "Competitor (競合)", Terms: []string{"competitor", "competition", "競合", "他社", "ライバル"},
				descJA: "%sの競合他社の動向、競合優位性、市場シェアについて", descEN: "Competitor moves, competitive advantage and market share in %s"},
			{Label: "Company (自社)", Terms: []string{"company", "自社", "当社"},
				descJA: "%sにおける自社の強み、リソース、能力について", descEN: "Our own strengths, resources and capabilities in %s"},
		},
	},
	FrameworkTimeline: {
		Framework: FrameworkTimeline,
		Keywords:  []string{"変化", "推移", "履歴", "将来", "時系列", "trend", "history", "future", "timeline"},
		Categories: []CategoryTemplate{
			{Label: "Past (過去)", Terms: []string{"past", "過去", "従来", "以前"},
				descJA: "%sの過去の状況、経緯、学習できる点について", descEN: "Past situation, history and lessons of %s"},
			{Label: "Present (現在)", Terms: []string{"present", "current", "現在", "現状"},
				descJA: "%sの現在の状況、現状の課題と機会について", descEN: "Current situation, present issues and opportunities of %s"},
			{Label: "Future (未来)", Terms: []string{"future", "未来", "将来", "今後"},
				descJA: "%sの将来の展望、予測、計画について", descEN: "Outlook, forecasts and plans for %s"},
		},
	},
	FrameworkInternalExternal: {
		Framework: FrameworkInternalExternal,
		Keywords:  []string{"内部", "外部", "要因", "internal", "external", "factor"},
		Categories: []CategoryTemplate{
			{Label: "Internal factors (内部要因)", Terms: []string{"internal", "内部", "社内"},
				descJA: "%sにおける内部でコントロール可能な要素について", descEN: "Elements of %s that can be controlled internally"},
			{Label: "External factors (外部要因)", Terms: []string{"external", "外部", "社外"},
				descJA: "%sにおける外部の環境や制約条件について", descEN: "External environment and constraints affecting %s"},
		},
	},
}

// TemplateFor returns the template of a concrete framework.
func TemplateFor(fw Framework) (Template, bool) {
	t, ok := templates[fw]
	return t, ok
}

// SelectFramework returns the first template in Priority with any keyword
// in topic, along with that template's hit count. With no keyword hit at all
// it falls back to the internal/external split and reports zero hits.
func SelectFramework(topic string) (fw Framework, hits int) {
	norm := Normalize(topic)
	for _, candidate := range Priority {
		n := 0
		for _, kw := range templates[candidate].Keywords {
			if strings.Contains(norm, Normalize(kw)) {
				n++
			}
		}
		if n > 0 {
			return candidate, n
		}
	}
	return FrameworkInternalExternal, 0
}

func (c CategoryTemplate) describe(l locale.Locale, topic string) string {
	return fmt.Sprintf(l.Pick(c.descJA, c.descEN), topic)
}
