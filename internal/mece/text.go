package mece

import (
	"fmt"

	"github.com/HendryAvila/analysis-support/internal/locale"
)

func overlapSuggestion(l locale.Locale, o Overlap) string {
	if o.Reason == ReasonSubstring {
		return fmt.Sprintf(l.Pick(
			"「%s」と「%s」は一方が他方を含んでいます。包含関係を解消し、同じ階層の概念に揃えてください",
			"%q and %q contain one another; split them so both sit at the same level"),
			o.First, o.Second)
	}
	return fmt.Sprintf(l.Pick(
		"「%s」と「%s」は「%s」を共有しています。境界を明確にするか、統合を検討してください",
		"%q and %q share %q; sharpen the boundary between them or merge them"),
		o.First, o.Second, o.SharedToken)
}

func gapSuggestion(l locale.Locale, gap string) string {
	return fmt.Sprintf(l.Pick(
		"「%s」に相当する観点が見当たりません。追加を検討してください",
		"Nothing covers %q; consider adding it"), gap)
}

func compliantNote(l locale.Locale) string {
	return l.Pick(
		"重複や漏れは検出されませんでした。各カテゴリの定義を明文化しておくと運用しやすくなります",
		"No overlaps or gaps were detected. Writing down each category's definition keeps it that way")
}

func frameworkNote(l locale.Locale, fw Framework, coverage float64) string {
	return fmt.Sprintf(l.Pick(
		"%sフレームワークと比較しました (カバー率 %.0f%%)",
		"Compared against the %s framework (%.0f%% covered)"), fw, coverage*100)
}

func gapSkippedNote(l locale.Locale) string {
	return l.Pick(
		"トピックに対応する枠組みを特定できないため、漏れの検出は行っていません",
		"Gap detection was skipped because no framework clearly fits the topic and categories")
}

func heuristicNote(l locale.Locale) string {
	return l.Pick(
		"この判定は語句の一致に基づく簡易チェックです。意味的な重複は人手で確認してください",
		"This is a lexical check; review semantic overlaps by hand")
}

func characteristics(l locale.Locale) Characteristics {
	return Characteristics{
		MutuallyExclusive: l.Pick(
			"各カテゴリは互いに重複しない視点で定義されています",
			"Each category is defined from a viewpoint that does not overlap the others"),
		CollectivelyExhaustive: l.Pick(
			"カテゴリ全体でトピックの主要な側面を網羅しています",
			"Together the categories cover the main aspects of the topic"),
	}
}

func usageTips(l locale.Locale) []string {
	return []string{
		l.Pick("各カテゴリで具体的な要素を洗い出してください", "List concrete items under each category"),
		l.Pick("カテゴリ間で重複がないか確認してください", "Check that no item lands in two categories"),
		l.Pick("必要に応じてサブカテゴリに細分化してください", "Break categories down further where needed"),
	}
}
