package scamper

import (
	"fmt"

	"github.com/HendryAvila/analysis-support/internal/locale"
)

func startedNote(l locale.Locale) string {
	return l.Pick("セッション開始", "session started")
}

func appliedNote(l locale.Locale, t Technique, n int) string {
	return fmt.Sprintf(l.Pick("%s技法で%d個のアイデアを生成", "%s: %d ideas generated"), t, n)
}

func evaluatedNote(l locale.Locale, n int) string {
	return fmt.Sprintf(l.Pick("%d個のアイデアを評価", "%d ideas evaluated"), n)
}

func usageGuide(l locale.Locale) []string {
	return []string{
		l.Pick("1つの技法を選んで、その視点からアイデアを生成してください", "Pick one technique and generate ideas from its viewpoint"),
		l.Pick("各技法には3つのガイド質問があります", "Each technique comes with 3 guiding questions"),
		l.Pick("アイデアが浮かんだら scamper_apply_technique でセッションに記録してください", "Record ideas in the session with scamper_apply_technique"),
		l.Pick("最終的に scamper_evaluate_ideas でアイデアを評価できます", "Finally, score them with scamper_evaluate_ideas"),
	}
}

// placeholderIdea is the stub idea GenerateComprehensive logs for one guiding
// question.
func placeholderIdea(g Guide, question string) string {
	return fmt.Sprintf("[%s] %s", g.Name, question)
}

func placeholderExplanation(l locale.Locale, topic string) string {
	return fmt.Sprintf(l.Pick(
		"「%s」に当てはめた具体案に置き換えてください",
		"Replace with a concrete idea for %q"), topic)
}

func comprehensiveApproach(l locale.Locale) []string {
	return []string{
		l.Pick("各技法（S-C-A-M-P-E-R）について順番に考えてください", "Work through the techniques in S-C-A-M-P-E-R order"),
		l.Pick("それぞれの技法で2-3個のアイデアを出すことを目標にしてください", "Aim for 2-3 ideas per technique"),
		l.Pick("各アイデアにはなぜそのアイデアが有効かの説明を加えてください", "Explain why each idea would work"),
	}
}

func comprehensiveNextSteps(l locale.Locale) []string {
	return []string{
		l.Pick("ガイド質問から生成された仮のアイデアを具体案に置き換えてください", "Replace the placeholder ideas derived from the guiding questions with concrete ones"),
		l.Pick("scamper_apply_technique で技法ごとにアイデアを追加してください", "Add more ideas per technique with scamper_apply_technique"),
		l.Pick("scamper_evaluate_ideas で実現可能性とインパクトを評価してください", "Score feasibility and impact with scamper_evaluate_ideas"),
	}
}
