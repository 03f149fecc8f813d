// Package scamper runs SCAMPER brainstorming sessions: ideas are logged per
// technique, scored for feasibility and impact, and ranked.
package scamper

import (
	"strings"

	"github.com/HendryAvila/analysis-support/internal/locale"
	"github.com/HendryAvila/analysis-support/internal/session"
)

// Technique is one of the seven SCAMPER lenses. Its value is the canonical
// English tag stored on every idea.
type Technique string

const (
	Substitute    Technique = "Substitute"
	Combine       Technique = "Combine"
	Adapt         Technique = "Adapt"
	Modify        Technique = "Modify"
	PutToOtherUse Technique = "Put to other use"
	Eliminate     Technique = "Eliminate"
	Reverse       Technique = "Reverse"
)

// Techniques lists the techniques in S-C-A-M-P-E-R order.
var Techniques = []Technique{Substitute, Combine, Adapt, Modify, PutToOtherUse, Eliminate, Reverse}

type guideText struct {
	nameJA      string
	descJA      string
	descEN      string
	questionsJA [3]string
	questionsEN [3]string
}

var guides = map[Technique]guideText{
	Substitute: {
		nameJA: "代替",
		descJA: "何かを別のものに置き換える",
		descEN: "Replace something with something else",
		questionsJA: [3]string{
			"何を他のものと置き換えられますか？",
			"どの材料や要素を代替できますか？",
			"他の場所や時間に置き換えられますか？",
		},
		questionsEN: [3]string{
			"What could be replaced with something else?",
			"Which materials or components could be substituted?",
			"Could it happen in another place or at another time?",
		},
	},
	Combine: {
		nameJA: "結合",
		descJA: "異なる要素を組み合わせる",
		descEN: "Combine different elements",
		questionsJA: [3]string{
			"どの要素を組み合わせられますか？",
			"どのプロセスを統合できますか？",
			"どの機能を一つにまとめられますか？",
		},
		questionsEN: [3]string{
			"Which elements could be combined?",
			"Which processes could be merged?",
			"Which functions could become one?",
		},
	},
	Adapt: {
		nameJA: "応用",
		descJA: "他のアイデアを適用する",
		descEN: "Adapt an idea from elsewhere",
		questionsJA: [3]string{
			"他の分野で似たような問題はどう解決されていますか？",
			"自然界から学べることはありますか？",
			"過去の成功例を参考にできますか？",
		},
		questionsEN: [3]string{
			"How do other fields solve a similar problem?",
			"Is there anything to learn from nature?",
			"Which past successes could serve as a model?",
		},
	},
	Modify: {
		nameJA: "変更",
		descJA: "形や属性を変更する",
		descEN: "Change shape or attributes",
		questionsJA: [3]string{
			"何を拡大または縮小できますか？",
			"何を強調または弱化できますか？",
			"形や色を変えられますか？",
		},
		questionsEN: [3]string{
			"What could be made bigger or smaller?",
			"What could be emphasised or toned down?",
			"Could the shape or colour change?",
		},
	},
	PutToOtherUse: {
		nameJA: "転用",
		descJA: "他の用途に転用する",
		descEN: "Put it to another use",
		questionsJA: [3]string{
			"他にどんな用途がありますか？",
			"副産物を活用できますか？",
			"別の市場で使えますか？",
		},
		questionsEN: [3]string{
			"What else could it be used for?",
			"Could by-products be put to use?",
			"Could it serve a different market?",
		},
	},
	Eliminate: {
		nameJA: "除去",
		descJA: "不要な部分を除去する",
		descEN: "Remove what is not needed",
		questionsJA: [3]string{
			"何を削除または除去できますか？",
			"どの機能を簡素化できますか？",
			"どの手順を省略できますか？",
		},
		questionsEN: [3]string{
			"What could be removed?",
			"Which features could be simplified?",
			"Which steps could be skipped?",
		},
	},
	Reverse: {
		nameJA: "逆転",
		descJA: "順序や役割を逆転する",
		descEN: "Reverse order or roles",
		questionsJA: [3]string{
			"順序を逆にできますか？",
			"役割を交換できますか？",
			"逆の視点から考えるとどうですか？",
		},
		questionsEN: [3]string{
			"Could the order be reversed?",
			"Could roles be swapped?",
			"What does it look like from the opposite viewpoint?",
		},
	},
}

// labels maps every accepted technique label to its canonical tag. Keys are
// lower case with words joined by underscores.
var labels = func() map[string]Technique {
	m := make(map[string]Technique, len(Techniques)*3)
	for _, t := range Techniques {
		m[labelKey(string(t))] = t
		m[guides[t].nameJA] = t
	}
	return m
}()

func labelKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}

// ParseTechnique resolves an English tag (any case, spaces or underscores)
// or a Japanese name to its Technique.
func ParseTechnique(label string) (Technique, error) {
	if t, ok := labels[labelKey(label)]; ok {
		return t, nil
	}
	return "", session.Validationf("unsupported technique %q: must be one of: %s", label, strings.Join(Labels(), ", "))
}

// Labels returns every accepted technique label, grouped per technique.
func Labels() []string {
	out := make([]string, 0, len(Techniques)*3)
	for _, t := range Techniques {
		out = append(out, string(t))
		if key := labelKey(string(t)); strings.Contains(key, "_") {
			out = append(out, key)
		}
		out = append(out, guides[t].nameJA)
	}
	return out
}

// Guide is a technique's localized name, description and guiding questions.
type Guide struct {
	Technique   Technique `json:"technique"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Questions   []string  `json:"guide_questions"`
}

// GuideFor renders the guide of t in l.
func GuideFor(t Technique, l locale.Locale) Guide {
	g := guides[t]
	questions := g.questionsEN
	if l != locale.English {
		questions = g.questionsJA
	}
	return Guide{
		Technique:   t,
		Name:        l.Pick(g.nameJA, string(t)),
		Description: l.Pick(g.descJA, g.descEN),
		Questions:   append([]string(nil), questions[:]...),
	}
}
