package itemgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/examforge/examgen/internal/exam"
)

// Correct applies deterministic repair rules for option-count and
// answer-format violations. Models reliably produce almost-correct
// structure; mechanical repair keeps otherwise-usable content instead
// of discarding it. Idempotent: a well-formed question passes through
// unchanged with no notes.
//
// The returned notes name each repair so callers can surface them as
// warnings; content repairs (placeholder options) are best-effort, not
// content fixes.
func Correct(q exam.Question, cfg Config) (exam.Question, []string) {
	var notes []string

	switch q.Type {
	case exam.TypeTrueFalse:
		q, notes = correctTrueFalse(q, cfg, notes)
	case exam.TypeSingle:
		q, notes = correctOptionCount(q, cfg, notes)
		q, notes = correctSingleAnswer(q, notes)
	case exam.TypeMultiple:
		q, notes = correctOptionCount(q, cfg, notes)
		q, notes = correctMultipleAnswer(q, notes)
	}

	return q, notes
}

func correctTrueFalse(q exam.Question, cfg Config, notes []string) (exam.Question, []string) {
	wellFormed := len(q.Options) == 2 &&
		q.Options[0].Label == "A" && q.Options[1].Label == "B"
	if !wellFormed {
		q.Options = []exam.Option{
			{Label: "A", Text: cfg.AffirmText},
			{Label: "B", Text: cfg.NegateText},
		}
		notes = append(notes, fmt.Sprintf("判断题选项已重置为 A.%s B.%s", cfg.AffirmText, cfg.NegateText))
	}

	if q.CorrectAnswer != "A" && q.CorrectAnswer != "B" {
		repaired := "B"
		// Negation first: "不对" must not match the affirmative "对".
		if !containsAny(q.CorrectAnswer, cfg.NegateMarkers) &&
			containsAny(q.CorrectAnswer, cfg.AffirmMarkers) {
			repaired = "A"
		}
		notes = append(notes, fmt.Sprintf("判断题答案 %q 已修正为 %q", q.CorrectAnswer, repaired))
		q.CorrectAnswer = repaired
	}

	return q, notes
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// correctOptionCount pads undersized option sets to four entries so no
// downstream consumer sees an undersized mapping. Oversized sets are
// left for the reviewer to flag.
func correctOptionCount(q exam.Question, cfg Config, notes []string) (exam.Question, []string) {
	want := q.Type.OptionCount()
	if len(q.Options) >= want {
		return q, notes
	}

	have := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		have[o.Label] = true
	}
	for _, label := range exam.Labels(want) {
		if !have[label] {
			q.Options = append(q.Options, exam.Option{Label: label, Text: cfg.PlaceholderOption})
			notes = append(notes, fmt.Sprintf("选项 %s 缺失，已用占位文本补齐", label))
		}
	}
	sort.Slice(q.Options, func(i, j int) bool {
		return q.Options[i].Label < q.Options[j].Label
	})
	return q, notes
}

func correctSingleAnswer(q exam.Question, notes []string) (exam.Question, []string) {
	if len(q.CorrectAnswer) == 1 && q.HasLabel(q.CorrectAnswer) {
		return q, notes
	}

	repaired := "A"
	for _, r := range q.CorrectAnswer {
		if exam.IsLabel(r) && q.HasLabel(string(r)) {
			repaired = string(r)
			break
		}
	}
	notes = append(notes, fmt.Sprintf("单选题答案 %q 已修正为 %q", q.CorrectAnswer, repaired))
	q.CorrectAnswer = repaired
	return q, notes
}

func correctMultipleAnswer(q exam.Question, notes []string) (exam.Question, []string) {
	seen := make(map[rune]bool)
	var labels []rune
	for _, r := range q.CorrectAnswer {
		if exam.IsLabel(r) && q.HasLabel(string(r)) && !seen[r] {
			seen[r] = true
			labels = append(labels, r)
		}
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

	repaired := string(labels)
	if len(labels) < 2 {
		// Two-label placeholder; flagged for human review rather than
		// silently dropped.
		repaired = "AB"
	}

	if repaired != q.CorrectAnswer {
		notes = append(notes, fmt.Sprintf("多选题答案 %q 已修正为 %q", q.CorrectAnswer, repaired))
		q.CorrectAnswer = repaired
	}
	return q, notes
}
