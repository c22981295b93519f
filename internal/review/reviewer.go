// Package review scores generated exam questions against a fixed
// authoring standard. Every check is deterministic: the same question
// and ruleset always produce the same result, so review output can be
// compared across runs.
package review

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/examforge/examgen/internal/exam"
)

// Reviewer applies a Ruleset to questions. Safe for concurrent use;
// it holds no mutable state.
type Reviewer struct {
	rules Ruleset
}

// New returns a reviewer enforcing the given ruleset.
func New(rules Ruleset) *Reviewer {
	return &Reviewer{rules: rules}
}

// Review inspects one question and returns its compliance result.
func (r *Reviewer) Review(q exam.Question) Result {
	var issues []Issue
	issues = append(issues, r.checkStem(q)...)
	issues = append(issues, r.checkOptions(q)...)
	issues = append(issues, r.checkAnalysis(q)...)

	score := 100
	for _, issue := range issues {
		score -= r.rules.deduction(issue)
	}
	if score < 0 {
		score = 0
	}

	res := Result{
		Score:       score,
		Issues:      issues,
		Suggestions: suggestionsFor(issues),
	}
	res.Passed = score >= r.rules.PassThreshold && !res.HasSeverity(SeverityHigh)
	return res
}

// BatchReview reviews a slice of questions and keys the results by
// question ID. A panic while reviewing one question is contained: that
// question gets a failing system result and the rest of the batch is
// unaffected.
func (r *Reviewer) BatchReview(questions []exam.Question) map[string]Result {
	out := make(map[string]Result, len(questions))
	for i, q := range questions {
		id := q.ID
		if id == "" {
			id = fmt.Sprintf("item-%d", i+1)
		}
		out[id] = r.safeReview(q)
	}
	return out
}

func (r *Reviewer) safeReview(q exam.Question) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = Result{
				Score:  0,
				Passed: false,
				Issues: []Issue{{
					Kind:        KindError,
					Category:    CategorySystem,
					Description: fmt.Sprintf("审核过程异常: %v", p),
					Severity:    SeverityHigh,
				}},
				Suggestions: []string{"该题审核失败，请人工复核"},
			}
		}
	}()
	return r.Review(q)
}

func (r *Reviewer) checkStem(q exam.Question) []Issue {
	var issues []Issue
	stem := strings.TrimSpace(q.Stem)

	if stem == "" {
		issues = append(issues, Issue{
			Kind:        KindError,
			Category:    CategoryStemFormat,
			Description: "题干为空",
			Severity:    SeverityHigh,
		})
		return issues
	}

	if !strings.HasSuffix(stem, r.rules.Terminator) {
		issues = append(issues, Issue{
			Kind:        KindError,
			Category:    CategoryStemFormat,
			Description: fmt.Sprintf("题干未以 %q 结尾", r.rules.Terminator),
			Severity:    SeverityHigh,
		})
	}

	switch n := utf8.RuneCountInString(stem); {
	case n < r.rules.StemMinLen:
		issues = append(issues, Issue{
			Kind:        KindWarning,
			Category:    CategoryStemFormat,
			Description: fmt.Sprintf("题干过短（%d 字，建议不少于 %d 字）", n, r.rules.StemMinLen),
			Severity:    SeverityLow,
		})
	case n > r.rules.StemMaxLen:
		issues = append(issues, Issue{
			Kind:        KindWarning,
			Category:    CategoryStemFormat,
			Description: fmt.Sprintf("题干过长（%d 字，建议不超过 %d 字）", n, r.rules.StemMaxLen),
			Severity:    SeverityMedium,
		})
	}

	if found := containedIn(stem, r.rules.HedgingPhrases); len(found) > 0 {
		issues = append(issues, Issue{
			Kind:        KindWarning,
			Category:    CategoryLanguageQuality,
			Description: fmt.Sprintf("题干含模糊措辞: %s", strings.Join(found, "、")),
			Severity:    SeverityMedium,
		})
	}

	if found := containedIn(stem, r.rules.DoubleNegations); len(found) > 0 {
		issues = append(issues, Issue{
			Kind:        KindWarning,
			Category:    CategoryLanguageQuality,
			Description: fmt.Sprintf("题干含双重否定: %s", strings.Join(found, "、")),
			Severity:    SeverityMedium,
		})
	}

	return issues
}

func (r *Reviewer) checkOptions(q exam.Question) []Issue {
	var issues []Issue

	if len(q.Options) == 0 {
		issues = append(issues, Issue{
			Kind:        KindError,
			Category:    CategoryOptionStructure,
			Description: "选项缺失",
			Severity:    SeverityHigh,
		})
		return issues
	}

	if want := q.Type.OptionCount(); len(q.Options) != want {
		issues = append(issues, Issue{
			Kind:        KindError,
			Category:    CategoryOptionStructure,
			Description: fmt.Sprintf("选项数量为 %d，应为 %d", len(q.Options), want),
			Severity:    SeverityHigh,
		})
	}

	var total int
	for _, opt := range q.Options {
		n := utf8.RuneCountInString(opt.Text)
		total += n
		if strings.TrimSpace(opt.Text) == "" {
			issues = append(issues, Issue{
				Kind:        KindError,
				Category:    CategoryOptionStructure,
				Description: fmt.Sprintf("选项 %s 内容为空", opt.Label),
				Severity:    SeverityHigh,
			})
			continue
		}
		switch {
		case n < r.rules.OptionMinLen:
			issues = append(issues, Issue{
				Kind:        KindWarning,
				Category:    CategoryOptionStructure,
				Description: fmt.Sprintf("选项 %s 过短", opt.Label),
				Severity:    SeverityLow,
			})
		case n > r.rules.OptionMaxLen:
			issues = append(issues, Issue{
				Kind:        KindWarning,
				Category:    CategoryOptionStructure,
				Description: fmt.Sprintf("选项 %s 过长（%d 字）", opt.Label, n),
				Severity:    SeverityMedium,
			})
		}
	}

	// Uniformity: an option much longer or shorter than its siblings
	// often telegraphs the answer. True/false options are fixed text,
	// so only choice questions are checked.
	if q.Type != exam.TypeTrueFalse && len(q.Options) >= 2 {
		mean := float64(total) / float64(len(q.Options))
		for _, opt := range q.Options {
			n := float64(utf8.RuneCountInString(opt.Text))
			if mean > 0 && abs(n-mean) > r.rules.LengthSpread*mean {
				issues = append(issues, Issue{
					Kind:        KindWarning,
					Category:    CategoryOptionStructure,
					Description: "选项长度差异过大",
					Severity:    SeverityLow,
				})
				break
			}
		}
	}

	issues = append(issues, r.checkAnswer(q)...)
	return issues
}

func (r *Reviewer) checkAnswer(q exam.Question) []Issue {
	var issues []Issue
	answer := strings.TrimSpace(q.CorrectAnswer)

	if answer == "" {
		return append(issues, Issue{
			Kind:        KindError,
			Category:    CategoryAnswerFormat,
			Description: "答案为空",
			Severity:    SeverityHigh,
		})
	}

	for _, ch := range answer {
		if !q.HasLabel(string(ch)) {
			return append(issues, Issue{
				Kind:        KindError,
				Category:    CategoryAnswerFormat,
				Description: fmt.Sprintf("答案 %q 含未提供的选项标号", answer),
				Severity:    SeverityHigh,
			})
		}
	}

	n := utf8.RuneCountInString(answer)
	switch q.Type {
	case exam.TypeSingle, exam.TypeTrueFalse:
		if n != 1 {
			issues = append(issues, Issue{
				Kind:        KindError,
				Category:    CategoryAnswerFormat,
				Description: fmt.Sprintf("答案 %q 应为单个选项标号", answer),
				Severity:    SeverityHigh,
			})
		}
	case exam.TypeMultiple:
		switch {
		case n < 2:
			issues = append(issues, Issue{
				Kind:        KindError,
				Category:    CategoryAnswerFormat,
				Description: "多选题答案不足 2 项",
				Severity:    SeverityHigh,
			})
		case n > 3:
			issues = append(issues, Issue{
				Kind:        KindWarning,
				Category:    CategoryAnswerFormat,
				Description: fmt.Sprintf("多选题答案为 %d 项，通常为 2-3 项", n),
				Severity:    SeverityMedium,
			})
		}
	}

	return issues
}

func (r *Reviewer) checkAnalysis(q exam.Question) []Issue {
	var issues []Issue
	a := q.Analysis

	missing := func(label string) {
		issues = append(issues, Issue{
			Kind:        KindError,
			Category:    CategoryAnalysisStructure,
			Description: label + "缺失",
			Severity:    SeverityHigh,
		})
	}

	ref := strings.TrimSpace(a.TextbookRef)
	if ref == "" {
		missing("教材原文")
	} else if len(containedIn(ref, r.rules.CitationMarkers)) == 0 {
		issues = append(issues, Issue{
			Kind:        KindWarning,
			Category:    CategoryAnalysisContent,
			Description: "教材原文未包含出处标识",
			Severity:    SeverityMedium,
		})
	}

	if strings.TrimSpace(a.Explanation) == "" {
		missing("分析说明")
	}

	conclusion := strings.TrimSpace(a.Conclusion)
	if conclusion == "" {
		missing("结论")
	} else if !strings.Contains(conclusion, r.rules.ConclusionPrefix) ||
		!strings.Contains(conclusion, q.AnswerDisplay()) {
		issues = append(issues, Issue{
			Kind:        KindWarning,
			Category:    CategoryAnalysisContent,
			Description: fmt.Sprintf("结论应以 %q 开头并重述答案", r.rules.ConclusionPrefix),
			Severity:    SeverityLow,
		})
	}

	total := utf8.RuneCountInString(a.TextbookRef) +
		utf8.RuneCountInString(a.Explanation) +
		utf8.RuneCountInString(a.Conclusion)
	if total > r.rules.AnalysisBudget {
		issues = append(issues, Issue{
			Kind:        KindWarning,
			Category:    CategoryAnalysisContent,
			Description: fmt.Sprintf("解析总长 %d 字，超出 %d 字上限", total, r.rules.AnalysisBudget),
			Severity:    SeverityLow,
		})
	}

	return issues
}

var suggestionTexts = map[string]string{
	CategoryStemFormat:        "检查题干是否为以“（ ）”结尾的完整陈述句",
	CategoryLanguageQuality:   "删除模糊措辞或双重否定，使题干表述明确",
	CategoryOptionStructure:   "补全或精简选项，保持数量与长度规范",
	CategoryAnswerFormat:      "核对答案与题型的标号规则",
	CategoryAnalysisStructure: "补全教材原文、分析说明与结论三部分",
	CategoryAnalysisContent:   "在解析中注明教材出处并以规范句式重述答案",
}

// suggestionsFor derives one actionable suggestion per issue category,
// in a stable order.
func suggestionsFor(issues []Issue) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, issue := range issues {
		if !seen[issue.Category] {
			seen[issue.Category] = true
			categories = append(categories, issue.Category)
		}
	}
	sort.Strings(categories)

	var out []string
	for _, c := range categories {
		if text, ok := suggestionTexts[c]; ok {
			out = append(out, text)
		}
	}
	return out
}

// containedIn returns the phrases that appear in s, preserving the
// order of the phrase list.
func containedIn(s string, phrases []string) []string {
	var found []string
	for _, p := range phrases {
		if p != "" && strings.Contains(s, p) {
			found = append(found, p)
		}
	}
	return found
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
