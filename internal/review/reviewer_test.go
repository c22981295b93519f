package review

import (
	"reflect"
	"strings"
	"testing"

	"github.com/examforge/examgen/internal/exam"
)

func goodTrueFalse() exam.Question {
	return exam.Question{
		ID:   "q-tf-1",
		Type: exam.TypeTrueFalse,
		Stem: "绩效管理是一个持续的循环过程。（ ）",
		Options: []exam.Option{
			{Label: "A", Text: "正确"},
			{Label: "B", Text: "错误"},
		},
		CorrectAnswer: "A",
		Analysis: exam.Analysis{
			TextbookRef: "《绩效管理》第一章指出，绩效管理是一个包括计划、辅导、考核与反馈的持续循环过程。",
			Explanation: "题干表述与教材定义一致，绩效管理并非一次性活动，而是循环往复的管理过程。",
			Conclusion:  "本题答案为 正确",
		},
		QualityScore: 0.9,
	}
}

func goodSingle() exam.Question {
	return exam.Question{
		ID:   "q-sc-1",
		Type: exam.TypeSingle,
		Stem: "绩效管理循环的起点是（ ）",
		Options: []exam.Option{
			{Label: "A", Text: "绩效计划"},
			{Label: "B", Text: "绩效辅导"},
			{Label: "C", Text: "绩效考核"},
			{Label: "D", Text: "绩效反馈"},
		},
		CorrectAnswer: "A",
		Analysis: exam.Analysis{
			TextbookRef: "教材第二章指出，绩效计划是绩效管理循环的第一个环节。",
			Explanation: "绩效管理以计划为起点，随后进入辅导、考核与反馈环节。",
			Conclusion:  "本题答案为 A",
		},
		QualityScore: 0.85,
	}
}

func TestReviewGoodTrueFalsePasses(t *testing.T) {
	res := New(DefaultRuleset()).Review(goodTrueFalse())

	if !res.Passed {
		t.Fatalf("Passed = false, issues: %+v", res.Issues)
	}
	if res.Score < 90 {
		t.Errorf("Score = %d, want >= 90", res.Score)
	}
	if res.HasSeverity(SeverityHigh) {
		t.Errorf("unexpected high-severity issue: %+v", res.Issues)
	}
}

func TestReviewStemDefects(t *testing.T) {
	q := goodTrueFalse()
	q.Stem = "绩效管理不是不重要的日常管理活动"

	res := New(DefaultRuleset()).Review(q)

	if res.Passed {
		t.Fatal("Passed = true for stem without terminator")
	}

	var highStem, mediumLanguage bool
	for _, issue := range res.Issues {
		if issue.Category == CategoryStemFormat && issue.Severity == SeverityHigh {
			highStem = true
		}
		if issue.Category == CategoryLanguageQuality && issue.Severity == SeverityMedium {
			mediumLanguage = true
		}
	}
	if !highStem {
		t.Errorf("missing high stem-format issue, got %+v", res.Issues)
	}
	if !mediumLanguage {
		t.Errorf("missing medium language-quality issue for double negation, got %+v", res.Issues)
	}
}

func TestReviewHighSeverityVetoesScore(t *testing.T) {
	q := goodSingle()
	q.Options = q.Options[:3]
	q.CorrectAnswer = "A"

	res := New(DefaultRuleset()).Review(q)

	if res.Score < DefaultRuleset().PassThreshold {
		t.Fatalf("Score = %d, want above threshold for this test", res.Score)
	}
	if res.Passed {
		t.Error("Passed = true despite high-severity option issue")
	}
}

func TestReviewAnswerCardinality(t *testing.T) {
	base := goodSingle()
	base.Type = exam.TypeMultiple
	base.Analysis.Conclusion = "本题答案为 AB"

	t.Run("too few", func(t *testing.T) {
		q := base
		q.CorrectAnswer = "A"
		q.Analysis.Conclusion = "本题答案为 A"
		res := New(DefaultRuleset()).Review(q)
		if res.Passed {
			t.Error("Passed = true for one-label multiple choice answer")
		}
		if !res.HasSeverity(SeverityHigh) {
			t.Errorf("want high-severity answer issue, got %+v", res.Issues)
		}
	})

	t.Run("too many", func(t *testing.T) {
		q := base
		q.CorrectAnswer = "ABCD"
		q.Analysis.Conclusion = "本题答案为 ABCD"
		res := New(DefaultRuleset()).Review(q)
		if res.HasSeverity(SeverityHigh) {
			t.Errorf("four-label answer should warn, not error: %+v", res.Issues)
		}
		if !res.Passed {
			t.Errorf("Passed = false, score %d, issues %+v", res.Score, res.Issues)
		}
	})

	t.Run("unknown label", func(t *testing.T) {
		q := base
		q.CorrectAnswer = "AE"
		res := New(DefaultRuleset()).Review(q)
		if res.Passed {
			t.Error("Passed = true for answer with unknown label")
		}
	})
}

func TestReviewAnalysisChecks(t *testing.T) {
	q := goodSingle()
	q.Analysis.TextbookRef = ""
	q.Analysis.Conclusion = "答案显然如上"

	res := New(DefaultRuleset()).Review(q)

	if res.Passed {
		t.Fatal("Passed = true with missing textbook reference")
	}

	var structuralHigh, conclusionWarn bool
	for _, issue := range res.Issues {
		if issue.Category == CategoryAnalysisStructure && issue.Severity == SeverityHigh {
			structuralHigh = true
		}
		if issue.Category == CategoryAnalysisContent &&
			strings.Contains(issue.Description, "结论") {
			conclusionWarn = true
		}
	}
	if !structuralHigh {
		t.Errorf("missing analysis-structure error: %+v", res.Issues)
	}
	if !conclusionWarn {
		t.Errorf("missing conclusion phrasing warning: %+v", res.Issues)
	}
}

func TestReviewDeterministic(t *testing.T) {
	q := goodSingle()
	q.Stem = "以下哪项可能是绩效考核的主要依据"
	r := New(DefaultRuleset())

	a, b := r.Review(q), r.Review(q)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("review not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestBatchReviewKeysAndContainment(t *testing.T) {
	questions := []exam.Question{goodTrueFalse(), {Type: exam.TypeSingle}}

	results := New(DefaultRuleset()).BatchReview(questions)

	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if !results["q-tf-1"].Passed {
		t.Error("good question did not pass in batch")
	}
	anon, ok := results["item-2"]
	if !ok {
		t.Fatal("missing fallback key for question without ID")
	}
	if anon.Passed {
		t.Error("empty question passed review")
	}

	// A nil reviewer panics inside Review; the batch path must absorb
	// it and keep scoring the other questions.
	var broken *Reviewer
	contained := broken.BatchReview(questions)
	for id, res := range contained {
		if res.Passed || res.Score != 0 {
			t.Errorf("result %s = %+v, want failing system result", id, res)
		}
		if len(res.Issues) != 1 || res.Issues[0].Category != CategorySystem {
			t.Errorf("result %s issues = %+v, want one system issue", id, res.Issues)
		}
	}
}

func TestSuggestionsDeduplicated(t *testing.T) {
	q := goodTrueFalse()
	q.Stem = "短。"

	res := New(DefaultRuleset()).Review(q)

	seen := make(map[string]int)
	for _, s := range res.Suggestions {
		seen[s]++
		if seen[s] > 1 {
			t.Errorf("duplicate suggestion %q", s)
		}
	}
	if len(res.Suggestions) == 0 {
		t.Error("no suggestions for defective question")
	}
}
