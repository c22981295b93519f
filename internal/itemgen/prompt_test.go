package itemgen

import (
	"strings"
	"testing"

	"github.com/examforge/examgen/internal/exam"
)

func testParams(t exam.QuestionType) exam.Params {
	return exam.Params{
		Content:        strings.Repeat("绩效管理是指管理者与员工之间的持续沟通过程。", 10),
		Type:           t,
		Difficulty:     exam.DifficultyMedium,
		KnowledgePoint: "绩效管理",
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	p := testParams(exam.TypeSingle)

	a := BuildPrompt(p, cfg)
	b := BuildPrompt(p, cfg)
	if a != b {
		t.Error("prompt must be deterministic for identical input")
	}
}

func TestBuildPromptEmbedsRulesAndExample(t *testing.T) {
	cfg := DefaultConfig()

	p := BuildPrompt(testParams(exam.TypeTrueFalse), cfg)
	for _, want := range []string{
		cfg.Terminator,
		cfg.AffirmText,
		cfg.NegateText,
		cfg.ConclusionPrefix,
		"判断题",
		`"stem"`,
		`"correct_answer"`,
		`"textbook_reference"`,
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	p = BuildPrompt(testParams(exam.TypeMultiple), cfg)
	if !strings.Contains(p, "多选题") || !strings.Contains(p, "ACD") {
		t.Error("multiple-choice prompt should show the multi-label answer convention")
	}
}

func TestBuildPromptWithoutCitationMarkers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CitationMarkers = nil

	p := BuildPrompt(testParams(exam.TypeSingle), cfg)
	if !strings.Contains(p, "textbook_reference") {
		t.Error("citation rule should survive without a marker example")
	}
	if strings.Contains(p, "（如 ") {
		t.Error("marker example should be omitted when no markers are configured")
	}
}

func TestBuildPromptIncludesKnowledgePoint(t *testing.T) {
	p := BuildPrompt(testParams(exam.TypeSingle), DefaultConfig())
	if !strings.Contains(p, "绩效管理") {
		t.Error("prompt should carry the knowledge point")
	}
}

func TestSelectContentShortPassthrough(t *testing.T) {
	got := selectContent("短文本", 2500, KeywordScorer{})
	if got != "短文本" {
		t.Errorf("short content should pass through, got %q", got)
	}
}

func TestSelectContentPrefersKeywordDenseParagraphs(t *testing.T) {
	filler := strings.Repeat("无关内容。", 30)
	dense := "绩效管理的定义是指管理者与员工持续沟通的过程，包括计划、实施、考核与反馈。"

	var parts []string
	for range 30 {
		parts = append(parts, filler)
	}
	parts = append(parts, dense)
	content := strings.Join(parts, "\n")

	scorer := KeywordScorer{Keywords: []string{"定义", "包括", "绩效管理"}}
	got := selectContent(content, 300, scorer)

	if !strings.Contains(got, dense) {
		t.Error("keyword-dense paragraph should survive truncation")
	}
	if len([]rune(got)) > 300 {
		t.Errorf("selected content exceeds budget: %d runes", len([]rune(got)))
	}
}

func TestSelectContentFallsBackToPrefix(t *testing.T) {
	// Every paragraph is bigger than the budget, so scored selection
	// yields nothing and prefix truncation takes over.
	content := strings.Repeat("一", 500) + "\n" + strings.Repeat("二", 500)
	got := selectContent(content, 100, KeywordScorer{})
	if len([]rune(got)) != 100 {
		t.Errorf("expected a 100-rune prefix, got %d runes", len([]rune(got)))
	}
	if !strings.HasPrefix(got, "一") {
		t.Errorf("fallback should be a prefix of the material")
	}
}
