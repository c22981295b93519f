package itemgen

import (
	"errors"
	"testing"

	"github.com/examforge/examgen/internal/exam"
)

func TestParsePlainJSON(t *testing.T) {
	raw := `{
		"stem": "绩效管理过程的第一个环节是（ ）",
		"options": {"A": "绩效计划", "B": "绩效实施", "C": "绩效考核", "D": "绩效反馈"},
		"correct_answer": "A",
		"analysis": {
			"textbook_reference": "《绩效管理》第一章指出：绩效管理始于绩效计划。",
			"explanation": "四个环节依次为计划、实施、考核、反馈。",
			"conclusion": "本题答案为 A。"
		},
		"quality_score": 0.9
	}`

	q, err := Parse(raw, exam.TypeSingle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Stem != "绩效管理过程的第一个环节是（ ）" {
		t.Errorf("unexpected stem: %q", q.Stem)
	}
	if len(q.Options) != 4 {
		t.Fatalf("expected 4 options, got %d", len(q.Options))
	}
	if q.Options[0].Label != "A" || q.Options[3].Label != "D" {
		t.Errorf("options out of order: %+v", q.Options)
	}
	if q.CorrectAnswer != "A" {
		t.Errorf("unexpected answer: %q", q.CorrectAnswer)
	}
	if q.QualityScore != 0.9 {
		t.Errorf("unexpected quality score: %v", q.QualityScore)
	}
}

func TestParseJSONWrappedInProse(t *testing.T) {
	raw := "好的，以下是生成的题目：\n```json\n" +
		`{"stem":"天空是蓝色的。（ ）","options":["正确","错误"],"correct_answer":"a",` +
		`"analysis":{"textbook_reference":"《常识》","explanation":"因为瑞利散射。","conclusion":"本题答案为 正确。"},` +
		`"quality_score":88}` + "\n```\n希望对你有帮助。"

	q, err := Parse(raw, exam.TypeTrueFalse)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Array options zip against labels in order.
	if len(q.Options) != 2 || q.Options[0].Label != "A" || q.Options[0].Text != "正确" {
		t.Errorf("unexpected options: %+v", q.Options)
	}
	// Answer case is normalized.
	if q.CorrectAnswer != "A" {
		t.Errorf("unexpected answer: %q", q.CorrectAnswer)
	}
	// A 0-100 score is coerced to [0,1].
	if q.QualityScore != 0.88 {
		t.Errorf("unexpected quality score: %v", q.QualityScore)
	}
}

func TestParseBracesInsideStrings(t *testing.T) {
	raw := `前言 {"stem":"集合 {1, 2} 的子集个数是（ ）","options":{"A":"2","B":"3","C":"4","D":"5"},"correct_answer":"C","quality_score":0.8}`

	q, err := Parse(raw, exam.TypeSingle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Stem != "集合 {1, 2} 的子集个数是（ ）" {
		t.Errorf("brace inside string mangled the stem: %q", q.Stem)
	}
}

func TestParseNoJSON(t *testing.T) {
	_, err := Parse("抱歉，我无法完成这个任务。", exam.TypeSingle)
	var noJSON *ErrNoJSON
	if !errors.As(err, &noJSON) {
		t.Fatalf("expected ErrNoJSON, got %v", err)
	}
}

func TestParseMalformedJSON(t *testing.T) {
	_, err := Parse(`{"stem": "x", "options": }`, exam.TypeSingle)
	var malformed *ErrMalformedJSON
	if !errors.As(err, &malformed) {
		t.Fatalf("expected ErrMalformedJSON, got %v", err)
	}
}

func TestParseMissingFields(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"no stem", `{"options":{"A":"x"},"correct_answer":"A"}`, "stem"},
		{"no options", `{"stem":"s","correct_answer":"A"}`, "options"},
		{"no answer", `{"stem":"s","options":{"A":"x"}}`, "correct_answer"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(c.raw, exam.TypeSingle)
			var missing *ErrMissingField
			if !errors.As(err, &missing) {
				t.Fatalf("expected ErrMissingField, got %v", err)
			}
			if missing.Field != c.want {
				t.Errorf("missing field = %q, want %q", missing.Field, c.want)
			}
		})
	}
}

func TestParseQuotedScore(t *testing.T) {
	raw := `{"stem":"s（ ）","options":{"A":"x","B":"y"},"correct_answer":"A","quality_score":"92"}`
	q, err := Parse(raw, exam.TypeTrueFalse)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.QualityScore != 0.92 {
		t.Errorf("quoted 0-100 score should normalize to 0.92, got %v", q.QualityScore)
	}
}

func TestExtractJSONSkipsUnbalanced(t *testing.T) {
	span, ok := extractJSON(`noise { broken {"a":1}`)
	if !ok {
		t.Fatal("expected a balanced span")
	}
	if span != `{"a":1}` {
		t.Errorf("unexpected span: %q", span)
	}
}
