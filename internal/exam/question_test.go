package exam

import "testing"

func TestOptionCount(t *testing.T) {
	if got := TypeTrueFalse.OptionCount(); got != 2 {
		t.Errorf("true_false option count = %d, want 2", got)
	}
	if got := TypeSingle.OptionCount(); got != 4 {
		t.Errorf("single option count = %d, want 4", got)
	}
	if got := TypeMultiple.OptionCount(); got != 4 {
		t.Errorf("multiple option count = %d, want 4", got)
	}
}

func TestLabels(t *testing.T) {
	got := Labels(4)
	want := []string{"A", "B", "C", "D"}
	if len(got) != len(want) {
		t.Fatalf("Labels(4) returned %d labels", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("label %d = %q, want %q", i, got[i], want[i])
		}
	}
	if got := Labels(10); len(got) != 5 {
		t.Errorf("Labels(10) should cap at alphabet size, got %d", len(got))
	}
}

func TestNormalizeQualityScore(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{92, 0.92},
		{0.92, 0.92},
		{100, 1},
		{1, 1},
		{0, 0},
		{-3, 0},
		{250, 1},
	}
	for _, c := range cases {
		if got := NormalizeQualityScore(c.in); got != c.want {
			t.Errorf("NormalizeQualityScore(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestAnswerDisplay(t *testing.T) {
	tf := Question{
		Type:          TypeTrueFalse,
		Options:       []Option{{Label: "A", Text: "正确"}, {Label: "B", Text: "错误"}},
		CorrectAnswer: "A",
	}
	if got := tf.AnswerDisplay(); got != "正确" {
		t.Errorf("true/false answer display = %q, want 正确", got)
	}

	mc := Question{
		Type:          TypeMultiple,
		Options:       []Option{{Label: "A", Text: "x"}, {Label: "B", Text: "y"}},
		CorrectAnswer: "AB",
	}
	if got := mc.AnswerDisplay(); got != "AB" {
		t.Errorf("multiple answer display = %q, want AB", got)
	}
}

func TestOptionText(t *testing.T) {
	q := Question{Options: []Option{{Label: "A", Text: "one"}, {Label: "B", Text: "two"}}}
	if text, ok := q.OptionText("B"); !ok || text != "two" {
		t.Errorf("OptionText(B) = %q, %v", text, ok)
	}
	if _, ok := q.OptionText("Z"); ok {
		t.Error("OptionText(Z) should not exist")
	}
}
