package exam

import "strings"

// QuestionType identifies the authoring format of a question.
type QuestionType string

const (
	// TypeSingle is single-choice: 4 options, exactly one correct label.
	TypeSingle QuestionType = "single"

	// TypeMultiple is multi-choice: 4 options, two or more correct labels.
	TypeMultiple QuestionType = "multiple"

	// TypeTrueFalse is a judgement question: 2 options, answer A or B.
	TypeTrueFalse QuestionType = "true_false"
)

// Difficulty is the requested difficulty band for generation.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// labelAlphabet is the ordered set of option labels in use.
const labelAlphabet = "ABCDE"

// OptionCount returns the required number of options for the type.
func (t QuestionType) OptionCount() int {
	if t == TypeTrueFalse {
		return 2
	}
	return 4
}

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	switch t {
	case TypeSingle, TypeMultiple, TypeTrueFalse:
		return true
	}
	return false
}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Labels returns the first n option labels in display order.
func Labels(n int) []string {
	if n > len(labelAlphabet) {
		n = len(labelAlphabet)
	}
	out := make([]string, n)
	for i := range n {
		out[i] = string(labelAlphabet[i])
	}
	return out
}

// IsLabel reports whether r is a usable option label character.
func IsLabel(r rune) bool {
	return strings.ContainsRune(labelAlphabet, r)
}

// Option is one labeled choice. Slice order is display order.
type Option struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Analysis is the three-part explanation attached to every question:
// a quotation from the source material, the reasoning, and a conclusion
// restating the answer.
type Analysis struct {
	TextbookRef string `json:"textbook_reference"`
	Explanation string `json:"explanation"`
	Conclusion  string `json:"conclusion"`
}

// Question is the canonical question entity, whether AI-generated or
// hand-authored. Passed by value between pipeline stages.
type Question struct {
	// ID addresses the question in batch results. Assigned on generation;
	// may be empty for ad-hoc review input.
	ID string `json:"id,omitempty"`

	Type QuestionType `json:"type"`

	// Stem is the question text shown to the exam taker, excluding options.
	Stem string `json:"stem"`

	Options []Option `json:"options"`

	// CorrectAnswer is one or more option labels concatenated without
	// separators, e.g. "A" or "ACD".
	CorrectAnswer string `json:"correct_answer"`

	Analysis Analysis `json:"analysis"`

	// QualityScore is the generator's self-reported confidence in [0,1].
	// Distinct from the compliance score computed by the reviewer.
	QualityScore float64 `json:"quality_score"`
}

// OptionText returns the text for a label and whether it exists.
func (q Question) OptionText(label string) (string, bool) {
	for _, o := range q.Options {
		if o.Label == label {
			return o.Text, true
		}
	}
	return "", false
}

// HasLabel reports whether the option set contains the label.
func (q Question) HasLabel(label string) bool {
	_, ok := q.OptionText(label)
	return ok
}

// AnswerDisplay is the answer as shown to a reviewer: the option text for
// true/false questions, the label string otherwise.
func (q Question) AnswerDisplay() string {
	if q.Type == TypeTrueFalse {
		if text, ok := q.OptionText(q.CorrectAnswer); ok {
			return text
		}
	}
	return q.CorrectAnswer
}

// NormalizeQualityScore maps a generator-reported score onto [0,1].
// Generators report on either a 0-1 or 0-100 scale; values above 1 are
// taken as percentages.
func NormalizeQualityScore(v float64) float64 {
	if v > 1 {
		v = v / 100
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Params is the input to question generation.
type Params struct {
	// Content is the study-material text questions are drawn from.
	Content string

	Type       QuestionType
	Difficulty Difficulty

	// KnowledgePoint optionally focuses generation on one topic within
	// the material.
	KnowledgePoint string
}
