package itemgen

import "time"

// Config controls the generation pipeline. The domain literals (stem
// terminator, answer texts, affirmative markers) are configuration, not
// constants, so authoring conventions can be changed without touching
// pipeline code.
type Config struct {
	// AttemptQuota is the number of attempts allowed against a single
	// model before falling back to the next one.
	AttemptQuota int

	// MinContentLen is the minimum material length in runes; shorter
	// inputs fail fast before any model call.
	MinContentLen int

	// ContentBudget bounds the material text embedded in the prompt,
	// in runes.
	ContentBudget int

	// Scorer ranks paragraphs for content selection. Defaults to a
	// keyword-density scorer when nil.
	Scorer RelevanceScorer

	// MaxTokens and Temperature are passed through to the model call.
	MaxTokens   int
	Temperature float64

	// BatchDelay paces batch generation between items when a real
	// credential is configured.
	BatchDelay time.Duration

	// ReviewThreshold, when positive, gates every candidate through the
	// compliance reviewer: a failing review or a score below the
	// threshold consumes an attempt within the same model, exactly like
	// a parse failure. Zero disables the gate.
	ReviewThreshold int

	// Terminator is the sequence every stem must end with.
	Terminator string

	// AffirmText and NegateText are the fixed option texts for
	// true/false questions.
	AffirmText string
	NegateText string

	// AffirmMarkers and NegateMarkers are substrings that mark an answer
	// as affirmative or negated when repairing true/false answers.
	// Negation is checked first: "不对" negates even though it contains
	// the affirmative "对".
	AffirmMarkers []string
	NegateMarkers []string

	// PlaceholderOption fills padded option slots during format repair.
	PlaceholderOption string

	// ConclusionPrefix is the templated phrase the analysis conclusion
	// must open with, e.g. "本题答案为".
	ConclusionPrefix string

	// CitationMarkers mark a textbook reference as properly sourced.
	CitationMarkers []string
}

// DefaultConfig returns the standard pipeline configuration with the
// Chinese authoring conventions.
func DefaultConfig() Config {
	return Config{
		AttemptQuota:      2,
		MinContentLen:     100,
		ContentBudget:     2500,
		MaxTokens:         1024,
		Temperature:       0.7,
		BatchDelay:        time.Second,
		Terminator:        "（ ）",
		AffirmText:        "正确",
		NegateText:        "错误",
		AffirmMarkers:     []string{"正确", "对", "是", "√", "T", "true", "A"},
		NegateMarkers:     []string{"不", "没", "非", "错", "否", "×", "F", "false"},
		PlaceholderOption: "（选项缺失，需人工补充）",
		ConclusionPrefix:  "本题答案为",
		CitationMarkers:   []string{"《", "教材", "原文"},
	}
}
