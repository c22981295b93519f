package review

// Ruleset carries the authoring standard the reviewer enforces. All
// literals live here so a deployment can adjust conventions without
// touching check logic. The zero value is not usable; start from
// DefaultRuleset.
type Ruleset struct {
	// Terminator is the bracket placeholder a stem must end with.
	Terminator string

	// Stem length bounds, in runes, including the terminator.
	StemMinLen int
	StemMaxLen int

	// Option text length bounds, in runes.
	OptionMinLen int
	OptionMaxLen int

	// LengthSpread is the tolerated relative deviation of one option's
	// length from the mean before uniformity is flagged.
	LengthSpread float64

	// AnalysisBudget caps the combined rune length of the three
	// analysis fields.
	AnalysisBudget int

	// PassThreshold is the minimum compliance score to pass.
	PassThreshold int

	// HedgingPhrases are vague qualifiers a stem must not contain.
	HedgingPhrases []string

	// DoubleNegations are negation pairs that make a stem ambiguous.
	DoubleNegations []string

	// CitationMarkers are substrings that make a textbook reference
	// look like an actual citation.
	CitationMarkers []string

	// ConclusionPrefix is the phrasing the analysis conclusion should
	// open with, followed by the answer restated.
	ConclusionPrefix string
}

// DefaultRuleset returns the standard ruleset for Chinese exam items.
func DefaultRuleset() Ruleset {
	return Ruleset{
		Terminator:     "（ ）",
		StemMinLen:     10,
		StemMaxLen:     150,
		OptionMinLen:   2,
		OptionMaxLen:   80,
		LengthSpread:   0.5,
		AnalysisBudget: 500,
		PassThreshold:  70,
		HedgingPhrases: []string{"可能", "大概", "也许", "或许", "一般来说"},
		DoubleNegations: []string{
			"不是不", "没有不", "不能不", "并非不", "不会不",
		},
		CitationMarkers:  []string{"《", "教材", "原文", "第", "章", "节"},
		ConclusionPrefix: "本题答案为",
	}
}

// deductions maps weight class and severity to points removed from the
// base score of 100. Stem defects cost the most; analysis defects the
// least.
var deductions = map[string]map[Severity]int{
	"stem":     {SeverityHigh: 20, SeverityMedium: 10, SeverityLow: 4},
	"option":   {SeverityHigh: 15, SeverityMedium: 8, SeverityLow: 3},
	"analysis": {SeverityHigh: 10, SeverityMedium: 5, SeverityLow: 2},
}

// weightClass buckets an issue category into a deduction class.
func weightClass(category string) string {
	switch category {
	case CategoryStemFormat, CategoryLanguageQuality:
		return "stem"
	case CategoryAnalysisStructure, CategoryAnalysisContent:
		return "analysis"
	default:
		return "option"
	}
}

func (rs Ruleset) deduction(issue Issue) int {
	return deductions[weightClass(issue.Category)][issue.Severity]
}
