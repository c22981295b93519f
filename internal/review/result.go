package review

// Kind classifies an issue as a hard defect or an advisory.
type Kind string

const (
	KindError   Kind = "error"
	KindWarning Kind = "warning"
)

// Severity grades how much an issue matters.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Issue categories. Free-form grouping labels; the scorer maps them to
// weight classes by table, so new categories degrade gracefully.
const (
	CategoryStemFormat        = "stem-format"
	CategoryLanguageQuality   = "language-quality"
	CategoryOptionStructure   = "option-structure"
	CategoryAnswerFormat      = "answer-format"
	CategoryAnalysisStructure = "analysis-structure"
	CategoryAnalysisContent   = "analysis-content"
	CategorySystem            = "system"
)

// Issue is one discovered deviation from the authoring standard.
// Value type; a fresh list is produced per review call.
type Issue struct {
	Kind        Kind     `json:"kind"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// Result is the outcome of reviewing one question. Derived, never
// persisted independently; always recomputed from the question.
type Result struct {
	// Score is the compliance score in [0,100], distinct from the
	// generator's self-reported quality score.
	Score int `json:"score"`

	// Passed is true iff the score clears the threshold and no
	// high-severity issue is present. A single structural defect vetoes
	// an otherwise high-scoring question.
	Passed bool `json:"passed"`

	Issues      []Issue  `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

// HasSeverity reports whether any issue carries the given severity.
func (r Result) HasSeverity(sev Severity) bool {
	for _, issue := range r.Issues {
		if issue.Severity == sev {
			return true
		}
	}
	return false
}
