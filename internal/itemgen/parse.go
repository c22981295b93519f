package itemgen

import (
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/examforge/examgen/internal/exam"
)

// rawQuestion is the model's output before normalization. Options and
// quality_score are kept raw because models vary their representation:
// options arrive as an object or an array, scores as 0-1, 0-100, or a
// quoted number.
type rawQuestion struct {
	Stem          string          `json:"stem"`
	Options       json.RawMessage `json:"options"`
	CorrectAnswer string          `json:"correct_answer"`
	Analysis      rawAnalysis     `json:"analysis"`
	QualityScore  json.RawMessage `json:"quality_score"`
}

type rawAnalysis struct {
	TextbookRef string `json:"textbook_reference"`
	Explanation string `json:"explanation"`
	Conclusion  string `json:"conclusion"`
}

// Parse extracts the question JSON from a model completion and
// normalizes it into the canonical shape. The result is structurally
// valid but not yet policy-checked; compliance is the reviewer's job.
func Parse(raw string, qtype exam.QuestionType) (exam.Question, error) {
	span, ok := extractJSON(raw)
	if !ok {
		return exam.Question{}, &ErrNoJSON{Raw: raw}
	}

	var rq rawQuestion
	if err := json.Unmarshal([]byte(span), &rq); err != nil {
		return exam.Question{}, &ErrMalformedJSON{Err: err}
	}

	if strings.TrimSpace(rq.Stem) == "" {
		return exam.Question{}, &ErrMissingField{Field: "stem"}
	}
	options, err := normalizeOptions(rq.Options)
	if err != nil {
		return exam.Question{}, err
	}
	if len(options) == 0 {
		return exam.Question{}, &ErrMissingField{Field: "options"}
	}
	answer := strings.ToUpper(strings.TrimSpace(rq.CorrectAnswer))
	if answer == "" {
		return exam.Question{}, &ErrMissingField{Field: "correct_answer"}
	}

	return exam.Question{
		Type:          qtype,
		Stem:          strings.TrimSpace(rq.Stem),
		Options:       options,
		CorrectAnswer: answer,
		Analysis: exam.Analysis{
			TextbookRef: strings.TrimSpace(rq.Analysis.TextbookRef),
			Explanation: strings.TrimSpace(rq.Analysis.Explanation),
			Conclusion:  strings.TrimSpace(rq.Analysis.Conclusion),
		},
		QualityScore: exam.NormalizeQualityScore(parseScore(rq.QualityScore)),
	}, nil
}

// normalizeOptions accepts either a label→text object or a bare array
// zipped against labels A, B, C, D, E in order.
func normalizeOptions(raw json.RawMessage) ([]exam.Option, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var asMap map[string]string
	if err := json.Unmarshal(raw, &asMap); err == nil {
		labels := make([]string, 0, len(asMap))
		for label := range asMap {
			labels = append(labels, strings.ToUpper(strings.TrimSpace(label)))
		}
		// Label order is display order; labels are single letters so
		// lexical order matches.
		sort.Strings(labels)
		out := make([]exam.Option, 0, len(labels))
		for _, label := range labels {
			text := asMap[label]
			if text == "" {
				// Original key may have had spacing or case differences.
				for k, v := range asMap {
					if strings.ToUpper(strings.TrimSpace(k)) == label {
						text = v
						break
					}
				}
			}
			out = append(out, exam.Option{Label: label, Text: strings.TrimSpace(text)})
		}
		return out, nil
	}

	var asList []string
	if err := json.Unmarshal(raw, &asList); err == nil {
		labels := exam.Labels(len(asList))
		out := make([]exam.Option, 0, len(labels))
		for i, label := range labels {
			out = append(out, exam.Option{Label: label, Text: strings.TrimSpace(asList[i])})
		}
		return out, nil
	}

	return nil, &ErrMalformedJSON{Err: errors.New("options is neither an object nor an array")}
}

// parseScore reads a numeric or quoted-numeric quality score. Absent or
// unreadable scores default to 0.
func parseScore(raw json.RawMessage) float64 {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// extractJSON returns the first balanced {...} span in s. Models wrap
// JSON in prose and code fences, so scan rather than unmarshal
// directly. Braces inside JSON strings are skipped.
func extractJSON(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	for start >= 0 {
		depth := 0
		inString := false
		escaped := false
		for i := start; i < len(s); i++ {
			c := s[i]
			if inString {
				switch {
				case escaped:
					escaped = false
				case c == '\\':
					escaped = true
				case c == '"':
					inString = false
				}
				continue
			}
			switch c {
			case '"':
				inString = true
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
		// Unbalanced from this start; try the next opening brace.
		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			break
		}
		start = start + 1 + next
	}
	return "", false
}
