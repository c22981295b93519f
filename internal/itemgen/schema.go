package itemgen

import "github.com/examforge/examgen/internal/llm"

// QuestionSchema is the structured-output schema for question
// generation. Providers with native JSON-schema support are asked for
// this shape directly; the parser still copes with prose-wrapped output
// from providers that cannot honor it.
//
// Options are requested as a label→text object; the parser also accepts
// a bare array and zips it against labels.
var QuestionSchema = &llm.Schema{
	Name:        "exam-question",
	Description: "A single exam question with options, answer, and three-part analysis",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"stem": map[string]any{
				"type":        "string",
				"description": "The question text, a declarative sentence ending with the blank marker",
			},
			"options": map[string]any{
				"type":        "object",
				"description": "Option label to option text, labels A..E in order",
				"additionalProperties": map[string]any{
					"type": "string",
				},
			},
			"correct_answer": map[string]any{
				"type":        "string",
				"description": "One or more option labels concatenated without separators",
			},
			"analysis": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"textbook_reference": map[string]any{
						"type":        "string",
						"description": "Quotation from the source material with a citation marker",
					},
					"explanation": map[string]any{
						"type":        "string",
						"description": "Reasoning for the answer",
					},
					"conclusion": map[string]any{
						"type":        "string",
						"description": "Conclusion restating the answer",
					},
				},
				"required": []any{"textbook_reference", "explanation", "conclusion"},
			},
			"quality_score": map[string]any{
				"type":        "number",
				"description": "Self-assessed quality in [0,1]",
			},
		},
		"required": []any{"stem", "options", "correct_answer", "analysis", "quality_score"},
	},
}
