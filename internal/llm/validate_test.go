package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

var testSchema = &Schema{
	Name:        "test-question",
	Description: "minimal question shape",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"stem": map[string]any{"type": "string"},
			"correct_answer": map[string]any{
				"type": "string",
			},
		},
		"required": []any{"stem", "correct_answer"},
	},
}

func TestValidateResponseOK(t *testing.T) {
	raw := json.RawMessage(`{"stem":"天空是蓝色的。（ ）","correct_answer":"A"}`)
	if err := validateResponse(testSchema, raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponseMissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"stem":"..."}`)
	err := validateResponse(testSchema, raw)
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestValidateResponseMalformedJSON(t *testing.T) {
	err := validateResponse(testSchema, json.RawMessage(`not json`))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestValidateResponseNilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`whatever`)); err != nil {
		t.Fatalf("nil schema should validate anything, got %v", err)
	}
}
