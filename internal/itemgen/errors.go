package itemgen

import "fmt"

// ErrPrecondition indicates generation cannot start: no credentialed
// model, or material too short. Fatal, never retried.
type ErrPrecondition struct {
	Reason string
}

func (e *ErrPrecondition) Error() string {
	return "generation precondition failed: " + e.Reason
}

// ErrNoJSON indicates no balanced JSON object was found in the model's
// completion text.
type ErrNoJSON struct {
	Raw string
}

func (e *ErrNoJSON) Error() string {
	return "no JSON object found in model output"
}

// ErrMalformedJSON indicates the extracted JSON span failed to parse.
type ErrMalformedJSON struct {
	Err error
}

func (e *ErrMalformedJSON) Error() string {
	return fmt.Sprintf("malformed JSON in model output: %v", e.Err)
}

func (e *ErrMalformedJSON) Unwrap() error { return e.Err }

// ErrMissingField indicates the parsed object lacks a required field.
type ErrMissingField struct {
	Field string
}

func (e *ErrMissingField) Error() string {
	return fmt.Sprintf("model output missing required field %q", e.Field)
}

// ErrExhausted indicates every model's every attempt failed. It carries
// the most recent underlying error for diagnostics.
type ErrExhausted struct {
	Models   int
	Attempts int
	Last     error
}

func (e *ErrExhausted) Error() string {
	return fmt.Sprintf("generation exhausted after %d attempts across %d models: %v",
		e.Attempts, e.Models, e.Last)
}

func (e *ErrExhausted) Unwrap() error { return e.Last }
