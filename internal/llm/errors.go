package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrTransport indicates the completion call failed at the HTTP boundary:
// a network error or a non-2xx status.
type ErrTransport struct {
	StatusCode int // 0 when the request never reached the server
	Err        error
}

func (e *ErrTransport) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("model call failed (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("model call failed: %v", e.Err)
}

func (e *ErrTransport) Unwrap() error { return e.Err }

// ErrRateLimit indicates the provider returned 429.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrEmptyResponse indicates the call succeeded but carried no
// completion text.
type ErrEmptyResponse struct {
	Model string
}

func (e *ErrEmptyResponse) Error() string {
	return fmt.Sprintf("empty completion from model %q", e.Model)
}

// ErrInvalidResponse indicates the model returned content that does not
// conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid model response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }
