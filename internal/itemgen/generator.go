package itemgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/examforge/examgen/internal/exam"
	"github.com/examforge/examgen/internal/llm"
)

// Gateway performs one completion call against a descriptor. Satisfied
// by *llm.Gateway.
type Gateway interface {
	Complete(ctx context.Context, desc llm.ModelDescriptor, req llm.Request) (*llm.Response, error)
}

// ReviewFunc gates a candidate on compliance: it returns the compliance
// score and whether the question passed.
type ReviewFunc func(q exam.Question) (score int, passed bool)

// Orchestrator composes prompt building, model calls, response parsing,
// and format repair under a multi-model, multi-attempt retry policy.
type Orchestrator struct {
	registry *llm.Registry
	store    *llm.Store
	gateway  Gateway
	cfg      Config
	review   ReviewFunc
	warn     func(msg string)
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithStore makes the orchestrator honor the operator-selected
// descriptor: when set and available, it is tried first.
func WithStore(s *llm.Store) Option {
	return func(o *Orchestrator) { o.store = s }
}

// WithReviewGate enables the compliance gate. A candidate failing the
// gate consumes an attempt within the same model, like a parse failure;
// it never advances the model loop by itself. Config.ReviewThreshold
// must also be positive.
func WithReviewGate(fn ReviewFunc) Option {
	return func(o *Orchestrator) { o.review = fn }
}

// WithWarn receives warning-worthy events: format repairs applied to a
// returned question, and items skipped during batch generation.
func WithWarn(fn func(msg string)) Option {
	return func(o *Orchestrator) { o.warn = fn }
}

// New creates an Orchestrator.
func New(registry *llm.Registry, gateway Gateway, cfg Config, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		registry: registry,
		gateway:  gateway,
		cfg:      cfg,
		warn:     func(string) {},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// stageResult is the tagged outcome of one pipeline stage or attempt.
// The loop decides on the tag; stages never signal retry by panicking
// or by error-type inspection at a distance.
type stageResult struct {
	tag      stageTag
	question exam.Question
	reason   error
}

type stageTag int

const (
	stageOK stageTag = iota
	stageRetry
	stageFatal
)

func retryable(err error) stageResult { return stageResult{tag: stageRetry, reason: err} }
func fatal(err error) stageResult     { return stageResult{tag: stageFatal, reason: err} }

// Generate produces one question. It fails fast with *ErrPrecondition
// when no model credential is configured or the material is too short,
// and with *ErrExhausted when every model's every attempt failed.
func (o *Orchestrator) Generate(ctx context.Context, params exam.Params) (exam.Question, error) {
	if !params.Type.Valid() {
		return exam.Question{}, &ErrPrecondition{Reason: fmt.Sprintf("unknown question type %q", params.Type)}
	}
	if got := len([]rune(params.Content)); got < o.cfg.MinContentLen {
		return exam.Question{}, &ErrPrecondition{
			Reason: fmt.Sprintf("material too short: %d runes, need at least %d", got, o.cfg.MinContentLen),
		}
	}

	models := o.modelOrder()
	if len(models) == 0 {
		return exam.Question{}, &ErrPrecondition{Reason: "no model credential configured"}
	}

	ctx = llm.WithPurpose(ctx, "question-gen")

	// The prompt is model-independent; build it once.
	req := llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: BuildPrompt(params, o.cfg)}},
		Schema:      QuestionSchema,
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: o.cfg.Temperature,
	}

	var lastErr error
	attempts := 0
	for _, desc := range models {
		for range o.cfg.AttemptQuota {
			attempts++
			res := o.attempt(ctx, desc, params, req)
			switch res.tag {
			case stageOK:
				return res.question, nil
			case stageFatal:
				return exam.Question{}, res.reason
			}
			lastErr = res.reason
		}
	}

	return exam.Question{}, &ErrExhausted{Models: len(models), Attempts: attempts, Last: lastErr}
}

// modelOrder is the registry's priority order, with the operator-selected
// descriptor moved to the head when one is set and available.
func (o *Orchestrator) modelOrder() []llm.ModelDescriptor {
	models := o.registry.ListAvailable()
	if o.store == nil {
		return models
	}
	selected, ok := o.store.Snapshot()
	if !ok || !selected.Available() {
		return models
	}

	out := []llm.ModelDescriptor{selected}
	for _, d := range models {
		if d != selected {
			out = append(out, d)
		}
	}
	return out
}

func (o *Orchestrator) attempt(ctx context.Context, desc llm.ModelDescriptor, params exam.Params, req llm.Request) stageResult {
	resp, err := o.gateway.Complete(ctx, desc, req)
	if err != nil {
		// A cancelled context fails every remaining attempt the same
		// way; stop instead of burning the quota.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fatal(err)
		}
		return retryable(err)
	}

	q, err := Parse(resp.Text(), params.Type)
	if err != nil {
		return retryable(err)
	}

	q, notes := Correct(q, o.cfg)
	for _, n := range notes {
		o.warn(n)
	}

	if o.review != nil && o.cfg.ReviewThreshold > 0 {
		score, passed := o.review(q)
		if !passed || score < o.cfg.ReviewThreshold {
			return retryable(fmt.Errorf("content validation failed: compliance score %d", score))
		}
	}

	q.ID = uuid.NewString()
	return stageResult{tag: stageOK, question: q}
}

// GenerateBatch produces up to count questions sequentially, preserving
// request order. A failed item is skipped, not retried indefinitely.
// Calls are paced by Config.BatchDelay when a real credential is
// configured, and progress receives the completed fraction after each
// item (successful or not).
func (o *Orchestrator) GenerateBatch(ctx context.Context, params exam.Params, count int, progress func(fraction float64)) []exam.Question {
	questions := make([]exam.Question, 0, count)

	for i := range count {
		if i > 0 && o.cfg.BatchDelay > 0 && o.registry.HasCredential() {
			select {
			case <-ctx.Done():
				return questions
			case <-time.After(o.cfg.BatchDelay):
			}
		}

		q, err := o.Generate(ctx, params)
		if err != nil {
			o.warn(fmt.Sprintf("batch item %d skipped: %v", i+1, err))
			if ctx.Err() != nil {
				return questions
			}
		} else {
			questions = append(questions, q)
		}

		if progress != nil {
			progress(float64(i+1) / float64(count))
		}
	}

	return questions
}
