// Package pipeline sequences the study-assistant flow: split text into
// sections, summarize and quiz each section through the model client, and
// grade student answers. All configuration is passed in explicitly; an
// Orchestrator holds no state between runs.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/echolearn/echolearn/internal/parser"
	"github.com/echolearn/echolearn/internal/prompts"
	"github.com/echolearn/echolearn/internal/providers"
	"github.com/echolearn/echolearn/internal/splitter"
)

// ErrGradingFailed reports a grading call that could not be completed after
// the corrective re-prompt. No default score is ever fabricated.
var ErrGradingFailed = errors.New("grading failed")

// Options configures a pipeline run.
type Options struct {
	Model              string
	TargetSectionChars int           // Splitter granularity (default 800)
	Timeout            time.Duration // Per model call
	Temperature        float64
	MaxTokens          int
	Concurrency        int     // Max simultaneous model calls (default 4)
	RequestsPerSecond  float64 // Endpoint rate limit (default 2)
}

func (o *Options) defaults() {
	if o.TargetSectionChars <= 0 {
		o.TargetSectionChars = splitter.DefaultTargetChars
	}
	if o.Concurrency <= 0 {
		o.Concurrency = 4
	}
}

// Orchestrator drives the pipeline against an injected model client.
type Orchestrator struct {
	client  providers.LLMClient
	limiter *providers.RateLimiter
	opts    Options
	logger  *slog.Logger
}

// New creates an orchestrator. The limiter is shared across all calls made
// through this orchestrator so concurrent sections cannot flood the endpoint.
func New(client providers.LLMClient, opts Options, logger *slog.Logger) *Orchestrator {
	opts.defaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		client:  client,
		limiter: providers.NewRateLimiter(opts.RequestsPerSecond),
		opts:    opts,
		logger:  logger.With("component", "pipeline"),
	}
}

// SummarizeAndQuiz splits text into sections and processes them through a
// bounded worker pool. One section's failure never blocks or corrupts
// another's result: the report carries all successes plus per-section
// failure records.
func (o *Orchestrator) SummarizeAndQuiz(ctx context.Context, text string) (*Report, error) {
	sections := splitter.Split(text, o.opts.TargetSectionChars)
	report := &Report{SectionCount: len(sections)}
	if len(sections) == 0 {
		return report, nil
	}

	o.logger.Info("processing sections", "count", len(sections), "concurrency", o.opts.Concurrency)

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, o.opts.Concurrency)
	)

	for _, sec := range sections {
		wg.Add(1)
		go func(sec splitter.Section) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				mu.Lock()
				report.Failures = append(report.Failures, SectionFailure{
					SectionIndex: sec.Index,
					Stage:        StageModelCall,
					Reason:       ctx.Err().Error(),
				})
				mu.Unlock()
				return
			}

			result, failure := o.processSection(ctx, sec)
			mu.Lock()
			if failure != nil {
				report.Failures = append(report.Failures, *failure)
			} else {
				report.Results = append(report.Results, *result)
			}
			mu.Unlock()
		}(sec)
	}
	wg.Wait()

	sort.Slice(report.Results, func(i, j int) bool {
		return report.Results[i].SectionIndex < report.Results[j].SectionIndex
	})
	sort.Slice(report.Failures, func(i, j int) bool {
		return report.Failures[i].SectionIndex < report.Failures[j].SectionIndex
	})

	return report, ctx.Err()
}

// processSection runs one section through build -> complete -> parse, with
// a single corrective re-prompt when the model output fails validation.
func (o *Orchestrator) processSection(ctx context.Context, sec splitter.Section) (*prompts.SummaryResult, *SectionFailure) {
	res, err := o.complete(ctx, prompts.BuildSummarize(sec.Text))
	if err != nil {
		o.logger.Warn("section model call failed", "section", sec.Index, "error", err)
		return nil, &SectionFailure{
			SectionIndex: sec.Index,
			Stage:        StageModelCall,
			ErrorType:    res.ErrorType,
			Reason:       err.Error(),
		}
	}

	parsed, parseErr := parser.ParseSummary(res.Content, sec.Index)
	if parseErr == nil {
		return parsed, nil
	}

	var malformedErr *parser.MalformedError
	if !errors.As(parseErr, &malformedErr) {
		return nil, &SectionFailure{
			SectionIndex: sec.Index,
			Stage:        StageParse,
			Reason:       parseErr.Error(),
		}
	}

	// One sanctioned corrective re-prompt, distinct from transport retries.
	o.logger.Warn("section output malformed, re-prompting once", "section", sec.Index, "error", parseErr)
	repair := prompts.BuildRepair(prompts.SummarySchema, res.Content, parseErr)
	res, err = o.complete(ctx, repair)
	if err != nil {
		return nil, &SectionFailure{
			SectionIndex: sec.Index,
			Stage:        StageModelCall,
			ErrorType:    res.ErrorType,
			Reason:       err.Error(),
		}
	}
	parsed, parseErr = parser.ParseSummary(res.Content, sec.Index)
	if parseErr != nil {
		return nil, &SectionFailure{
			SectionIndex: sec.Index,
			Stage:        StageParse,
			Reason:       parseErr.Error(),
		}
	}
	return parsed, nil
}

// Grade scores a student answer against the expected answer. On malformed
// model output it re-prompts once, then fails with ErrGradingFailed.
func (o *Orchestrator) Grade(ctx context.Context, req prompts.GradingRequest) (*prompts.GradingResult, error) {
	if req.Question == "" || req.ExpectedAnswer == "" || req.StudentAnswer == "" {
		return nil, fmt.Errorf("%w: question, expected answer, and student answer are all required", ErrGradingFailed)
	}

	res, err := o.complete(ctx, prompts.BuildGrade(req))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGradingFailed, err)
	}

	result, parseErr := parser.ParseGrading(res.Content)
	if parseErr == nil {
		return result, nil
	}

	var malformedErr *parser.MalformedError
	if !errors.As(parseErr, &malformedErr) {
		return nil, fmt.Errorf("%w: %w", ErrGradingFailed, parseErr)
	}

	o.logger.Warn("grading output malformed, re-prompting once", "error", parseErr)
	repair := prompts.BuildRepair(prompts.GradingSchema, res.Content, parseErr)
	res, err = o.complete(ctx, repair)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGradingFailed, err)
	}
	result, parseErr = parser.ParseGrading(res.Content)
	if parseErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrGradingFailed, parseErr)
	}
	return result, nil
}

// Ask answers a free question against a study context. The answer is plain
// text; no JSON schema is involved.
func (o *Orchestrator) Ask(ctx context.Context, question, studyContext string) (string, error) {
	if question == "" {
		return "", fmt.Errorf("question is required")
	}
	res, err := o.complete(ctx, prompts.BuildAsk(question, studyContext))
	if err != nil {
		return "", fmt.Errorf("ask failed: %w", err)
	}
	return res.Content, nil
}

// complete waits for rate-limit clearance and issues one tracked model call.
func (o *Orchestrator) complete(ctx context.Context, prompt string) (*providers.CompletionResult, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return &providers.CompletionResult{
			Success:      false,
			ErrorType:    providers.ErrorTypeTransport,
			ErrorMessage: err.Error(),
		}, err
	}

	return o.client.Complete(ctx, &providers.CompletionRequest{
		Prompt:      prompt,
		Model:       o.opts.Model,
		Temperature: o.opts.Temperature,
		MaxTokens:   o.opts.MaxTokens,
		Timeout:     o.opts.Timeout,
		RequestID:   uuid.New().String(),
	})
}
