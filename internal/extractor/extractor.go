package extractor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MikeSquared-Agency/triage/internal/domain"
	"github.com/MikeSquared-Agency/triage/internal/heuristic"
	"github.com/MikeSquared-Agency/triage/internal/llm"
	"github.com/MikeSquared-Agency/triage/internal/metrics"
	"github.com/MikeSquared-Agency/triage/internal/prompt"
)

const (
	reasonInference = "inference_failure"
	reasonPayload   = "payload_parse_failure"
	rawExcerptLen   = 500
)

// Extractor runs the inference-backed pipelines. Its methods never return
// errors: failures degrade to fallback records and are logged.
type Extractor struct {
	llm        llm.Completer
	prompts    *prompt.Builder
	heuristics *heuristic.Engine
	logger     *slog.Logger
}

type Option func(*Extractor)

// WithDueDateEnrichment fills missing action-item due dates from the
// heuristic date rules.
func WithDueDateEnrichment(h *heuristic.Engine) Option {
	return func(e *Extractor) { e.heuristics = h }
}

func New(c llm.Completer, prompts *prompt.Builder, logger *slog.Logger, opts ...Option) *Extractor {
	e := &Extractor{llm: c, prompts: prompts, logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Extractor) complete(ctx context.Context, task prompt.Task, f prompt.Fields) (string, error) {
	return e.llm.Complete(ctx, llm.Request{
		Task:        string(task),
		Prompt:      e.prompts.Build(task, f),
		Temperature: prompt.Temperature(task),
	})
}

// Classify assigns one of the five categories. On any failure the result is
// FYI with zero confidence.
func (e *Extractor) Classify(ctx context.Context, email domain.Email) domain.ClassificationResult {
	raw, err := e.complete(ctx, prompt.TaskClassify, prompt.FieldsFromEmail(email))
	if err != nil {
		e.fallback("classify", reasonInference, err, "")
		return ClassificationFallback(err)
	}

	result, err := ParseClassification(raw)
	if err != nil {
		e.fallback("classify", reasonPayload, err, raw)
		return ClassificationFallback(err)
	}

	e.logger.Debug("email classified", "email_id", email.ID, "category", result.Category, "confidence", result.Confidence)
	return result
}

// ClassificationFallback is the result used when classification fails.
func ClassificationFallback(err error) domain.ClassificationResult {
	return domain.ClassificationResult{
		Category:   domain.CategoryFYI,
		Confidence: 0.0,
		Reasoning:  fmt.Sprintf("Classification failed, defaulted to FYI. Error: %v", err),
	}
}

// ExtractActionItems returns the action items found in email, or an empty
// list when inference or parsing fails.
func (e *Extractor) ExtractActionItems(ctx context.Context, email domain.Email) []domain.ActionItem {
	raw, err := e.complete(ctx, prompt.TaskExtractItems, prompt.FieldsFromEmail(email))
	if err != nil {
		e.fallback("extract_action_items", reasonInference, err, "")
		return []domain.ActionItem{}
	}

	items, err := ParseActionItems(raw)
	if err != nil {
		e.fallback("extract_action_items", reasonPayload, err, raw)
		return []domain.ActionItem{}
	}

	if e.heuristics != nil {
		for i := range items {
			if items[i].DueDate != nil {
				continue
			}
			source := items[i].Title
			if items[i].Description != nil {
				source += "\n" + *items[i].Description
			}
			if due, ok := e.heuristics.SuggestDueDate(source); ok {
				items[i].DueDate = &due
			}
		}
	}

	e.logger.Debug("action items extracted", "email_id", email.ID, "count", len(items))
	return items
}

// DetectPriority scores how urgent email is. Failures return a medium
// priority record whose confidence reflects the failure class.
func (e *Extractor) DetectPriority(ctx context.Context, email domain.Email) domain.PriorityAnalysis {
	raw, err := e.complete(ctx, prompt.TaskDetectPriority, prompt.FieldsFromEmail(email))
	if err != nil {
		e.fallback("detect_priority", reasonInference, err, "")
		return PriorityFallback(0.2, fmt.Sprintf("Error: %v", err), "error")
	}

	analysis, err := ParsePriorityAnalysis(raw)
	switch {
	case errors.Is(err, ErrNoPayload):
		e.fallback("detect_priority", reasonPayload, err, raw)
		return PriorityFallback(0.5, "Default priority - could not parse AI response", "parsing_error")
	case err != nil:
		e.fallback("detect_priority", reasonPayload, err, raw)
		return PriorityFallback(0.3, fmt.Sprintf("JSON parsing error: %v", err), "parsing_error")
	}

	e.logger.Debug("priority detected", "email_id", email.ID, "level", analysis.PriorityLevel, "urgency", analysis.UrgencyScore)
	return analysis
}

// PriorityFallback is a medium, urgency-5 record for failed priority detection.
func PriorityFallback(confidence float64, reasoning, signal string) domain.PriorityAnalysis {
	return domain.PriorityAnalysis{
		PriorityLevel:   domain.PriorityMedium,
		UrgencyScore:    5,
		Confidence:      confidence,
		Reasoning:       reasoning,
		DetectedSignals: []string{signal},
		SuggestedAction: "Review manually",
	}
}

// Summarize returns a free-text summary of a thread. Unlike the other
// pipelines there is no fallback summary, so failures are returned.
func (e *Extractor) Summarize(ctx context.Context, thread string) (string, error) {
	out, err := e.complete(ctx, prompt.TaskSummarizeThread, prompt.Fields{Content: thread})
	if err != nil {
		e.logger.Warn("thread summary failed", "error", err)
		return "", fmt.Errorf("summarize thread: %w", err)
	}
	return out, nil
}

func (e *Extractor) fallback(operation, reason string, err error, raw string) {
	metrics.RecordFallback(operation, reason)
	e.logger.Warn("using fallback result", "operation", operation, "reason", reason, "error", err)
	if raw != "" {
		e.logger.Debug("unparseable response", "operation", operation, "raw", excerpt(raw))
	}
}

func excerpt(s string) string {
	r := []rune(s)
	if len(r) <= rawExcerptLen {
		return s
	}
	return string(r[:rawExcerptLen]) + "..."
}
