package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/triage/internal/domain"
	"github.com/MikeSquared-Agency/triage/internal/extractor"
	"github.com/MikeSquared-Agency/triage/internal/metrics"
)

// Pipeline is the per-email work a batch fans out. *extractor.Extractor
// implements it.
type Pipeline interface {
	Classify(ctx context.Context, email domain.Email) domain.ClassificationResult
	ExtractActionItems(ctx context.Context, email domain.Email) []domain.ActionItem
	DetectPriority(ctx context.Context, email domain.Email) domain.PriorityAnalysis
}

type Aggregator struct {
	pipeline    Pipeline
	concurrency int
	logger      *slog.Logger
}

func New(p Pipeline, concurrency int, logger *slog.Logger) *Aggregator {
	return &Aggregator{pipeline: p, concurrency: concurrency, logger: logger}
}

type ClassifiedEmail struct {
	domain.Email
	Category   domain.Category `json:"category"`
	Confidence float64         `json:"confidence"`
	Reasoning  string          `json:"reasoning"`
}

type ClassificationBatch struct {
	RunID            string              `json:"run_id"`
	ClassifiedEmails []ClassifiedEmail   `json:"classified_emails"`
	Stats            ClassificationStats `json:"stats"`
}

type ExtractionResult struct {
	EmailID     int                 `json:"email_id"`
	Subject     string              `json:"subject"`
	ActionItems []domain.ActionItem `json:"action_items"`
	TotalItems  int                 `json:"total_items"`
}

type ExtractionBatch struct {
	RunID             string             `json:"run_id"`
	Results           []ExtractionResult `json:"results"`
	TotalItems        int                `json:"total_items"`
	HighPriorityCount int                `json:"high_priority_count"`
}

type PriorityResult struct {
	EmailID int    `json:"email_id"`
	Subject string `json:"subject"`
	Sender  string `json:"sender"`
	domain.PriorityAnalysis
}

type PriorityBatch struct {
	RunID   string           `json:"run_id"`
	Results []PriorityResult `json:"results"`
	Stats   PriorityStats    `json:"stats"`
}

func (a *Aggregator) ClassifyEmails(ctx context.Context, emails []domain.Email) ClassificationBatch {
	runID, done := a.start("classify", len(emails))
	defer done()

	classified := Map(ctx, emails, a.concurrency,
		func(ctx context.Context, e domain.Email) ClassifiedEmail {
			r := a.pipeline.Classify(ctx, e)
			return ClassifiedEmail{Email: e, Category: r.Category, Confidence: r.Confidence, Reasoning: r.Reasoning}
		},
		func(e domain.Email, p any) ClassifiedEmail {
			a.recovered("classify", e, p)
			r := extractor.ClassificationFallback(fmt.Errorf("panic: %v", p))
			return ClassifiedEmail{Email: e, Category: r.Category, Confidence: r.Confidence, Reasoning: r.Reasoning}
		},
	)

	categories := make([]domain.Category, len(classified))
	for i, c := range classified {
		categories[i] = c.Category
	}
	return ClassificationBatch{RunID: runID, ClassifiedEmails: classified, Stats: NewClassificationStats(categories)}
}

func (a *Aggregator) ExtractActionItems(ctx context.Context, emails []domain.Email) ExtractionBatch {
	runID, done := a.start("extract_action_items", len(emails))
	defer done()

	results := Map(ctx, emails, a.concurrency,
		func(ctx context.Context, e domain.Email) ExtractionResult {
			return NewExtractionResult(e, a.pipeline.ExtractActionItems(ctx, e))
		},
		func(e domain.Email, p any) ExtractionResult {
			a.recovered("extract_action_items", e, p)
			return NewExtractionResult(e, []domain.ActionItem{})
		},
	)

	b := ExtractionBatch{RunID: runID, Results: results}
	for _, r := range results {
		b.TotalItems += r.TotalItems
		for _, it := range r.ActionItems {
			if it.Priority == domain.PriorityHigh {
				b.HighPriorityCount++
			}
		}
	}
	return b
}

// NewExtractionResult wraps the items extracted from one email.
func NewExtractionResult(e domain.Email, items []domain.ActionItem) ExtractionResult {
	return ExtractionResult{EmailID: e.ID, Subject: e.Subject, ActionItems: items, TotalItems: len(items)}
}

func (a *Aggregator) DetectPriorities(ctx context.Context, emails []domain.Email) PriorityBatch {
	runID, done := a.start("detect_priority", len(emails))
	defer done()

	results := Map(ctx, emails, a.concurrency,
		func(ctx context.Context, e domain.Email) PriorityResult {
			return NewPriorityResult(e, a.pipeline.DetectPriority(ctx, e))
		},
		func(e domain.Email, p any) PriorityResult {
			a.recovered("detect_priority", e, p)
			return NewPriorityResult(e, extractor.PriorityFallback(0.2, fmt.Sprintf("Error: panic: %v", p), "error"))
		},
	)
	return PriorityBatch{RunID: runID, Results: results, Stats: NewPriorityStats(results)}
}

func NewPriorityResult(e domain.Email, analysis domain.PriorityAnalysis) PriorityResult {
	return PriorityResult{EmailID: e.ID, Subject: e.Subject, Sender: e.Sender, PriorityAnalysis: analysis}
}

func (a *Aggregator) start(operation string, size int) (string, func()) {
	runID := uuid.NewString()
	started := time.Now()
	metrics.RecordBatch(operation, size)
	a.logger.Info("batch started", "run_id", runID, "operation", operation, "size", size, "concurrency", max(a.concurrency, 1))
	return runID, func() {
		a.logger.Info("batch complete", "run_id", runID, "operation", operation, "duration_ms", time.Since(started).Milliseconds())
	}
}

func (a *Aggregator) recovered(operation string, e domain.Email, p any) {
	metrics.RecordFallback(operation, "panic")
	a.logger.Error("batch item panicked", "operation", operation, "email_id", e.ID, "panic", p)
}
