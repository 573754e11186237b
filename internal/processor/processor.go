package processor

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MikeSquared-Agency/triage/internal/batch"
	"github.com/MikeSquared-Agency/triage/internal/domain"
	"github.com/MikeSquared-Agency/triage/internal/hermes"
	"github.com/MikeSquared-Agency/triage/internal/metrics"
)

// Publisher is the outbound side of the event bus. *hermes.Client
// implements it.
type Publisher interface {
	Publish(subject string, data any) error
}

// Processor triages emails delivered over the event bus and publishes the
// combined result.
type Processor struct {
	pipeline  batch.Pipeline
	publisher Publisher
	logger    *slog.Logger
	timeout   time.Duration
	now       func() time.Time
}

type Option func(*Processor)

func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

// WithTimeout bounds the whole triage of one email. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(p *Processor) { p.timeout = d }
}

func New(pipeline batch.Pipeline, publisher Publisher, logger *slog.Logger, opts ...Option) *Processor {
	p := &Processor{pipeline: pipeline, publisher: publisher, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// HandleEmailReceived is the NATS handler for triage.email.received.
func (p *Processor) HandleEmailReceived(subject string, data []byte) {
	email, err := hermes.DecodeEmailReceived(data)
	metrics.RecordEvent(subject, err)
	if err != nil {
		p.logger.Error("failed to parse email event", "subject", subject, "error", err)
		return
	}

	ctx := context.Background()
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	p.logger.Info("triaging email", "email_id", email.ID, "sender", email.Sender)

	evt := p.Triage(ctx, email)
	err = p.publisher.Publish(hermes.SubjectEmailTriaged, evt)
	metrics.RecordEvent(hermes.SubjectEmailTriaged, err)
	if err != nil {
		p.logger.Error("failed to publish triage result", "email_id", email.ID, "event_id", evt.EventID, "error", err)
		return
	}

	p.logger.Info("email triaged",
		"email_id", email.ID,
		"event_id", evt.EventID,
		"category", evt.Classification.Category,
		"priority", evt.Priority.PriorityLevel,
		"action_items", len(evt.ActionItems),
	)
}

// Triage runs classification, priority detection and action-item extraction
// for one email concurrently. The pipeline never fails, so neither does
// Triage.
func (p *Processor) Triage(ctx context.Context, email domain.Email) hermes.TriageEvent {
	evt := hermes.TriageEvent{
		EventID: uuid.NewString(),
		EmailID: email.ID,
		Subject: email.Subject,
		Sender:  email.Sender,
	}

	var g errgroup.Group
	g.Go(func() error {
		evt.Classification = p.pipeline.Classify(ctx, email)
		return nil
	})
	g.Go(func() error {
		evt.Priority = p.pipeline.DetectPriority(ctx, email)
		return nil
	})
	g.Go(func() error {
		evt.ActionItems = p.pipeline.ExtractActionItems(ctx, email)
		return nil
	})
	_ = g.Wait()

	if evt.ActionItems == nil {
		evt.ActionItems = []domain.ActionItem{}
	}
	evt.ProcessedAt = p.now().UTC()
	return evt
}
