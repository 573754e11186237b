// Package draft generates reply drafts in one of four tones and refines
// existing drafts from user feedback.
package draft

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/triage/internal/domain"
	"github.com/MikeSquared-Agency/triage/internal/extractor"
	"github.com/MikeSquared-Agency/triage/internal/llm"
	"github.com/MikeSquared-Agency/triage/internal/metrics"
	"github.com/MikeSquared-Agency/triage/internal/prompt"
)

const (
	errorPlaceholder = "Error generating draft. Please compose manually."
	refinedSubject   = "(Refined)"
)

// Request describes the thread being replied to.
type Request struct {
	OriginalSubject string
	OriginalSender  string
	ThreadContent   string
	Context         string
	Tone            domain.Tone
}

type Engine struct {
	llm     llm.Completer
	prompts *prompt.Builder
	logger  *slog.Logger
	now     func() time.Time
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func New(c llm.Completer, prompts *prompt.Builder, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{llm: c, prompts: prompts, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate drafts a reply in req.Tone. It always returns a draft whose
// subject starts with "Re: "; failures produce a placeholder body.
func (e *Engine) Generate(ctx context.Context, req Request) domain.DraftReply {
	tone := req.Tone
	if tone == "" {
		tone = domain.ToneProfessional
	}
	fallbackSubject := extractor.ReplySubject(req.OriginalSubject)

	raw, err := e.llm.Complete(ctx, llm.Request{
		Task: string(prompt.TaskDraftReply),
		Prompt: e.prompts.Build(prompt.TaskDraftReply, prompt.Fields{
			Subject: req.OriginalSubject,
			Sender:  req.OriginalSender,
			Content: req.ThreadContent,
			Context: req.Context,
			Tone:    tone,
		}),
		Temperature: prompt.Temperature(prompt.TaskDraftReply),
	})
	if err != nil {
		e.fallback("draft_reply", "inference_failure", tone, err)
		return domain.NewDraftReply(tone, fallbackSubject, errorPlaceholder, e.now())
	}

	subject, body, err := extractor.ParseDraft(raw, req.OriginalSubject)
	switch {
	case errors.Is(err, extractor.ErrNoPayload):
		e.fallback("draft_reply", "payload_parse_failure", tone, err)
		return domain.NewDraftReply(tone, fallbackSubject, extractor.DraftPlaceholder, e.now())
	case err != nil:
		e.fallback("draft_reply", "payload_parse_failure", tone, err)
		return domain.NewDraftReply(tone, fallbackSubject, errorPlaceholder, e.now())
	}

	return domain.NewDraftReply(tone, subject, body, e.now())
}

// GenerateAll drafts the reply once per tone, in the order professional,
// friendly, short, apologetic. req.Tone is ignored.
func (e *Engine) GenerateAll(ctx context.Context, req Request) []domain.DraftReply {
	drafts := make([]domain.DraftReply, 0, len(domain.Tones))
	for _, tone := range domain.Tones {
		r := req
		r.Tone = tone
		drafts = append(drafts, e.Generate(ctx, r))
	}
	return drafts
}

// Refine rewrites current according to feedback. The trimmed response is the
// new body; on failure or an empty response the original body is returned
// unchanged.
func (e *Engine) Refine(ctx context.Context, current, feedback string, tone domain.Tone) domain.DraftReply {
	if tone == "" {
		tone = domain.ToneProfessional
	}

	raw, err := e.llm.Complete(ctx, llm.Request{
		Task: string(prompt.TaskRefineDraft),
		Prompt: e.prompts.Build(prompt.TaskRefineDraft, prompt.Fields{
			CurrentDraft: current,
			Feedback:     feedback,
			Tone:         tone,
		}),
		Temperature: prompt.Temperature(prompt.TaskRefineDraft),
	})
	if err != nil {
		e.fallback("refine_draft", "inference_failure", tone, err)
		return domain.NewDraftReply(tone, refinedSubject, current, e.now())
	}

	body := strings.TrimSpace(raw)
	if body == "" {
		e.fallback("refine_draft", "payload_parse_failure", tone, errors.New("empty response"))
		return domain.NewDraftReply(tone, refinedSubject, current, e.now())
	}
	return domain.NewDraftReply(tone, refinedSubject, body, e.now())
}

func (e *Engine) fallback(operation, reason string, tone domain.Tone, err error) {
	metrics.RecordFallback(operation, reason)
	e.logger.Warn("using fallback draft", "operation", operation, "reason", reason, "tone", tone, "error", err)
}
