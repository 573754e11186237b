package draft

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/MikeSquared-Agency/triage/internal/domain"
	"github.com/MikeSquared-Agency/triage/internal/llm"
	"github.com/MikeSquared-Agency/triage/internal/prompt"
	"github.com/MikeSquared-Agency/triage/internal/rules"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var fixedNow = time.Date(2026, 1, 14, 10, 30, 0, 0, time.UTC)

func newEngine(c llm.Completer) *Engine {
	return New(c, prompt.NewBuilder(rules.Default()), discardLogger(), WithClock(func() time.Time { return fixedNow }))
}

var budgetThread = Request{
	OriginalSubject: "Q1 Budget Review Meeting",
	OriginalSender:  "sarah@company.com",
	ThreadContent:   "We need to schedule our Q1 budget review. Please confirm your availability.",
}

func TestGenerate_Success(t *testing.T) {
	var got llm.Request
	c := llm.CompleterFunc(func(ctx context.Context, req llm.Request) (string, error) {
		got = req
		return `{"subject": "Re: Q1 Budget Review Meeting", "body": "Hi Sarah,\n\nWednesday at 2 PM works for me.\n\nBest,\nMike"}`, nil
	})

	req := budgetThread
	req.Tone = domain.ToneFriendly
	d := newEngine(c).Generate(context.Background(), req)

	if d.Tone != domain.ToneFriendly || d.Subject != "Re: Q1 Budget Review Meeting" {
		t.Errorf("unexpected draft: %+v", d)
	}
	if !strings.Contains(d.Body, "Wednesday at 2 PM") || d.Preview != d.Body {
		t.Errorf("unexpected body/preview: %q / %q", d.Body, d.Preview)
	}
	if !d.Timestamp.Equal(fixedNow) {
		t.Errorf("unexpected timestamp %s", d.Timestamp)
	}
	if got.Temperature != 0.7 || !strings.Contains(got.Prompt, rules.Default().ToneInstruction(domain.ToneFriendly)) {
		t.Errorf("unexpected request: %+v", got)
	}
}

func TestGenerate_DefaultsToProfessional(t *testing.T) {
	c := llm.CompleterFunc(func(ctx context.Context, req llm.Request) (string, error) {
		return `{"subject": "Re: x", "body": "y"}`, nil
	})
	if d := newEngine(c).Generate(context.Background(), budgetThread); d.Tone != domain.ToneProfessional {
		t.Errorf("expected professional, got %s", d.Tone)
	}
}

func TestGenerate_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		c    llm.Completer
		body string
	}{
		{
			name: "no payload",
			c: llm.CompleterFunc(func(ctx context.Context, req llm.Request) (string, error) {
				return "Dear Sarah, Wednesday works.", nil
			}),
			body: "Unable to generate draft. Please compose manually.",
		},
		{
			name: "malformed payload",
			c: llm.CompleterFunc(func(ctx context.Context, req llm.Request) (string, error) {
				return `{"subject": "Re: x", "body": }`, nil
			}),
			body: "Error generating draft. Please compose manually.",
		},
		{
			name: "inference failure",
			c: llm.CompleterFunc(func(ctx context.Context, req llm.Request) (string, error) {
				return "", errors.New("api error 500: overloaded")
			}),
			body: "Error generating draft. Please compose manually.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newEngine(tt.c).Generate(context.Background(), budgetThread)
			if d.Subject != "Re: Q1 Budget Review Meeting" {
				t.Errorf("unexpected subject %q", d.Subject)
			}
			if d.Body != tt.body {
				t.Errorf("body = %q, want %q", d.Body, tt.body)
			}
			if d.Preview != tt.body {
				t.Errorf("preview = %q", d.Preview)
			}
		})
	}
}

func TestGenerate_LongBodyPreview(t *testing.T) {
	body := strings.Repeat("word ", 60)
	c := llm.CompleterFunc(func(ctx context.Context, req llm.Request) (string, error) {
		return `{"subject": "Re: x", "body": "` + body + `"}`, nil
	})
	d := newEngine(c).Generate(context.Background(), budgetThread)
	if len(d.Preview) != 103 || !strings.HasSuffix(d.Preview, "...") {
		t.Errorf("unexpected preview %q", d.Preview)
	}
}

func TestGenerateAll_FixedOrder(t *testing.T) {
	var seen []string
	c := llm.CompleterFunc(func(ctx context.Context, req llm.Request) (string, error) {
		seen = append(seen, req.Prompt)
		return `{"body": "Thanks for the note."}`, nil
	})

	drafts := newEngine(c).GenerateAll(context.Background(), budgetThread)

	if len(drafts) != 4 {
		t.Fatalf("expected 4 drafts, got %d", len(drafts))
	}
	for i, tone := range []domain.Tone{domain.ToneProfessional, domain.ToneFriendly, domain.ToneShort, domain.ToneApologetic} {
		if drafts[i].Tone != tone {
			t.Errorf("draft %d tone %s, want %s", i, drafts[i].Tone, tone)
		}
		if !strings.HasPrefix(drafts[i].Subject, "Re: ") {
			t.Errorf("draft %d subject %q", i, drafts[i].Subject)
		}
		if !strings.Contains(seen[i], rules.Default().ToneInstruction(tone)) {
			t.Errorf("prompt %d missing %s instructions", i, tone)
		}
	}
}

func TestGenerateAll_AllFailing(t *testing.T) {
	c := llm.CompleterFunc(func(ctx context.Context, req llm.Request) (string, error) {
		return "", errors.New("down")
	})
	drafts := newEngine(c).GenerateAll(context.Background(), Request{OriginalSubject: ""})
	if len(drafts) != 4 {
		t.Fatalf("expected 4 drafts, got %d", len(drafts))
	}
	for _, d := range drafts {
		if !strings.HasPrefix(d.Subject, "Re: ") {
			t.Errorf("subject %q", d.Subject)
		}
	}
}

func TestRefine_Success(t *testing.T) {
	var got llm.Request
	c := llm.CompleterFunc(func(ctx context.Context, req llm.Request) (string, error) {
		got = req
		return "\n  Hi Sarah, Wednesday works great!  \n", nil
	})

	d := newEngine(c).Refine(context.Background(), "Hi Sarah, Wednesday works.", "make it warmer", domain.ToneFriendly)

	if d.Body != "Hi Sarah, Wednesday works great!" {
		t.Errorf("unexpected body %q", d.Body)
	}
	if d.Subject != "(Refined)" || d.Tone != domain.ToneFriendly {
		t.Errorf("unexpected draft %+v", d)
	}
	if !strings.Contains(got.Prompt, "make it warmer") || got.Task != string(prompt.TaskRefineDraft) {
		t.Errorf("unexpected request %+v", got)
	}
}

func TestRefine_FailureReturnsOriginal(t *testing.T) {
	original := "Hi Sarah,\n\nWednesday works for me.\n\nMike"
	tests := []struct {
		name string
		c    llm.Completer
	}{
		{"inference failure", llm.CompleterFunc(func(ctx context.Context, req llm.Request) (string, error) {
			return "", errors.New("rate limited")
		})},
		{"empty response", llm.CompleterFunc(func(ctx context.Context, req llm.Request) (string, error) {
			return "   ", nil
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newEngine(tt.c).Refine(context.Background(), original, "shorter", domain.ToneShort)
			if d.Body != original {
				t.Errorf("expected original body, got %q", d.Body)
			}
			if d.Preview != original {
				t.Errorf("unexpected preview %q", d.Preview)
			}
		})
	}
}
