package extractor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/MikeSquared-Agency/triage/internal/domain"
	"github.com/MikeSquared-Agency/triage/internal/heuristic"
	"github.com/MikeSquared-Agency/triage/internal/llm"
	"github.com/MikeSquared-Agency/triage/internal/prompt"
	"github.com/MikeSquared-Agency/triage/internal/rules"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func respond(text string) llm.Completer {
	return llm.CompleterFunc(func(ctx context.Context, req llm.Request) (string, error) {
		return text, nil
	})
}

func failing(err error) llm.Completer {
	return llm.CompleterFunc(func(ctx context.Context, req llm.Request) (string, error) {
		return "", err
	})
}

func newExtractor(c llm.Completer, opts ...Option) *Extractor {
	return New(c, prompt.NewBuilder(rules.Default()), discardLogger(), opts...)
}

var budgetEmail = domain.Email{
	ID:      7,
	Subject: "Budget Review",
	Sender:  "sarah@company.com",
	Content: "Can you prepare the expense report by Tuesday? This is important.",
}

func TestClassify_Success(t *testing.T) {
	var gotReq llm.Request
	c := llm.CompleterFunc(func(ctx context.Context, req llm.Request) (string, error) {
		gotReq = req
		return `{"category": "Billing", "confidence": 0.88, "reasoning": "mentions expense report"}`, nil
	})

	got := newExtractor(c).Classify(context.Background(), budgetEmail)

	if got.Category != domain.CategoryBilling || got.Confidence != 0.88 {
		t.Errorf("unexpected result: %+v", got)
	}
	if gotReq.Task != string(prompt.TaskClassify) || gotReq.Temperature != 0 {
		t.Errorf("unexpected request: %+v", gotReq)
	}
	if !strings.Contains(gotReq.Prompt, budgetEmail.Content) {
		t.Error("prompt should embed the email content")
	}
}

func TestClassify_InferenceFailure(t *testing.T) {
	got := newExtractor(failing(errors.New("401 unauthorized"))).Classify(context.Background(), budgetEmail)

	if got.Category != domain.CategoryFYI || got.Confidence != 0.0 {
		t.Errorf("expected FYI fallback, got %+v", got)
	}
	if !strings.HasPrefix(got.Reasoning, "Classification failed, defaulted to FYI. Error: ") {
		t.Errorf("unexpected reasoning %q", got.Reasoning)
	}
	if !strings.Contains(got.Reasoning, "401 unauthorized") {
		t.Errorf("reasoning should carry the error detail, got %q", got.Reasoning)
	}
}

func TestClassify_NoPayload(t *testing.T) {
	got := newExtractor(respond("I think this is billing.")).Classify(context.Background(), budgetEmail)
	if got.Category != domain.CategoryFYI || got.Confidence != 0.0 {
		t.Errorf("expected FYI fallback, got %+v", got)
	}
}

func TestExtractActionItems_EndToEnd(t *testing.T) {
	payload := `[{"title": "Prepare expense report", "description": "For the budget review",
		"due_date": "2026-01-20", "priority": "medium", "suggested_assignee": "you",
		"confidence": 0.9, "reasoning": "Direct request with deadline"}]`

	items := newExtractor(respond(payload)).ExtractActionItems(context.Background(), budgetEmail)

	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	it := items[0]
	if it.ID != 1 || it.Title != "Prepare expense report" {
		t.Errorf("unexpected item: %+v", it)
	}
	if it.Priority != domain.PriorityMedium && it.Priority != domain.PriorityHigh {
		t.Errorf("expected medium or high, got %s", it.Priority)
	}
	if it.DueDate == nil || *it.DueDate != "2026-01-20" {
		t.Errorf("expected due date, got %v", it.DueDate)
	}
}

func TestExtractActionItems_Failures(t *testing.T) {
	tests := []struct {
		name string
		c    llm.Completer
	}{
		{"inference failure", failing(errors.New("connection reset"))},
		{"no payload", respond("There are no action items here.")},
		{"malformed payload", respond(`[{"title": }]`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := newExtractor(tt.c).ExtractActionItems(context.Background(), budgetEmail)
			if items == nil || len(items) != 0 {
				t.Errorf("expected empty list, got %#v", items)
			}
		})
	}
}

func TestExtractActionItems_DueDateEnrichment(t *testing.T) {
	wednesday := time.Date(2026, 1, 14, 9, 0, 0, 0, time.UTC)
	h := heuristic.New(rules.Default(), heuristic.WithClock(func() time.Time { return wednesday }))
	payload := `[{"title": "Send the slides ASAP"}, {"title": "Book room", "due_date": "2026-02-01"}, {"title": "Think about it"}]`

	items := newExtractor(respond(payload), WithDueDateEnrichment(h)).ExtractActionItems(context.Background(), budgetEmail)

	if items[0].DueDate == nil || *items[0].DueDate != "2026-01-15" {
		t.Errorf("expected inferred due date, got %v", items[0].DueDate)
	}
	if *items[1].DueDate != "2026-02-01" {
		t.Errorf("model due date should be kept, got %s", *items[1].DueDate)
	}
	if items[2].DueDate != nil {
		t.Errorf("expected no due date, got %s", *items[2].DueDate)
	}
}

func TestDetectPriority_Success(t *testing.T) {
	payload := `{"priority_level": "high", "urgency_score": 9, "confidence": 0.95,
		"reasoning": "Production outage", "detected_signals": ["outage", "down"], "suggested_action": "Page on-call"}`

	got := newExtractor(respond(payload)).DetectPriority(context.Background(), domain.Email{Subject: "Site down"})
	if got.PriorityLevel != domain.PriorityHigh || got.UrgencyScore != 9 || got.SuggestedAction != "Page on-call" {
		t.Errorf("unexpected analysis: %+v", got)
	}
}

func TestDetectPriority_Fallbacks(t *testing.T) {
	tests := []struct {
		name       string
		c          llm.Completer
		confidence float64
		signal     string
	}{
		{"no payload", respond("Probably high priority."), 0.5, "parsing_error"},
		{"malformed payload", respond(`{"priority_level": high}`), 0.3, "parsing_error"},
		{"inference failure", failing(errors.New("timeout")), 0.2, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newExtractor(tt.c).DetectPriority(context.Background(), budgetEmail)
			if got.PriorityLevel != domain.PriorityMedium || got.UrgencyScore != 5 {
				t.Errorf("expected medium/5, got %+v", got)
			}
			if got.Confidence != tt.confidence {
				t.Errorf("confidence = %v, want %v", got.Confidence, tt.confidence)
			}
			if len(got.DetectedSignals) != 1 || got.DetectedSignals[0] != tt.signal {
				t.Errorf("signals = %v, want [%s]", got.DetectedSignals, tt.signal)
			}
			if got.SuggestedAction != "Review manually" {
				t.Errorf("unexpected action %q", got.SuggestedAction)
			}
		})
	}
}

func TestDetectPriority_SenderHistoryInPrompt(t *testing.T) {
	var gotPrompt string
	c := llm.CompleterFunc(func(ctx context.Context, req llm.Request) (string, error) {
		gotPrompt = req.Prompt
		return `{"priority_level": "low"}`, nil
	})
	email := budgetEmail
	email.SenderHistory = "VIP customer"
	newExtractor(c).DetectPriority(context.Background(), email)

	if !strings.Contains(gotPrompt, "Sender Context: VIP customer") {
		t.Error("expected sender history in prompt")
	}
}

func TestSummarize(t *testing.T) {
	out, err := newExtractor(respond("Decisions: meet Wednesday.")).Summarize(context.Background(), "thread")
	if err != nil || out != "Decisions: meet Wednesday." {
		t.Fatalf("got %q, %v", out, err)
	}

	if _, err := newExtractor(failing(errors.New("down"))).Summarize(context.Background(), "thread"); err == nil {
		t.Fatal("expected error")
	}
}

func TestClassify_ThroughAnthropicProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{"type": "text", "text": "Here you go:\n{\"category\": \"Support\", \"confidence\": 0.77, \"reasoning\": \"login issue\"}"},
			},
			"stop_reason": "end_turn",
		})
	}))
	defer server.Close()

	client := llm.NewAnthropicClient("test-key", "test-model", 512, 5*time.Second)
	client.SetEndpoint(server.URL)

	got := newExtractor(client).Classify(context.Background(), domain.Email{Subject: "Can't log in"})
	if got.Category != domain.CategorySupport || got.Confidence != 0.77 {
		t.Errorf("unexpected result: %+v", got)
	}
}
