package heuristic

import (
	"strings"
	"testing"
	"time"

	"github.com/MikeSquared-Agency/triage/internal/domain"
	"github.com/MikeSquared-Agency/triage/internal/rules"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Wednesday afternoon.
var wednesday = time.Date(2026, 1, 14, 15, 0, 0, 0, time.UTC)

func TestSuggestDueDate(t *testing.T) {
	e := New(rules.Default(), WithClock(fixedClock(wednesday)))

	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"Can you send this ASAP", "2026-01-15", true},
		{"urgent: fix the login page", "2026-01-15", true},
		{"Need it today", "2026-01-14", true},
		{"Send it tomorrow please", "2026-01-15", true},
		{"Wrap up by end of week", "2026-01-16", true},
		{"Let's meet this Friday", "2026-01-16", true},
		{"Invoice due end of month", "2026-01-31", true},
		{"Whenever you get a chance", "", false},
		// asap is checked before today
		{"today if possible, asap", "2026-01-15", true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := e.SuggestDueDate(tt.text)
			if got != tt.want || ok != tt.ok {
				t.Errorf("SuggestDueDate(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSuggestDueDate_FridayRollover(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"monday", time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC), "2026-01-16"},
		{"thursday", time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC), "2026-01-16"},
		{"friday", time.Date(2026, 1, 16, 9, 0, 0, 0, time.UTC), "2026-01-23"},
		{"saturday", time.Date(2026, 1, 17, 9, 0, 0, 0, time.UTC), "2026-01-23"},
		{"sunday", time.Date(2026, 1, 18, 9, 0, 0, 0, time.UTC), "2026-01-23"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(rules.Default(), WithClock(fixedClock(tt.now)))
			got, _ := e.SuggestDueDate("by end of week")
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSuggestDueDate_EndOfFebruary(t *testing.T) {
	e := New(rules.Default(), WithClock(fixedClock(time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC))))
	if got, _ := e.SuggestDueDate("close the books by end of month"); got != "2026-02-28" {
		t.Errorf("got %s, want 2026-02-28", got)
	}
}

func TestCalculatePriority(t *testing.T) {
	e := New(rules.Default(), WithClock(fixedClock(wednesday)))

	tests := []struct {
		name string
		text string
		due  string
		want domain.Priority
	}{
		{"urgent keyword ignores far due date", "This is urgent", "2026-06-01", domain.PriorityHigh},
		{"urgent keyword without due date", "urgent", "", domain.PriorityHigh},
		{"substring match", "the service went down overnight", "", domain.PriorityHigh},
		{"due tomorrow", "Send the report", "2026-01-15", domain.PriorityHigh},
		{"overdue", "Send the report", "2026-01-10", domain.PriorityHigh},
		{"due in two days", "Send the report", "2026-01-17", domain.PriorityMedium},
		{"due in three days", "Send the report", "2026-01-18", domain.PriorityMedium},
		{"due later falls through to low", "Send the report", "2026-01-19", domain.PriorityLow},
		{"medium keyword", "This is important", "", domain.PriorityMedium},
		{"please is medium", "Please send the slides", "", domain.PriorityMedium},
		{"bad due date ignored", "Send the report", "next tuesday", domain.PriorityLow},
		{"nothing", "Lunch on Thursday?", "", domain.PriorityLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.CalculatePriority(tt.text, tt.due); got != tt.want {
				t.Errorf("CalculatePriority(%q, %q) = %s, want %s", tt.text, tt.due, got, tt.want)
			}
		})
	}
}

func TestScoreUrgency(t *testing.T) {
	e := New(rules.Default())

	tests := []struct {
		name      string
		email     domain.Email
		wantLevel domain.Priority
		wantScore int
	}{
		{
			name:      "outage",
			email:     domain.Email{Subject: "Outage", Content: "URGENT: production is down"},
			wantLevel: domain.PriorityHigh,
			wantScore: 9,
		},
		{
			name:      "review request",
			email:     domain.Email{Subject: "Draft", Content: "Please review the draft and send feedback"},
			wantLevel: domain.PriorityMedium,
			wantScore: 5,
		},
		{
			name:      "newsletter",
			email:     domain.Email{Subject: "Newsletter", Content: "FYI, no rush - just a heads up about the office party."},
			wantLevel: domain.PriorityLow,
			wantScore: 2,
		},
		{
			name:      "vip sender boost",
			email:     domain.Email{Subject: "Draft", Content: "Please review the draft and send feedback", SenderHistory: "CEO of our largest customer"},
			wantLevel: domain.PriorityHigh,
			wantScore: 7,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ScoreUrgency(tt.email)
			if got.PriorityLevel != tt.wantLevel {
				t.Errorf("level = %s, want %s", got.PriorityLevel, tt.wantLevel)
			}
			if got.UrgencyScore != tt.wantScore {
				t.Errorf("score = %d, want %d", got.UrgencyScore, tt.wantScore)
			}
			if got.UrgencyScore < 1 || got.UrgencyScore > 10 {
				t.Errorf("score out of range: %d", got.UrgencyScore)
			}
			if got.SuggestedAction == "" || got.Reasoning == "" {
				t.Error("expected action and reasoning")
			}
		})
	}
}

func TestScoreUrgency_SignalsOrdered(t *testing.T) {
	e := New(rules.Default())
	got := e.ScoreUrgency(domain.Email{Subject: "Outage", Content: "URGENT: production is down"})
	want := []string{"urgent:urgent", "urgent:down", "urgent:outage"}
	if strings.Join(got.DetectedSignals, ",") != strings.Join(want, ",") {
		t.Errorf("signals = %v, want %v", got.DetectedSignals, want)
	}
	if got.Confidence != 0.6 {
		t.Errorf("confidence = %v, want 0.6", got.Confidence)
	}
}
