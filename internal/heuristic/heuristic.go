// Package heuristic holds the rule-based due-date, priority and urgency
// functions used standalone and as the failure path of inference.
package heuristic

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/triage/internal/domain"
	"github.com/MikeSquared-Agency/triage/internal/rules"
)

const dateLayout = "2006-01-02"

type Engine struct {
	rules *rules.Table
	now   func() time.Time
}

type Option func(*Engine)

// WithClock overrides the wall clock used for relative dates.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func New(r *rules.Table, opts ...Option) *Engine {
	e := &Engine{rules: r, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SuggestDueDate infers a YYYY-MM-DD due date from text. The first matching
// phrase wins; ok is false when nothing matches.
func (e *Engine) SuggestDueDate(text string) (string, bool) {
	lower := strings.ToLower(text)
	now := e.now()

	switch {
	case strings.Contains(lower, "asap"), strings.Contains(lower, "urgent"):
		return now.AddDate(0, 0, 1).Format(dateLayout), true
	case strings.Contains(lower, "today"):
		return now.Format(dateLayout), true
	case strings.Contains(lower, "tomorrow"):
		return now.AddDate(0, 0, 1).Format(dateLayout), true
	case strings.Contains(lower, "end of week"), strings.Contains(lower, "this friday"):
		return nextFriday(now).Format(dateLayout), true
	case strings.Contains(lower, "end of month"):
		return endOfMonth(now).Format(dateLayout), true
	}
	return "", false
}

// nextFriday rolls to the following week when now is already Friday or later
// (Saturday, Sunday).
func nextFriday(now time.Time) time.Time {
	// Monday-based weekday index, Friday = 4.
	weekday := (int(now.Weekday()) + 6) % 7
	ahead := 4 - weekday
	if ahead <= 0 {
		ahead += 7
	}
	return now.AddDate(0, 0, ahead)
}

func endOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location())
}

// CalculatePriority ranks an action item from its text and optional known due
// date (YYYY-MM-DD; empty or unparseable dates are ignored).
func (e *Engine) CalculatePriority(text, dueDate string) domain.Priority {
	if e.rules.Contains(rules.PurposeHigh, text) {
		return domain.PriorityHigh
	}

	if days, ok := e.daysUntil(dueDate); ok {
		switch {
		case days <= 1:
			return domain.PriorityHigh
		case days <= 3:
			return domain.PriorityMedium
		}
	}

	if e.rules.Contains(rules.PurposeMedium, text) {
		return domain.PriorityMedium
	}
	return domain.PriorityLow
}

// daysUntil counts whole days from now to midnight of dueDate, rounding down.
func (e *Engine) daysUntil(dueDate string) (int, bool) {
	if dueDate == "" {
		return 0, false
	}
	now := e.now()
	due, err := time.ParseInLocation(dateLayout, dueDate, now.Location())
	if err != nil {
		return 0, false
	}
	return int(math.Floor(due.Sub(now).Hours() / 24)), true
}

// ScoreUrgency builds a PriorityAnalysis from keyword rules alone.
func (e *Engine) ScoreUrgency(email domain.Email) domain.PriorityAnalysis {
	text := email.Subject + "\n" + email.Content

	urgent := e.rules.Match(rules.PurposeUrgent, text)
	attention := e.rules.Match(rules.PurposeAttention, text)
	low := e.rules.Match(rules.PurposeLow, text)
	delay := e.rules.Match(rules.PurposeDelay, text)
	vip := e.rules.Match(rules.PurposeVIP, email.Sender+"\n"+email.SenderHistory)

	score := 3 + 2*min(len(urgent), 3) + min(len(attention), 2) - min(len(low), 2) - min(len(delay), 1)
	if len(vip) > 0 {
		score += 2
	}
	score = clamp(score, 1, 10)

	level := domain.PriorityLow
	switch {
	case score >= 7:
		level = domain.PriorityHigh
	case score >= 4:
		level = domain.PriorityMedium
	}

	signals := make([]string, 0, len(urgent)+len(attention)+len(low)+len(delay)+len(vip))
	signals = appendSignals(signals, "urgent", urgent)
	signals = appendSignals(signals, "attention", attention)
	signals = appendSignals(signals, "low", low)
	signals = appendSignals(signals, "delay", delay)
	signals = appendSignals(signals, "sender", vip)

	reasoning := fmt.Sprintf("Rule-based score from %d urgency, %d attention, %d low-priority and %d delay keywords",
		len(urgent), len(attention), len(low), len(delay))
	if len(vip) > 0 {
		reasoning += "; sender flagged as high-importance"
	}

	return domain.PriorityAnalysis{
		PriorityLevel:   level,
		UrgencyScore:    score,
		Confidence:      math.Round((0.3+0.1*float64(min(len(signals), 5)))*100) / 100,
		Reasoning:       reasoning,
		DetectedSignals: signals,
		SuggestedAction: suggestedAction(level),
	}
}

func suggestedAction(level domain.Priority) string {
	switch level {
	case domain.PriorityHigh:
		return "Respond immediately"
	case domain.PriorityMedium:
		return "Schedule for later"
	default:
		return "Archive after review"
	}
}

func appendSignals(dst []string, kind string, hits []string) []string {
	for _, h := range hits {
		dst = append(dst, kind+":"+h)
	}
	return dst
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
