package domain

import (
	"fmt"
	"strings"
	"time"
)

// Category is the inbox bucket an email is classified into.
type Category string

const (
	CategorySupport Category = "Support"
	CategorySales   Category = "Sales"
	CategoryBilling Category = "Billing"
	CategoryUrgent  Category = "Urgent"
	CategoryFYI     Category = "FYI"
)

// Categories lists the canonical categories in display order.
var Categories = []Category{CategorySupport, CategorySales, CategoryBilling, CategoryUrgent, CategoryFYI}

// ParseCategory matches s case-insensitively against the canonical set.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func ParsePriority(s string) (Priority, bool) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityHigh:
		return PriorityHigh, true
	case PriorityMedium:
		return PriorityMedium, true
	case PriorityLow:
		return PriorityLow, true
	}
	return "", false
}

// Status tracks user confirmation of an extracted action item.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
)

var Statuses = []Status{StatusPending, StatusConfirmed, StatusRejected}

type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneFriendly     Tone = "friendly"
	ToneShort        Tone = "short"
	ToneApologetic   Tone = "apologetic"
)

// Tones is the fixed generation order for multi-tone drafting.
var Tones = []Tone{ToneProfessional, ToneFriendly, ToneShort, ToneApologetic}

// ParseTone returns an error for anything outside the four supported tones.
func ParseTone(s string) (Tone, error) {
	t := Tone(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Tones {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tone %q", s)
}

// Email is the per-request input shared by every pipeline.
type Email struct {
	ID            int    `json:"id"`
	Subject       string `json:"subject"`
	Sender        string `json:"sender"`
	Content       string `json:"content"`
	Timestamp     string `json:"timestamp,omitempty"`
	SenderHistory string `json:"sender_history,omitempty"`
	Context       string `json:"context,omitempty"`
}

type ActionItem struct {
	ID                int      `json:"id"`
	Title             string   `json:"title"`
	Description       *string  `json:"description"`
	DueDate           *string  `json:"due_date"`
	Priority          Priority `json:"priority"`
	SuggestedAssignee *string  `json:"suggested_assignee"`
	Confidence        float64  `json:"confidence"`
	Reasoning         string   `json:"reasoning"`
	Status            Status   `json:"status"`
}

type ClassificationResult struct {
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
}

type PriorityAnalysis struct {
	PriorityLevel   Priority `json:"priority_level"`
	UrgencyScore    int      `json:"urgency_score"`
	Confidence      float64  `json:"confidence"`
	Reasoning       string   `json:"reasoning"`
	DetectedSignals []string `json:"detected_signals"`
	SuggestedAction string   `json:"suggested_action"`
}

type DraftReply struct {
	Tone      Tone      `json:"tone"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Preview   string    `json:"preview"`
	Timestamp time.Time `json:"timestamp"`
}

// NewDraftReply fills in the preview and timestamp.
func NewDraftReply(tone Tone, subject, body string, now time.Time) DraftReply {
	return DraftReply{
		Tone:      tone,
		Subject:   subject,
		Body:      body,
		Preview:   Preview(body),
		Timestamp: now,
	}
}

const previewLimit = 100

// Preview returns the first 100 characters of body, followed by "..." when
// anything was cut.
func Preview(body string) string {
	r := []rune(body)
	if len(r) <= previewLimit {
		return body
	}
	return string(r[:previewLimit]) + "..."
}
