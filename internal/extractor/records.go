package extractor

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/triage/internal/domain"
)

const (
	// DraftPlaceholder is the body used when a draft payload carries no body.
	DraftPlaceholder = "Unable to generate draft. Please compose manually."
	untitled         = "Untitled"
)

var (
	classificationKeys = []string{"category", "confidence", "reasoning"}
	priorityKeys       = []string{"priority_level", "urgency_score", "confidence", "reasoning", "detected_signals", "suggested_action"}
	draftKeys          = []string{"subject", "body"}
)

// ParseActionItems turns an array payload into action items with ids 1..N in
// payload order. Elements that are not objects become default items.
func ParseActionItems(raw string) ([]domain.ActionItem, error) {
	arr, err := decodeArray(raw)
	if err != nil {
		return nil, err
	}

	items := make([]domain.ActionItem, 0, len(arr))
	for i, el := range arr {
		m, ok := el.(map[string]any)
		if !ok {
			m = map[string]any{}
		}

		title := strings.TrimSpace(text(m, "title", ""))
		if title == "" {
			title = untitled
		}
		priority, ok := domain.ParsePriority(text(m, "priority", ""))
		if !ok {
			priority = domain.PriorityMedium
		}

		items = append(items, domain.ActionItem{
			ID:                i + 1,
			Title:             title,
			Description:       optionalText(m, "description"),
			DueDate:           isoDate(optionalText(m, "due_date")),
			Priority:          priority,
			SuggestedAssignee: optionalText(m, "suggested_assignee"),
			Confidence:        number(m, "confidence", defaultConfidence),
			Reasoning:         text(m, "reasoning", ""),
			Status:            domain.StatusPending,
		})
	}
	return items, nil
}

// ParseClassification reads a classification object. Labels outside the
// canonical set become FYI with a note appended to the reasoning.
func ParseClassification(raw string) (domain.ClassificationResult, error) {
	m, err := decodeObject(raw, classificationKeys...)
	if err != nil {
		return domain.ClassificationResult{}, err
	}

	label := text(m, "category", string(domain.CategoryFYI))
	reasoning := text(m, "reasoning", "")
	category, ok := domain.ParseCategory(label)
	if !ok {
		category = domain.CategoryFYI
		reasoning = strings.TrimSpace(reasoning + fmt.Sprintf(" (unrecognized category %q, defaulted to FYI)", label))
	}

	return domain.ClassificationResult{
		Category:   category,
		Confidence: number(m, "confidence", defaultConfidence),
		Reasoning:  reasoning,
	}, nil
}

// ParsePriorityAnalysis reads a priority object. The urgency score is
// truncated to an integer in 1..10.
func ParsePriorityAnalysis(raw string) (domain.PriorityAnalysis, error) {
	m, err := decodeObject(raw, priorityKeys...)
	if err != nil {
		return domain.PriorityAnalysis{}, err
	}

	level, ok := domain.ParsePriority(text(m, "priority_level", ""))
	if !ok {
		level = domain.PriorityMedium
	}

	return domain.PriorityAnalysis{
		PriorityLevel:   level,
		UrgencyScore:    clampInt(integer(m, "urgency_score", 5), 1, 10),
		Confidence:      number(m, "confidence", defaultConfidence),
		Reasoning:       text(m, "reasoning", ""),
		DetectedSignals: textList(m, "detected_signals"),
		SuggestedAction: text(m, "suggested_action", "Review"),
	}, nil
}

// ParseDraft reads a draft object. A missing subject becomes "Re: " plus the
// original subject, a missing body becomes DraftPlaceholder, and the subject
// always carries the "Re: " prefix.
func ParseDraft(raw, originalSubject string) (subject, body string, err error) {
	m, err := decodeObject(raw, draftKeys...)
	if err != nil {
		return "", "", err
	}

	subject = strings.TrimSpace(text(m, "subject", ""))
	if subject == "" {
		subject = originalSubject
	}
	body = text(m, "body", "")
	if strings.TrimSpace(body) == "" {
		body = DraftPlaceholder
	}
	return ReplySubject(subject), body, nil
}

// ReplySubject normalises any "re:" prefix to "Re: " and adds one if absent.
func ReplySubject(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 3 && strings.EqualFold(s[:3], "re:") {
		s = strings.TrimSpace(s[3:])
	}
	return "Re: " + s
}
