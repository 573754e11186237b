package hermes

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/MikeSquared-Agency/triage/internal/domain"
)

const (
	SubjectEmailReceived = "triage.email.received"
	SubjectEmailTriaged  = "triage.email.triaged"

	queueGroup = "triage"
)

var ErrEmptyEmail = errors.New("email has no subject or content")

// EmailReceivedEvent is the inbound payload on SubjectEmailReceived.
type EmailReceivedEvent struct {
	Email domain.Email `json:"email"`
}

// TriageEvent is published on SubjectEmailTriaged once an email has been
// classified, prioritised and mined for action items.
type TriageEvent struct {
	EventID        string                      `json:"event_id"`
	EmailID        int                         `json:"email_id"`
	Subject        string                      `json:"subject"`
	Sender         string                      `json:"sender"`
	Classification domain.ClassificationResult `json:"classification"`
	Priority       domain.PriorityAnalysis     `json:"priority"`
	ActionItems    []domain.ActionItem         `json:"action_items"`
	ProcessedAt    time.Time                   `json:"processed_at"`
}

// DecodeEmailReceived parses an inbound event. Events whose email carries
// neither subject nor content are rejected.
func DecodeEmailReceived(data []byte) (domain.Email, error) {
	var evt EmailReceivedEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		return domain.Email{}, fmt.Errorf("decode %s: %w", SubjectEmailReceived, err)
	}
	if strings.TrimSpace(evt.Email.Subject) == "" && strings.TrimSpace(evt.Email.Content) == "" {
		return domain.Email{}, ErrEmptyEmail
	}
	return evt.Email, nil
}
