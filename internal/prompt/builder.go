// Package prompt renders the instruction text sent to the inference service
// for each task kind.
package prompt

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/triage/internal/domain"
	"github.com/MikeSquared-Agency/triage/internal/rules"
)

type Task string

const (
	TaskClassify        Task = "classify"
	TaskExtractItems    Task = "extract-items"
	TaskDetectPriority  Task = "detect-priority"
	TaskDraftReply      Task = "draft-reply"
	TaskRefineDraft     Task = "refine-draft"
	TaskSummarizeThread Task = "summarize-thread"
)

var temperatures = map[Task]float32{
	TaskClassify:        0,
	TaskDetectPriority:  0,
	TaskExtractItems:    0.3,
	TaskDraftReply:      0.7,
	TaskRefineDraft:     0.7,
	TaskSummarizeThread: 1.0,
}

// Temperature is the sampling temperature used for task.
func Temperature(task Task) float32 {
	return temperatures[task]
}

// Fields carries everything a template may embed. Unused fields are ignored
// and empty optional fields render as empty segments.
type Fields struct {
	Subject       string
	Sender        string
	Content       string
	SenderHistory string
	Context       string
	Tone          domain.Tone
	Feedback      string
	CurrentDraft  string
}

// FieldsFromEmail maps an email onto the template fields.
func FieldsFromEmail(e domain.Email) Fields {
	return Fields{
		Subject:       e.Subject,
		Sender:        e.Sender,
		Content:       e.Content,
		SenderHistory: e.SenderHistory,
		Context:       e.Context,
	}
}

type Builder struct {
	rules *rules.Table
}

func NewBuilder(r *rules.Table) *Builder {
	return &Builder{rules: r}
}

// Build renders the prompt for task. It has no side effects.
func (b *Builder) Build(task Task, f Fields) string {
	content := PlainText(f.Content)

	switch task {
	case TaskClassify:
		return fmt.Sprintf(classifyTemplate, f.Subject, f.Sender, content, b.categoryRules())
	case TaskExtractItems:
		return fmt.Sprintf(extractTemplate, f.Subject, f.Sender, content)
	case TaskDetectPriority:
		return fmt.Sprintf(priorityTemplate, f.Subject, f.Sender, content, optional("Sender Context", f.SenderHistory))
	case TaskDraftReply:
		return fmt.Sprintf(draftTemplate, f.Subject, f.Sender, content,
			optional("Organization Context", f.Context), b.rules.ToneInstruction(f.Tone))
	case TaskRefineDraft:
		return fmt.Sprintf(refineTemplate, f.CurrentDraft, f.Feedback, f.Tone, f.Tone)
	case TaskSummarizeThread:
		return fmt.Sprintf(summarizeTemplate, content)
	}
	return ""
}

func (b *Builder) categoryRules() string {
	var sb strings.Builder
	for i, c := range domain.Categories {
		fmt.Fprintf(&sb, "%d. %s - %s\n", i+1, c, b.rules.CategoryDescription(c))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func optional(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return label + ": " + value
}
