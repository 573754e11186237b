package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MikeSquared-Agency/triage/internal/batch"
	"github.com/MikeSquared-Agency/triage/internal/domain"
)

type emailsRequest struct {
	Emails []domain.Email `json:"emails"`
}

type threadRequest struct {
	ThreadContent string `json:"thread_content"`
}

type actionItemsRequest struct {
	EmailID       int    `json:"email_id"`
	Subject       string `json:"subject"`
	Sender        string `json:"sender"`
	Content       string `json:"content"`
	SenderHistory string `json:"sender_history,omitempty"`
	Context       string `json:"context,omitempty"`
}

func (req actionItemsRequest) email() domain.Email {
	return domain.Email{
		ID:            req.EmailID,
		Subject:       req.Subject,
		Sender:        req.Sender,
		Content:       req.Content,
		SenderHistory: req.SenderHistory,
		Context:       req.Context,
	}
}

type classifyResponse struct {
	EmailID    int             `json:"email_id"`
	Category   domain.Category `json:"category"`
	Confidence float64         `json:"confidence"`
	Reasoning  string          `json:"reasoning"`
}

func (s *Server) summarizeThread(w http.ResponseWriter, r *http.Request) {
	var req threadRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.ThreadContent) == "" {
		writeError(w, http.StatusBadRequest, "Email thread cannot be empty")
		return
	}

	summary, err := s.triager.Summarize(r.Context(), req.ThreadContent)
	if err != nil {
		s.logger.Error("summarize thread failed", "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("summarization failed: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (s *Server) classifyEmail(w http.ResponseWriter, r *http.Request) {
	var email domain.Email
	if !decode(w, r, &email) {
		return
	}

	res := s.triager.Classify(r.Context(), email)
	writeJSON(w, http.StatusOK, classifyResponse{
		EmailID:    email.ID,
		Category:   res.Category,
		Confidence: res.Confidence,
		Reasoning:  res.Reasoning,
	})
}

func (s *Server) classifyEmails(w http.ResponseWriter, r *http.Request) {
	var req emailsRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.batch.ClassifyEmails(r.Context(), req.Emails))
}

// classificationStats classifies the demo threads on every call.
func (s *Server) classificationStats(w http.ResponseWriter, r *http.Request) {
	b := s.batch.ClassifyEmails(r.Context(), demoEmails())
	writeJSON(w, http.StatusOK, b.Stats)
}

func (s *Server) extractActionItems(w http.ResponseWriter, r *http.Request) {
	var req actionItemsRequest
	if !decode(w, r, &req) {
		return
	}

	email := req.email()
	items := s.triager.ExtractActionItems(r.Context(), email)
	writeJSON(w, http.StatusOK, batch.NewExtractionResult(email, items))
}

func (s *Server) extractActionItemsBatch(w http.ResponseWriter, r *http.Request) {
	var req emailsRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.batch.ExtractActionItems(r.Context(), req.Emails))
}

// actionItemsStats has nothing to aggregate without persistence, so it
// always reports the zero-valued shape.
func (s *Server) actionItemsStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, batch.NewActionItemStats(nil))
}

func (s *Server) threads(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, demoThreads)
}
