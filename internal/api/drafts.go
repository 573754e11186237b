package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/triage/internal/domain"
	"github.com/MikeSquared-Agency/triage/internal/draft"
)

const defaultOriginalSubject = "Re: Email"

type draftRequest struct {
	OriginalSubject string `json:"original_subject"`
	OriginalSender  string `json:"original_sender"`
	ThreadContent   string `json:"thread_content"`
	Tone            string `json:"tone"`
	Context         string `json:"context,omitempty"`
}

type allTonesResponse struct {
	OriginalSubject string              `json:"original_subject"`
	OriginalSender  string              `json:"original_sender"`
	Drafts          []domain.DraftReply `json:"drafts"`
	TotalVariants   int                 `json:"total_variants"`
	Timestamp       time.Time           `json:"timestamp"`
}

type refineRequest struct {
	CurrentDraft string `json:"current_draft"`
	Feedback     string `json:"feedback"`
	Tone         string `json:"tone"`
}

type refineResponse struct {
	Tone      domain.Tone `json:"tone"`
	Body      string      `json:"body"`
	Preview   string      `json:"preview"`
	Timestamp time.Time   `json:"timestamp"`
}

// parseTone defaults a missing tone to professional and writes a 400 for
// anything outside the fixed set.
func parseTone(w http.ResponseWriter, raw string) (domain.Tone, bool) {
	if strings.TrimSpace(raw) == "" {
		return domain.ToneProfessional, true
	}
	tone, err := domain.ParseTone(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return tone, true
}

func (req draftRequest) toDraft(tone domain.Tone) (draft.Request, bool) {
	if strings.TrimSpace(req.ThreadContent) == "" {
		return draft.Request{}, false
	}
	subject := req.OriginalSubject
	if strings.TrimSpace(subject) == "" {
		subject = defaultOriginalSubject
	}
	return draft.Request{
		OriginalSubject: subject,
		OriginalSender:  req.OriginalSender,
		ThreadContent:   req.ThreadContent,
		Context:         req.Context,
		Tone:            tone,
	}, true
}

func (s *Server) draftReply(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if !decode(w, r, &req) {
		return
	}
	tone, ok := parseTone(w, req.Tone)
	if !ok {
		return
	}
	dr, ok := req.toDraft(tone)
	if !ok {
		writeError(w, http.StatusBadRequest, "Thread content cannot be empty")
		return
	}
	writeJSON(w, http.StatusOK, s.drafts.Generate(r.Context(), dr))
}

func (s *Server) draftReplyAllTones(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if !decode(w, r, &req) {
		return
	}
	dr, ok := req.toDraft(domain.ToneProfessional)
	if !ok {
		writeError(w, http.StatusBadRequest, "Thread content cannot be empty")
		return
	}

	drafts := s.drafts.GenerateAll(r.Context(), dr)
	writeJSON(w, http.StatusOK, allTonesResponse{
		OriginalSubject: dr.OriginalSubject,
		OriginalSender:  dr.OriginalSender,
		Drafts:          drafts,
		TotalVariants:   len(drafts),
		Timestamp:       s.now(),
	})
}

func (s *Server) refineDraft(w http.ResponseWriter, r *http.Request) {
	var req refineRequest
	if !decode(w, r, &req) {
		return
	}
	tone, ok := parseTone(w, req.Tone)
	if !ok {
		return
	}
	if strings.TrimSpace(req.CurrentDraft) == "" || strings.TrimSpace(req.Feedback) == "" {
		writeError(w, http.StatusBadRequest, "current_draft and feedback are required")
		return
	}

	d := s.drafts.Refine(r.Context(), req.CurrentDraft, req.Feedback, tone)
	writeJSON(w, http.StatusOK, refineResponse{Tone: d.Tone, Body: d.Body, Preview: d.Preview, Timestamp: d.Timestamp})
}
