package api

import (
	"fmt"
	"net/http"

	"github.com/MikeSquared-Agency/triage/internal/batch"
	"github.com/MikeSquared-Agency/triage/internal/domain"
)

type priorityFilterRequest struct {
	Emails        []domain.Email `json:"emails"`
	PriorityLevel string         `json:"priority_level"`
}

type priorityFilterResponse struct {
	PriorityLevel domain.Priority        `json:"priority_level"`
	Results       []batch.PriorityResult `json:"results"`
	Count         int                    `json:"count"`
}

type recommendationsRequest struct {
	Emails []domain.Email `json:"emails"`
	Limit  int            `json:"limit,omitempty"`
}

type dueDateRequest struct {
	Text string `json:"text"`
}

type dueDateResponse struct {
	DueDate *string `json:"due_date"`
}

type calculatePriorityRequest struct {
	Text    string `json:"text"`
	DueDate string `json:"due_date,omitempty"`
}

func (s *Server) detectPriority(w http.ResponseWriter, r *http.Request) {
	var email domain.Email
	if !decode(w, r, &email) {
		return
	}
	writeJSON(w, http.StatusOK, s.triager.DetectPriority(r.Context(), email))
}

func (s *Server) detectPriorityBatch(w http.ResponseWriter, r *http.Request) {
	var req emailsRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.batch.DetectPriorities(r.Context(), req.Emails))
}

func (s *Server) priorityFilter(w http.ResponseWriter, r *http.Request) {
	var req priorityFilterRequest
	if !decode(w, r, &req) {
		return
	}
	level, ok := domain.ParsePriority(req.PriorityLevel)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown priority_level %q", req.PriorityLevel))
		return
	}

	b := s.batch.DetectPriorities(r.Context(), req.Emails)
	results := batch.FilterByLevel(b.Results, string(level))
	writeJSON(w, http.StatusOK, priorityFilterResponse{PriorityLevel: level, Results: results, Count: len(results)})
}

func (s *Server) priorityRecommendations(w http.ResponseWriter, r *http.Request) {
	var req recommendationsRequest
	if !decode(w, r, &req) {
		return
	}
	b := s.batch.DetectPriorities(r.Context(), req.Emails)
	writeJSON(w, http.StatusOK, batch.Recommend(b.Results, req.Limit))
}

func (s *Server) suggestDueDate(w http.ResponseWriter, r *http.Request) {
	var req dueDateRequest
	if !decode(w, r, &req) {
		return
	}
	var resp dueDateResponse
	if date, ok := s.heuristics.SuggestDueDate(req.Text); ok {
		resp.DueDate = &date
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) calculatePriority(w http.ResponseWriter, r *http.Request) {
	var req calculatePriorityRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]domain.Priority{
		"priority": s.heuristics.CalculatePriority(req.Text, req.DueDate),
	})
}

func (s *Server) scoreUrgency(w http.ResponseWriter, r *http.Request) {
	var email domain.Email
	if !decode(w, r, &email) {
		return
	}
	writeJSON(w, http.StatusOK, s.heuristics.ScoreUrgency(email))
}
