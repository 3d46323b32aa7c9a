package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/job-tracker/internal/types"
)

// CreateDebriefRequest is the body of POST /debriefs.
type CreateDebriefRequest struct {
	JobID        string          `json:"jobId" validate:"required,uuid"`
	Interviewers []string        `json:"interviewers"`
	Questions    []string        `json:"questions"`
	Sentiment    types.Sentiment `json:"sentiment" validate:"omitempty,oneof=bad ok good"`
	Notes        string          `json:"notes"`
}

// handleListDebriefs lists the caller's debriefs, most recently updated first.
func (s *Server) handleListDebriefs(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	debriefs, err := s.store.ListDebriefs(r.Context(), owner)
	if err != nil {
		s.failure(w, err, "Failed to list debriefs")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"data": debriefs})
}

// handleCreateDebrief records an interview debrief against one of the caller's jobs.
func (s *Server) handleCreateDebrief(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	var req CreateDebriefRequest
	if err := decodeJSON(r, &req); err != nil {
		s.failure(w, err, "invalid request")
		return
	}
	if err := validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	jobID := uuid.MustParse(req.JobID)

	job, err := s.store.GetJob(r.Context(), owner, jobID)
	if err != nil {
		s.failure(w, err, "Failed to load job")
		return
	}
	if job == nil {
		s.failure(w, &ErrNotFound{Resource: "job", ID: jobID.String()}, "")
		return
	}

	created, err := s.store.CreateDebrief(r.Context(), &types.Debrief{
		OwnerID:      owner,
		JobID:        jobID,
		Interviewers: trimAll(req.Interviewers),
		Questions:    trimAll(req.Questions),
		Sentiment:    req.Sentiment,
		Notes:        strings.TrimSpace(req.Notes),
	})
	if err != nil {
		s.failure(w, err, "Failed to create debrief")
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]any{"id": created.ID, "data": created})
}

// handleGetDebrief returns one of the caller's debriefs.
func (s *Server) handleGetDebrief(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.failure(w, err, "invalid debrief id")
		return
	}
	debrief, err := s.store.GetDebrief(r.Context(), owner, id)
	if err != nil {
		s.failure(w, err, "Failed to get debrief")
		return
	}
	if debrief == nil {
		s.failure(w, &ErrNotFound{Resource: "debrief", ID: id.String()}, "")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"data": debrief})
}

// handleUpdateDebrief changes the interviewers, questions, sentiment or notes of a debrief.
func (s *Server) handleUpdateDebrief(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.failure(w, err, "invalid debrief id")
		return
	}
	var upd types.DebriefUpdate
	if err := decodeJSON(r, &upd); err != nil {
		s.failure(w, err, "invalid request")
		return
	}
	if err := validate.Struct(upd); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	if upd.Interviewers != nil {
		trimmed := trimAll(*upd.Interviewers)
		upd.Interviewers = &trimmed
	}
	if upd.Questions != nil {
		trimmed := trimAll(*upd.Questions)
		upd.Questions = &trimmed
	}

	debrief, err := s.store.UpdateDebrief(r.Context(), owner, id, upd)
	if err != nil {
		s.failure(w, err, "Failed to update debrief")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "data": debrief})
}

// handleDeleteDebrief removes one of the caller's debriefs.
func (s *Server) handleDeleteDebrief(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.failure(w, err, "invalid debrief id")
		return
	}
	if err := s.store.DeleteDebrief(r.Context(), owner, id); err != nil {
		s.failure(w, err, "Failed to delete debrief")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// trimAll trims each entry and drops blanks. The result is never nil.
func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
