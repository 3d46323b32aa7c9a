package server

import (
	"net/http"

	"github.com/jonathan/job-tracker/internal/types"
)

// CreateResumeRequest is the body of POST /resumes.
type CreateResumeRequest struct {
	Name   string              `json:"name"`
	Blocks []types.ResumeBlock `json:"blocks" validate:"dive"`
}

// handleListResumes lists the caller's resumes, most recently updated first.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	resumes, err := s.store.ListResumes(r.Context(), owner)
	if err != nil {
		s.failure(w, err, "Failed to list resumes")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"data": resumes})
}

// handleCreateResume stores a new resume. A blank name becomes the default name.
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	var req CreateResumeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.failure(w, err, "invalid request")
		return
	}
	if err := validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	if req.Blocks == nil {
		req.Blocks = []types.ResumeBlock{}
	}

	created, err := s.store.CreateResume(r.Context(), owner, req.Name, req.Blocks)
	if err != nil {
		s.failure(w, err, "Failed to create resume")
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]any{"id": created.ID, "data": created})
}

// handleGetResume returns one of the caller's resumes.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.failure(w, err, "invalid resume id")
		return
	}
	resume, err := s.store.GetResume(r.Context(), owner, id)
	if err != nil {
		s.failure(w, err, "Failed to get resume")
		return
	}
	if resume == nil {
		s.failure(w, &ErrNotFound{Resource: "resume", ID: id.String()}, "")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"data": resume})
}

// handleUpdateResume renames a resume or replaces its blocks.
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.failure(w, err, "invalid resume id")
		return
	}
	var upd types.ResumeUpdate
	if err := decodeJSON(r, &upd); err != nil {
		s.failure(w, err, "invalid request")
		return
	}
	if err := validate.Struct(upd); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	resume, err := s.store.UpdateResume(r.Context(), owner, id, upd)
	if err != nil {
		s.failure(w, err, "Failed to update resume")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "data": resume})
}

// handleDeleteResume removes one of the caller's resumes.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.failure(w, err, "invalid resume id")
		return
	}
	if err := s.store.DeleteResume(r.Context(), owner, id); err != nil {
		s.failure(w, err, "Failed to delete resume")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}
