package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/job-tracker/internal/interview"
	"github.com/jonathan/job-tracker/internal/matching"
	"github.com/jonathan/job-tracker/internal/tailoring"
	"github.com/jonathan/job-tracker/internal/types"
)

// resumeSeparator joins block contents when a resume is scored as one text.
const resumeSeparator = "\n\n"

// AnalysisRequest is the body of the recommend, tailor and interview endpoints.
type AnalysisRequest struct {
	JobDescription string              `json:"jobDescription"`
	ResumeBlocks   []types.ResumeBlock `json:"resumeBlocks,omitempty"`
	Save           bool                `json:"save,omitempty"`
}

func (s *Server) decodeAnalysis(w http.ResponseWriter, r *http.Request) (AnalysisRequest, bool) {
	var req AnalysisRequest
	if err := decodeJSON(r, &req); err != nil {
		s.failure(w, err, "invalid request")
		return req, false
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		s.errorResponse(w, http.StatusBadRequest, "Missing jobDescription")
		return req, false
	}
	return req, true
}

// handleRecommend scores the caller's most recently updated resume against a job description.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	req, ok := s.decodeAnalysis(w, r)
	if !ok {
		return
	}

	primary, err := s.store.LatestResume(r.Context(), owner)
	if err != nil {
		s.failure(w, err, "Failed to load resume")
		return
	}
	s.jsonResponse(w, http.StatusOK, matching.Score(primary.Text(resumeSeparator), req.JobDescription))
}

// handleTailor selects the blocks of the caller's latest resume that best fit a job description.
// With save set, the result is stored as a new resume.
func (s *Server) handleTailor(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	req, ok := s.decodeAnalysis(w, r)
	if !ok {
		return
	}

	primary, err := s.store.LatestResume(r.Context(), owner)
	if err != nil {
		s.failure(w, err, "Failed to load resume")
		return
	}
	var (
		name   string
		blocks []types.ResumeBlock
	)
	if primary != nil {
		name, blocks = primary.Name, primary.Blocks
	}
	tailored := tailoring.Tailor(name, blocks, req.JobDescription)

	if !req.Save {
		s.jsonResponse(w, http.StatusOK, tailored)
		return
	}
	saved, err := s.store.CreateResume(r.Context(), owner, tailored.Name, tailored.Blocks)
	if err != nil {
		s.failure(w, err, "Failed to save tailored resume")
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"id":     saved.ID,
		"name":   tailored.Name,
		"blocks": tailored.Blocks,
	})
}

// handleInterviewPrepare generates practice questions for a job description.
func (s *Server) handleInterviewPrepare(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.owner(w, r); !ok {
		return
	}
	req, ok := s.decodeAnalysis(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, interview.Generate(req.JobDescription, req.ResumeBlocks))
}
