package server

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/job-tracker/internal/jobparse"
	"github.com/jonathan/job-tracker/internal/keywords"
	"github.com/jonathan/job-tracker/internal/types"
)

var validate = validator.New()

// ParseJobRequest is the body of POST /parse-job.
type ParseJobRequest struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// ParseJobResponse repeats the parsed fields at top level for older clients.
type ParseJobResponse struct {
	Success     bool            `json:"success"`
	Data        types.ParsedJob `json:"data"`
	JobTitle    string          `json:"jobTitle"`
	CompanyName string          `json:"companyName"`
	Description string          `json:"description"`
	Keywords    []string        `json:"keywords"`
}

// ManualJob is a job entered by hand.
type ManualJob struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// CreateJobRequest is the body of POST /jobs. URL takes precedence over EmailText, which takes
// precedence over Manual.
type CreateJobRequest struct {
	URL       string     `json:"url"`
	EmailText string     `json:"emailText"`
	Manual    *ManualJob `json:"manual"`
}

// handleParseJob extracts a job posting from a URL or pasted text without storing it.
func (s *Server) handleParseJob(w http.ResponseWriter, r *http.Request) {
	var req ParseJobRequest
	if err := decodeJSON(r, &req); err != nil {
		s.failure(w, err, "invalid request")
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" && strings.TrimSpace(req.Text) == "" {
		s.errorResponse(w, http.StatusBadRequest, "URL is required")
		return
	}

	job := s.parser.Parse(r.Context(), jobparse.Input{URL: req.URL, Text: req.Text})
	s.jsonResponse(w, http.StatusOK, ParseJobResponse{
		Success:     true,
		Data:        job,
		JobTitle:    job.Title,
		CompanyName: job.Company,
		Description: job.Description,
		Keywords:    job.Keywords,
	})
}

// handleListJobs lists the caller's jobs, newest first.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	jobs, err := s.store.ListJobs(r.Context(), owner)
	if err != nil {
		s.failure(w, err, "Failed to list jobs")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"data": jobs})
}

// handleCreateJob stores a job from a URL, an e-mail body or manual fields.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	var req CreateJobRequest
	if err := decodeJSON(r, &req); err != nil {
		s.failure(w, err, "invalid request")
		return
	}

	job := &types.JobPosting{OwnerID: owner, Status: types.StatusSaved}
	switch {
	case strings.TrimSpace(req.URL) != "":
		job.Source = types.SourceURL
		job.URL = strings.TrimSpace(req.URL)
		applyParsed(job, s.parser.Parse(r.Context(), jobparse.Input{URL: job.URL}))
	case strings.TrimSpace(req.EmailText) != "":
		job.Source = types.SourceEmail
		applyParsed(job, s.parser.Parse(r.Context(), jobparse.Input{Text: req.EmailText}))
	case req.Manual != nil:
		job.Source = types.SourceManual
		applyParsed(job, types.ParsedJob{
			Title:       req.Manual.Title,
			Company:     req.Manual.Company,
			Description: req.Manual.Description,
			Keywords:    req.Manual.Keywords,
		})
		if len(job.Keywords) == 0 {
			job.Keywords = keywords.Default.Extract(job.Description)
		}
	default:
		s.errorResponse(w, http.StatusBadRequest, "one of url, emailText or manual is required")
		return
	}

	created, err := s.store.CreateJob(r.Context(), job)
	if err != nil {
		s.failure(w, err, "Failed to create job")
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]any{"id": created.ID, "data": created})
}

func applyParsed(job *types.JobPosting, parsed types.ParsedJob) {
	job.Title = strings.TrimSpace(parsed.Title)
	job.Company = strings.TrimSpace(parsed.Company)
	job.Description = strings.TrimSpace(parsed.Description)
	job.Keywords = parsed.Keywords
	if job.Keywords == nil {
		job.Keywords = []string{}
	}
}

// handleGetJob returns one of the caller's jobs.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.failure(w, err, "invalid job id")
		return
	}
	job, err := s.store.GetJob(r.Context(), owner, id)
	if err != nil {
		s.failure(w, err, "Failed to get job")
		return
	}
	if job == nil {
		s.failure(w, &ErrNotFound{Resource: "job", ID: id.String()}, "")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"data": job})
}

// handleUpdateJob applies a partial update, typically a status change.
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.failure(w, err, "invalid job id")
		return
	}
	var upd types.JobPostingUpdate
	if err := decodeJSON(r, &upd); err != nil {
		s.failure(w, err, "invalid request")
		return
	}
	if err := validate.Struct(upd); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	job, err := s.store.UpdateJob(r.Context(), owner, id, upd)
	if err != nil {
		s.failure(w, err, "Failed to update job")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "data": job})
}

// handleDeleteJob removes one of the caller's jobs.
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.failure(w, err, "invalid job id")
		return
	}
	if err := s.store.DeleteJob(r.Context(), owner, id); err != nil {
		s.failure(w, err, "Failed to delete job")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}
