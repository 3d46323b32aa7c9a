package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-tracker/internal/types"
)

// ExportFilename is the attachment name of GET /export.
const ExportFilename = "job-tracker-export.json"

// AnalyticsResponse is the body of GET /analytics.
type AnalyticsResponse struct {
	Totals  types.StatusTotals `json:"totals"`
	Metrics Metrics            `json:"metrics"`
}

// Metrics holds derived pipeline ratios.
type Metrics struct {
	ApplicationToInterviewRate float64 `json:"applicationToInterviewRate"`
}

// Export is the caller's full data set.
type Export struct {
	UserID     uuid.UUID          `json:"userId"`
	ExportedAt time.Time          `json:"exportedAt"`
	Jobs       []types.JobPosting `json:"jobs"`
	Resumes    []types.Resume     `json:"resumes"`
	Debriefs   []types.Debrief    `json:"debriefs"`
}

// handleAnalytics reports job counts by status.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	totals, err := s.store.CountByStatus(r.Context(), owner)
	if err != nil {
		s.failure(w, err, "Failed to load analytics")
		return
	}
	s.jsonResponse(w, http.StatusOK, AnalyticsResponse{
		Totals:  totals,
		Metrics: Metrics{ApplicationToInterviewRate: totals.ApplicationToInterviewRate()},
	})
}

// handleExport returns all of the caller's jobs, resumes and debriefs as a downloadable JSON document.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}

	export := Export{UserID: owner, ExportedAt: time.Now().UTC()}
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		jobs, err := s.store.ListJobs(ctx, owner)
		export.Jobs = jobs
		return err
	})
	g.Go(func() error {
		resumes, err := s.store.ListResumes(ctx, owner)
		export.Resumes = resumes
		return err
	})
	g.Go(func() error {
		debriefs, err := s.store.ListDebriefs(ctx, owner)
		export.Debriefs = debriefs
		return err
	})
	if err := g.Wait(); err != nil {
		s.failure(w, err, "Failed to export data")
		return
	}
	if export.Jobs == nil {
		export.Jobs = []types.JobPosting{}
	}
	if export.Resumes == nil {
		export.Resumes = []types.Resume{}
	}
	if export.Debriefs == nil {
		export.Debriefs = []types.Debrief{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename="+ExportFilename)
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export); err != nil {
		log.Error().Err(err).Msg("error encoding export")
	}
}
