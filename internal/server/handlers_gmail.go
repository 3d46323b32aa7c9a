package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jonathan/job-tracker/internal/gmail"
	"github.com/jonathan/job-tracker/internal/types"
)

// handleGmailImport stores a job for every recent message that names a title or company.
func (s *Server) handleGmailImport(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	if s.mail == nil {
		s.failure(w, &ErrUnavailable{Feature: "gmail import"}, "")
		return
	}

	messages, err := s.mail.ListRecent(r.Context(), s.mailLimit)
	if err != nil {
		log.Error().Err(err).Msg("gmail import: list messages")
		s.errorResponse(w, http.StatusBadGateway, "Failed to read mailbox")
		return
	}

	imported := 0
	for _, parsed := range gmail.Jobs(messages) {
		job := &types.JobPosting{OwnerID: owner, Source: types.SourceEmail, Status: types.StatusSaved}
		applyParsed(job, parsed)
		if _, err := s.store.CreateJob(r.Context(), job); err != nil {
			s.failure(w, err, "Failed to store imported job")
			return
		}
		imported++
	}
	log.Info().Int("messages", len(messages)).Int("imported", imported).Msg("gmail import finished")
	s.jsonResponse(w, http.StatusOK, map[string]int{"imported": imported})
}
