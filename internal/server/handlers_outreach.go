package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/job-tracker/internal/outreach"
	"github.com/jonathan/job-tracker/internal/types"
)

// CompanyRequest is the body of POST /company.
type CompanyRequest struct {
	Company string `json:"company"`
}

// handleNegotiate drafts a salary negotiation script for an offer.
func (s *Server) handleNegotiate(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.owner(w, r); !ok {
		return
	}
	var offer types.Offer
	if err := decodeJSON(r, &offer); err != nil {
		s.failure(w, err, "invalid request")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"script": outreach.NegotiationScript(offer)})
}

// handleNetwork drafts a referral request to a contact.
func (s *Server) handleNetwork(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.owner(w, r); !ok {
		return
	}
	var contact types.Contact
	if err := decodeJSON(r, &contact); err != nil {
		s.failure(w, err, "invalid request")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": outreach.NetworkingMessage(contact)})
}

// handleCompany returns public research about a company. Lookups that fail leave the
// corresponding fields empty.
func (s *Server) handleCompany(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.owner(w, r); !ok {
		return
	}
	var req CompanyRequest
	if err := decodeJSON(r, &req); err != nil {
		s.failure(w, err, "invalid request")
		return
	}
	name := strings.TrimSpace(req.Company)
	if name == "" {
		s.errorResponse(w, http.StatusBadRequest, "Missing company")
		return
	}

	profile := types.CompanyProfile{Company: name, News: []types.NewsItem{}}
	if s.research != nil {
		profile = s.research.Company(r.Context(), name)
		if profile.News == nil {
			profile.News = []types.NewsItem{}
		}
	}
	s.jsonResponse(w, http.StatusOK, profile)
}
