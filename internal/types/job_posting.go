// Package types provides type definitions for structured data used throughout the job tracker.
package types

import (
	"time"

	"github.com/google/uuid"
)

// Source records how a job posting entered the tracker.
type Source string

// Known job posting sources.
const (
	SourceManual Source = "manual"
	SourceURL    Source = "url"
	SourceEmail  Source = "email"
)

// Status is the application status of a tracked job.
type Status string

// Application statuses, in pipeline order.
const (
	StatusSaved     Status = "saved"
	StatusApplied   Status = "applied"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
)

// Statuses lists every valid status in pipeline order.
var Statuses = []Status{StatusSaved, StatusApplied, StatusInterview, StatusOffer, StatusRejected}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParsedJob is the output of the job posting parser.
// Missing values are empty strings; Keywords is never nil.
type ParsedJob struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// Empty reports whether the parser found neither a title nor a company.
func (p ParsedJob) Empty() bool {
	return p.Title == "" && p.Company == ""
}

// Blank reports whether the parser found nothing at all.
func (p ParsedJob) Blank() bool {
	return p.Empty() && p.Description == "" && len(p.Keywords) == 0
}

// JobPosting is a job tracked by a user.
type JobPosting struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Source      Source    `json:"source"`
	URL         string    `json:"url,omitempty"`
	Title       string    `json:"title,omitempty"`
	Company     string    `json:"company,omitempty"`
	Description string    `json:"description,omitempty"`
	Keywords    []string  `json:"keywords"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// JobPostingUpdate carries the mutable fields of a job posting. Nil fields are left unchanged.
type JobPostingUpdate struct {
	Title       *string   `json:"title,omitempty"`
	Company     *string   `json:"company,omitempty"`
	Description *string   `json:"description,omitempty"`
	Keywords    *[]string `json:"keywords,omitempty"`
	Status      *Status   `json:"status,omitempty" validate:"omitempty,oneof=saved applied interview offer rejected"`
}

// StatusTotals counts a user's jobs by status.
type StatusTotals struct {
	Total     int `json:"total"`
	Applied   int `json:"applied"`
	Interview int `json:"interview"`
	Offer     int `json:"offer"`
	Rejected  int `json:"rejected"`
}

// ApplicationToInterviewRate is interviews per application, 0 when nothing is tracked.
func (t StatusTotals) ApplicationToInterviewRate() float64 {
	if t.Total == 0 {
		return 0
	}
	applied := t.Applied
	if applied < 1 {
		applied = 1
	}
	return float64(t.Interview) / float64(applied)
}
