package types

import (
	"time"

	"github.com/google/uuid"
)

// Sentiment is how an interview felt to the candidate.
type Sentiment string

// Known sentiments.
const (
	SentimentBad  Sentiment = "bad"
	SentimentOK   Sentiment = "ok"
	SentimentGood Sentiment = "good"
)

// Debrief records what happened in one interview for a tracked job.
type Debrief struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	JobID        uuid.UUID `json:"jobId"`
	Interviewers []string  `json:"interviewers"`
	Questions    []string  `json:"questions"`
	Sentiment    Sentiment `json:"sentiment,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DebriefUpdate carries the mutable fields of a debrief. Nil fields are left unchanged.
type DebriefUpdate struct {
	Interviewers *[]string  `json:"interviewers,omitempty"`
	Questions    *[]string  `json:"questions,omitempty"`
	Sentiment    *Sentiment `json:"sentiment,omitempty" validate:"omitempty,oneof=bad ok good"`
	Notes        *string    `json:"notes,omitempty"`
}
