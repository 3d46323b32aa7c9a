package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/job-tracker/internal/db"
	"github.com/jonathan/job-tracker/internal/gmail"
	"github.com/jonathan/job-tracker/internal/jobparse"
	"github.com/jonathan/job-tracker/internal/research"
	"github.com/jonathan/job-tracker/internal/types"
)

// Store is the persistence the API needs. *db.DB implements it.
type Store interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, name, email, passwordHash string) (*db.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error

	CreateJob(ctx context.Context, job *types.JobPosting) (*types.JobPosting, error)
	ListJobs(ctx context.Context, ownerID uuid.UUID) ([]types.JobPosting, error)
	GetJob(ctx context.Context, ownerID, id uuid.UUID) (*types.JobPosting, error)
	UpdateJob(ctx context.Context, ownerID, id uuid.UUID, upd types.JobPostingUpdate) (*types.JobPosting, error)
	DeleteJob(ctx context.Context, ownerID, id uuid.UUID) error
	CountByStatus(ctx context.Context, ownerID uuid.UUID) (types.StatusTotals, error)

	CreateResume(ctx context.Context, ownerID uuid.UUID, name string, blocks []types.ResumeBlock) (*types.Resume, error)
	ListResumes(ctx context.Context, ownerID uuid.UUID) ([]types.Resume, error)
	GetResume(ctx context.Context, ownerID, id uuid.UUID) (*types.Resume, error)
	LatestResume(ctx context.Context, ownerID uuid.UUID) (*types.Resume, error)
	UpdateResume(ctx context.Context, ownerID, id uuid.UUID, upd types.ResumeUpdate) (*types.Resume, error)
	DeleteResume(ctx context.Context, ownerID, id uuid.UUID) error

	CreateDebrief(ctx context.Context, d *types.Debrief) (*types.Debrief, error)
	ListDebriefs(ctx context.Context, ownerID uuid.UUID) ([]types.Debrief, error)
	GetDebrief(ctx context.Context, ownerID, id uuid.UUID) (*types.Debrief, error)
	UpdateDebrief(ctx context.Context, ownerID, id uuid.UUID, upd types.DebriefUpdate) (*types.Debrief, error)
	DeleteDebrief(ctx context.Context, ownerID, id uuid.UUID) error
}

// JobParser extracts job postings. *jobparse.Parser implements it.
type JobParser interface {
	Parse(ctx context.Context, in jobparse.Input) types.ParsedJob
}

// MailSource lists recent mailbox messages. *gmail.Client implements it.
type MailSource interface {
	ListRecent(ctx context.Context, limit int64) ([]gmail.Message, error)
}

// CompanyResearcher looks up public information about a company. *research.Researcher
// implements it.
type CompanyResearcher interface {
	Company(ctx context.Context, name string) types.CompanyProfile
}

var (
	_ Store             = (*db.DB)(nil)
	_ JobParser         = (*jobparse.Parser)(nil)
	_ MailSource        = (*gmail.Client)(nil)
	_ CompanyResearcher = (*research.Researcher)(nil)
)
