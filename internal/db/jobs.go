package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-tracker/internal/types"
)

const jobColumns = `id, owner_id, source, url, title, company, description, keywords, status, created_at, updated_at`

func scanJob(row pgx.Row) (*types.JobPosting, error) {
	var j types.JobPosting
	var source, status string
	err := row.Scan(&j.ID, &j.OwnerID, &source, &j.URL, &j.Title, &j.Company, &j.Description,
		&j.Keywords, &status, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	j.Source = types.Source(source)
	j.Status = types.Status(status)
	if j.Keywords == nil {
		j.Keywords = []string{}
	}
	return &j, nil
}

// CreateJob inserts a job for job.OwnerID. Empty Source and Status default to manual and saved.
func (db *DB) CreateJob(ctx context.Context, job *types.JobPosting) (*types.JobPosting, error) {
	source := job.Source
	if source == "" {
		source = types.SourceManual
	}
	status := job.Status
	if status == "" {
		status = types.StatusSaved
	}
	keywords := job.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	created, err := scanJob(db.pool.QueryRow(ctx,
		`INSERT INTO jobs (owner_id, source, url, title, company, description, keywords, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+jobColumns,
		job.OwnerID, string(source), job.URL, job.Title, job.Company, job.Description, keywords, string(status),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return created, nil
}

// ListJobs returns the owner's jobs, newest first.
func (db *DB) ListJobs(ctx context.Context, ownerID uuid.UUID) ([]types.JobPosting, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []types.JobPosting{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return jobs, nil
}

// GetJob returns one of the owner's jobs. Returns nil, nil when absent.
func (db *DB) GetJob(ctx context.Context, ownerID, id uuid.UUID) (*types.JobPosting, error) {
	j, err := scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND owner_id = $2`, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return j, nil
}

// UpdateJob applies the non-nil fields of upd. Returns ErrNotFound if the owner has no such job.
func (db *DB) UpdateJob(ctx context.Context, ownerID, id uuid.UUID, upd types.JobPostingUpdate) (*types.JobPosting, error) {
	var status *string
	if upd.Status != nil {
		s := string(*upd.Status)
		status = &s
	}
	var keywords []string
	if upd.Keywords != nil {
		keywords = *upd.Keywords
		if keywords == nil {
			keywords = []string{}
		}
	}

	j, err := scanJob(db.pool.QueryRow(ctx,
		`UPDATE jobs SET
		   title = COALESCE($3, title),
		   company = COALESCE($4, company),
		   description = COALESCE($5, description),
		   keywords = COALESCE($6, keywords),
		   status = COALESCE($7, status),
		   updated_at = NOW()
		 WHERE id = $1 AND owner_id = $2
		 RETURNING `+jobColumns,
		id, ownerID, upd.Title, upd.Company, upd.Description, keywords, status,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return j, nil
}

// DeleteJob removes one of the owner's jobs. Returns ErrNotFound if nothing was deleted.
func (db *DB) DeleteJob(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByStatus totals the owner's jobs by status.
func (db *DB) CountByStatus(ctx context.Context, ownerID uuid.UUID) (types.StatusTotals, error) {
	var t types.StatusTotals
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE status = 'applied'),
		        COUNT(*) FILTER (WHERE status = 'interview'),
		        COUNT(*) FILTER (WHERE status = 'offer'),
		        COUNT(*) FILTER (WHERE status = 'rejected')
		 FROM jobs WHERE owner_id = $1`, ownerID,
	).Scan(&t.Total, &t.Applied, &t.Interview, &t.Offer, &t.Rejected)
	if err != nil {
		return types.StatusTotals{}, fmt.Errorf("failed to count jobs: %w", err)
	}
	return t, nil
}
