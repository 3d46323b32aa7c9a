package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-tracker/internal/types"
)

const debriefColumns = `id, owner_id, job_id, interviewers, questions, sentiment, notes, created_at, updated_at`

func scanDebrief(row pgx.Row) (*types.Debrief, error) {
	var d types.Debrief
	var sentiment string
	err := row.Scan(&d.ID, &d.OwnerID, &d.JobID, &d.Interviewers, &d.Questions, &sentiment, &d.Notes,
		&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d.Sentiment = types.Sentiment(sentiment)
	if d.Interviewers == nil {
		d.Interviewers = []string{}
	}
	if d.Questions == nil {
		d.Questions = []string{}
	}
	return &d, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// CreateDebrief inserts a debrief for d.OwnerID. The job must belong to the same owner;
// otherwise ErrNotFound is returned.
func (db *DB) CreateDebrief(ctx context.Context, d *types.Debrief) (*types.Debrief, error) {
	created, err := scanDebrief(db.pool.QueryRow(ctx,
		`INSERT INTO debriefs (owner_id, job_id, interviewers, questions, sentiment, notes)
		 SELECT $1::uuid, j.id, $3::text[], $4::text[], $5::text, $6::text FROM jobs j WHERE j.id = $2 AND j.owner_id = $1
		 RETURNING `+debriefColumns,
		d.OwnerID, d.JobID, nonNil(d.Interviewers), nonNil(d.Questions), string(d.Sentiment), d.Notes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to create debrief: %w", err)
	}
	return created, nil
}

// ListDebriefs returns the owner's debriefs, most recently updated first.
func (db *DB) ListDebriefs(ctx context.Context, ownerID uuid.UUID) ([]types.Debrief, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+debriefColumns+` FROM debriefs WHERE owner_id = $1 ORDER BY updated_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debriefs: %w", err)
	}
	defer rows.Close()

	debriefs := []types.Debrief{}
	for rows.Next() {
		d, err := scanDebrief(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debrief: %w", err)
		}
		debriefs = append(debriefs, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debriefs: %w", err)
	}
	return debriefs, nil
}

// GetDebrief returns one of the owner's debriefs. Returns nil, nil when absent.
func (db *DB) GetDebrief(ctx context.Context, ownerID, id uuid.UUID) (*types.Debrief, error) {
	d, err := scanDebrief(db.pool.QueryRow(ctx,
		`SELECT `+debriefColumns+` FROM debriefs WHERE id = $1 AND owner_id = $2`, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get debrief: %w", err)
	}
	return d, nil
}

// UpdateDebrief applies the non-nil fields of upd. Returns ErrNotFound if the owner has no
// such debrief.
func (db *DB) UpdateDebrief(ctx context.Context, ownerID, id uuid.UUID, upd types.DebriefUpdate) (*types.Debrief, error) {
	var interviewers, questions []string
	if upd.Interviewers != nil {
		interviewers = nonNil(*upd.Interviewers)
	}
	if upd.Questions != nil {
		questions = nonNil(*upd.Questions)
	}
	var sentiment *string
	if upd.Sentiment != nil {
		s := string(*upd.Sentiment)
		sentiment = &s
	}

	d, err := scanDebrief(db.pool.QueryRow(ctx,
		`UPDATE debriefs SET
		   interviewers = COALESCE($3, interviewers),
		   questions = COALESCE($4, questions),
		   sentiment = COALESCE($5, sentiment),
		   notes = COALESCE($6, notes),
		   updated_at = NOW()
		 WHERE id = $1 AND owner_id = $2
		 RETURNING `+debriefColumns,
		id, ownerID, interviewers, questions, sentiment, upd.Notes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update debrief: %w", err)
	}
	return d, nil
}

// DeleteDebrief removes one of the owner's debriefs. Returns ErrNotFound if nothing was deleted.
func (db *DB) DeleteDebrief(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM debriefs WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete debrief: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
