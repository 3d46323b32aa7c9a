package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-tracker/internal/types"
)

// DefaultResumeName is stored when a resume is created without a name.
const DefaultResumeName = "Untitled Resume"

const resumeColumns = `id, owner_id, name, blocks, created_at, updated_at`

func scanResume(row pgx.Row) (*types.Resume, error) {
	var r types.Resume
	var blocks []byte
	if err := row.Scan(&r.ID, &r.OwnerID, &r.Name, &blocks, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(blocks, &r.Blocks); err != nil {
		return nil, fmt.Errorf("failed to decode resume blocks: %w", err)
	}
	if r.Blocks == nil {
		r.Blocks = []types.ResumeBlock{}
	}
	return &r, nil
}

func encodeBlocks(blocks []types.ResumeBlock) ([]byte, error) {
	if blocks == nil {
		blocks = []types.ResumeBlock{}
	}
	data, err := json.Marshal(blocks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode resume blocks: %w", err)
	}
	return data, nil
}

// CreateResume inserts a resume for ownerID.
func (db *DB) CreateResume(ctx context.Context, ownerID uuid.UUID, name string, blocks []types.ResumeBlock) (*types.Resume, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultResumeName
	}
	data, err := encodeBlocks(blocks)
	if err != nil {
		return nil, err
	}

	r, err := scanResume(db.pool.QueryRow(ctx,
		`INSERT INTO resumes (owner_id, name, blocks)
		 VALUES ($1, $2, $3)
		 RETURNING `+resumeColumns,
		ownerID, name, data,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return r, nil
}

// ListResumes returns the owner's resumes, most recently updated first.
func (db *DB) ListResumes(ctx context.Context, ownerID uuid.UUID) ([]types.Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE owner_id = $1 ORDER BY updated_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	resumes := []types.Resume{}
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resumes: %w", err)
	}
	return resumes, nil
}

// GetResume returns one of the owner's resumes. Returns nil, nil when absent.
func (db *DB) GetResume(ctx context.Context, ownerID, id uuid.UUID) (*types.Resume, error) {
	r, err := scanResume(db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1 AND owner_id = $2`, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return r, nil
}

// LatestResume returns the owner's most recently updated resume. Returns nil, nil when the
// owner has none.
func (db *DB) LatestResume(ctx context.Context, ownerID uuid.UUID) (*types.Resume, error) {
	r, err := scanResume(db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE owner_id = $1 ORDER BY updated_at DESC LIMIT 1`, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest resume: %w", err)
	}
	return r, nil
}

// UpdateResume applies the non-nil fields of upd. Returns ErrNotFound if the owner has no
// such resume.
func (db *DB) UpdateResume(ctx context.Context, ownerID, id uuid.UUID, upd types.ResumeUpdate) (*types.Resume, error) {
	var blocks []byte
	if upd.Blocks != nil {
		data, err := encodeBlocks(*upd.Blocks)
		if err != nil {
			return nil, err
		}
		blocks = data
	}

	r, err := scanResume(db.pool.QueryRow(ctx,
		`UPDATE resumes SET
		   name = COALESCE($3, name),
		   blocks = COALESCE($4::jsonb, blocks),
		   updated_at = NOW()
		 WHERE id = $1 AND owner_id = $2
		 RETURNING `+resumeColumns,
		id, ownerID, upd.Name, blocks,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}
	return r, nil
}

// DeleteResume removes one of the owner's resumes. Returns ErrNotFound if nothing was deleted.
func (db *DB) DeleteResume(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
