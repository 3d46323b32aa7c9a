//go:build integration

package db

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-tracker/internal/types"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	require.NoError(t, err, "failed to connect to test database")
	require.NoError(t, db.Migrate(ctx))
	t.Cleanup(db.Close)
	return db
}

func createTestUser(t *testing.T, db *DB) *User {
	t.Helper()
	ctx := context.Background()
	u, err := db.CreateUser(ctx, "Test User", uuid.NewString()+"@test.example.com", "hash")
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = db.pool.Exec(ctx, "DELETE FROM users WHERE id = $1", u.ID)
	})
	return u
}

func TestIntegration_Users(t *testing.T) {
	db := getTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db)

	byEmail, err := db.GetUserByEmail(ctx, "  "+u.Email+" ")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, u.ID, byEmail.ID)

	exists, err := db.CheckEmailExists(ctx, u.Email)
	require.NoError(t, err)
	assert.True(t, exists)

	missing, err := db.GetUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIntegration_Jobs(t *testing.T) {
	db := getTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db)

	created, err := db.CreateJob(ctx, &types.JobPosting{OwnerID: u.ID, Title: "SRE", Keywords: []string{"AWS"}})
	require.NoError(t, err)
	assert.Equal(t, types.SourceManual, created.Source)
	assert.Equal(t, types.StatusSaved, created.Status)

	status := types.StatusInterview
	updated, err := db.UpdateJob(ctx, u.ID, created.ID, types.JobPostingUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, types.StatusInterview, updated.Status)
	assert.Equal(t, "SRE", updated.Title)
	assert.Equal(t, []string{"AWS"}, updated.Keywords)

	_, err = db.UpdateJob(ctx, uuid.New(), created.ID, types.JobPostingUpdate{Status: &status})
	assert.ErrorIs(t, err, ErrNotFound)

	totals, err := db.CountByStatus(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusTotals{Total: 1, Interview: 1}, totals)

	jobs, err := db.ListJobs(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)

	require.NoError(t, db.DeleteJob(ctx, u.ID, created.ID))
	assert.ErrorIs(t, db.DeleteJob(ctx, u.ID, created.ID), ErrNotFound)
}

func TestIntegration_Resumes(t *testing.T) {
	db := getTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db)

	first, err := db.CreateResume(ctx, u.ID, "", []types.ResumeBlock{{ID: "b1", Type: types.BlockSkill, Content: "Go"}})
	require.NoError(t, err)
	assert.Equal(t, DefaultResumeName, first.Name)

	second, err := db.CreateResume(ctx, u.ID, "Backend", nil)
	require.NoError(t, err)
	assert.Empty(t, second.Blocks)

	name := "Renamed"
	_, err = db.UpdateResume(ctx, u.ID, first.ID, types.ResumeUpdate{Name: &name})
	require.NoError(t, err)

	latest, err := db.LatestResume(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, first.ID, latest.ID)
	assert.Equal(t, "Renamed", latest.Name)
	assert.Len(t, latest.Blocks, 1)

	require.NoError(t, db.DeleteResume(ctx, u.ID, second.ID))
	got, err := db.GetResume(ctx, u.ID, second.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestIntegration_Debriefs(t *testing.T) {
	db := getTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db)
	other := createTestUser(t, db)

	job, err := db.CreateJob(ctx, &types.JobPosting{OwnerID: u.ID, Title: "SRE"})
	require.NoError(t, err)

	created, err := db.CreateDebrief(ctx, &types.Debrief{
		OwnerID:      u.ID,
		JobID:        job.ID,
		Interviewers: []string{"Grace"},
		Sentiment:    types.SentimentGood,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Grace"}, created.Interviewers)
	assert.Equal(t, []string{}, created.Questions)

	_, err = db.CreateDebrief(ctx, &types.Debrief{OwnerID: other.ID, JobID: job.ID})
	assert.ErrorIs(t, err, ErrNotFound, "job belongs to another user")

	notes := "Asked about on-call"
	questions := []string{"Design a rate limiter"}
	updated, err := db.UpdateDebrief(ctx, u.ID, created.ID, types.DebriefUpdate{Notes: &notes, Questions: &questions})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, questions, updated.Questions)
	assert.Equal(t, types.SentimentGood, updated.Sentiment)

	list, err := db.ListDebriefs(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, db.DeleteJob(ctx, u.ID, job.ID))
	got, err := db.GetDebrief(ctx, u.ID, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "debriefs are removed with their job")
	assert.ErrorIs(t, db.DeleteDebrief(ctx, u.ID, created.ID), ErrNotFound)
}

func TestIntegration_DeleteUser(t *testing.T) {
	db := getTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db)

	_, err := db.CreateJob(ctx, &types.JobPosting{OwnerID: u.ID, Title: "SRE"})
	require.NoError(t, err)

	require.NoError(t, db.DeleteUser(ctx, u.ID))
	jobs, err := db.ListJobs(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, jobs)
	assert.ErrorIs(t, db.DeleteUser(ctx, u.ID), ErrNotFound)
}
