package server

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-tracker/internal/db"
	"github.com/jonathan/job-tracker/internal/types"
)

type resumeEnvelope struct {
	ID   uuid.UUID    `json:"id"`
	Data types.Resume `json:"data"`
}

func sampleBlocks() []types.ResumeBlock {
	return []types.ResumeBlock{
		{ID: "b1", Type: types.BlockSummary, Content: "Backend engineer"},
		{ID: "b2", Type: types.BlockExperience, Content: "Built React dashboards on AWS"},
	}
}

func TestResumeLifecycle(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/resumes", map[string]any{"name": "Main", "blocks": sampleBlocks()})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[resumeEnvelope](t, w)
	assert.Equal(t, "Main", created.Data.Name)
	assert.Equal(t, sampleBlocks(), created.Data.Blocks)
	path := "/resumes/" + created.ID.String()

	w = env.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, decode[resumeEnvelope](t, w).Data.ID)

	w = env.do(t, http.MethodPatch, path, map[string]any{"name": "Renamed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[resumeEnvelope](t, w)
	assert.Equal(t, "Renamed", updated.Data.Name)
	assert.Equal(t, sampleBlocks(), updated.Data.Blocks)

	w = env.do(t, http.MethodGet, "/resumes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Data []types.Resume `json:"data"`
	}](t, w)
	assert.Len(t, list.Data, 1)

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, path, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, path, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, path, nil).Code)
}

func TestCreateResume_DefaultName(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/resumes", map[string]any{})

	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[resumeEnvelope](t, w)
	assert.Equal(t, db.DefaultResumeName, created.Data.Name)
	assert.NotNil(t, created.Data.Blocks)
}

func TestCreateResume_InvalidBlock(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/resumes", map[string]any{
		"blocks": []map[string]string{{"id": "b1", "type": "hobby", "content": "chess"}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, env.store.resumes)
}

func TestUpdateResume_NotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPatch, "/resumes/"+uuid.NewString(), map[string]any{"name": "x"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}
