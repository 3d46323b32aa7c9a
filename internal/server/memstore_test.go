package server

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/job-tracker/internal/db"
	"github.com/jonathan/job-tracker/internal/gmail"
	"github.com/jonathan/job-tracker/internal/jobparse"
	"github.com/jonathan/job-tracker/internal/types"
)

// memStore is an in-memory Store for handler tests.
type memStore struct {
	mu       sync.Mutex
	pingErr  error
	users    map[uuid.UUID]*db.User
	jobs     []*types.JobPosting
	resumes  []*types.Resume
	debriefs []*types.Debrief
	listErr  error
	clock    time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users: map[uuid.UUID]*db.User{},
		clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) Ping(context.Context) error { return m.pingErr }

func (m *memStore) CreateUser(_ context.Context, name, email, hash string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.tick()
	u := &db.User{ID: uuid.New(), Name: name, Email: email, PasswordHash: hash, CreatedAt: now, UpdatedAt: now}
	m.users[u.ID] = u
	return u, nil
}

func (m *memStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id], nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memStore) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, err := m.GetUserByEmail(ctx, email)
	return u != nil, err
}

func (m *memStore) DeleteUser(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.users, id)
	keepJobs := m.jobs[:0]
	for _, j := range m.jobs {
		if j.OwnerID != id {
			keepJobs = append(keepJobs, j)
		}
	}
	m.jobs = keepJobs
	keepResumes := m.resumes[:0]
	for _, r := range m.resumes {
		if r.OwnerID != id {
			keepResumes = append(keepResumes, r)
		}
	}
	m.resumes = keepResumes
	keepDebriefs := m.debriefs[:0]
	for _, d := range m.debriefs {
		if d.OwnerID != id {
			keepDebriefs = append(keepDebriefs, d)
		}
	}
	m.debriefs = keepDebriefs
	return nil
}

func (m *memStore) CreateJob(_ context.Context, job *types.JobPosting) (*types.JobPosting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *job
	c.ID = uuid.New()
	c.CreatedAt = m.tick()
	c.UpdatedAt = c.CreatedAt
	m.jobs = append(m.jobs, &c)
	out := c
	return &out, nil
}

func (m *memStore) ListJobs(_ context.Context, owner uuid.UUID) ([]types.JobPosting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []types.JobPosting{}
	for i := len(m.jobs) - 1; i >= 0; i-- {
		if m.jobs[i].OwnerID == owner {
			out = append(out, *m.jobs[i])
		}
	}
	return out, nil
}

func (m *memStore) findJob(owner, id uuid.UUID) *types.JobPosting {
	for _, j := range m.jobs {
		if j.ID == id && j.OwnerID == owner {
			return j
		}
	}
	return nil
}

func (m *memStore) GetJob(_ context.Context, owner, id uuid.UUID) (*types.JobPosting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j := m.findJob(owner, id); j != nil {
		out := *j
		return &out, nil
	}
	return nil, nil
}

func (m *memStore) UpdateJob(_ context.Context, owner, id uuid.UUID, upd types.JobPostingUpdate) (*types.JobPosting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j := m.findJob(owner, id)
	if j == nil {
		return nil, db.ErrNotFound
	}
	if upd.Title != nil {
		j.Title = *upd.Title
	}
	if upd.Company != nil {
		j.Company = *upd.Company
	}
	if upd.Description != nil {
		j.Description = *upd.Description
	}
	if upd.Keywords != nil {
		j.Keywords = *upd.Keywords
	}
	if upd.Status != nil {
		j.Status = *upd.Status
	}
	j.UpdatedAt = m.tick()
	out := *j
	return &out, nil
}

func (m *memStore) DeleteJob(_ context.Context, owner, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, j := range m.jobs {
		if j.ID == id && j.OwnerID == owner {
			m.jobs = append(m.jobs[:i], m.jobs[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

func (m *memStore) CountByStatus(_ context.Context, owner uuid.UUID) (types.StatusTotals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var t types.StatusTotals
	for _, j := range m.jobs {
		if j.OwnerID != owner {
			continue
		}
		t.Total++
		switch j.Status {
		case types.StatusApplied:
			t.Applied++
		case types.StatusInterview:
			t.Interview++
		case types.StatusOffer:
			t.Offer++
		case types.StatusRejected:
			t.Rejected++
		}
	}
	return t, nil
}

func (m *memStore) CreateResume(_ context.Context, owner uuid.UUID, name string, blocks []types.ResumeBlock) (*types.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if name == "" {
		name = db.DefaultResumeName
	}
	now := m.tick()
	r := &types.Resume{ID: uuid.New(), OwnerID: owner, Name: name, Blocks: blocks, CreatedAt: now, UpdatedAt: now}
	m.resumes = append(m.resumes, r)
	out := *r
	return &out, nil
}

func (m *memStore) ListResumes(_ context.Context, owner uuid.UUID) ([]types.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []types.Resume{}
	for _, r := range m.resumes {
		if r.OwnerID == owner {
			out = append(out, *r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *memStore) GetResume(_ context.Context, owner, id uuid.UUID) (*types.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.resumes {
		if r.ID == id && r.OwnerID == owner {
			out := *r
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memStore) LatestResume(ctx context.Context, owner uuid.UUID) (*types.Resume, error) {
	list, _ := m.ListResumes(ctx, owner)
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

func (m *memStore) UpdateResume(_ context.Context, owner, id uuid.UUID, upd types.ResumeUpdate) (*types.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.resumes {
		if r.ID != id || r.OwnerID != owner {
			continue
		}
		if upd.Name != nil {
			r.Name = *upd.Name
		}
		if upd.Blocks != nil {
			r.Blocks = *upd.Blocks
		}
		r.UpdatedAt = m.tick()
		out := *r
		return &out, nil
	}
	return nil, db.ErrNotFound
}

func (m *memStore) DeleteResume(_ context.Context, owner, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.resumes {
		if r.ID == id && r.OwnerID == owner {
			m.resumes = append(m.resumes[:i], m.resumes[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

func (m *memStore) CreateDebrief(_ context.Context, d *types.Debrief) (*types.Debrief, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findJob(d.OwnerID, d.JobID) == nil {
		return nil, db.ErrNotFound
	}
	c := *d
	c.ID = uuid.New()
	c.CreatedAt = m.tick()
	c.UpdatedAt = c.CreatedAt
	m.debriefs = append(m.debriefs, &c)
	out := c
	return &out, nil
}

func (m *memStore) ListDebriefs(_ context.Context, owner uuid.UUID) ([]types.Debrief, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []types.Debrief{}
	for _, d := range m.debriefs {
		if d.OwnerID == owner {
			out = append(out, *d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *memStore) GetDebrief(_ context.Context, owner, id uuid.UUID) (*types.Debrief, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.debriefs {
		if d.ID == id && d.OwnerID == owner {
			out := *d
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memStore) UpdateDebrief(_ context.Context, owner, id uuid.UUID, upd types.DebriefUpdate) (*types.Debrief, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.debriefs {
		if d.ID != id || d.OwnerID != owner {
			continue
		}
		if upd.Interviewers != nil {
			d.Interviewers = *upd.Interviewers
		}
		if upd.Questions != nil {
			d.Questions = *upd.Questions
		}
		if upd.Sentiment != nil {
			d.Sentiment = *upd.Sentiment
		}
		if upd.Notes != nil {
			d.Notes = *upd.Notes
		}
		d.UpdatedAt = m.tick()
		out := *d
		return &out, nil
	}
	return nil, db.ErrNotFound
}

func (m *memStore) DeleteDebrief(_ context.Context, owner, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, d := range m.debriefs {
		if d.ID == id && d.OwnerID == owner {
			m.debriefs = append(m.debriefs[:i], m.debriefs[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

// stubParser records inputs and returns a fixed result.
type stubParser struct {
	mu     sync.Mutex
	inputs []jobparse.Input
	result types.ParsedJob
}

func (p *stubParser) Parse(_ context.Context, in jobparse.Input) types.ParsedJob {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inputs = append(p.inputs, in)
	if in.URL == "" {
		return jobparse.ParseText(in.Text)
	}
	return p.result
}

type stubMail struct {
	messages []gmail.Message
	err      error
	limit    int64
}

func (m *stubMail) ListRecent(_ context.Context, limit int64) ([]gmail.Message, error) {
	m.limit = limit
	return m.messages, m.err
}

var errBoom = errors.New("boom")

// stubResearch returns a fixed profile for any company.
type stubResearch struct {
	names   []string
	profile types.CompanyProfile
}

func (r *stubResearch) Company(_ context.Context, name string) types.CompanyProfile {
	r.names = append(r.names, name)
	p := r.profile
	p.Company = name
	return p
}
