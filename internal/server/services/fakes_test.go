package services

import (
	"context"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/ballotkeeper/internal/common"
	"github.com/dmitrijs2005/ballotkeeper/internal/dbx"
	"github.com/dmitrijs2005/ballotkeeper/internal/logging"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/models"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/repositories/candidates"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/repositories/elections"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/repositories/results"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/repositories/tokens"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/repositories/voters"
)

type fakeElections struct {
	elections.Repository
	items     map[int64]*models.Election
	nextID    int64
	createErr error
}

func (f *fakeElections) List(context.Context) ([]models.Election, error) {
	out := make([]models.Election, 0, len(f.items))
	for _, e := range f.items {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeElections) Get(_ context.Context, id int64) (*models.Election, error) {
	e, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeElections) Create(_ context.Context, e *models.Election) (*models.Election, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	e.ID = f.nextID
	f.items[e.ID] = e
	return e, nil
}

func (f *fakeElections) UpdateStatus(_ context.Context, id int64, status string) (*models.Election, error) {
	e, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	e.Status = status
	cp := *e
	return &cp, nil
}

type fakeCandidates struct {
	candidates.Repository
	created []*models.Candidate
	deleted []int64
}

func (f *fakeCandidates) Create(_ context.Context, c *models.Candidate) (*models.Candidate, error) {
	c.ID = int64(100 + len(f.created))
	f.created = append(f.created, c)
	return c, nil
}

func (f *fakeCandidates) Delete(_ context.Context, id int64) error {
	for _, c := range f.created {
		if c.ID == id {
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeVoters struct {
	voters.Repository
	created []*models.Voter
}

func (f *fakeVoters) Create(_ context.Context, v *models.Voter) (*models.Voter, error) {
	v.ID = int64(len(f.created) + 1)
	v.IsActive = true
	f.created = append(f.created, v)
	return v, nil
}

type fakeTokens struct {
	tokens.Repository
	mu        sync.Mutex
	batches   map[string][]int64
	codes     map[string][]string
	tokenErr  error
	deletedID []int64
}

func (f *fakeTokens) CreateBatch(_ context.Context, batchID string, ids []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches[batchID] = ids
	return nil
}

func (f *fakeTokens) CreateToken(_ context.Context, batchID, code string) (*models.Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tokenErr != nil {
		return nil, f.tokenErr
	}
	f.codes[batchID] = append(f.codes[batchID], code)
	return &models.Token{ID: int64(len(f.codes[batchID])), Token: code}, nil
}

func (f *fakeTokens) GetBatch(_ context.Context, batchID string) (*models.TokenBatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids, ok := f.batches[batchID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	b := &models.TokenBatch{BatchID: batchID}
	for _, id := range ids {
		b.Elections = append(b.Elections, models.ElectionRef{ID: id})
	}
	for i, c := range f.codes[batchID] {
		b.Tokens = append(b.Tokens, models.Token{ID: int64(i + 1), Token: c})
	}
	return b, nil
}

func (f *fakeTokens) DeleteBatch(_ context.Context, batchID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.batches[batchID]; !ok {
		return common.ErrorNotFound
	}
	delete(f.batches, batchID)
	return nil
}

func (f *fakeTokens) DeleteToken(_ context.Context, id int64) error {
	if id > 100 {
		return common.ErrorNotFound
	}
	f.deletedID = append(f.deletedID, id)
	return nil
}

type fakeResults struct {
	results.Repository
	out []models.ElectionResult
	err error
}

func (f *fakeResults) List(context.Context) ([]models.ElectionResult, error) { return f.out, f.err }

type fakeRepos struct {
	repomanager.RepositoryManager
	elections  *fakeElections
	candidates *fakeCandidates
	voters     *fakeVoters
	tokens     *fakeTokens
	results    *fakeResults
}

func newFakeRepos() *fakeRepos {
	return &fakeRepos{
		elections: &fakeElections{items: map[int64]*models.Election{
			1: {ID: 1, Name: "City", Status: models.StatusDraft, Positions: []string{"Mayor"}},
		}, nextID: 1},
		candidates: &fakeCandidates{},
		voters:     &fakeVoters{},
		tokens:     &fakeTokens{batches: map[string][]int64{}, codes: map[string][]string{}},
		results:    &fakeResults{},
	}
}

func (f *fakeRepos) Elections(dbx.DBTX) elections.Repository   { return f.elections }
func (f *fakeRepos) Candidates(dbx.DBTX) candidates.Repository { return f.candidates }
func (f *fakeRepos) Voters(dbx.DBTX) voters.Repository         { return f.voters }
func (f *fakeRepos) Tokens(dbx.DBTX) tokens.Repository         { return f.tokens }
func (f *fakeRepos) Results(dbx.DBTX) results.Repository       { return f.results }

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e models.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func newDeps(t *testing.T) (Deps, *fakeRepos, *recordingPublisher, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repos := newFakeRepos()
	pub := &recordingPublisher{}
	return Deps{DB: db, Repos: repos, Events: pub, Log: logging.Discard()}, repos, pub, mock
}

