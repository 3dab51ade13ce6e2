package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/ballotkeeper/internal/client/client"
	"github.com/dmitrijs2005/ballotkeeper/internal/client/models"
	"github.com/dmitrijs2005/ballotkeeper/internal/client/repositories/state"
)

// fakeGateway is an in-memory backend. Records are stored the way a JSON
// decoder would produce them (numeric ids, snake_case keys in places) so that
// the normalizer is exercised on every read.
type fakeGateway struct {
	client.Client

	mu         sync.Mutex
	elections  []models.Record
	candidates []models.Record
	voters     []models.Record
	batches    []models.Record
	results    []models.Record
	nextID     int
	errs       map[string]error
	calls      []string

	// beforeReturn, when set, runs after a list snapshot is taken and before
	// it is returned.
	beforeReturn func(method string)
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{nextID: 100, errs: make(map[string]error)}
}

func (f *fakeGateway) fail(method string, err error) {
	f.mu.Lock()
	f.errs[method] = err
	f.mu.Unlock()
}

func (f *fakeGateway) enter(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, method)
	return f.errs[method]
}

func (f *fakeGateway) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == method {
			n++
		}
	}
	return n
}

func (f *fakeGateway) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeGateway) id() float64 {
	f.nextID++
	return float64(f.nextID)
}

func cloneRecords(in []models.Record) []models.Record {
	out := make([]models.Record, len(in))
	for i, r := range in {
		c := make(models.Record, len(r))
		for k, v := range r {
			c[k] = v
		}
		out[i] = c
	}
	return out
}

func (f *fakeGateway) list(method string, src *[]models.Record) ([]models.Record, error) {
	if err := f.enter(method); err != nil {
		return nil, err
	}
	f.mu.Lock()
	snap := cloneRecords(*src)
	hook := f.beforeReturn
	f.mu.Unlock()
	if hook != nil {
		hook(method)
	}
	return snap, nil
}

func (f *fakeGateway) set(dst *[]models.Record, recs ...models.Record) {
	f.mu.Lock()
	*dst = recs
	f.mu.Unlock()
}

func (f *fakeGateway) Ping(context.Context) error { return f.enter("Ping") }
func (f *fakeGateway) Close() error                { return nil }

func (f *fakeGateway) ListElections(context.Context) ([]models.Record, error) {
	return f.list("ListElections", &f.elections)
}

func (f *fakeGateway) ListCandidates(context.Context) ([]models.Record, error) {
	return f.list("ListCandidates", &f.candidates)
}

func (f *fakeGateway) ListVoters(context.Context) ([]models.Record, error) {
	return f.list("ListVoters", &f.voters)
}

func (f *fakeGateway) ListTokenBatches(context.Context) ([]models.Record, error) {
	return f.list("ListTokenBatches", &f.batches)
}

func (f *fakeGateway) ListResults(context.Context) ([]models.Record, error) {
	return f.list("ListResults", &f.results)
}

func (f *fakeGateway) CreateElection(_ context.Context, d models.ElectionDraft) (models.Record, error) {
	if err := f.enter("CreateElection"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := models.Record{
		"id": f.id(), "name": d.Name, "description": d.Description,
		"start_date": d.StartDate, "end_date": d.EndDate,
		"status": string(d.Status), "created_at": "2025-01-01T00:00:00Z",
	}
	f.elections = append(f.elections, rec)
	return rec, nil
}

func (f *fakeGateway) UpdateElection(_ context.Context, id string, fields models.Record) (models.Record, error) {
	if err := f.enter("UpdateElection"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.elections {
		if fmt.Sprint(r["id"]) == id {
			for k, v := range fields {
				r[k] = v
			}
			return r, nil
		}
	}
	return nil, client.ErrNotFound
}

func (f *fakeGateway) CreateCandidate(_ context.Context, d models.CandidateDraft) (models.Record, error) {
	if err := f.enter("CreateCandidate"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := models.Record{
		"id": f.id(), "name": d.Name, "position": d.Position, "party": d.Party,
		"election_id": d.ElectionID, "vote_count": float64(0), "image_url": d.ImageURL,
	}
	f.candidates = append(f.candidates, rec)
	return rec, nil
}

func (f *fakeGateway) DeleteCandidate(_ context.Context, id string) error {
	if err := f.enter("DeleteCandidate"); err != nil {
		return err
	}
	return f.remove(&f.candidates, id)
}

func (f *fakeGateway) remove(src *[]models.Record, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range *src {
		if fmt.Sprint(r["id"]) == id {
			*src = append((*src)[:i:i], (*src)[i+1:]...)
			return nil
		}
	}
	return client.ErrNotFound
}

func (f *fakeGateway) CreateVoter(_ context.Context, d models.VoterDraft) (models.Record, error) {
	if err := f.enter("CreateVoter"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := models.Record{"id": f.id(), "name": d.Name, "email": d.Email, "election_id": d.ElectionID, "has_voted": false, "is_active": true}
	f.voters = append(f.voters, rec)
	return rec, nil
}

func (f *fakeGateway) GenerateTokens(_ context.Context, ids []string, count int) (models.Record, error) {
	if err := f.enter("GenerateTokens"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	batchID := f.id()
	elections := make([]any, 0, len(ids))
	for _, id := range ids {
		elections = append(elections, map[string]any{"id": id, "name": "E" + id})
	}
	tokens := make([]any, 0, count)
	for i := 0; i < count; i++ {
		tokens = append(tokens, map[string]any{"id": f.id(), "token": fmt.Sprintf("%06d", 100000+i), "is_used": false})
	}
	rec := models.Record{"batch_id": batchID, "elections": elections, "tokens": tokens}
	f.batches = append(f.batches, rec)
	return rec, nil
}

func (f *fakeGateway) DeleteTokenBatch(_ context.Context, id string) error {
	if err := f.enter("DeleteTokenBatch"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.batches {
		if fmt.Sprint(r["batch_id"]) == id {
			f.batches = append(f.batches[:i:i], f.batches[i+1:]...)
			return nil
		}
	}
	return client.ErrNotFound
}

func (f *fakeGateway) DeleteToken(_ context.Context, id string) error {
	if err := f.enter("DeleteToken"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.batches {
		tokens, _ := b["tokens"].([]any)
		for i, t := range tokens {
			if fmt.Sprint(t.(map[string]any)["id"]) == id {
				b["tokens"] = append(tokens[:i:i], tokens[i+1:]...)
				return nil
			}
		}
	}
	return client.ErrNotFound
}

// flakyRepo fails Save for the listed buckets and every Load when loadErr is set.
type flakyRepo struct {
	*state.MemoryRepository

	mu       sync.Mutex
	failSave map[string]error
	loadErr  error
}

func newFlakyRepo() *flakyRepo {
	return &flakyRepo{MemoryRepository: state.NewMemoryRepository(), failSave: make(map[string]error)}
}

func (r *flakyRepo) failOn(bucket string, err error) {
	r.mu.Lock()
	r.failSave[bucket] = err
	r.mu.Unlock()
}

func (r *flakyRepo) Save(ctx context.Context, bucket string, v any) error {
	r.mu.Lock()
	err := r.failSave[bucket]
	r.mu.Unlock()
	if err != nil {
		return err
	}
	return r.MemoryRepository.Save(ctx, bucket, v)
}

func (r *flakyRepo) Load(ctx context.Context, bucket string, dst any) (bool, error) {
	if r.loadErr != nil {
		return false, r.loadErr
	}
	return r.MemoryRepository.Load(ctx, bucket, dst)
}

func newRemoteStore(t *testing.T, gw *fakeGateway) (*Store, *flakyRepo) {
	t.Helper()
	repo := newFlakyRepo()
	s, err := New(context.Background(), Options{Gateway: gw, State: repo})
	require.NoError(t, err)
	return s, repo
}

func newOfflineStore(t *testing.T) (*Store, *flakyRepo) {
	t.Helper()
	repo := newFlakyRepo()
	s, err := New(context.Background(), Options{State: repo})
	require.NoError(t, err)
	return s, repo
}

// seededGateway has one election, two candidates and one voter.
func seededGateway() *fakeGateway {
	gw := newFakeGateway()
	gw.elections = []models.Record{{"id": float64(1), "name": "City", "status": "Active"}}
	gw.candidates = []models.Record{
		{"id": float64(10), "name": "Ann", "position": "Mayor", "election_id": float64(1), "votes": float64(3)},
		{"id": float64(11), "name": "Bob", "position": "Mayor", "electionId": "1", "vote_count": "4", "party": nil},
	}
	gw.voters = []models.Record{{"id": "v1", "name": "Val", "email": "val@x.com", "electionId": "1"}}
	return gw
}
