package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/ballotkeeper/internal/client/client"
	"github.com/dmitrijs2005/ballotkeeper/internal/client/models"
	"github.com/dmitrijs2005/ballotkeeper/internal/client/repositories/state"
	"github.com/dmitrijs2005/ballotkeeper/internal/common"
	"github.com/dmitrijs2005/ballotkeeper/internal/logging"
)

// LoadState tells loading, fully loaded, partially loaded and failed apart.
type LoadState int

const (
	Loading LoadState = iota
	Ready
	Degraded
	Failed
)

func (s LoadState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Degraded:
		return "degraded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Change names what a commit touched. Subscribers receive one per commit.
type Change string

const (
	ChangeElections    Change = "elections"
	ChangeCandidates   Change = "candidates"
	ChangeVoters       Change = "voters"
	ChangeTokenBatches Change = "token_batches"
	ChangeAuditLog     Change = "audit_log"
	ChangeStatus       Change = "status"
)

type Options struct {
	// Gateway is the backend. Nil selects the offline variant, where the
	// collections live in State.
	Gateway client.Client
	// State is required: the audit log is persisted in every variant.
	State   state.Repository
	Logger  logging.Logger
	ActorID string
	Now     func() time.Time
	NewID   func() string
}

type Store struct {
	gw    client.Client
	repo  state.Repository
	log   logging.Logger
	actor string
	now   func() time.Time
	newID func() string

	mu          sync.RWMutex
	elections   []models.Election
	candidates  []models.Candidate
	voters      []models.Voter
	batches     []models.TokenBatch
	audit       []models.AuditLogEntry
	initialized bool
	status      LoadState
	lastErr     error
	seq         uint64
	batchSeq    uint64

	subMu   sync.Mutex
	subs    map[int]func(Change)
	nextSub int
}

// New builds a store and seeds it from local storage: the audit log always,
// the collections too when running offline (in which case the store starts
// initialized). A storage read or decode error is returned rather than
// starting empty, so the next write-through cannot overwrite what is on disk.
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.State == nil {
		return nil, errors.New("store: state repository is required")
	}

	s := &Store{
		gw:         opts.Gateway,
		repo:       opts.State,
		log:        opts.Logger,
		actor:      opts.ActorID,
		now:        opts.Now,
		newID:      opts.NewID,
		elections:  []models.Election{},
		candidates: []models.Candidate{},
		voters:     []models.Voter{},
		batches:    []models.TokenBatch{},
		audit:      []models.AuditLogEntry{},
		subs:       make(map[int]func(Change)),
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	if s.actor == "" {
		s.actor = common.AdminActorID
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}

	if _, err := s.repo.Load(ctx, state.BucketAuditLog, &s.audit); err != nil {
		s.log.Error(ctx, "audit log load failed", "error", err)
		return nil, &RemoteReadError{Collection: state.BucketAuditLog, Err: err}
	}
	if s.audit == nil {
		s.audit = []models.AuditLogEntry{}
	}

	if s.Offline() {
		if err := s.seedLocal(ctx); err != nil {
			return nil, err
		}
		s.initialized = true
		s.status = Ready
	}
	return s, nil
}

func (s *Store) seedLocal(ctx context.Context) error {
	if _, err := loadBucket(ctx, s.repo, state.BucketElections, &s.elections); err != nil {
		return err
	}
	if _, err := loadBucket(ctx, s.repo, state.BucketCandidates, &s.candidates); err != nil {
		return err
	}
	if _, err := loadBucket(ctx, s.repo, state.BucketVoters, &s.voters); err != nil {
		return err
	}
	if _, err := loadBucket(ctx, s.repo, state.BucketTokenBatches, &s.batches); err != nil {
		return err
	}
	return nil
}

// loadBucket decodes bucket into dst, keeping dst a non-nil empty slice when
// the bucket is missing. A corrupt bucket is an error and dst is untouched.
func loadBucket[T any](ctx context.Context, repo state.Repository, bucket string, dst *[]T) (bool, error) {
	var items []T
	ok, err := repo.Load(ctx, bucket, &items)
	if err != nil {
		return false, &RemoteReadError{Collection: bucket, Err: err}
	}
	if !ok || items == nil {
		items = []T{}
	}
	*dst = items
	return ok, nil
}

// SetActor changes the actor recorded in subsequent audit entries. Blank
// resets it to the default admin.
func (s *Store) SetActor(actor string) {
	if actor = strings.TrimSpace(actor); actor == "" {
		actor = common.AdminActorID
	}
	s.mu.Lock()
	s.actor = actor
	s.mu.Unlock()
}

// Offline reports whether the store runs without a backend.
func (s *Store) Offline() bool { return s.gw == nil }

func (s *Store) Elections() []models.Election {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Election, len(s.elections))
	for i, e := range s.elections {
		out[i] = e.Clone()
	}
	return out
}

func (s *Store) Candidates() []models.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Candidate{}, s.candidates...)
}

func (s *Store) Voters() []models.Voter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Voter{}, s.voters...)
}

// AuditLog returns entries newest first.
func (s *Store) AuditLog() []models.AuditLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.AuditLogEntry{}, s.audit...)
}

func (s *Store) TokenBatches() []models.TokenBatch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.TokenBatch, len(s.batches))
	for i, b := range s.batches {
		out[i] = b.Clone()
	}
	return out
}

func (s *Store) Stats() models.DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return deriveStats(s.elections, s.candidates, s.voters)
}

func deriveStats(elections []models.Election, candidates []models.Candidate, voters []models.Voter) models.DashboardStats {
	st := models.DashboardStats{
		TotalVoters:     len(voters),
		TotalCandidates: len(candidates),
	}
	for _, c := range candidates {
		st.TotalVotesCast += c.Votes
	}
	for _, e := range elections {
		if e.Status == models.StatusActive {
			st.ActiveElections++
		}
	}
	return st
}

// Initialized becomes true once the first reload completes, whatever its
// outcome. Offline stores start initialized.
func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// LastError is set only when every collection failed in the latest reload.
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) Status() LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// ElectionName returns the name of election id, or "N/A".
func (s *Store) ElectionName(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.electionNameLocked(id)
}

func (s *Store) electionNameLocked(id string) string {
	for _, e := range s.elections {
		if e.ID == id {
			return e.Name
		}
	}
	return "N/A"
}

// Subscribe registers fn to be called after every commit. The returned func
// unregisters it and is safe to call more than once.
func (s *Store) Subscribe(fn func(Change)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) notify(changes ...Change) {
	s.subMu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, c := range changes {
		for _, fn := range fns {
			fn(c)
		}
	}
}

// persistLocked writes v through to bucket. Callers hold s.mu.
func (s *Store) persistLocked(ctx context.Context, bucket string, v any) error {
	if err := s.repo.Save(ctx, bucket, v); err != nil {
		return &PersistError{Bucket: bucket, Err: err}
	}
	return nil
}
