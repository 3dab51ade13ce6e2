package store

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/ballotkeeper/internal/client/models"
	"github.com/dmitrijs2005/ballotkeeper/internal/client/normalize"
	"github.com/dmitrijs2005/ballotkeeper/internal/client/repositories/state"
)

// collectionFetch loads one collection and applies it if the reload that
// issued it is still the latest. It reports the read error, if any.
type collectionFetch func(ctx context.Context, seq uint64) error

// Reload re-fetches elections, candidates and voters concurrently. Each
// collection is applied as soon as it arrives; a failed fetch leaves that
// collection as it was. The store enters the failed state, and Reload returns
// an error, only when every fetch failed. Results of a reload overtaken by a
// newer reload or mutation are dropped.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	fetches := []collectionFetch{s.fetchElections, s.fetchCandidates, s.fetchVoters}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, fetch := range fetches {
		wg.Add(1)
		go func(fetch collectionFetch) {
			defer wg.Done()
			if err := fetch(ctx, seq); err != nil {
				s.log.Warn(ctx, "collection reload failed", "error", err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(fetch)
	}
	wg.Wait()

	var result error
	s.mu.Lock()
	s.initialized = true
	current := seq == s.seq
	if current {
		switch {
		case len(errs) == len(fetches):
			s.status = Failed
			s.lastErr = errors.Join(errs...)
			result = s.lastErr
		case len(errs) > 0:
			s.status = Degraded
			s.lastErr = nil
		default:
			s.status = Ready
			s.lastErr = nil
		}
	}
	s.mu.Unlock()

	s.notify(ChangeStatus)
	return result
}

func (s *Store) fetchElections(ctx context.Context, seq uint64) error {
	var items []models.Election
	if s.Offline() {
		if _, err := loadBucket(ctx, s.repo, state.BucketElections, &items); err != nil {
			return err
		}
	} else {
		recs, err := s.gw.ListElections(ctx)
		if err != nil {
			return &RemoteReadError{Collection: state.BucketElections, Err: err}
		}
		items = normalize.Elections(recs)
	}
	if applyIfCurrent(s, seq, &s.elections, items) {
		s.notify(ChangeElections)
	}
	return nil
}

func (s *Store) fetchCandidates(ctx context.Context, seq uint64) error {
	var items []models.Candidate
	if s.Offline() {
		if _, err := loadBucket(ctx, s.repo, state.BucketCandidates, &items); err != nil {
			return err
		}
	} else {
		recs, err := s.gw.ListCandidates(ctx)
		if err != nil {
			return &RemoteReadError{Collection: state.BucketCandidates, Err: err}
		}
		items = normalize.Candidates(recs)
	}
	if applyIfCurrent(s, seq, &s.candidates, items) {
		s.notify(ChangeCandidates)
	}
	return nil
}

func (s *Store) fetchVoters(ctx context.Context, seq uint64) error {
	var items []models.Voter
	if s.Offline() {
		if _, err := loadBucket(ctx, s.repo, state.BucketVoters, &items); err != nil {
			return err
		}
	} else {
		recs, err := s.gw.ListVoters(ctx)
		if err != nil {
			return &RemoteReadError{Collection: state.BucketVoters, Err: err}
		}
		items = normalize.Voters(recs)
	}
	if applyIfCurrent(s, seq, &s.voters, items) {
		s.notify(ChangeVoters)
	}
	return nil
}

func applyIfCurrent[T any](s *Store, seq uint64, dst *[]T, items []T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return false
	}
	*dst = items
	return true
}

// invalidateReloadsLocked makes in-flight reloads stale so they cannot
// overwrite a freshly committed mutation. Callers hold s.mu.
func (s *Store) invalidateReloadsLocked() {
	s.seq++
}

// ReloadTokenBatches re-fetches token batches from the backend. Offline it
// re-reads them from local storage.
func (s *Store) ReloadTokenBatches(ctx context.Context) error {
	s.mu.Lock()
	s.batchSeq++
	seq := s.batchSeq
	s.mu.Unlock()

	var items []models.TokenBatch
	if s.Offline() {
		if _, err := loadBucket(ctx, s.repo, state.BucketTokenBatches, &items); err != nil {
			return err
		}
	} else {
		recs, err := s.gw.ListTokenBatches(ctx)
		if err != nil {
			s.log.Warn(ctx, "token batch reload failed", "error", err)
			return &RemoteReadError{Collection: state.BucketTokenBatches, Err: err}
		}
		items = normalize.TokenBatches(recs)
	}

	s.mu.Lock()
	if seq != s.batchSeq {
		s.mu.Unlock()
		return nil
	}
	s.batches = items
	s.mu.Unlock()

	s.notify(ChangeTokenBatches)
	return nil
}
