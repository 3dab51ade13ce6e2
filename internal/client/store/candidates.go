package store

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/ballotkeeper/internal/client/models"
	"github.com/dmitrijs2005/ballotkeeper/internal/client/normalize"
	"github.com/dmitrijs2005/ballotkeeper/internal/client/repositories/state"
)

// CreateCandidate adds a candidate with zero votes. Party and image URL
// default to "".
func (s *Store) CreateCandidate(ctx context.Context, draft models.CandidateDraft) (models.Candidate, error) {
	d, err := cleanCandidateDraft(draft)
	if err != nil {
		return models.Candidate{}, err
	}

	var c models.Candidate
	if s.Offline() {
		c = models.Candidate{
			ID:         s.newID(),
			Name:       d.Name,
			Position:   d.Position,
			Party:      d.Party,
			ElectionID: d.ElectionID,
			ImageURL:   d.ImageURL,
		}
	} else {
		rec, err := s.gw.CreateCandidate(ctx, d)
		if err != nil {
			return models.Candidate{}, &RemoteWriteError{Op: "create candidate", Err: err}
		}
		c = normalize.Candidate(rec)
		fillCandidate(&c, d)
	}

	if _, err := commit(ctx, s, state.BucketCandidates, &s.candidates, true, func(cur []models.Candidate) ([]models.Candidate, bool) {
		return appendCopy(cur, c), true
	}); err != nil {
		return models.Candidate{}, err
	}
	s.notify(ChangeCandidates)

	s.record(ctx, models.ActionCreate, models.EntityCandidate, "Added candidate: "+c.Name)
	s.refresh(ctx)
	return c, nil
}

func fillCandidate(c *models.Candidate, d models.CandidateDraft) {
	if c.Name == "" {
		c.Name = d.Name
	}
	if c.Position == "" {
		c.Position = d.Position
	}
	if c.Party == "" {
		c.Party = d.Party
	}
	if c.ElectionID == "" {
		c.ElectionID = d.ElectionID
	}
	if c.ImageURL == "" {
		c.ImageURL = d.ImageURL
	}
}

// DeleteCandidate removes candidate id. An id unknown locally, or reported
// missing by the backend, is a no-op and leaves no audit entry.
func (s *Store) DeleteCandidate(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if err := required("id", id); err != nil {
		return err
	}
	byID := func(c models.Candidate) bool { return c.ID == id }

	s.mu.RLock()
	known := indexOf(s.candidates, byID) >= 0
	s.mu.RUnlock()
	if !known {
		return nil
	}

	notFound, err := s.remoteWrite(ctx, "delete candidate", func() error {
		return s.gw.DeleteCandidate(ctx, id)
	})
	if err != nil || notFound {
		return err
	}

	changed, err := commit(ctx, s, state.BucketCandidates, &s.candidates, true, func(cur []models.Candidate) ([]models.Candidate, bool) {
		i := indexOf(cur, byID)
		if i < 0 {
			return cur, false
		}
		return removeAt(cur, i), true
	})
	if err != nil {
		return err
	}
	if !changed && s.Offline() {
		return nil
	}
	if changed {
		s.notify(ChangeCandidates)
	}

	s.record(ctx, models.ActionDelete, models.EntityCandidate, "Deleted candidate with ID: "+id)
	s.refresh(ctx)
	return nil
}
