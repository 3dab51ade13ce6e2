package store

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/ballotkeeper/internal/client/models"
	"github.com/dmitrijs2005/ballotkeeper/internal/client/normalize"
	"github.com/dmitrijs2005/ballotkeeper/internal/client/repositories/state"
)

// CreateVoter registers a voter who has not voted and is active.
func (s *Store) CreateVoter(ctx context.Context, draft models.VoterDraft) (models.Voter, error) {
	d, err := cleanVoterDraft(draft)
	if err != nil {
		return models.Voter{}, err
	}

	var v models.Voter
	if s.Offline() {
		v = models.Voter{
			ID:         s.newID(),
			Name:       d.Name,
			Email:      d.Email,
			ElectionID: d.ElectionID,
			HasVoted:   false,
			IsActive:   true,
		}
	} else {
		rec, err := s.gw.CreateVoter(ctx, d)
		if err != nil {
			return models.Voter{}, &RemoteWriteError{Op: "create voter", Err: err}
		}
		v = normalize.Voter(rec)
		if v.Name == "" {
			v.Name = d.Name
		}
		if v.Email == "" {
			v.Email = d.Email
		}
		if v.ElectionID == "" {
			v.ElectionID = d.ElectionID
		}
	}

	if _, err := commit(ctx, s, state.BucketVoters, &s.voters, true, func(cur []models.Voter) ([]models.Voter, bool) {
		return appendCopy(cur, v), true
	}); err != nil {
		return models.Voter{}, err
	}
	s.notify(ChangeVoters)

	s.record(ctx, models.ActionCreate, models.EntityVoter, "Added voter: "+v.Name)
	s.refresh(ctx)
	return v, nil
}

// ToggleVoterStatus flips isActive for voter id. It never reaches the
// backend and is not audited; offline the change is persisted. An unknown id
// is a no-op.
func (s *Store) ToggleVoterStatus(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if err := required("id", id); err != nil {
		return err
	}

	changed, err := commit(ctx, s, state.BucketVoters, &s.voters, false, func(cur []models.Voter) ([]models.Voter, bool) {
		i := indexOf(cur, func(v models.Voter) bool { return v.ID == id })
		if i < 0 {
			return cur, false
		}
		next := appendCopy(cur)
		next[i].IsActive = !next[i].IsActive
		return next, true
	})
	if err != nil {
		return err
	}
	if changed {
		s.notify(ChangeVoters)
	}
	return nil
}
