package store

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/ballotkeeper/internal/client/models"
	"github.com/dmitrijs2005/ballotkeeper/internal/client/normalize"
	"github.com/dmitrijs2005/ballotkeeper/internal/client/repositories/state"
)

// CreateElection adds an election. Offline the id and createdAt are generated
// here; otherwise the backend assigns them.
func (s *Store) CreateElection(ctx context.Context, draft models.ElectionDraft) (models.Election, error) {
	d, err := cleanElectionDraft(draft)
	if err != nil {
		return models.Election{}, err
	}

	var e models.Election
	if s.Offline() {
		e = models.Election{
			ID:          s.newID(),
			Name:        d.Name,
			Description: d.Description,
			StartDate:   d.StartDate,
			EndDate:     d.EndDate,
			Status:      d.Status,
			CreatedAt:   s.now().UTC().Format(models.AuditTimeLayout),
			Positions:   d.Positions,
		}
	} else {
		rec, err := s.gw.CreateElection(ctx, d)
		if err != nil {
			return models.Election{}, &RemoteWriteError{Op: "create election", Err: err}
		}
		e = normalize.Election(rec)
		if _, ok := rec["status"]; !ok {
			e.Status = d.Status
		}
		fillElection(&e, d)
	}

	if _, err := commit(ctx, s, state.BucketElections, &s.elections, true, func(cur []models.Election) ([]models.Election, bool) {
		return appendCopy(cur, e), true
	}); err != nil {
		return models.Election{}, err
	}
	s.notify(ChangeElections)

	s.record(ctx, models.ActionCreate, models.EntityElection, "Created election: "+e.Name)
	s.refresh(ctx)
	return e.Clone(), nil
}

func fillElection(e *models.Election, d models.ElectionDraft) {
	if e.Name == "" {
		e.Name = d.Name
	}
	if e.Description == "" {
		e.Description = d.Description
	}
	if e.StartDate == "" {
		e.StartDate = d.StartDate
	}
	if e.EndDate == "" {
		e.EndDate = d.EndDate
	}
	if e.Positions == nil && d.Positions != nil {
		e.Positions = append([]string(nil), d.Positions...)
	}
}

// UpdateElectionStatus changes the status of election id, leaving its other
// fields alone. An unknown id is a no-op.
func (s *Store) UpdateElectionStatus(ctx context.Context, id string, status models.ElectionStatus) error {
	id = strings.TrimSpace(id)
	if err := required("id", id); err != nil {
		return err
	}
	st, ok := models.ParseElectionStatus(string(status))
	if !ok {
		return &ValidationError{Field: "status", Reason: "unknown status " + string(status)}
	}

	byID := func(e models.Election) bool { return e.ID == id }

	s.mu.RLock()
	known := indexOf(s.elections, byID) >= 0
	s.mu.RUnlock()
	if !known {
		return nil
	}

	notFound, err := s.remoteWrite(ctx, "update election status", func() error {
		_, err := s.gw.UpdateElection(ctx, id, models.Record{"status": string(st)})
		return err
	})
	if err != nil || notFound {
		return err
	}

	changed, err := commit(ctx, s, state.BucketElections, &s.elections, true, func(cur []models.Election) ([]models.Election, bool) {
		i := indexOf(cur, byID)
		if i < 0 {
			return cur, false
		}
		next := appendCopy(cur)
		next[i] = next[i].Clone()
		next[i].Status = st
		return next, true
	})
	if err != nil {
		return err
	}
	if !changed && s.Offline() {
		return nil
	}
	if changed {
		s.notify(ChangeElections)
	}

	s.record(ctx, models.ActionUpdateStatus, models.EntityElection, "Updated election status to "+string(st))
	s.refresh(ctx)
	return nil
}
