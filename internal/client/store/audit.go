package store

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/ballotkeeper/internal/client/models"
	"github.com/dmitrijs2005/ballotkeeper/internal/client/repositories/state"
)

// record prepends an audit entry and writes the whole log through. A failed
// write is logged; the entry stays in memory because the mutation it records
// has already been committed.
func (s *Store) record(ctx context.Context, action, entity, details string) models.AuditLogEntry {
	entry := models.AuditLogEntry{
		ID:           s.newID(),
		Timestamp:    s.now().UTC().Format(models.AuditTimeLayout),
		Action:       action,
		TargetEntity: entity,
		Details:      details,
	}

	s.mu.Lock()
	entry.ActorID = s.actor
	next := make([]models.AuditLogEntry, 0, len(s.audit)+1)
	next = append(next, entry)
	next = append(next, s.audit...)
	s.audit = next
	if err := s.persistLocked(ctx, state.BucketAuditLog, next); err != nil {
		s.log.Error(ctx, "audit entry not persisted", "id", entry.ID, "action", action, "entity", entity, "error", err)
	}
	s.mu.Unlock()

	s.notify(ChangeAuditLog)
	return entry
}

// FilterAuditLog returns the entries whose action contains filter, ignoring
// case. An empty filter returns the whole log.
func (s *Store) FilterAuditLog(filter string) []models.AuditLogEntry {
	needle := strings.ToUpper(strings.TrimSpace(filter))
	all := s.AuditLog()
	if needle == "" {
		return all
	}
	out := make([]models.AuditLogEntry, 0, len(all))
	for _, e := range all {
		if strings.Contains(strings.ToUpper(e.Action), needle) {
			out = append(out, e)
		}
	}
	return out
}

// PurgeAuditLog deletes the persisted log and clears it in memory.
func (s *Store) PurgeAuditLog(ctx context.Context) error {
	s.mu.Lock()
	if err := s.repo.Delete(ctx, state.BucketAuditLog); err != nil {
		s.mu.Unlock()
		return &PersistError{Bucket: state.BucketAuditLog, Err: err}
	}
	s.audit = []models.AuditLogEntry{}
	s.mu.Unlock()

	s.log.Info(ctx, "audit log purged")
	s.notify(ChangeAuditLog)
	return nil
}
