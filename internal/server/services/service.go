// Package services holds the backend's business logic. Services validate
// input, call repositories through the RepositoryManager and publish a
// domain event after every successful mutation.
package services

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/dmitrijs2005/ballotkeeper/internal/logging"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/auth"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/events"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/repositories/repomanager"
)

// Deps are shared by every service.
type Deps struct {
	DB     *sql.DB
	Repos  repomanager.RepositoryManager
	Events events.Publisher
	Log    logging.Logger
}

type base struct {
	Deps
}

func newBase(d Deps) base {
	if d.Events == nil {
		d.Events = events.NopPublisher{}
	}
	if d.Log == nil {
		d.Log = logging.Discard()
	}
	return base{Deps: d}
}

// publish never fails the caller: the change is already committed, so a
// broker outage is only logged.
func (b *base) publish(ctx context.Context, eventType, entityID, details string) {
	e := events.New(eventType, entityID, auth.SubjectFromContext(ctx), details)
	if err := b.Events.Publish(ctx, e); err != nil {
		b.Log.Warn(ctx, "event publish failed", "type", eventType, "entity", entityID, "error", err)
	}
}

func idString(id int64) string { return strconv.FormatInt(id, 10) }
