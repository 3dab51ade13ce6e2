package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/ballotkeeper/internal/dbx"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/repositories/candidates"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/repositories/elections"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/repositories/results"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/repositories/tokens"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/repositories/voters"
)

// RepositoryManager hands out repositories bound to either the pool or an
// open transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Elections(db dbx.DBTX) elections.Repository
	Candidates(db dbx.DBTX) candidates.Repository
	Voters(db dbx.DBTX) voters.Repository
	Tokens(db dbx.DBTX) tokens.Repository
	Results(db dbx.DBTX) results.Repository
}
