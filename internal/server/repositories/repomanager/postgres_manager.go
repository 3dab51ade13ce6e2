// Package repomanager wires the PostgreSQL repositories together with the
// embedded goose migrations.
package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/ballotkeeper/internal/dbx"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/migrations"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/repositories/candidates"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/repositories/elections"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/repositories/results"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/repositories/tokens"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/repositories/voters"
)

type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Elections(db dbx.DBTX) elections.Repository {
	return elections.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Candidates(db dbx.DBTX) candidates.Repository {
	return candidates.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Voters(db dbx.DBTX) voters.Repository {
	return voters.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Tokens(db dbx.DBTX) tokens.Repository {
	return tokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Results(db dbx.DBTX) results.Repository {
	return results.NewPostgresRepository(db)
}

// gooseUpContext is swapped out in tests.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded schema migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}
