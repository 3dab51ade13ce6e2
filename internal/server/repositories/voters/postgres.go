package voters

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/ballotkeeper/internal/common"
	"github.com/dmitrijs2005/ballotkeeper/internal/dbx"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/models"
)

// uniqueViolation is the PostgreSQL SQLSTATE for duplicate keys.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Voter, error) {
	query :=
		`SELECT id, name, email, election_id, has_voted, is_active
		 FROM voters
		 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]models.Voter, 0)
	for rows.Next() {
		var v models.Voter
		if err := rows.Scan(&v.ID, &v.Name, &v.Email, &v.ElectionID, &v.HasVoted, &v.IsActive); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// Create inserts a voter. A second registration of the same email in the
// same election is a common.ErrorValidation.
func (r *PostgresRepository) Create(ctx context.Context, v *models.Voter) (*models.Voter, error) {
	query :=
		`INSERT INTO voters (name, email, election_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, has_voted, is_active`

	err := r.db.QueryRowContext(ctx, query, v.Name, v.Email, v.ElectionID).Scan(&v.ID, &v.HasVoted, &v.IsActive)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: voter %s already registered", common.ErrorValidation, v.Email)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}
