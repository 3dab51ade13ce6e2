package elections

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ballotkeeper/internal/common"
	"github.com/dmitrijs2005/ballotkeeper/internal/dbx"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, name, description, start_date, end_date, status, positions, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanElection(row scanner) (*models.Election, error) {
	var (
		e         models.Election
		positions []byte
	)
	if err := row.Scan(&e.ID, &e.Name, &e.Description, &e.StartDate, &e.EndDate, &e.Status, &positions, &e.CreatedAt); err != nil {
		return nil, err
	}
	if len(positions) > 0 {
		if err := json.Unmarshal(positions, &e.Positions); err != nil {
			return nil, fmt.Errorf("bad positions for election %d: %w", e.ID, err)
		}
	}
	if e.Positions == nil {
		e.Positions = []string{}
	}
	return &e, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Election, error) {
	query := `SELECT ` + selectColumns + ` FROM elections ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]models.Election, 0)
	for rows.Next() {
		e, err := scanElection(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Election, error) {
	query := `SELECT ` + selectColumns + ` FROM elections WHERE id = $1`

	e, err := scanElection(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.Election) (*models.Election, error) {
	if e.Positions == nil {
		e.Positions = []string{}
	}
	positions, err := json.Marshal(e.Positions)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO elections (name, description, start_date, end_date, status, positions)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`

	err = r.db.QueryRowContext(ctx, query,
		e.Name, e.Description, e.StartDate, e.EndDate, e.Status, positions).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, status string) (*models.Election, error) {
	query := `UPDATE elections SET status = $2 WHERE id = $1 RETURNING ` + selectColumns

	e, err := scanElection(r.db.QueryRowContext(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}
