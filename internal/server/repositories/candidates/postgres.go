package candidates

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ballotkeeper/internal/dbx"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Candidate, error) {
	query :=
		`SELECT id, name, position, party, election_id, votes, image_url
		 FROM candidates
		 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]models.Candidate, 0)
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Position, &c.Party, &c.ElectionID, &c.Votes, &c.ImageURL); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Candidate) (*models.Candidate, error) {
	query :=
		`INSERT INTO candidates (name, position, party, election_id, image_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, votes`

	err := r.db.QueryRowContext(ctx, query,
		c.Name, c.Position, c.Party, c.ElectionID, c.ImageURL).Scan(&c.ID, &c.Votes)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.AffectedOne(res)
}
