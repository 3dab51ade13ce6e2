package tokens

import (
	"context"
	"database/sql"
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

func (r *PostgresRepository) CreateBatch(ctx context.Context, batchID string, electionIDs []int64) error {
	if _, err := r.db.ExecContext(ctx, `INSERT INTO token_batches (id) VALUES ($1)`, batchID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	for _, id := range electionIDs {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO token_batch_elections (batch_id, election_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			batchID, id)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) CreateToken(ctx context.Context, batchID, code string) (*models.Token, error) {
	t := &models.Token{Token: code}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO tokens (batch_id, token) VALUES ($1, $2) RETURNING id, is_used`,
		batchID, code).Scan(&t.ID, &t.IsUsed)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) ListBatches(ctx context.Context) ([]models.TokenBatch, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, created_at FROM token_batches ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	out := make([]models.TokenBatch, 0)
	index := map[string]int{}
	for rows.Next() {
		var b models.TokenBatch
		if err := rows.Scan(&b.BatchID, &b.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("db error: %w", err)
		}
		b.Elections = []models.ElectionRef{}
		b.Tokens = []models.Token{}
		index[b.BatchID] = len(out)
		out = append(out, b)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if len(out) == 0 {
		return out, nil
	}

	if err := r.fillElections(ctx, `SELECT be.batch_id, be.election_id, COALESCE(e.name, '')
		 FROM token_batch_elections be
		 LEFT JOIN elections e ON e.id = be.election_id
		 ORDER BY be.batch_id, be.election_id`, out, index); err != nil {
		return nil, err
	}
	if err := r.fillTokens(ctx, `SELECT batch_id, id, token, is_used FROM tokens ORDER BY batch_id, id`, out, index); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRepository) GetBatch(ctx context.Context, batchID string) (*models.TokenBatch, error) {
	b := models.TokenBatch{BatchID: batchID, Elections: []models.ElectionRef{}, Tokens: []models.Token{}}
	err := r.db.QueryRowContext(ctx, `SELECT created_at FROM token_batches WHERE id = $1`, batchID).Scan(&b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	out := []models.TokenBatch{b}
	index := map[string]int{batchID: 0}
	if err := r.fillElections(ctx, `SELECT be.batch_id, be.election_id, COALESCE(e.name, '')
		 FROM token_batch_elections be
		 LEFT JOIN elections e ON e.id = be.election_id
		 WHERE be.batch_id = $1
		 ORDER BY be.election_id`, out, index, batchID); err != nil {
		return nil, err
	}
	if err := r.fillTokens(ctx, `SELECT batch_id, id, token, is_used FROM tokens WHERE batch_id = $1 ORDER BY id`, out, index, batchID); err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (r *PostgresRepository) fillElections(ctx context.Context, query string, batches []models.TokenBatch, index map[string]int, args ...any) error {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			batchID string
			ref     models.ElectionRef
		)
		if err := rows.Scan(&batchID, &ref.ID, &ref.Name); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if i, ok := index[batchID]; ok {
			batches[i].Elections = append(batches[i].Elections, ref)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) fillTokens(ctx context.Context, query string, batches []models.TokenBatch, index map[string]int, args ...any) error {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			batchID string
			t       models.Token
		)
		if err := rows.Scan(&batchID, &t.ID, &t.Token, &t.IsUsed); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if i, ok := index[batchID]; ok {
			batches[i].Tokens = append(batches[i].Tokens, t)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// DeleteBatch removes a batch; its tokens and election links cascade.
func (r *PostgresRepository) DeleteBatch(ctx context.Context, batchID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM token_batches WHERE id = $1`, batchID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.AffectedOne(res)
}

func (r *PostgresRepository) DeleteToken(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.AffectedOne(res)
}
