package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ballotkeeper/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Load(ctx context.Context, bucket string, dst any) (bool, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = ?`, bucket).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load state[%s]: %w", bucket, err)
	}

	if err := decodeInto(bucket, payload, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, bucket string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode state[%s]: %w", bucket, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO state (bucket, payload, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, bucket, payload)
	if err != nil {
		return fmt.Errorf("failed to save state[%s]: %w", bucket, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, bucket string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM state WHERE bucket = ?`, bucket)
	if err != nil {
		return fmt.Errorf("failed to delete state[%s]: %w", bucket, err)
	}
	return nil
}
