// Package tokens persists voting token batches and their codes.
package tokens

import (
	"context"

	"github.com/dmitrijs2005/ballotkeeper/internal/server/models"
)

type Repository interface {
	CreateBatch(ctx context.Context, batchID string, electionIDs []int64) error
	CreateToken(ctx context.Context, batchID, code string) (*models.Token, error)
	// ListBatches returns batches newest first, each with its elections and
	// tokens.
	ListBatches(ctx context.Context) ([]models.TokenBatch, error)
	GetBatch(ctx context.Context, batchID string) (*models.TokenBatch, error)
	DeleteBatch(ctx context.Context, batchID string) error
	DeleteToken(ctx context.Context, id int64) error
}
