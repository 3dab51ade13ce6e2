// Package candidates persists candidates in PostgreSQL.
package candidates

import (
	"context"

	"github.com/dmitrijs2005/ballotkeeper/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Candidate, error)
	Create(ctx context.Context, c *models.Candidate) (*models.Candidate, error)
	// Delete returns common.ErrorNotFound when no row matched.
	Delete(ctx context.Context, id int64) error
}
