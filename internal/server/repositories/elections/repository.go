// Package elections persists elections in PostgreSQL.
package elections

import (
	"context"

	"github.com/dmitrijs2005/ballotkeeper/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Election, error)
	Get(ctx context.Context, id int64) (*models.Election, error)
	Create(ctx context.Context, e *models.Election) (*models.Election, error)
	// UpdateStatus returns the updated row, or common.ErrorNotFound.
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Election, error)
}
