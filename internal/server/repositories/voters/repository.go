// Package voters persists registered voters in PostgreSQL.
package voters

import (
	"context"

	"github.com/dmitrijs2005/ballotkeeper/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Voter, error)
	Create(ctx context.Context, v *models.Voter) (*models.Voter, error)
}
