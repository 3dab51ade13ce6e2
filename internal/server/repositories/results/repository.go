// Package results aggregates candidate vote counts per election.
package results

import (
	"context"

	"github.com/dmitrijs2005/ballotkeeper/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.ElectionResult, error)
}
