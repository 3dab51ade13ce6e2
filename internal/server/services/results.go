package services

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/ballotkeeper/internal/server/models"
)

type ResultService struct {
	base
}

func NewResultService(d Deps) *ResultService {
	return &ResultService{base: newBase(d)}
}

// List returns per-election tallies, candidates ordered by votes descending.
func (s *ResultService) List(ctx context.Context) ([]models.ElectionResult, error) {
	res, err := s.Repos.Results(s.DB).List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range res {
		sort.SliceStable(res[i].Candidates, func(a, b int) bool {
			return res[i].Candidates[a].VoteCount > res[i].Candidates[b].VoteCount
		})
	}
	return res, nil
}
