package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/ballotkeeper/internal/common"
	"github.com/dmitrijs2005/ballotkeeper/internal/dbx"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/models"
)

const (
	tokenDigits  = 6
	maxBatchSize = 1000
	codeAttempts = 10
)

type TokenService struct {
	base
	newCode func() (string, error)
}

func NewTokenService(d Deps) *TokenService {
	return &TokenService{
		base:    newBase(d),
		newCode: func() (string, error) { return common.GenerateNumericCode(tokenDigits) },
	}
}

func (s *TokenService) ListBatches(ctx context.Context) ([]models.TokenBatch, error) {
	return s.Repos.Tokens(s.DB).ListBatches(ctx)
}

// Generate creates count unique codes valid for every listed election, all
// in one transaction, and returns the new batch.
func (s *TokenService) Generate(ctx context.Context, electionIDs []int64, count int) (*models.TokenBatch, error) {
	if count < 1 || count > maxBatchSize {
		return nil, fmt.Errorf("%w: count must be between 1 and %d", common.ErrorValidation, maxBatchSize)
	}
	ids := dedupe(electionIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one election is required", common.ErrorValidation)
	}
	for _, id := range ids {
		if err := checkElection(ctx, s.base, id); err != nil {
			return nil, err
		}
	}

	batchID := uuid.NewString()
	err := dbx.WithTx(ctx, s.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.Repos.Tokens(tx)
		if err := repo.CreateBatch(ctx, batchID, ids); err != nil {
			return err
		}

		seen := make(map[string]struct{}, count)
		for i := 0; i < count; i++ {
			code, err := s.uniqueCode(seen)
			if err != nil {
				return err
			}
			if _, err := repo.CreateToken(ctx, batchID, code); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	b, err := s.Repos.Tokens(s.DB).GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, models.EventTokensGenerated, batchID, fmt.Sprintf("%d tokens", count))
	return b, nil
}

// uniqueCode draws codes until one is new within the batch. Collisions with
// older batches are caught by the unique index.
func (s *TokenService) uniqueCode(seen map[string]struct{}) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code, err := s.newCode()
		if err != nil {
			return "", err
		}
		if _, dup := seen[code]; !dup {
			seen[code] = struct{}{}
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: could not draw a unique code", common.ErrorInternal)
}

func (s *TokenService) DeleteBatch(ctx context.Context, batchID string) error {
	batchID = strings.TrimSpace(batchID)
	if _, err := uuid.Parse(batchID); err != nil {
		return common.ErrorNotFound
	}
	if err := s.Repos.Tokens(s.DB).DeleteBatch(ctx, batchID); err != nil {
		return err
	}
	s.publish(ctx, models.EventTokenBatchDeleted, batchID, "")
	return nil
}

func (s *TokenService) DeleteToken(ctx context.Context, id int64) error {
	if err := s.Repos.Tokens(s.DB).DeleteToken(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, models.EventTokenDeleted, idString(id), "")
	return nil
}

func dedupe(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
