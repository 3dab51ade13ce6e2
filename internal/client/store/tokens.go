package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ballotkeeper/internal/client/models"
	"github.com/dmitrijs2005/ballotkeeper/internal/client/normalize"
	"github.com/dmitrijs2005/ballotkeeper/internal/client/repositories/state"
	"github.com/dmitrijs2005/ballotkeeper/internal/common"
)

// TokenDigits is the length of generated access codes.
const TokenDigits = 6

// GenerateTokens creates a batch of count access codes valid for the given
// elections.
func (s *Store) GenerateTokens(ctx context.Context, electionIDs []string, count int) (models.TokenBatch, error) {
	ids := cleanIDs(electionIDs)
	if len(ids) == 0 {
		return models.TokenBatch{}, &ValidationError{Field: "electionIds", Reason: "at least one election is required"}
	}
	if count < 1 || count > MaxTokensPerBatch {
		return models.TokenBatch{}, &ValidationError{Field: "count", Reason: fmt.Sprintf("must be between 1 and %d", MaxTokensPerBatch)}
	}

	var batch models.TokenBatch
	if s.Offline() {
		b, err := s.newLocalBatch(ids, count)
		if err != nil {
			return models.TokenBatch{}, err
		}
		batch = b
	} else {
		rec, err := s.gw.GenerateTokens(ctx, ids, count)
		if err != nil {
			return models.TokenBatch{}, &RemoteWriteError{Op: "generate tokens", Err: err}
		}
		batch = normalize.TokenBatch(rec)
		if len(batch.Elections) == 0 {
			batch.Elections = s.electionRefs(ids)
		}
	}

	if _, err := commit(ctx, s, state.BucketTokenBatches, &s.batches, false, func(cur []models.TokenBatch) ([]models.TokenBatch, bool) {
		return appendCopy(cur, batch), true
	}); err != nil {
		return models.TokenBatch{}, err
	}
	s.bumpBatchSeq()
	s.notify(ChangeTokenBatches)

	details := fmt.Sprintf("Generated %d tokens for %d election(s)", len(batch.Tokens), len(batch.Elections))
	s.record(ctx, models.ActionGenerate, models.EntityTokenBatch, details)
	s.refreshTokenBatches(ctx)
	return batch.Clone(), nil
}

func (s *Store) electionRefs(ids []string) []models.ElectionRef {
	s.mu.RLock()
	defer s.mu.RUnlock()
	refs := make([]models.ElectionRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, models.ElectionRef{ID: id, Name: s.electionNameLocked(id)})
	}
	return refs
}

func (s *Store) newLocalBatch(ids []string, count int) (models.TokenBatch, error) {
	b := models.TokenBatch{
		BatchID:   s.newID(),
		Elections: s.electionRefs(ids),
		Tokens:    make([]models.Token, 0, count),
	}
	seen := make(map[string]struct{}, count)
	for len(b.Tokens) < count {
		code, err := common.GenerateNumericCode(TokenDigits)
		if err != nil {
			return models.TokenBatch{}, fmt.Errorf("generate token: %w", err)
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		b.Tokens = append(b.Tokens, models.Token{ID: s.newID(), Token: code})
	}
	return b, nil
}

// bumpBatchSeq makes an in-flight ReloadTokenBatches stale.
func (s *Store) bumpBatchSeq() {
	s.mu.Lock()
	s.batchSeq++
	s.mu.Unlock()
}

// DeleteTokenBatch removes a whole batch. Unknown ids are a no-op.
func (s *Store) DeleteTokenBatch(ctx context.Context, batchID string) error {
	batchID = strings.TrimSpace(batchID)
	if err := required("batchId", batchID); err != nil {
		return err
	}
	byID := func(b models.TokenBatch) bool { return b.BatchID == batchID }

	s.mu.RLock()
	known := indexOf(s.batches, byID) >= 0
	s.mu.RUnlock()
	if !known {
		return nil
	}

	notFound, err := s.remoteWrite(ctx, "delete token batch", func() error {
		return s.gw.DeleteTokenBatch(ctx, batchID)
	})
	if err != nil || notFound {
		return err
	}

	changed, err := commit(ctx, s, state.BucketTokenBatches, &s.batches, false, func(cur []models.TokenBatch) ([]models.TokenBatch, bool) {
		i := indexOf(cur, byID)
		if i < 0 {
			return cur, false
		}
		return removeAt(cur, i), true
	})
	if err != nil {
		return err
	}
	if !changed && s.Offline() {
		return nil
	}
	if changed {
		s.bumpBatchSeq()
		s.notify(ChangeTokenBatches)
	}

	s.record(ctx, models.ActionDelete, models.EntityTokenBatch, "Deleted token batch with ID: "+batchID)
	s.refreshTokenBatches(ctx)
	return nil
}

// DeleteToken removes a single token from whichever batch holds it. The
// batch itself is kept even when it becomes empty.
func (s *Store) DeleteToken(ctx context.Context, tokenID string) error {
	tokenID = strings.TrimSpace(tokenID)
	if err := required("tokenId", tokenID); err != nil {
		return err
	}
	locate := func(batches []models.TokenBatch) (int, int) {
		for bi, b := range batches {
			if ti := indexOf(b.Tokens, func(t models.Token) bool { return t.ID == tokenID }); ti >= 0 {
				return bi, ti
			}
		}
		return -1, -1
	}

	s.mu.RLock()
	bi, _ := locate(s.batches)
	s.mu.RUnlock()
	if bi < 0 {
		return nil
	}

	notFound, err := s.remoteWrite(ctx, "delete token", func() error {
		return s.gw.DeleteToken(ctx, tokenID)
	})
	if err != nil || notFound {
		return err
	}

	changed, err := commit(ctx, s, state.BucketTokenBatches, &s.batches, false, func(cur []models.TokenBatch) ([]models.TokenBatch, bool) {
		bi, ti := locate(cur)
		if bi < 0 {
			return cur, false
		}
		next := appendCopy(cur)
		b := next[bi].Clone()
		b.Tokens = removeAt(b.Tokens, ti)
		next[bi] = b
		return next, true
	})
	if err != nil {
		return err
	}
	if !changed && s.Offline() {
		return nil
	}
	if changed {
		s.bumpBatchSeq()
		s.notify(ChangeTokenBatches)
	}

	s.record(ctx, models.ActionDelete, models.EntityToken, "Deleted token with ID: "+tokenID)
	s.refreshTokenBatches(ctx)
	return nil
}
