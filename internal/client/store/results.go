package store

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/ballotkeeper/internal/client/models"
	"github.com/dmitrijs2005/ballotkeeper/internal/client/normalize"
)

// Results returns per-election tallies. The backend computes them when there
// is one; offline they are derived from the current collections.
func (s *Store) Results(ctx context.Context) ([]models.ElectionResult, error) {
	if s.Offline() {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return deriveResults(s.elections, s.candidates), nil
	}

	recs, err := s.gw.ListResults(ctx)
	if err != nil {
		return nil, &RemoteReadError{Collection: "results", Err: err}
	}
	return normalize.ElectionResults(recs), nil
}

func deriveResults(elections []models.Election, candidates []models.Candidate) []models.ElectionResult {
	byElection := make(map[string][]models.CandidateResult, len(elections))
	for _, c := range candidates {
		byElection[c.ElectionID] = append(byElection[c.ElectionID], models.CandidateResult{
			ID:         c.ID,
			Name:       c.Name,
			Position:   c.Position,
			Party:      c.Party,
			ElectionID: c.ElectionID,
			ImageURL:   c.ImageURL,
			VoteCount:  c.Votes,
		})
	}

	out := make([]models.ElectionResult, 0, len(elections))
	for _, e := range elections {
		cands := byElection[e.ID]
		if cands == nil {
			cands = []models.CandidateResult{}
		}
		sort.SliceStable(cands, func(i, j int) bool { return cands[i].VoteCount > cands[j].VoteCount })

		total := 0
		for _, c := range cands {
			total += c.VoteCount
		}
		out = append(out, models.ElectionResult{
			ElectionID:   e.ID,
			ElectionName: e.Name,
			Status:       string(e.Status),
			TotalVotes:   total,
			Candidates:   cands,
		})
	}
	return out
}
