package normalize

import (
	"sort"

	"github.com/dmitrijs2005/ballotkeeper/internal/client/models"
)

// Election normalises an election record. Unknown statuses become Draft.
func Election(r models.Record) models.Election {
	status, ok := models.ParseElectionStatus(String(first(r, "status")))
	if !ok {
		status = models.StatusDraft
	}
	return models.Election{
		ID:          String(first(r, "id")),
		Name:        String(first(r, "name")),
		Description: String(first(r, "description")),
		StartDate:   String(first(r, "startDate", "start_date")),
		EndDate:     String(first(r, "endDate", "end_date")),
		Status:      status,
		CreatedAt:   String(first(r, "createdAt", "created_at")),
		Positions:   Strings(first(r, "positions")),
	}
}

func Candidate(r models.Record) models.Candidate {
	return models.Candidate{
		ID:         String(first(r, "id")),
		Name:       String(first(r, "name")),
		Position:   String(first(r, "position")),
		Party:      String(first(r, "party")),
		ElectionID: String(first(r, "electionId", "election_id")),
		Votes:      Count(first(r, "votes", "vote_count", "voteCount")),
		ImageURL:   String(first(r, "imageUrl", "image_url", "image")),
	}
}

// Voter normalises a voter record; hasVoted defaults to false, isActive to true.
func Voter(r models.Record) models.Voter {
	return models.Voter{
		ID:         String(first(r, "id")),
		Name:       String(first(r, "name", "username")),
		Email:      String(first(r, "email")),
		ElectionID: String(first(r, "electionId", "election_id")),
		HasVoted:   Bool(first(r, "hasVoted", "has_voted"), false),
		IsActive:   Bool(first(r, "isActive", "is_active"), true),
	}
}

func Token(r models.Record) models.Token {
	return models.Token{
		ID:     String(first(r, "id")),
		Token:  String(first(r, "token", "code")),
		IsUsed: Bool(first(r, "isUsed", "is_used"), false),
	}
}

func TokenBatch(r models.Record) models.TokenBatch {
	b := models.TokenBatch{
		BatchID:   String(first(r, "batchId", "batch_id", "id")),
		Elections: []models.ElectionRef{},
		Tokens:    []models.Token{},
	}
	for _, e := range records(first(r, "elections")) {
		b.Elections = append(b.Elections, models.ElectionRef{
			ID:   String(first(e, "id")),
			Name: String(first(e, "name")),
		})
	}
	for _, t := range records(first(r, "tokens")) {
		b.Tokens = append(b.Tokens, Token(t))
	}
	return b
}

func CandidateResult(r models.Record) models.CandidateResult {
	return models.CandidateResult{
		ID:         String(first(r, "id")),
		Name:       String(first(r, "name")),
		Position:   String(first(r, "position")),
		Party:      String(first(r, "party")),
		ElectionID: String(first(r, "electionId", "election_id")),
		ImageURL:   String(first(r, "imageUrl", "image_url", "image")),
		VoteCount:  Count(first(r, "voteCount", "vote_count", "votes")),
	}
}

// ElectionResult normalises a result record. Candidates are re-sorted by vote
// count and totalVotes falls back to their sum when the backend omits it.
func ElectionResult(r models.Record) models.ElectionResult {
	res := models.ElectionResult{
		ElectionID:   String(first(r, "electionId", "election_id")),
		ElectionName: String(first(r, "electionName", "election_name")),
		Status:       String(first(r, "status")),
		Candidates:   []models.CandidateResult{},
	}
	sum := 0
	for _, c := range records(first(r, "candidates")) {
		cr := CandidateResult(c)
		sum += cr.VoteCount
		res.Candidates = append(res.Candidates, cr)
	}
	sort.SliceStable(res.Candidates, func(i, j int) bool {
		return res.Candidates[i].VoteCount > res.Candidates[j].VoteCount
	})

	if v := first(r, "totalVotes", "total_votes"); v != nil {
		res.TotalVotes = Count(v)
	} else {
		res.TotalVotes = sum
	}
	return res
}

func Elections(rs []models.Record) []models.Election {
	return mapAll(rs, Election)
}

func Candidates(rs []models.Record) []models.Candidate {
	return mapAll(rs, Candidate)
}

func Voters(rs []models.Record) []models.Voter {
	return mapAll(rs, Voter)
}

func TokenBatches(rs []models.Record) []models.TokenBatch {
	return mapAll(rs, TokenBatch)
}

func ElectionResults(rs []models.Record) []models.ElectionResult {
	return mapAll(rs, ElectionResult)
}

func mapAll[T any](rs []models.Record, fn func(models.Record) T) []T {
	out := make([]T, 0, len(rs))
	for _, r := range rs {
		if r == nil {
			continue
		}
		out = append(out, fn(r))
	}
	return out
}
