package models

type CandidateResult struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Party      string `json:"party"`
	ElectionID string `json:"electionId"`
	ImageURL   string `json:"imageUrl"`
	VoteCount  int    `json:"voteCount"`
}

// ElectionResult is the tally of one election, candidates by votes descending.
type ElectionResult struct {
	ElectionID   string            `json:"electionId"`
	ElectionName string            `json:"electionName"`
	Status       string            `json:"status"`
	TotalVotes   int               `json:"totalVotes"`
	Candidates   []CandidateResult `json:"candidates"`
}
