package models

type CandidateResult struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Party      string `json:"party"`
	ElectionID int64  `json:"electionId"`
	ImageURL   string `json:"imageUrl"`
	VoteCount  int64  `json:"voteCount"`
}

// ElectionResult lists candidates by vote count, highest first.
type ElectionResult struct {
	ElectionID   int64             `json:"electionId"`
	ElectionName string            `json:"electionName"`
	Status       string            `json:"status"`
	TotalVotes   int64             `json:"totalVotes"`
	Candidates   []CandidateResult `json:"candidates"`
}
