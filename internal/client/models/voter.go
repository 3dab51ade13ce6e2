package models

type Voter struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	ElectionID string `json:"electionId"`
	HasVoted   bool   `json:"hasVoted"`
	IsActive   bool   `json:"isActive"`
}

type VoterDraft struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	ElectionID string `json:"electionId"`
}
