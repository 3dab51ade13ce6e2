package models

type Voter struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	ElectionID int64  `json:"electionId"`
	HasVoted   bool   `json:"hasVoted"`
	IsActive   bool   `json:"isActive"`
}
