package models

type Candidate struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Party      string `json:"party"`
	ElectionID int64  `json:"electionId"`
	Votes      int64  `json:"votes"`
	ImageURL   string `json:"imageUrl"`
}
