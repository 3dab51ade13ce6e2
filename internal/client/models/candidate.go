package models

// Candidate stands in one election. Votes is owned by the backend and only
// ever initialised to zero on the client.
type Candidate struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Party      string `json:"party"`
	ElectionID string `json:"electionId"`
	Votes      int    `json:"votes"`
	ImageURL   string `json:"imageUrl,omitempty"`
}

type CandidateDraft struct {
	Name       string `json:"name"`
	Position   string `json:"position"`
	Party      string `json:"party"`
	ElectionID string `json:"electionId"`
	ImageURL   string `json:"imageUrl"`
}
