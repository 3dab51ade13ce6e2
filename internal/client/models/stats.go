package models

// DashboardStats is derived from the collections on every read and never stored.
type DashboardStats struct {
	TotalVoters     int `json:"totalVoters"`
	TotalCandidates int `json:"totalCandidates"`
	TotalVotesCast  int `json:"totalVotesCast"`
	ActiveElections int `json:"activeElections"`
}
