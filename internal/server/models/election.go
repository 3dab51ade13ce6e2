package models

import "time"

const (
	StatusDraft  = "Draft"
	StatusActive = "Active"
	StatusPaused = "Paused"
	StatusEnded  = "Ended"
)

// ValidStatus reports whether s is one of the lifecycle statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusActive, StatusPaused, StatusEnded:
		return true
	}
	return false
}

type Election struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	Status      string    `json:"status"`
	Positions   []string  `json:"positions"`
	CreatedAt   time.Time `json:"createdAt"`
}
