package models

import "strings"

// ElectionStatus is the lifecycle state of an election. Transitions are
// triggered by the admin; the model does not validate the order.
type ElectionStatus string

const (
	StatusDraft  ElectionStatus = "Draft"
	StatusActive ElectionStatus = "Active"
	StatusPaused ElectionStatus = "Paused"
	StatusEnded  ElectionStatus = "Ended"
)

// ElectionStatuses lists the valid statuses in lifecycle order.
var ElectionStatuses = []ElectionStatus{StatusDraft, StatusActive, StatusPaused, StatusEnded}

func (s ElectionStatus) Valid() bool {
	for _, v := range ElectionStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseElectionStatus matches s case-insensitively against the known statuses.
func ParseElectionStatus(s string) (ElectionStatus, bool) {
	for _, v := range ElectionStatuses {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, true
		}
	}
	return "", false
}

type Election struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	StartDate   string         `json:"startDate"`
	EndDate     string         `json:"endDate"`
	Status      ElectionStatus `json:"status"`
	CreatedAt   string         `json:"createdAt"`
	Positions   []string       `json:"positions,omitempty"`
}

func (e Election) Clone() Election {
	if e.Positions != nil {
		e.Positions = append([]string(nil), e.Positions...)
	}
	return e
}

// ElectionDraft is what the admin submits; id and createdAt are assigned by
// whoever persists it (the backend, or the store in local mode).
type ElectionDraft struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	StartDate   string         `json:"startDate"`
	EndDate     string         `json:"endDate"`
	Status      ElectionStatus `json:"status"`
	Positions   []string       `json:"positions,omitempty"`
}
