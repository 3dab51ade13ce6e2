package models

import "time"

// Audit action codes.
const (
	ActionCreate       = "CREATE"
	ActionUpdateStatus = "UPDATE_STATUS"
	ActionDelete       = "DELETE"
	ActionGenerate     = "GENERATE"
)

// Audit target entity kinds.
const (
	EntityElection   = "Election"
	EntityCandidate  = "Candidate"
	EntityVoter      = "Voter"
	EntityTokenBatch = "TokenBatch"
	EntityToken      = "Token"
)

// AuditTimeLayout is the layout of AuditLogEntry.Timestamp (always UTC).
const AuditTimeLayout = time.RFC3339Nano

// AuditLogEntry records one successful mutation. Entries are never edited.
type AuditLogEntry struct {
	ID           string `json:"id"`
	Timestamp    string `json:"timestamp"`
	ActorID      string `json:"actorId"`
	Action       string `json:"action"`
	TargetEntity string `json:"targetEntity"`
	Details      string `json:"details"`
}

// Time parses Timestamp.
func (e AuditLogEntry) Time() (time.Time, error) {
	return time.Parse(AuditTimeLayout, e.Timestamp)
}
