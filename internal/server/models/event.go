package models

import "time"

// Event is a domain change published after a successful mutation.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	EntityID   string    `json:"entityId"`
	Actor      string    `json:"actor"`
	Details    string    `json:"details"`
	OccurredAt time.Time `json:"occurredAt"`
}

const (
	EventElectionCreated       = "election.created"
	EventElectionStatusChanged = "election.status_changed"
	EventCandidateCreated      = "candidate.created"
	EventCandidateDeleted      = "candidate.deleted"
	EventVoterCreated          = "voter.created"
	EventTokensGenerated       = "tokens.generated"
	EventTokenBatchDeleted     = "token_batch.deleted"
	EventTokenDeleted          = "token.deleted"
)
