package client

import (
	"context"

	"github.com/dmitrijs2005/ballotkeeper/internal/client/models"
)

// UploadTarget is where a candidate image should be PUT, and the URL it will
// be served from afterwards.
type UploadTarget struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
	ImageURL  string `json:"imageUrl"`
}

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Login(ctx context.Context, username, password string) (string, error)

	ListElections(ctx context.Context) ([]models.Record, error)
	CreateElection(ctx context.Context, draft models.ElectionDraft) (models.Record, error)
	UpdateElection(ctx context.Context, id string, fields models.Record) (models.Record, error)

	ListCandidates(ctx context.Context) ([]models.Record, error)
	CreateCandidate(ctx context.Context, draft models.CandidateDraft) (models.Record, error)
	DeleteCandidate(ctx context.Context, id string) error
	CandidateImageUploadURL(ctx context.Context, contentType string) (UploadTarget, error)

	ListVoters(ctx context.Context) ([]models.Record, error)
	CreateVoter(ctx context.Context, draft models.VoterDraft) (models.Record, error)

	ListTokenBatches(ctx context.Context) ([]models.Record, error)
	GenerateTokens(ctx context.Context, electionIDs []string, count int) (models.Record, error)
	DeleteTokenBatch(ctx context.Context, batchID string) error
	DeleteToken(ctx context.Context, tokenID string) error

	ListResults(ctx context.Context) ([]models.Record, error)
}

// TokenSource supplies the bearer credential attached to every request.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type TokenSourceFunc func(ctx context.Context) (string, error)

func (f TokenSourceFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// StaticToken always returns the same credential.
func StaticToken(token string) TokenSource {
	return TokenSourceFunc(func(context.Context) (string, error) { return token, nil })
}
