// Package httpapi serves the console's REST API with gin.
package httpapi

import (
	"context"

	"github.com/dmitrijs2005/ballotkeeper/internal/server/models"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/services"
)

type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
	Authenticate(token string) (string, error)
}

type ElectionService interface {
	List(ctx context.Context) ([]models.Election, error)
	Create(ctx context.Context, in services.ElectionInput) (*models.Election, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Election, error)
}

type CandidateService interface {
	List(ctx context.Context) ([]models.Candidate, error)
	Create(ctx context.Context, in services.CandidateInput) (*models.Candidate, error)
	Delete(ctx context.Context, id int64) error
	ImageUploadURL(ctx context.Context, contentType string) (*services.UploadTarget, error)
}

type VoterService interface {
	List(ctx context.Context) ([]models.Voter, error)
	Create(ctx context.Context, in services.VoterInput) (*models.Voter, error)
}

type TokenService interface {
	ListBatches(ctx context.Context) ([]models.TokenBatch, error)
	Generate(ctx context.Context, electionIDs []int64, count int) (*models.TokenBatch, error)
	DeleteBatch(ctx context.Context, batchID string) error
	DeleteToken(ctx context.Context, id int64) error
}

type ResultService interface {
	List(ctx context.Context) ([]models.ElectionResult, error)
}

// API bundles the services the handlers call.
type API struct {
	Auth       Authenticator
	Elections  ElectionService
	Candidates CandidateService
	Voters     VoterService
	Tokens     TokenService
	Results    ResultService
}
