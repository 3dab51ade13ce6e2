package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/ballotkeeper/internal/common"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/models"
)

type VoterInput struct {
	Name       string
	Email      string
	ElectionID int64
}

type VoterService struct {
	base
}

func NewVoterService(d Deps) *VoterService {
	return &VoterService{base: newBase(d)}
}

func (s *VoterService) List(ctx context.Context) ([]models.Voter, error) {
	return s.Repos.Voters(s.DB).List(ctx)
}

func (s *VoterService) Create(ctx context.Context, in VoterInput) (*models.Voter, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" {
		return nil, fmt.Errorf("%w: voter name is required", common.ErrorValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email %q", common.ErrorValidation, in.Email)
	}
	if err := checkElection(ctx, s.base, in.ElectionID); err != nil {
		return nil, err
	}

	v, err := s.Repos.Voters(s.DB).Create(ctx, &models.Voter{Name: name, Email: email, ElectionID: in.ElectionID})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, models.EventVoterCreated, idString(v.ID), v.Email)
	return v, nil
}
