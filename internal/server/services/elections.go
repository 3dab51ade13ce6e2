package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ballotkeeper/internal/common"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/models"
)

type ElectionInput struct {
	Name        string
	Description string
	StartDate   string
	EndDate     string
	Status      string
	Positions   []string
}

type ElectionService struct {
	base
}

func NewElectionService(d Deps) *ElectionService {
	return &ElectionService{base: newBase(d)}
}

func (s *ElectionService) List(ctx context.Context) ([]models.Election, error) {
	return s.Repos.Elections(s.DB).List(ctx)
}

func (s *ElectionService) Create(ctx context.Context, in ElectionInput) (*models.Election, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: election name is required", common.ErrorValidation)
	}
	status := in.Status
	if status == "" {
		status = models.StatusDraft
	}
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", common.ErrorValidation, status)
	}

	positions := make([]string, 0, len(in.Positions))
	for _, p := range in.Positions {
		if p = strings.TrimSpace(p); p != "" {
			positions = append(positions, p)
		}
	}

	e, err := s.Repos.Elections(s.DB).Create(ctx, &models.Election{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Status:      status,
		Positions:   positions,
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, models.EventElectionCreated, idString(e.ID), e.Name)
	return e, nil
}

func (s *ElectionService) UpdateStatus(ctx context.Context, id int64, status string) (*models.Election, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", common.ErrorValidation, status)
	}

	e, err := s.Repos.Elections(s.DB).UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, models.EventElectionStatusChanged, idString(e.ID), status)
	return e, nil
}
