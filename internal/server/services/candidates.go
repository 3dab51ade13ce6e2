package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ballotkeeper/internal/common"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/models"
)

type CandidateInput struct {
	Name       string
	Position   string
	Party      string
	ElectionID int64
	ImageURL   string
}

type CandidateService struct {
	base
	images ImageStore
}

func NewCandidateService(d Deps, images ImageStore) *CandidateService {
	return &CandidateService{base: newBase(d), images: images}
}

func (s *CandidateService) List(ctx context.Context) ([]models.Candidate, error) {
	return s.Repos.Candidates(s.DB).List(ctx)
}

// Create requires the election to exist.
func (s *CandidateService) Create(ctx context.Context, in CandidateInput) (*models.Candidate, error) {
	name := strings.TrimSpace(in.Name)
	position := strings.TrimSpace(in.Position)
	if name == "" || position == "" {
		return nil, fmt.Errorf("%w: candidate name and position are required", common.ErrorValidation)
	}
	if err := checkElection(ctx, s.base, in.ElectionID); err != nil {
		return nil, err
	}

	c, err := s.Repos.Candidates(s.DB).Create(ctx, &models.Candidate{
		Name:       name,
		Position:   position,
		Party:      strings.TrimSpace(in.Party),
		ElectionID: in.ElectionID,
		ImageURL:   strings.TrimSpace(in.ImageURL),
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, models.EventCandidateCreated, idString(c.ID), c.Name)
	return c, nil
}

func (s *CandidateService) Delete(ctx context.Context, id int64) error {
	if err := s.Repos.Candidates(s.DB).Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, models.EventCandidateDeleted, idString(id), "")
	return nil
}

// ImageUploadURL presigns an upload slot for a candidate photo.
func (s *CandidateService) ImageUploadURL(ctx context.Context, contentType string) (*UploadTarget, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: content type %q is not an image", common.ErrorValidation, contentType)
	}
	if s.images == nil {
		return nil, fmt.Errorf("%w: image storage is not configured", common.ErrorInternal)
	}
	return s.images.PresignUpload(ctx, contentType)
}

// checkElection maps a missing election to a validation error, since it
// comes from the request body rather than the path.
func checkElection(ctx context.Context, b base, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: electionId is required", common.ErrorValidation)
	}
	if _, err := b.Repos.Elections(b.DB).Get(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("%w: election %d does not exist", common.ErrorValidation, id)
		}
		return err
	}
	return nil
}
