package candidate

import (
	"context"
	"fmt"
	"time"

	"github.com/jobboard-api/internal/domain"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldFullName  = "full_name"
	fieldPhone     = "phone"
	fieldHeadline  = "headline"
	fieldLocation  = "location"
	fieldSkills    = "skills"
	fieldCVFileID  = "cv_file_id"
	fieldUpdatedAt = "updated_at"
)

type Service interface {
	Get(ctx context.Context, candidateID string) (*domain.Candidate, error)
	Update(ctx context.Context, candidateID string, req domain.UpdateCandidateRequest) (*domain.Candidate, error)
	List(ctx context.Context, limit int, cursor string) ([]domain.Candidate, string, error)
	Delete(ctx context.Context, candidateID string) error
	SetCVFile(ctx context.Context, candidateID, fileID string) error
}

type candidateStore interface {
	Get(ctx context.Context, candidateID string) (*domain.Candidate, error)
	Update(ctx context.Context, candidateID string, updates map[string]interface{}) error
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.Candidate, string, error)
	SoftDelete(ctx context.Context, candidateID string) error
}

type service struct {
	repo candidateStore
}

func NewService(repo candidateStore) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, candidateID string) (*domain.Candidate, error) {
	c, err := s.repo.Get(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if !c.Enable {
		return nil, fmt.Errorf("candidate not found: %w", domain.ErrNotFound)
	}
	return c, nil
}

func (s *service) Update(ctx context.Context, candidateID string, req domain.UpdateCandidateRequest) (*domain.Candidate, error) {
	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates[fieldFullName] = *req.FullName
	}
	if req.Phone != nil {
		updates[fieldPhone] = *req.Phone
	}
	if req.Headline != nil {
		updates[fieldHeadline] = *req.Headline
	}
	if req.Location != nil {
		updates[fieldLocation] = *req.Location
	}
	if req.Skills != nil {
		updates[fieldSkills] = *req.Skills
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}
	updates[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)

	if err := s.repo.Update(ctx, candidateID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, candidateID)
}

func (s *service) List(ctx context.Context, limit int, cursor string) ([]domain.Candidate, string, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ScanPage(ctx, int32(limit), cursor)
}

func (s *service) Delete(ctx context.Context, candidateID string) error {
	return s.repo.SoftDelete(ctx, candidateID)
}

func (s *service) SetCVFile(ctx context.Context, candidateID, fileID string) error {
	return s.repo.Update(ctx, candidateID, map[string]interface{}{
		fieldCVFileID:  fileID,
		fieldUpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}
