package job

import (
	"context"
	"fmt"
	"time"

	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldCategoryID     = "category_id"
	fieldTitle          = "title"
	fieldDescription    = "description"
	fieldLocation       = "location"
	fieldEmploymentType = "employment_type"
	fieldSalaryMin      = "salary_min"
	fieldSalaryMax      = "salary_max"
	fieldSkills         = "skills"
	fieldStatus         = "job_status"
	fieldUpdatedAt      = "updated_at"
)

type Service interface {
	Create(ctx context.Context, clientID string, req domain.CreateJobRequest) (*domain.Job, error)
	Get(ctx context.Context, jobID string) (*domain.Job, error)
	Update(ctx context.Context, jobID, actorID, actorRole string, req domain.UpdateJobRequest) (*domain.Job, error)
	SetStatus(ctx context.Context, jobID, actorID, actorRole, status string) (*domain.Job, error)
	Delete(ctx context.Context, jobID, actorID, actorRole string) error
	ListOpen(ctx context.Context, limit int, cursor string) ([]domain.Job, string, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.Job, error)
}

type jobStore interface {
	Put(ctx context.Context, j *domain.Job) error
	Get(ctx context.Context, jobID string) (*domain.Job, error)
	Update(ctx context.Context, jobID string, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, jobID string) error
	ListByClient(ctx context.Context, clientID string) ([]domain.Job, error)
	ScanOpen(ctx context.Context, limit int32, cursor string) ([]domain.Job, string, error)
}

type categoryStore interface {
	Get(ctx context.Context, categoryID string) (*domain.Category, error)
}

type service struct {
	repo       jobStore
	categories categoryStore
}

type ServiceDeps struct {
	JobRepo      jobStore
	CategoryRepo categoryStore
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.JobRepo, categories: deps.CategoryRepo}
}

// isStaff reports whether the actor may manage jobs they do not own.
func isStaff(role string) bool {
	return role == domain.RoleRecruiter || role == domain.RoleAdmin
}

func (s *service) Create(ctx context.Context, clientID string, req domain.CreateJobRequest) (*domain.Job, error) {
	if req.CategoryID != nil {
		if _, err := s.categories.Get(ctx, *req.CategoryID); err != nil {
			return nil, fmt.Errorf("category %s: %w", *req.CategoryID, domain.ErrBadRequest)
		}
	}

	now := time.Now().UTC()
	j := &domain.Job{
		JobID:          id.New(),
		ClientID:       clientID,
		CategoryID:     req.CategoryID,
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		Skills:         req.Skills,
		Status:         domain.JobStatusOpen,
		Enable:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Put(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *service) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	j, err := s.repo.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !j.Enable {
		return nil, fmt.Errorf("job not found: %w", domain.ErrNotFound)
	}
	return j, nil
}

// ownedJob loads a job and verifies the actor is its owner or staff.
func (s *service) ownedJob(ctx context.Context, jobID, actorID, actorRole string) (*domain.Job, error) {
	j, err := s.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.ClientID != actorID && !isStaff(actorRole) {
		return nil, fmt.Errorf("not the job owner: %w", domain.ErrForbidden)
	}
	return j, nil
}

func (s *service) Update(ctx context.Context, jobID, actorID, actorRole string, req domain.UpdateJobRequest) (*domain.Job, error) {
	if _, err := s.ownedJob(ctx, jobID, actorID, actorRole); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.CategoryID != nil {
		if _, err := s.categories.Get(ctx, *req.CategoryID); err != nil {
			return nil, fmt.Errorf("category %s: %w", *req.CategoryID, domain.ErrBadRequest)
		}
		updates[fieldCategoryID] = *req.CategoryID
	}
	if req.Title != nil {
		updates[fieldTitle] = *req.Title
	}
	if req.Description != nil {
		updates[fieldDescription] = *req.Description
	}
	if req.Location != nil {
		updates[fieldLocation] = *req.Location
	}
	if req.EmploymentType != nil {
		updates[fieldEmploymentType] = *req.EmploymentType
	}
	if req.SalaryMin != nil {
		updates[fieldSalaryMin] = *req.SalaryMin
	}
	if req.SalaryMax != nil {
		updates[fieldSalaryMax] = *req.SalaryMax
	}
	if req.Skills != nil {
		updates[fieldSkills] = *req.Skills
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}
	updates[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)

	if err := s.repo.Update(ctx, jobID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, jobID)
}

func (s *service) SetStatus(ctx context.Context, jobID, actorID, actorRole, status string) (*domain.Job, error) {
	if status != domain.JobStatusOpen && status != domain.JobStatusClosed {
		return nil, fmt.Errorf("unknown job status %q: %w", status, domain.ErrBadRequest)
	}
	if _, err := s.ownedJob(ctx, jobID, actorID, actorRole); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		fieldStatus:    status,
		fieldUpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.repo.Update(ctx, jobID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, jobID)
}

func (s *service) Delete(ctx context.Context, jobID, actorID, actorRole string) error {
	if _, err := s.ownedJob(ctx, jobID, actorID, actorRole); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, jobID)
}

func (s *service) ListOpen(ctx context.Context, limit int, cursor string) ([]domain.Job, string, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ScanOpen(ctx, int32(limit), cursor)
}

func (s *service) ListByClient(ctx context.Context, clientID string) ([]domain.Job, error) {
	return s.repo.ListByClient(ctx, clientID)
}
