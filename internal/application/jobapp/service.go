// Package jobapp manages candidate applications to jobs.
package jobapp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldStatus    = "app_status"
	fieldUpdatedAt = "updated_at"
)

type Service interface {
	Apply(ctx context.Context, candidateID string, req domain.ApplyRequest) (*domain.Application, error)
	Get(ctx context.Context, applicationID string) (*domain.Application, error)
	ListForCandidate(ctx context.Context, candidateID string) ([]domain.Application, error)
	ListForJob(ctx context.Context, jobID, actorID, actorRole string) ([]domain.Application, error)
	UpdateStatus(ctx context.Context, applicationID, actorID, actorRole, status string) (*domain.Application, error)
}

type applicationStore interface {
	Put(ctx context.Context, a *domain.Application) error
	Get(ctx context.Context, applicationID string) (*domain.Application, error)
	Update(ctx context.Context, applicationID string, updates map[string]interface{}) error
	GetByJobAndCandidate(ctx context.Context, jobID, candidateID string) (*domain.Application, error)
	ListByJob(ctx context.Context, jobID string) ([]domain.Application, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]domain.Application, error)
}

type jobStore interface {
	Get(ctx context.Context, jobID string) (*domain.Job, error)
}

type candidateStore interface {
	Get(ctx context.Context, candidateID string) (*domain.Candidate, error)
}

type statusDispatcher interface {
	ApplicationStatus(c *domain.Candidate, j *domain.Job, a *domain.Application)
}

type service struct {
	repo       applicationStore
	jobs       jobStore
	candidates candidateStore
	dispatcher statusDispatcher
}

type ServiceDeps struct {
	ApplicationRepo applicationStore
	JobRepo         jobStore
	CandidateRepo   candidateStore
	Dispatcher      statusDispatcher
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:       deps.ApplicationRepo,
		jobs:       deps.JobRepo,
		candidates: deps.CandidateRepo,
		dispatcher: deps.Dispatcher,
	}
}

func isStaff(role string) bool {
	return role == domain.RoleRecruiter || role == domain.RoleAdmin
}

// Apply creates an application for an open job. A candidate can apply to a
// given job at most once.
func (s *service) Apply(ctx context.Context, candidateID string, req domain.ApplyRequest) (*domain.Application, error) {
	j, err := s.jobs.Get(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	if !j.Enable || j.Status != domain.JobStatusOpen {
		return nil, fmt.Errorf("job is not open: %w", domain.ErrBadRequest)
	}

	if _, err := s.repo.GetByJobAndCandidate(ctx, req.JobID, candidateID); err == nil {
		return nil, fmt.Errorf("already applied to this job: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	c, err := s.candidates.Get(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	cvFileID := req.CVFileID
	if cvFileID == nil {
		cvFileID = c.CVFileID
	}

	now := time.Now().UTC()
	a := &domain.Application{
		ApplicationID: id.New(),
		JobID:         j.JobID,
		CandidateID:   candidateID,
		ClientID:      j.ClientID,
		Status:        domain.ApplicationApplied,
		CoverLetter:   req.CoverLetter,
		CVFileID:      cvFileID,
		Enable:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Put(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Get(ctx context.Context, applicationID string) (*domain.Application, error) {
	a, err := s.repo.Get(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !a.Enable {
		return nil, fmt.Errorf("application not found: %w", domain.ErrNotFound)
	}
	return a, nil
}

// ListForCandidate returns the candidate's applications with job details
// attached for display.
func (s *service) ListForCandidate(ctx context.Context, candidateID string) ([]domain.Application, error) {
	apps, err := s.repo.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	for i := range apps {
		if j, err := s.jobs.Get(ctx, apps[i].JobID); err == nil {
			apps[i].Job = j
		}
	}
	return apps, nil
}

// ListForJob returns a job's applications with candidate details attached.
// Only the job's owner or staff may view them.
func (s *service) ListForJob(ctx context.Context, jobID, actorID, actorRole string) ([]domain.Application, error) {
	j, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.ClientID != actorID && !isStaff(actorRole) {
		return nil, fmt.Errorf("not the job owner: %w", domain.ErrForbidden)
	}

	apps, err := s.repo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	for i := range apps {
		if c, err := s.candidates.Get(ctx, apps[i].CandidateID); err == nil {
			apps[i].Candidate = c
		}
	}
	return apps, nil
}

// UpdateStatus moves an application through its lifecycle and notifies the
// candidate in the background.
func (s *service) UpdateStatus(ctx context.Context, applicationID, actorID, actorRole, status string) (*domain.Application, error) {
	if !domain.ValidApplicationStatus(status) {
		return nil, fmt.Errorf("unknown application status %q: %w", status, domain.ErrBadRequest)
	}

	a, err := s.Get(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if a.ClientID != actorID && !isStaff(actorRole) {
		return nil, fmt.Errorf("not the job owner: %w", domain.ErrForbidden)
	}

	updates := map[string]interface{}{
		fieldStatus:    status,
		fieldUpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.repo.Update(ctx, applicationID, updates); err != nil {
		return nil, err
	}
	a.Status = status

	if c, cerr := s.candidates.Get(ctx, a.CandidateID); cerr == nil {
		if j, jerr := s.jobs.Get(ctx, a.JobID); jerr == nil {
			s.dispatcher.ApplicationStatus(c, j, a)
		}
	}
	return a, nil
}
