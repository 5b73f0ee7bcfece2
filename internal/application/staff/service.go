// Package staff manages recruiter accounts. Only admins reach this service.
package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldFullName     = "full_name"
	fieldPasswordHash = "password_hash"
	fieldUpdatedAt    = "updated_at"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateStaffRequest) (*domain.Staff, error)
	Get(ctx context.Context, staffID string) (*domain.Staff, error)
	List(ctx context.Context) ([]domain.Staff, error)
	Update(ctx context.Context, staffID string, req domain.UpdateStaffRequest) (*domain.Staff, error)
	Delete(ctx context.Context, staffID string) error
}

type staffStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Staff, error)
	Put(ctx context.Context, s *domain.Staff) error
	Get(ctx context.Context, staffID string) (*domain.Staff, error)
	Update(ctx context.Context, staffID string, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, staffID string) error
	Scan(ctx context.Context) ([]domain.Staff, error)
}

type service struct {
	repo staffStore
	role string
}

// NewService builds a staff service bound to one staff table and role.
func NewService(repo staffStore, role string) Service {
	return &service{repo: repo, role: role}
}

func (s *service) Create(ctx context.Context, req domain.CreateStaffRequest) (*domain.Staff, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	st := &domain.Staff{
		StaffID:      id.New(),
		Email:        email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		Role:         s.role,
		Enable:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Put(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) Get(ctx context.Context, staffID string) (*domain.Staff, error) {
	st, err := s.repo.Get(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if !st.Enable {
		return nil, fmt.Errorf("staff member not found: %w", domain.ErrNotFound)
	}
	return st, nil
}

func (s *service) List(ctx context.Context) ([]domain.Staff, error) {
	return s.repo.Scan(ctx)
}

func (s *service) Update(ctx context.Context, staffID string, req domain.UpdateStaffRequest) (*domain.Staff, error) {
	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates[fieldFullName] = *req.FullName
	}
	if req.Enable != nil {
		updates["enable"] = *req.Enable
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates[fieldPasswordHash] = string(hash)
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}
	updates[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)

	if err := s.repo.Update(ctx, staffID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, staffID)
}

func (s *service) Delete(ctx context.Context, staffID string) error {
	return s.repo.SoftDelete(ctx, staffID)
}
