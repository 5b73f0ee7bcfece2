package client

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
	fieldCompanyName = "company_name"
	fieldContactName = "contact_name"
	fieldPhone       = "phone"
	fieldWebsite     = "website"
	fieldAbout       = "about"
	fieldLogoFileID  = "logo_file_id"
	fieldUpdatedAt   = "updated_at"
)

type Service interface {
	Register(ctx context.Context, req domain.CreateClientRequest) (*domain.Client, error)
	Get(ctx context.Context, clientID string) (*domain.Client, error)
	Update(ctx context.Context, clientID string, req domain.UpdateClientRequest) (*domain.Client, error)
	List(ctx context.Context, limit int, cursor string) ([]domain.Client, string, error)
	Delete(ctx context.Context, clientID string) error
	SetLogoFile(ctx context.Context, clientID, fileID string) error
}

type clientStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
	Put(ctx context.Context, c *domain.Client) error
	Get(ctx context.Context, clientID string) (*domain.Client, error)
	Update(ctx context.Context, clientID string, updates map[string]interface{}) error
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.Client, string, error)
	SoftDelete(ctx context.Context, clientID string) error
}

type service struct {
	repo clientStore
}

func NewService(repo clientStore) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, req domain.CreateClientRequest) (*domain.Client, error) {
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
	c := &domain.Client{
		ClientID:     id.New(),
		Email:        email,
		CompanyName:  req.CompanyName,
		ContactName:  req.ContactName,
		Phone:        req.Phone,
		Website:      req.Website,
		About:        req.About,
		PasswordHash: string(hash),
		Enable:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, clientID string) (*domain.Client, error) {
	c, err := s.repo.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !c.Enable {
		return nil, fmt.Errorf("client not found: %w", domain.ErrNotFound)
	}
	return c, nil
}

func (s *service) Update(ctx context.Context, clientID string, req domain.UpdateClientRequest) (*domain.Client, error) {
	updates := map[string]interface{}{}
	if req.CompanyName != nil {
		updates[fieldCompanyName] = *req.CompanyName
	}
	if req.ContactName != nil {
		updates[fieldContactName] = *req.ContactName
	}
	if req.Phone != nil {
		updates[fieldPhone] = *req.Phone
	}
	if req.Website != nil {
		updates[fieldWebsite] = *req.Website
	}
	if req.About != nil {
		updates[fieldAbout] = *req.About
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}
	updates[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)

	if err := s.repo.Update(ctx, clientID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, clientID)
}

func (s *service) List(ctx context.Context, limit int, cursor string) ([]domain.Client, string, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ScanPage(ctx, int32(limit), cursor)
}

func (s *service) Delete(ctx context.Context, clientID string) error {
	return s.repo.SoftDelete(ctx, clientID)
}

func (s *service) SetLogoFile(ctx context.Context, clientID, fileID string) error {
	return s.repo.Update(ctx, clientID, map[string]interface{}{
		fieldLogoFileID: fileID,
		fieldUpdatedAt:  time.Now().UTC().Format(time.RFC3339),
	})
}
