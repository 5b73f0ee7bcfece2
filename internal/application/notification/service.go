package notification

import (
	"context"
	"fmt"

	"github.com/jobboard-api/internal/domain"
)

type Service interface {
	ListUnread(ctx context.Context, candidateID string) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, notificationID, candidateID string) (*domain.Notification, error)
}

type notificationStore interface {
	Get(ctx context.Context, notificationID string) (*domain.Notification, error)
	ListUnread(ctx context.Context, candidateID string) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, notificationID string) (*domain.Notification, error)
}

type service struct {
	repo notificationStore
}

func NewService(repo notificationStore) Service {
	return &service{repo: repo}
}

func (s *service) ListUnread(ctx context.Context, candidateID string) ([]domain.Notification, error) {
	return s.repo.ListUnread(ctx, candidateID)
}

func (s *service) MarkAsRead(ctx context.Context, notificationID, candidateID string) (*domain.Notification, error) {
	n, err := s.repo.Get(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if n.CandidateID != candidateID {
		return nil, fmt.Errorf("not the notification owner: %w", domain.ErrForbidden)
	}
	return s.repo.MarkAsRead(ctx, notificationID)
}
