package job

import (
	"context"
	"errors"
	"testing"

	"github.com/jobboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockJobStore struct{ mock.Mock }

func (m *mockJobStore) Put(ctx context.Context, j *domain.Job) error {
	return m.Called(ctx, j).Error(0)
}
func (m *mockJobStore) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	args := m.Called(ctx, jobID)
	if j, _ := args.Get(0).(*domain.Job); j != nil {
		return j, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockJobStore) Update(ctx context.Context, jobID string, updates map[string]interface{}) error {
	return m.Called(ctx, jobID, updates).Error(0)
}
func (m *mockJobStore) SoftDelete(ctx context.Context, jobID string) error {
	return m.Called(ctx, jobID).Error(0)
}
func (m *mockJobStore) ListByClient(ctx context.Context, clientID string) ([]domain.Job, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *mockJobStore) ScanOpen(ctx context.Context, limit int32, cursor string) ([]domain.Job, string, error) {
	args := m.Called(ctx, limit, cursor)
	return args.Get(0).([]domain.Job), args.String(1), args.Error(2)
}

type mockCategoryStore struct{ mock.Mock }

func (m *mockCategoryStore) Get(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if c, _ := args.Get(0).(*domain.Category); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- helpers ---

func newService(js *mockJobStore, cats *mockCategoryStore) Service {
	return NewService(ServiceDeps{JobRepo: js, CategoryRepo: cats})
}

func baseReq() domain.CreateJobRequest {
	cat := "cat1"
	return domain.CreateJobRequest{
		CategoryID:     &cat,
		Title:          "Backend Engineer",
		Description:    "Build APIs",
		Location:       "Remote",
		EmploymentType: domain.EmploymentFullTime,
	}
}

func storedJob() *domain.Job {
	return &domain.Job{
		JobID:    "j1",
		ClientID: "cl1",
		Title:    "Backend Engineer",
		Status:   domain.JobStatusOpen,
		Enable:   true,
	}
}

// --- Create ---

func TestCreate_Success(t *testing.T) {
	js := &mockJobStore{}
	cats := &mockCategoryStore{}
	cats.On("Get", mock.Anything, "cat1").Return(&domain.Category{CategoryID: "cat1"}, nil)
	js.On("Put", mock.Anything, mock.MatchedBy(func(j *domain.Job) bool {
		return j.ClientID == "cl1" && j.Status == domain.JobStatusOpen && j.Enable
	})).Return(nil)

	svc := newService(js, cats)
	j, err := svc.Create(context.Background(), "cl1", baseReq())

	require.NoError(t, err)
	assert.NotEmpty(t, j.JobID)
	assert.Equal(t, domain.JobStatusOpen, j.Status)
	js.AssertExpectations(t)
}

func TestCreate_UnknownCategory(t *testing.T) {
	cats := &mockCategoryStore{}
	cats.On("Get", mock.Anything, "cat1").Return(nil, domain.ErrNotFound)

	svc := newService(&mockJobStore{}, cats)
	_, err := svc.Create(context.Background(), "cl1", baseReq())

	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

// --- Update / SetStatus / Delete ownership ---

func TestUpdate_OtherClientForbidden(t *testing.T) {
	js := &mockJobStore{}
	js.On("Get", mock.Anything, "j1").Return(storedJob(), nil)

	svc := newService(js, &mockCategoryStore{})
	title := "New title"
	_, err := svc.Update(context.Background(), "j1", "cl2", domain.RoleClient, domain.UpdateJobRequest{Title: &title})

	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestUpdate_StaffAllowed(t *testing.T) {
	js := &mockJobStore{}
	js.On("Get", mock.Anything, "j1").Return(storedJob(), nil)
	js.On("Update", mock.Anything, "j1", mock.MatchedBy(func(updates map[string]interface{}) bool {
		return updates["title"] == "Moderated title"
	})).Return(nil)

	svc := newService(js, &mockCategoryStore{})
	title := "Moderated title"
	_, err := svc.Update(context.Background(), "j1", "st1", domain.RoleAdmin, domain.UpdateJobRequest{Title: &title})

	require.NoError(t, err)
	js.AssertExpectations(t)
}

func TestSetStatus_Close(t *testing.T) {
	js := &mockJobStore{}
	js.On("Get", mock.Anything, "j1").Return(storedJob(), nil)
	js.On("Update", mock.Anything, "j1", mock.MatchedBy(func(updates map[string]interface{}) bool {
		return updates["job_status"] == domain.JobStatusClosed
	})).Return(nil)

	svc := newService(js, &mockCategoryStore{})
	_, err := svc.SetStatus(context.Background(), "j1", "cl1", domain.RoleClient, domain.JobStatusClosed)

	require.NoError(t, err)
	js.AssertExpectations(t)
}

func TestSetStatus_InvalidStatus(t *testing.T) {
	svc := newService(&mockJobStore{}, &mockCategoryStore{})
	_, err := svc.SetStatus(context.Background(), "j1", "cl1", domain.RoleClient, "archived")

	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestDelete_Owner(t *testing.T) {
	js := &mockJobStore{}
	js.On("Get", mock.Anything, "j1").Return(storedJob(), nil)
	js.On("SoftDelete", mock.Anything, "j1").Return(nil)

	svc := newService(js, &mockCategoryStore{})
	err := svc.Delete(context.Background(), "j1", "cl1", domain.RoleClient)

	require.NoError(t, err)
	js.AssertExpectations(t)
}

// --- Get ---

func TestGet_DisabledJobHidden(t *testing.T) {
	js := &mockJobStore{}
	j := storedJob()
	j.Enable = false
	js.On("Get", mock.Anything, "j1").Return(j, nil)

	svc := newService(js, &mockCategoryStore{})
	_, err := svc.Get(context.Background(), "j1")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
