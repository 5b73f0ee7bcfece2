package jobapp

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

type mockApplicationStore struct{ mock.Mock }

func (m *mockApplicationStore) Put(ctx context.Context, a *domain.Application) error {
	return m.Called(ctx, a).Error(0)
}
func (m *mockApplicationStore) Get(ctx context.Context, applicationID string) (*domain.Application, error) {
	args := m.Called(ctx, applicationID)
	if a, _ := args.Get(0).(*domain.Application); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockApplicationStore) Update(ctx context.Context, applicationID string, updates map[string]interface{}) error {
	return m.Called(ctx, applicationID, updates).Error(0)
}
func (m *mockApplicationStore) GetByJobAndCandidate(ctx context.Context, jobID, candidateID string) (*domain.Application, error) {
	args := m.Called(ctx, jobID, candidateID)
	if a, _ := args.Get(0).(*domain.Application); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockApplicationStore) ListByJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *mockApplicationStore) ListByCandidate(ctx context.Context, candidateID string) ([]domain.Application, error) {
	args := m.Called(ctx, candidateID)
	return args.Get(0).([]domain.Application), args.Error(1)
}

type mockJobStore struct{ mock.Mock }

func (m *mockJobStore) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	args := m.Called(ctx, jobID)
	if j, _ := args.Get(0).(*domain.Job); j != nil {
		return j, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCandidateStore struct{ mock.Mock }

func (m *mockCandidateStore) Get(ctx context.Context, candidateID string) (*domain.Candidate, error) {
	args := m.Called(ctx, candidateID)
	if c, _ := args.Get(0).(*domain.Candidate); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockDispatcher struct{ mock.Mock }

func (m *mockDispatcher) ApplicationStatus(c *domain.Candidate, j *domain.Job, a *domain.Application) {
	m.Called(c, j, a)
}

// --- helpers ---

func newService(as *mockApplicationStore, js *mockJobStore, cs *mockCandidateStore, d *mockDispatcher) Service {
	return NewService(ServiceDeps{
		ApplicationRepo: as,
		JobRepo:         js,
		CandidateRepo:   cs,
		Dispatcher:      d,
	})
}

func openJob() *domain.Job {
	return &domain.Job{
		JobID:    "j1",
		ClientID: "cl1",
		Title:    "Backend Engineer",
		Status:   domain.JobStatusOpen,
		Enable:   true,
	}
}

// --- Apply ---

func TestApply_Success(t *testing.T) {
	as := &mockApplicationStore{}
	js := &mockJobStore{}
	cs := &mockCandidateStore{}
	cvID := "f1"

	js.On("Get", mock.Anything, "j1").Return(openJob(), nil)
	as.On("GetByJobAndCandidate", mock.Anything, "j1", "c1").Return(nil, domain.ErrNotFound)
	cs.On("Get", mock.Anything, "c1").Return(&domain.Candidate{CandidateID: "c1", CVFileID: &cvID}, nil)
	as.On("Put", mock.Anything, mock.MatchedBy(func(a *domain.Application) bool {
		return a.JobID == "j1" && a.CandidateID == "c1" && a.ClientID == "cl1" &&
			a.Status == domain.ApplicationApplied && a.CVFileID != nil && *a.CVFileID == "f1"
	})).Return(nil)

	svc := newService(as, js, cs, nil)
	a, err := svc.Apply(context.Background(), "c1", domain.ApplyRequest{JobID: "j1"})

	require.NoError(t, err)
	assert.Equal(t, "cl1", a.ClientID)
	as.AssertExpectations(t)
}

func TestApply_ClosedJob(t *testing.T) {
	js := &mockJobStore{}
	j := openJob()
	j.Status = domain.JobStatusClosed
	js.On("Get", mock.Anything, "j1").Return(j, nil)

	svc := newService(&mockApplicationStore{}, js, nil, nil)
	_, err := svc.Apply(context.Background(), "c1", domain.ApplyRequest{JobID: "j1"})

	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestApply_Duplicate(t *testing.T) {
	as := &mockApplicationStore{}
	js := &mockJobStore{}
	js.On("Get", mock.Anything, "j1").Return(openJob(), nil)
	as.On("GetByJobAndCandidate", mock.Anything, "j1", "c1").Return(&domain.Application{ApplicationID: "app1"}, nil)

	svc := newService(as, js, nil, nil)
	_, err := svc.Apply(context.Background(), "c1", domain.ApplyRequest{JobID: "j1"})

	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestApply_UnknownJob(t *testing.T) {
	js := &mockJobStore{}
	js.On("Get", mock.Anything, "jx").Return(nil, domain.ErrNotFound)

	svc := newService(&mockApplicationStore{}, js, nil, nil)
	_, err := svc.Apply(context.Background(), "c1", domain.ApplyRequest{JobID: "jx"})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// --- ListForJob ---

func TestListForJob_OwnerSeesApplicants(t *testing.T) {
	as := &mockApplicationStore{}
	js := &mockJobStore{}
	cs := &mockCandidateStore{}

	js.On("Get", mock.Anything, "j1").Return(openJob(), nil)
	as.On("ListByJob", mock.Anything, "j1").Return([]domain.Application{
		{ApplicationID: "app1", CandidateID: "c1"},
	}, nil)
	cs.On("Get", mock.Anything, "c1").Return(&domain.Candidate{CandidateID: "c1", FullName: "Alice"}, nil)

	svc := newService(as, js, cs, nil)
	apps, err := svc.ListForJob(context.Background(), "j1", "cl1", domain.RoleClient)

	require.NoError(t, err)
	require.Len(t, apps, 1)
	require.NotNil(t, apps[0].Candidate)
	assert.Equal(t, "Alice", apps[0].Candidate.FullName)
}

func TestListForJob_OtherClientForbidden(t *testing.T) {
	js := &mockJobStore{}
	js.On("Get", mock.Anything, "j1").Return(openJob(), nil)

	svc := newService(&mockApplicationStore{}, js, nil, nil)
	_, err := svc.ListForJob(context.Background(), "j1", "cl2", domain.RoleClient)

	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestListForJob_RecruiterAllowed(t *testing.T) {
	as := &mockApplicationStore{}
	js := &mockJobStore{}
	js.On("Get", mock.Anything, "j1").Return(openJob(), nil)
	as.On("ListByJob", mock.Anything, "j1").Return([]domain.Application{}, nil)

	svc := newService(as, js, &mockCandidateStore{}, nil)
	_, err := svc.ListForJob(context.Background(), "j1", "st1", domain.RoleRecruiter)

	require.NoError(t, err)
}

// --- UpdateStatus ---

func TestUpdateStatus_NotifiesCandidate(t *testing.T) {
	as := &mockApplicationStore{}
	js := &mockJobStore{}
	cs := &mockCandidateStore{}
	d := &mockDispatcher{}

	as.On("Get", mock.Anything, "app1").Return(&domain.Application{
		ApplicationID: "app1", JobID: "j1", CandidateID: "c1", ClientID: "cl1",
		Status: domain.ApplicationApplied, Enable: true,
	}, nil)
	as.On("Update", mock.Anything, "app1", mock.MatchedBy(func(updates map[string]interface{}) bool {
		return updates["app_status"] == domain.ApplicationShortlisted
	})).Return(nil)
	cs.On("Get", mock.Anything, "c1").Return(&domain.Candidate{CandidateID: "c1"}, nil)
	js.On("Get", mock.Anything, "j1").Return(openJob(), nil)
	d.On("ApplicationStatus", mock.Anything, mock.Anything, mock.MatchedBy(func(a *domain.Application) bool {
		return a.Status == domain.ApplicationShortlisted
	})).Return()

	svc := newService(as, js, cs, d)
	a, err := svc.UpdateStatus(context.Background(), "app1", "cl1", domain.RoleClient, domain.ApplicationShortlisted)

	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationShortlisted, a.Status)
	d.AssertExpectations(t)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc := newService(&mockApplicationStore{}, nil, nil, nil)
	_, err := svc.UpdateStatus(context.Background(), "app1", "cl1", domain.RoleClient, "bogus")

	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestUpdateStatus_OtherClientForbidden(t *testing.T) {
	as := &mockApplicationStore{}
	as.On("Get", mock.Anything, "app1").Return(&domain.Application{
		ApplicationID: "app1", ClientID: "cl1", Enable: true,
	}, nil)

	svc := newService(as, nil, nil, nil)
	_, err := svc.UpdateStatus(context.Background(), "app1", "cl2", domain.RoleClient, domain.ApplicationHired)

	assert.True(t, errors.Is(err, domain.ErrForbidden))
}
