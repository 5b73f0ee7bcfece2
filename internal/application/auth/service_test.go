package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jobboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- mocks ---

type mockCandidateStore struct{ mock.Mock }

func (m *mockCandidateStore) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	args := m.Called(ctx, email)
	if c, _ := args.Get(0).(*domain.Candidate); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCandidateStore) Put(ctx context.Context, c *domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockCandidateStore) Update(ctx context.Context, candidateID string, updates map[string]interface{}) error {
	return m.Called(ctx, candidateID, updates).Error(0)
}

type mockClientStore struct{ mock.Mock }

func (m *mockClientStore) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	args := m.Called(ctx, email)
	if c, _ := args.Get(0).(*domain.Client); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockClientStore) Update(ctx context.Context, clientID string, updates map[string]interface{}) error {
	return m.Called(ctx, clientID, updates).Error(0)
}

type mockStaffStore struct{ mock.Mock }

func (m *mockStaffStore) GetByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	args := m.Called(ctx, email)
	if s, _ := args.Get(0).(*domain.Staff); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSigner struct{ mock.Mock }

func (m *mockSigner) Sign(userID, role, email string) (string, error) {
	args := m.Called(userID, role, email)
	return args.String(0), args.Error(1)
}

type mockDispatcher struct{ mock.Mock }

func (m *mockDispatcher) OTP(email, code string) {
	m.Called(email, code)
}

// --- helpers ---

func newService(cs *mockCandidateStore, cls *mockClientStore, rs, as *mockStaffStore, sig *mockSigner, d *mockDispatcher) Service {
	return NewService(ServiceDeps{
		CandidateRepo: cs,
		ClientRepo:    cls,
		RecruiterRepo: rs,
		AdminRepo:     as,
		JWTProvider:   sig,
		Dispatcher:    d,
	})
}

func activeCandidate(code string) *domain.Candidate {
	exp := time.Now().Add(5 * time.Minute).Unix()
	return &domain.Candidate{
		CandidateID:  "c1",
		Email:        "alice@example.com",
		OTPCode:      &code,
		OTPExpiresAt: &exp,
		Enable:       true,
	}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// --- CandidateJoin ---

func TestCandidateJoin_NewCandidate(t *testing.T) {
	cs := &mockCandidateStore{}
	d := &mockDispatcher{}
	cs.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, domain.ErrNotFound)
	cs.On("Put", mock.Anything, mock.MatchedBy(func(c *domain.Candidate) bool {
		return c.Email == "alice@example.com" &&
			c.OTPCode != nil && len(*c.OTPCode) == 5 &&
			c.OTPExpiresAt != nil && c.Enable
	})).Return(nil)
	d.On("OTP", "alice@example.com", mock.AnythingOfType("string")).Return()

	svc := newService(cs, nil, nil, nil, nil, d)
	err := svc.CandidateJoin(context.Background(), "  Alice@Example.com ")

	require.NoError(t, err)
	cs.AssertExpectations(t)
	d.AssertExpectations(t)
}

func TestCandidateJoin_ExistingCandidateOverwritesCode(t *testing.T) {
	cs := &mockCandidateStore{}
	d := &mockDispatcher{}
	cs.On("GetByEmail", mock.Anything, "alice@example.com").Return(activeCandidate("11111"), nil)
	cs.On("Update", mock.Anything, "c1", mock.MatchedBy(func(updates map[string]interface{}) bool {
		code, ok := updates["otp_code"].(string)
		_, hasExp := updates["otp_expires_at"]
		return ok && len(code) == 5 && hasExp
	})).Return(nil)
	d.On("OTP", "alice@example.com", mock.AnythingOfType("string")).Return()

	svc := newService(cs, nil, nil, nil, nil, d)
	err := svc.CandidateJoin(context.Background(), "alice@example.com")

	require.NoError(t, err)
	cs.AssertExpectations(t)
}

func TestCandidateJoin_StoreError(t *testing.T) {
	cs := &mockCandidateStore{}
	d := &mockDispatcher{}
	cs.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, errors.New("dynamo down"))

	svc := newService(cs, nil, nil, nil, nil, d)
	err := svc.CandidateJoin(context.Background(), "alice@example.com")

	require.Error(t, err)
	d.AssertNotCalled(t, "OTP", mock.Anything, mock.Anything)
}

// --- CandidateValidateOTP ---

func TestCandidateValidateOTP_Success(t *testing.T) {
	cs := &mockCandidateStore{}
	sig := &mockSigner{}
	cs.On("GetByEmail", mock.Anything, "alice@example.com").Return(activeCandidate("12345"), nil)
	sig.On("Sign", "c1", domain.RoleCandidate, "alice@example.com").Return("tok", nil)

	svc := newService(cs, nil, nil, nil, sig, nil)
	token, c, err := svc.CandidateValidateOTP(context.Background(), "alice@example.com", "12345")

	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Equal(t, "c1", c.CandidateID)
	// The code is not consumed on success.
	cs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestCandidateValidateOTP_ReplayWithinWindow(t *testing.T) {
	cs := &mockCandidateStore{}
	sig := &mockSigner{}
	cs.On("GetByEmail", mock.Anything, "alice@example.com").Return(activeCandidate("12345"), nil)
	sig.On("Sign", "c1", domain.RoleCandidate, "alice@example.com").Return("tok", nil)

	svc := newService(cs, nil, nil, nil, sig, nil)
	for i := 0; i < 2; i++ {
		_, _, err := svc.CandidateValidateOTP(context.Background(), "alice@example.com", "12345")
		require.NoError(t, err)
	}
}

func TestCandidateValidateOTP_WrongCode(t *testing.T) {
	cs := &mockCandidateStore{}
	cs.On("GetByEmail", mock.Anything, "alice@example.com").Return(activeCandidate("12345"), nil)

	svc := newService(cs, nil, nil, nil, nil, nil)
	_, _, err := svc.CandidateValidateOTP(context.Background(), "alice@example.com", "54321")

	assert.True(t, errors.Is(err, domain.ErrOTPInvalid))
}

func TestCandidateValidateOTP_Expired(t *testing.T) {
	code := "12345"
	exp := time.Now().Add(-time.Second).Unix()
	c := &domain.Candidate{CandidateID: "c1", Email: "alice@example.com", OTPCode: &code, OTPExpiresAt: &exp}

	cs := &mockCandidateStore{}
	cs.On("GetByEmail", mock.Anything, "alice@example.com").Return(c, nil)

	svc := newService(cs, nil, nil, nil, nil, nil)
	// Even the matching code reports expired once past the deadline.
	_, _, err := svc.CandidateValidateOTP(context.Background(), "alice@example.com", "12345")

	assert.True(t, errors.Is(err, domain.ErrOTPExpired))
}

func TestCandidateValidateOTP_ExpiryBoundaryStillValid(t *testing.T) {
	code := "12345"
	exp := time.Now().Add(time.Second).Unix()
	c := &domain.Candidate{CandidateID: "c1", Email: "alice@example.com", OTPCode: &code, OTPExpiresAt: &exp}

	cs := &mockCandidateStore{}
	sig := &mockSigner{}
	cs.On("GetByEmail", mock.Anything, "alice@example.com").Return(c, nil)
	sig.On("Sign", "c1", domain.RoleCandidate, "alice@example.com").Return("tok", nil)

	svc := newService(cs, nil, nil, nil, sig, nil)
	_, _, err := svc.CandidateValidateOTP(context.Background(), "alice@example.com", "12345")

	require.NoError(t, err)
}

func TestCandidateValidateOTP_NoActiveCode(t *testing.T) {
	cs := &mockCandidateStore{}
	cs.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.Candidate{CandidateID: "c1", Email: "alice@example.com"}, nil)

	svc := newService(cs, nil, nil, nil, nil, nil)
	_, _, err := svc.CandidateValidateOTP(context.Background(), "alice@example.com", "12345")

	assert.True(t, errors.Is(err, domain.ErrOTPInvalid))
}

func TestCandidateValidateOTP_UnknownEmail(t *testing.T) {
	cs := &mockCandidateStore{}
	cs.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)

	svc := newService(cs, nil, nil, nil, nil, nil)
	_, _, err := svc.CandidateValidateOTP(context.Background(), "ghost@example.com", "12345")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// --- Client login and recovery ---

func TestClientLogin_Success(t *testing.T) {
	cls := &mockClientStore{}
	sig := &mockSigner{}
	cls.On("GetByEmail", mock.Anything, "acme@example.com").Return(&domain.Client{
		ClientID:     "cl1",
		Email:        "acme@example.com",
		PasswordHash: mustHash(t, "password123"),
	}, nil)
	sig.On("Sign", "cl1", domain.RoleClient, "acme@example.com").Return("tok", nil)

	svc := newService(nil, cls, nil, nil, sig, nil)
	token, c, err := svc.ClientLogin(context.Background(), "acme@example.com", "password123")

	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Equal(t, "cl1", c.ClientID)
}

func TestClientLogin_WrongPassword(t *testing.T) {
	cls := &mockClientStore{}
	cls.On("GetByEmail", mock.Anything, "acme@example.com").Return(&domain.Client{
		ClientID:     "cl1",
		PasswordHash: mustHash(t, "password123"),
	}, nil)

	svc := newService(nil, cls, nil, nil, nil, nil)
	_, _, err := svc.ClientLogin(context.Background(), "acme@example.com", "wrong")

	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestClientLogin_UnknownEmail(t *testing.T) {
	cls := &mockClientStore{}
	cls.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)

	svc := newService(nil, cls, nil, nil, nil, nil)
	_, _, err := svc.ClientLogin(context.Background(), "ghost@example.com", "password123")

	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestClientSendRecoveryOTP(t *testing.T) {
	cls := &mockClientStore{}
	d := &mockDispatcher{}
	cls.On("GetByEmail", mock.Anything, "acme@example.com").Return(&domain.Client{ClientID: "cl1", Email: "acme@example.com"}, nil)
	cls.On("Update", mock.Anything, "cl1", mock.MatchedBy(func(updates map[string]interface{}) bool {
		_, hasCode := updates["otp_code"]
		_, hasExp := updates["otp_expires_at"]
		return hasCode && hasExp
	})).Return(nil)
	d.On("OTP", "acme@example.com", mock.AnythingOfType("string")).Return()

	svc := newService(nil, cls, nil, nil, nil, d)
	err := svc.ClientSendRecoveryOTP(context.Background(), "acme@example.com")

	require.NoError(t, err)
	cls.AssertExpectations(t)
}

func TestClientSendRecoveryOTP_UnknownEmail(t *testing.T) {
	cls := &mockClientStore{}
	d := &mockDispatcher{}
	cls.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)

	svc := newService(nil, cls, nil, nil, nil, d)
	err := svc.ClientSendRecoveryOTP(context.Background(), "ghost@example.com")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	d.AssertNotCalled(t, "OTP", mock.Anything, mock.Anything)
}

func TestClientValidateRecoveryOTP_Expired(t *testing.T) {
	code := "12345"
	exp := time.Now().Add(-time.Minute).Unix()
	cls := &mockClientStore{}
	cls.On("GetByEmail", mock.Anything, "acme@example.com").Return(&domain.Client{
		ClientID: "cl1", OTPCode: &code, OTPExpiresAt: &exp,
	}, nil)

	svc := newService(nil, cls, nil, nil, nil, nil)
	err := svc.ClientValidateRecoveryOTP(context.Background(), "acme@example.com", "12345")

	assert.True(t, errors.Is(err, domain.ErrOTPExpired))
}

func TestClientUpdatePassword_ClearsOTPPair(t *testing.T) {
	cls := &mockClientStore{}
	cls.On("GetByEmail", mock.Anything, "acme@example.com").Return(&domain.Client{ClientID: "cl1"}, nil)
	cls.On("Update", mock.Anything, "cl1", mock.MatchedBy(func(updates map[string]interface{}) bool {
		code, hasCode := updates["otp_code"]
		exp, hasExp := updates["otp_expires_at"]
		_, hasHash := updates["password_hash"]
		return hasCode && code == nil && hasExp && exp == nil && hasHash
	})).Return(nil)

	svc := newService(nil, cls, nil, nil, nil, nil)
	err := svc.ClientUpdatePassword(context.Background(), "acme@example.com", "newpassword1")

	require.NoError(t, err)
	cls.AssertExpectations(t)
}

// --- Staff logins ---

func TestRecruiterLogin_Success(t *testing.T) {
	rs := &mockStaffStore{}
	sig := &mockSigner{}
	rs.On("GetByEmail", mock.Anything, "rec@example.com").Return(&domain.Staff{
		StaffID:      "st1",
		Email:        "rec@example.com",
		PasswordHash: mustHash(t, "password123"),
	}, nil)
	sig.On("Sign", "st1", domain.RoleRecruiter, "rec@example.com").Return("tok", nil)

	svc := newService(nil, nil, rs, nil, sig, nil)
	token, st, err := svc.RecruiterLogin(context.Background(), "rec@example.com", "password123")

	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Equal(t, "st1", st.StaffID)
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	as := &mockStaffStore{}
	as.On("GetByEmail", mock.Anything, "admin@example.com").Return(&domain.Staff{
		StaffID:      "st2",
		PasswordHash: mustHash(t, "password123"),
	}, nil)

	svc := newService(nil, nil, nil, as, nil, nil)
	_, _, err := svc.AdminLogin(context.Background(), "admin@example.com", "nope")

	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}
