// Package auth implements OTP-based candidate sign-in, password login for
// clients and staff, and the client password recovery flow.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/pkg/id"
	"github.com/jobboard-api/internal/pkg/otp"
	"golang.org/x/crypto/bcrypt"
)

// otpTTL is how long an issued code stays valid. A code whose expiry
// equals the current second is still accepted.
const otpTTL = 10 * time.Minute

// DynamoDB attribute names used in partial update maps.
const (
	fieldOTPCode      = "otp_code"
	fieldOTPExpiresAt = "otp_expires_at"
	fieldPasswordHash = "password_hash"
	fieldUpdatedAt    = "updated_at"
)

type JoinRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ValidateOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=5,numeric"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgetPasswordRequest covers both calls of the recovery flow: without OTP
// it issues a code, with OTP it validates the code.
type ForgetPasswordRequest struct {
	Email string  `json:"email" validate:"required,email"`
	OTP   *string `json:"otp" validate:"omitempty,len=5,numeric"`
}

type UpdatePasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type Service interface {
	CandidateJoin(ctx context.Context, email string) error
	CandidateValidateOTP(ctx context.Context, email, code string) (string, *domain.Candidate, error)
	ClientLogin(ctx context.Context, email, password string) (string, *domain.Client, error)
	ClientSendRecoveryOTP(ctx context.Context, email string) error
	ClientValidateRecoveryOTP(ctx context.Context, email, code string) error
	ClientUpdatePassword(ctx context.Context, email, newPassword string) error
	RecruiterLogin(ctx context.Context, email, password string) (string, *domain.Staff, error)
	AdminLogin(ctx context.Context, email, password string) (string, *domain.Staff, error)
}

type candidateStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Candidate, error)
	Put(ctx context.Context, c *domain.Candidate) error
	Update(ctx context.Context, candidateID string, updates map[string]interface{}) error
}

type clientStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
	Update(ctx context.Context, clientID string, updates map[string]interface{}) error
}

type staffStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Staff, error)
}

type tokenSigner interface {
	Sign(userID, role, email string) (string, error)
}

type otpDispatcher interface {
	OTP(email, code string)
}

type service struct {
	candidates candidateStore
	clients    clientStore
	recruiters staffStore
	admins     staffStore
	signer     tokenSigner
	dispatcher otpDispatcher
}

type ServiceDeps struct {
	CandidateRepo candidateStore
	ClientRepo    clientStore
	RecruiterRepo staffStore
	AdminRepo     staffStore
	JWTProvider   tokenSigner
	Dispatcher    otpDispatcher
}

func NewService(deps ServiceDeps) Service {
	return &service{
		candidates: deps.CandidateRepo,
		clients:    deps.ClientRepo,
		recruiters: deps.RecruiterRepo,
		admins:     deps.AdminRepo,
		signer:     deps.JWTProvider,
		dispatcher: deps.Dispatcher,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// checkOTP compares a stored code pair against a submitted code. Expiry is
// checked before equality so a stale code reports as expired even when it
// matches.
func checkOTP(code *string, expiresAt *int64, submitted string) error {
	if code == nil || expiresAt == nil {
		return fmt.Errorf("no active code: %w", domain.ErrOTPInvalid)
	}
	if time.Now().Unix() > *expiresAt {
		return fmt.Errorf("code expired: %w", domain.ErrOTPExpired)
	}
	if *code != submitted {
		return fmt.Errorf("code mismatch: %w", domain.ErrOTPInvalid)
	}
	return nil
}

// CandidateJoin issues a sign-in code for the email, creating the candidate
// record on first contact. Reissuing overwrites any previous code, so only
// the latest one validates.
func (s *service) CandidateJoin(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	code, err := otp.New()
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(otpTTL).Unix()

	c, err := s.candidates.GetByEmail(ctx, email)
	switch {
	case err == nil:
		updates := map[string]interface{}{
			fieldOTPCode:      code,
			fieldOTPExpiresAt: expiresAt,
			fieldUpdatedAt:    time.Now().UTC().Format(time.RFC3339),
		}
		if err := s.candidates.Update(ctx, c.CandidateID, updates); err != nil {
			return err
		}
	case isNotFound(err):
		now := time.Now().UTC()
		c = &domain.Candidate{
			CandidateID:  id.New(),
			Email:        email,
			OTPCode:      &code,
			OTPExpiresAt: &expiresAt,
			Enable:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.candidates.Put(ctx, c); err != nil {
			return err
		}
	default:
		return err
	}

	s.dispatcher.OTP(email, code)
	return nil
}

// CandidateValidateOTP checks the submitted code and returns a bearer token.
// The stored code is left in place until it expires or is replaced.
func (s *service) CandidateValidateOTP(ctx context.Context, email, code string) (string, *domain.Candidate, error) {
	email = normalizeEmail(email)

	c, err := s.candidates.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if err := checkOTP(c.OTPCode, c.OTPExpiresAt, code); err != nil {
		return "", nil, err
	}

	token, err := s.signer.Sign(c.CandidateID, domain.RoleCandidate, c.Email)
	if err != nil {
		return "", nil, err
	}
	return token, c, nil
}

func (s *service) ClientLogin(ctx context.Context, email, password string) (string, *domain.Client, error) {
	email = normalizeEmail(email)

	c, err := s.clients.GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}

	token, err := s.signer.Sign(c.ClientID, domain.RoleClient, c.Email)
	if err != nil {
		return "", nil, err
	}
	return token, c, nil
}

// ClientSendRecoveryOTP issues a password recovery code for an existing
// client account.
func (s *service) ClientSendRecoveryOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	c, err := s.clients.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := otp.New()
	if err != nil {
		return err
	}
	updates := map[string]interface{}{
		fieldOTPCode:      code,
		fieldOTPExpiresAt: time.Now().Add(otpTTL).Unix(),
		fieldUpdatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.clients.Update(ctx, c.ClientID, updates); err != nil {
		return err
	}

	s.dispatcher.OTP(email, code)
	return nil
}

func (s *service) ClientValidateRecoveryOTP(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)

	c, err := s.clients.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	return checkOTP(c.OTPCode, c.OTPExpiresAt, code)
}

// ClientUpdatePassword replaces the password hash and clears the recovery
// code pair in a single write.
func (s *service) ClientUpdatePassword(ctx context.Context, email, newPassword string) error {
	email = normalizeEmail(email)

	c, err := s.clients.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	updates := map[string]interface{}{
		fieldPasswordHash: string(hash),
		fieldOTPCode:      nil,
		fieldOTPExpiresAt: nil,
		fieldUpdatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	return s.clients.Update(ctx, c.ClientID, updates)
}

func (s *service) RecruiterLogin(ctx context.Context, email, password string) (string, *domain.Staff, error) {
	return s.loginStaff(ctx, s.recruiters, domain.RoleRecruiter, email, password)
}

func (s *service) AdminLogin(ctx context.Context, email, password string) (string, *domain.Staff, error) {
	return s.loginStaff(ctx, s.admins, domain.RoleAdmin, email, password)
}

func (s *service) loginStaff(ctx context.Context, store staffStore, role, email, password string) (string, *domain.Staff, error) {
	email = normalizeEmail(email)

	st, err := store.GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(st.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}

	token, err := s.signer.Sign(st.StaffID, role, st.Email)
	if err != nil {
		return "", nil, err
	}
	return token, st, nil
}
