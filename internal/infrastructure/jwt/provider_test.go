package jwtinfra

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/jobboard-api/internal/config"
	"github.com/jobboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := NewProvider(&config.Config{JWTSecret: "test-secret", JWTExpiryHours: 24})
	require.NoError(t, err)
	return p
}

func TestNewProvider_MissingSecret(t *testing.T) {
	_, err := NewProvider(&config.Config{JWTExpiryHours: 24})
	assert.Error(t, err)
}

func TestSignVerify_RoundTrip(t *testing.T) {
	p := newTestProvider(t)

	token, err := p.Sign("c1", domain.RoleCandidate, "a@x.com")
	require.NoError(t, err)

	claims, err := p.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "c1", claims.UserID)
	assert.Equal(t, domain.RoleCandidate, claims.Role)
	assert.Equal(t, "a@x.com", claims.Email)

	// Expiry must be ~24h out.
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerify_TamperedToken(t *testing.T) {
	p := newTestProvider(t)

	token, err := p.Sign("c1", domain.RoleCandidate, "a@x.com")
	require.NoError(t, err)

	// Flip one byte in the middle of the decoded signature, then re-encode.
	// Mutating the encoded text directly can land in padding bits that the
	// raw-url decoder discards, leaving the signature unchanged.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	require.NoError(t, err)
	sig[len(sig)/2] ^= 0x01
	parts[2] = base64.RawURLEncoding.EncodeToString(sig)

	_, err = p.Verify(strings.Join(parts, "."))
	assert.Error(t, err)
}

func TestVerify_WrongSecret(t *testing.T) {
	p := newTestProvider(t)
	other, err := NewProvider(&config.Config{JWTSecret: "different-secret", JWTExpiryHours: 24})
	require.NoError(t, err)

	token, err := p.Sign("c1", domain.RoleCandidate, "a@x.com")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestVerify_ExpiredToken(t *testing.T) {
	p := &Provider{secret: []byte("test-secret"), expiry: -time.Hour}
	token, err := p.Sign("c1", domain.RoleCandidate, "a@x.com")
	require.NoError(t, err)

	_, err = p.Verify(token)
	assert.Error(t, err)
}
