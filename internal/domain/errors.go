package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")

	// OTP failures get their own sentinels so the boundary can answer 400
	// (bad or expired code) instead of 401 (bad token).
	ErrOTPInvalid = errors.New("otp invalid")
	ErrOTPExpired = errors.New("otp expired")
)
