package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jobboard-api/internal/application/auth"
	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/pkg/validate"
)

// AuthHandler handles candidate OTP sign-in, client and staff logins, and
// client password recovery.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler { return &AuthHandler{svc: svc} }

// Join issues a sign-in code for a candidate email, creating the account on
// first contact.
func (h *AuthHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req auth.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.CandidateJoin(r.Context(), req.Email); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"email": req.Email})
}

func (h *AuthHandler) ValidateOTP(w http.ResponseWriter, r *http.Request) {
	var req auth.ValidateOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	token, c, err := h.svc.CandidateValidateOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{Token: token, Candidate: c})
}

func (h *AuthHandler) ClientLogin(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	token, c, err := h.svc.ClientLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{Token: token, Client: c})
}

// ClientForgetPassword serves both steps of the recovery flow: a request
// without an otp field issues a code, one with it validates the code.
func (h *AuthHandler) ClientForgetPassword(w http.ResponseWriter, r *http.Request) {
	var req auth.ForgetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.OTP == nil {
		if err := h.svc.ClientSendRecoveryOTP(r.Context(), req.Email); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "code sent"})
		return
	}

	if err := h.svc.ClientValidateRecoveryOTP(r.Context(), req.Email, *req.OTP); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "code valid"})
}

func (h *AuthHandler) ClientUpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req auth.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.ClientUpdatePassword(r.Context(), req.Email, req.NewPassword); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "password updated"})
}

func (h *AuthHandler) RecruiterLogin(w http.ResponseWriter, r *http.Request) {
	h.staffLogin(w, r, h.svc.RecruiterLogin)
}

func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	h.staffLogin(w, r, h.svc.AdminLogin)
}

func (h *AuthHandler) staffLogin(w http.ResponseWriter, r *http.Request, login func(ctx context.Context, email, password string) (string, *domain.Staff, error)) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	token, st, err := login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{Token: token, Staff: st})
}
