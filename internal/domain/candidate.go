package domain

import "time"

// Candidate is an identity record keyed by email (via the email-index GSI).
// The OTP pair lives on the record itself: both fields are set together on
// issuance and a new issuance overwrites the previous pair, so at most one
// code is ever live per candidate.
type Candidate struct {
	CandidateID  string    `json:"id" dynamodbav:"candidate_id"`
	Email        string    `json:"email" dynamodbav:"email"`
	FullName     string    `json:"full_name" dynamodbav:"full_name"`
	Phone        *string   `json:"phone" dynamodbav:"phone"`
	Headline     string    `json:"headline" dynamodbav:"headline"`
	Location     string    `json:"location" dynamodbav:"location"`
	Skills       []string  `json:"skills" dynamodbav:"skills"`
	CVFileID     *string   `json:"cv_file_id" dynamodbav:"cv_file_id"`
	OTPCode      *string   `json:"-" dynamodbav:"otp_code"`
	OTPExpiresAt *int64    `json:"-" dynamodbav:"otp_expires_at"` // Unix seconds
	Enable       bool      `json:"enable" dynamodbav:"enable"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
}

type UpdateCandidateRequest struct {
	FullName *string   `json:"full_name"`
	Phone    *string   `json:"phone"`
	Headline *string   `json:"headline"`
	Location *string   `json:"location"`
	Skills   *[]string `json:"skills"`
}
