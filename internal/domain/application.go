package domain

import "time"

const (
	ApplicationApplied     = "applied"
	ApplicationShortlisted = "shortlisted"
	ApplicationRejected    = "rejected"
	ApplicationHired       = "hired"
)

// ValidApplicationStatus reports whether s is a known application status.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationApplied, ApplicationShortlisted, ApplicationRejected, ApplicationHired:
		return true
	}
	return false
}

// Application links a candidate to a job. ClientID is denormalized from the
// job so ownership checks don't need a second lookup.
type Application struct {
	ApplicationID string    `json:"id" dynamodbav:"application_id"`
	JobID         string    `json:"job_id" dynamodbav:"job_id"`
	CandidateID   string    `json:"candidate_id" dynamodbav:"candidate_id"`
	ClientID      string    `json:"client_id" dynamodbav:"client_id"`
	Status        string    `json:"status" dynamodbav:"app_status"`
	CoverLetter   string    `json:"cover_letter" dynamodbav:"cover_letter"`
	CVFileID      *string   `json:"cv_file_id" dynamodbav:"cv_file_id"`
	Enable        bool      `json:"enable" dynamodbav:"enable"`
	CreatedAt     time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt     time.Time `json:"updated" dynamodbav:"updated_at"`

	Job       *Job       `json:"job,omitempty" dynamodbav:"-"`
	Candidate *Candidate `json:"candidate,omitempty" dynamodbav:"-"`
}

type ApplyRequest struct {
	JobID       string  `json:"job_id" validate:"required"`
	CoverLetter string  `json:"cover_letter"`
	CVFileID    *string `json:"cv_file_id"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=applied shortlisted rejected hired"`
}
