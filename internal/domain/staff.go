package domain

import "time"

// Staff is a back-office account (recruiter or admin). Recruiters and admins
// share a record shape and live in separate tables; Role mirrors which table
// the record came from.
type Staff struct {
	StaffID      string    `json:"id" dynamodbav:"staff_id"`
	Email        string    `json:"email" dynamodbav:"email"`
	FullName     string    `json:"full_name" dynamodbav:"full_name"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	Role         string    `json:"role" dynamodbav:"role"` // recruiter | admin
	Enable       bool      `json:"enable" dynamodbav:"enable"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateStaffRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required"`
}

type UpdateStaffRequest struct {
	FullName *string `json:"full_name"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
	Enable   *bool   `json:"enable"`
}
