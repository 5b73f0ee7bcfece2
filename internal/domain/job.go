package domain

import "time"

const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

const (
	EmploymentFullTime   = "full_time"
	EmploymentPartTime   = "part_time"
	EmploymentContract   = "contract"
	EmploymentInternship = "internship"
)

type Job struct {
	JobID          string    `json:"id" dynamodbav:"job_id"`
	ClientID       string    `json:"client_id" dynamodbav:"client_id"`
	CategoryID     *string   `json:"category_id" dynamodbav:"category_id"`
	Title          string    `json:"title" dynamodbav:"title"`
	Description    string    `json:"description" dynamodbav:"description"`
	Location       string    `json:"location" dynamodbav:"location"`
	EmploymentType string    `json:"employment_type" dynamodbav:"employment_type"`
	SalaryMin      *int      `json:"salary_min" dynamodbav:"salary_min"`
	SalaryMax      *int      `json:"salary_max" dynamodbav:"salary_max"`
	Skills         []string  `json:"skills" dynamodbav:"skills"`
	Status         string    `json:"status" dynamodbav:"job_status"` // open | closed
	Enable         bool      `json:"enable" dynamodbav:"enable"`
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateJobRequest struct {
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description" validate:"required"`
	Location       string   `json:"location"`
	CategoryID     *string  `json:"category_id"`
	EmploymentType string   `json:"employment_type" validate:"required,oneof=full_time part_time contract internship"`
	SalaryMin      *int     `json:"salary_min"`
	SalaryMax      *int     `json:"salary_max"`
	Skills         []string `json:"skills"`
}

type UpdateJobRequest struct {
	Title          *string   `json:"title"`
	Description    *string   `json:"description"`
	Location       *string   `json:"location"`
	CategoryID     *string   `json:"category_id"`
	EmploymentType *string   `json:"employment_type" validate:"omitempty,oneof=full_time part_time contract internship"`
	SalaryMin      *int      `json:"salary_min"`
	SalaryMax      *int      `json:"salary_max"`
	Skills         *[]string `json:"skills"`
}
