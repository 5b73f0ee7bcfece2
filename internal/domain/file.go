package domain

import "time"

const (
	FileKindCV    = "cv"
	FileKindLogo  = "logo"
	FileKindOther = "other"
)

type File struct {
	FileID           string    `json:"id" dynamodbav:"file_id"`
	Object           string    `json:"object" dynamodbav:"object"`
	Size             int64     `json:"size" dynamodbav:"size"`
	Type             string    `json:"type" dynamodbav:"type"`
	Name             string    `json:"name" dynamodbav:"name"`
	Hash             string    `json:"hash" dynamodbav:"hash"`
	Kind             string    `json:"kind" dynamodbav:"kind"` // cv | logo | other
	IsPrivate        bool      `json:"is_private" dynamodbav:"is_private"`
	UploadedByUserID string    `json:"user_who_uploaded_id" dynamodbav:"uploaded_by_user_id"`
	Enable           bool      `json:"enable" dynamodbav:"enable"`
	CreatedAt        time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt        time.Time `json:"updated" dynamodbav:"updated_at"`
}

// AttachFileRequest binds a previously uploaded file to a profile.
type AttachFileRequest struct {
	FileID string `json:"file_id" validate:"required"`
}
