package domain

import "time"

// Client is an employer account. Unlike candidates, clients register through
// an explicit flow with a password; the OTP pair on the record backs the
// forget-password flow and is cleared when the password is updated.
type Client struct {
	ClientID     string    `json:"id" dynamodbav:"client_id"`
	Email        string    `json:"email" dynamodbav:"email"`
	CompanyName  string    `json:"company_name" dynamodbav:"company_name"`
	ContactName  string    `json:"contact_name" dynamodbav:"contact_name"`
	Phone        *string   `json:"phone" dynamodbav:"phone"`
	Website      string    `json:"website" dynamodbav:"website"`
	About        string    `json:"about" dynamodbav:"about"`
	LogoFileID   *string   `json:"logo_file_id" dynamodbav:"logo_file_id"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	OTPCode      *string   `json:"-" dynamodbav:"otp_code"`
	OTPExpiresAt *int64    `json:"-" dynamodbav:"otp_expires_at"` // Unix seconds
	Enable       bool      `json:"enable" dynamodbav:"enable"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateClientRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8,max=72"`
	CompanyName string  `json:"company_name" validate:"required"`
	ContactName string  `json:"contact_name" validate:"required"`
	Phone       *string `json:"phone"`
	Website     string  `json:"website" validate:"omitempty,url"`
	About       string  `json:"about"`
}

type UpdateClientRequest struct {
	CompanyName *string `json:"company_name"`
	ContactName *string `json:"contact_name"`
	Phone       *string `json:"phone"`
	Website     *string `json:"website" validate:"omitempty,url"`
	About       *string `json:"about"`
}
