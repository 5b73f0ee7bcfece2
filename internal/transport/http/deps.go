package http

import (
	"github.com/jobboard-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/jobboard-api/internal/infrastructure/jwt"
	"github.com/jobboard-api/internal/infrastructure/mailer"
	s3infra "github.com/jobboard-api/internal/infrastructure/s3"
	"github.com/jobboard-api/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	CandidateRepo    *dynamo.CandidateRepo
	ClientRepo       *dynamo.ClientRepo
	JobRepo          *dynamo.JobRepo
	ApplicationRepo  *dynamo.ApplicationRepo
	RecruiterRepo    *dynamo.StaffRepo
	AdminRepo        *dynamo.StaffRepo
	CategoryRepo     *dynamo.CategoryRepo
	NotificationRepo *dynamo.NotificationRepo
	FileRepo         *dynamo.FileRepo
	S3Store          *s3infra.Store
	Mailer           mailer.Mailer
	SMSSender        sns.SMSSender // nil when SNS is not configured
	JWTProvider      *jwtinfra.Provider
}
