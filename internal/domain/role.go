package domain

// Role names carried in JWT claims and checked by the role middleware.
const (
	RoleCandidate = "candidate"
	RoleClient    = "client"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)
