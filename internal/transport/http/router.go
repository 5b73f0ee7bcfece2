package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jobboard-api/internal/application/auth"
	"github.com/jobboard-api/internal/application/candidate"
	"github.com/jobboard-api/internal/application/category"
	clientapp "github.com/jobboard-api/internal/application/client"
	fileapp "github.com/jobboard-api/internal/application/file"
	"github.com/jobboard-api/internal/application/job"
	"github.com/jobboard-api/internal/application/jobapp"
	"github.com/jobboard-api/internal/application/notification"
	"github.com/jobboard-api/internal/application/notify"
	"github.com/jobboard-api/internal/application/staff"
	"github.com/jobboard-api/internal/config"
	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/transport/http/handler"
	appmiddleware "github.com/jobboard-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)
	staffOnly := appmiddleware.RequireRole(domain.RoleRecruiter, domain.RoleAdmin)
	adminOnly := appmiddleware.RequireRole(domain.RoleAdmin)

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	dispatcher := notify.NewDispatcher(deps.Mailer, deps.SMSSender, deps.NotificationRepo, slog.Default())

	authSvc := auth.NewService(auth.ServiceDeps{
		CandidateRepo: deps.CandidateRepo,
		ClientRepo:    deps.ClientRepo,
		RecruiterRepo: deps.RecruiterRepo,
		AdminRepo:     deps.AdminRepo,
		JWTProvider:   deps.JWTProvider,
		Dispatcher:    dispatcher,
	})
	candidateSvc := candidate.NewService(deps.CandidateRepo)
	clientSvc := clientapp.NewService(deps.ClientRepo)
	categorySvc := category.NewService(deps.CategoryRepo)
	jobSvc := job.NewService(job.ServiceDeps{JobRepo: deps.JobRepo, CategoryRepo: deps.CategoryRepo})
	jobappSvc := jobapp.NewService(jobapp.ServiceDeps{
		ApplicationRepo: deps.ApplicationRepo,
		JobRepo:         deps.JobRepo,
		CandidateRepo:   deps.CandidateRepo,
		Dispatcher:      dispatcher,
	})
	recruiterSvc := staff.NewService(deps.RecruiterRepo, domain.RoleRecruiter)
	notifSvc := notification.NewService(deps.NotificationRepo)
	fileSvc := fileapp.NewService(deps.S3Store, deps.FileRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	candidateH := handler.NewCandidateHandler(candidateSvc)
	clientH := handler.NewClientHandler(clientSvc)
	categoryH := handler.NewCategoryHandler(categorySvc)
	jobH := handler.NewJobHandler(jobSvc)
	appH := handler.NewApplicationHandler(jobappSvc)
	recruiterH := handler.NewStaffHandler(recruiterSvc)
	notifH := handler.NewNotificationHandler(notifSvc)
	fileH := handler.NewFileHandler(fileSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check", healthH.Check)
		r.Get("/health-check/{action}", healthH.Check)
		r.With(sensitiveRL.Limit).Post("/join", authH.Join)
		r.With(sensitiveRL.Limit).Post("/validateOTP", authH.ValidateOTP)
		r.With(sensitiveRL.Limit).Post("/clients", clientH.Register)
		r.With(sensitiveRL.Limit).Post("/clients/login", authH.ClientLogin)
		r.With(sensitiveRL.Limit).Post("/clients/forget-password", authH.ClientForgetPassword)
		r.With(sensitiveRL.Limit).Post("/clients/update-password", authH.ClientUpdatePassword)
		r.With(sensitiveRL.Limit).Post("/recruiters/login", authH.RecruiterLogin)
		r.With(sensitiveRL.Limit).Post("/admins/login", authH.AdminLogin)
		r.Get("/jobs", jobH.ListOpen)
		r.Get("/jobs/{id}", jobH.Get)
		r.Get("/categories", categoryH.List)
		r.Get("/categories/{id}", categoryH.Get)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			// Any authenticated user
			r.Post("/files/s3", fileH.Upload)
			r.Post("/files/s3/base64", fileH.UploadBase64)
			r.Get("/files/s3/base64/{id}", fileH.GetBase64)
			r.Get("/files/s3/{id}", fileH.Download)
			r.Get("/files/s3/{id}/url", fileH.URL)
			r.Delete("/files/s3/{id}", fileH.Delete)

			// Candidate
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleCandidate))

				r.Get("/candidates/me", candidateH.Me)
				r.Put("/candidates/me", candidateH.UpdateMe)
				r.Post("/candidates/me/cv", candidateH.AttachCV)
				r.Post("/jobs/{id}/apply", appH.Apply)
				r.Get("/candidates/me/applications", appH.ListMine)
				r.Get("/notifications", notifH.ListUnread)
				r.Put("/notifications/{id}", notifH.MarkAsRead)
			})

			// Client
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleClient))

				r.Get("/clients/me", clientH.Me)
				r.Put("/clients/me", clientH.UpdateMe)
				r.Post("/clients/me/logo", clientH.AttachLogo)
				r.Get("/clients/me/jobs", jobH.ListMine)
				r.Post("/jobs", jobH.Create)
			})

			// Job management: owner client or staff (ownership enforced in the
			// service layer).
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleClient, domain.RoleRecruiter, domain.RoleAdmin))

				r.Put("/jobs/{id}", jobH.Update)
				r.Put("/jobs/{id}/status", jobH.SetStatus)
				r.Delete("/jobs/{id}", jobH.Delete)
				r.Get("/jobs/{id}/applications", appH.ListForJob)
				r.Put("/applications/{id}/status", appH.UpdateStatus)
			})

			// Staff (recruiters and admins)
			r.Group(func(r chi.Router) {
				r.Use(staffOnly)

				r.Get("/candidates", candidateH.List)
				r.Get("/candidates/{id}", candidateH.Get)
				r.Put("/candidates/{id}", candidateH.Update)
				r.Delete("/candidates/{id}", candidateH.Delete)
				r.Get("/candidates/{id}/applications", appH.ListForCandidate)
				r.Get("/clients", clientH.List)
				r.Get("/clients/{id}", clientH.Get)
				r.Put("/clients/{id}", clientH.Update)
				r.Delete("/clients/{id}", clientH.Delete)
				r.Get("/clients/{id}/jobs", jobH.ListByClient)
				r.Get("/applications", appH.List)
			})

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(adminOnly)

				r.Post("/recruiters", recruiterH.Create)
				r.Get("/recruiters", recruiterH.List)
				r.Get("/recruiters/{id}", recruiterH.Get)
				r.Put("/recruiters/{id}", recruiterH.Update)
				r.Delete("/recruiters/{id}", recruiterH.Delete)

				r.Post("/categories", categoryH.Create)
				r.Put("/categories/{id}", categoryH.Update)
				r.Delete("/categories/{id}", categoryH.Delete)
			})
		})
	})

	return r
}
