package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobportal/api/http/handlers"
	"github.com/artem13815/jobportal/pkg/auth"
	"github.com/artem13815/jobportal/pkg/posting"
	"github.com/artem13815/jobportal/pkg/security/jwt"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Profile      *handlers.ProfileHandler
	Posting      *handlers.PostingHandler
	Application  *handlers.ApplicationHandler
	Resume       *handlers.ResumeHandler
	Student      *handlers.StudentHandler
	Admin        *handlers.AdminHandler
	AuthRequired fiber.Handler
	// Throttle guards credential endpoints; nil disables it.
	Throttle fiber.Handler
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers) {
	v1 := app.Group("/api").Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	throttle := h.Throttle
	if throttle == nil {
		throttle = func(c *fiber.Ctx) error { return c.Next() }
	}

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", throttle, h.Auth.Login)
	a.Post("/forgot-password", throttle, h.Auth.ForgotPassword)
	a.Post("/reset-password", throttle, h.Auth.ResetPassword)
	a.Get("/me", h.AuthRequired, h.Auth.Me)

	student := jwt.RequireRole(auth.RoleStudent)
	recruiter := jwt.RequireRole(auth.RoleRecruiter)
	admin := jwt.RequireRole(auth.RoleAdmin)

	p := v1.Group("/profile", h.AuthRequired)
	p.Get("/student", student, h.Profile.GetStudent)
	p.Post("/student", student, h.Profile.SaveStudent)
	p.Get("/recruiter", recruiter, h.Profile.GetCompany)
	p.Post("/recruiter", recruiter, h.Profile.SaveCompany)

	for _, kind := range []posting.Kind{posting.KindJob, posting.KindInternship} {
		g := v1.Group("/"+string(kind)+"s", h.AuthRequired)
		g.Post("/post", recruiter, h.Posting.Create(kind))
		g.Get("/", h.Posting.List(kind))
		// registered before /:id so "mine" is not taken for an id
		g.Get("/mine", recruiter, h.Posting.Mine(kind))
		g.Get("/:id", h.Posting.Get(kind))
	}

	ap := v1.Group("/applications", h.AuthRequired)
	ap.Post("/", student, h.Application.Apply)
	ap.Get("/recruiter", recruiter, h.Application.ListForRecruiter)
	ap.Get("/:id", recruiter, h.Application.GetForRecruiter)
	ap.Patch("/:id/status", jwt.RequireRole(auth.RoleRecruiter, auth.RoleStudent), h.Application.UpdateStatus)

	s := v1.Group("/student", h.AuthRequired, student)
	s.Get("/dashboard", h.Student.Dashboard)
	s.Get("/applications", h.Application.ListForStudent)
	s.Get("/applications/:id", h.Application.GetForStudent)
	s.Patch("/applications/:id/withdraw", h.Application.Withdraw)
	s.Get("/notifications", h.Student.Notifications)
	s.Get("/notifications/unread-count", h.Student.UnreadCount)
	s.Patch("/notifications/read-all", h.Student.MarkAllRead)
	s.Patch("/notifications/:id/read", h.Student.MarkRead)
	s.Delete("/notifications/:id", h.Student.DeleteNotification)

	r := v1.Group("/resumes", h.AuthRequired, student)
	r.Get("/", h.Resume.List)
	r.Post("/", h.Resume.Upload)
	r.Post("/ai-build", h.Resume.Build)
	r.Patch("/:id/default", h.Resume.SetDefault)
	r.Post("/:id/check-score", h.Resume.Score)
	r.Delete("/:id", h.Resume.Delete)

	ad := v1.Group("/admin", h.AuthRequired, admin)
	ad.Get("/dashboard", h.Admin.Dashboard)
	ad.Get("/analytics", h.Admin.Analytics)
	ad.Get("/users", h.Admin.Users)
	ad.Patch("/users/:id/status", h.Admin.UpdateUserStatus)
	ad.Delete("/users/:id", h.Admin.DeleteUser)
	ad.Get("/approvals", h.Admin.PendingRecruiters)
	ad.Patch("/approvals/:id/approve", h.Admin.Approve)
	ad.Patch("/approvals/:id/reject", h.Admin.Reject)
	ad.Get("/reports", h.Admin.Report)
}
