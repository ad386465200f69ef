package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups every route handler mounted by NewRouter.
type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Submission SubmissionHandler
	Payroll    PayrollHandler
	Upload     UploadHandler
	Job        JobHandler
}

type RouterConfig struct {
	Env         string
	FrontendURL string
}

func NewRouter(JWTService jwt.Service, h Handlers, cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-payroll"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/auth", func(r chi.Router) {
				r.Post("/logout", h.Auth.Logout)
				r.Get("/me", h.Auth.Me)
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequireManagement).Get("/", h.Employee.List)
				r.With(middleware.RequireManagement).Get("/{id}", h.Employee.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", h.Employee.Create)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Delete)
				})
			})

			r.Route("/attendances", func(r chi.Router) {
				r.With(middleware.RequireRole(employee.RoleEmployee)).Post("/", h.Attendance.Record)
				r.Get("/my", h.Attendance.GetMyAttendance)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManagement)
					r.Get("/", h.Attendance.List)
					r.Get("/summary", h.Attendance.Summary)
					r.Get("/{id}", h.Attendance.Get)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Put("/{id}", h.Attendance.Update)
					r.Delete("/{id}", h.Attendance.Delete)
				})
			})

			r.Route("/submissions", func(r chi.Router) {
				r.With(middleware.RequireRole(employee.RoleEmployee)).Post("/", h.Submission.Create)
				r.Get("/my", h.Submission.ListMine)
				r.With(middleware.RequireManagement).Get("/", h.Submission.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/{id}/approve", h.Submission.Approve)
					r.Post("/{id}/reject", h.Submission.Reject)
				})
			})

			r.Route("/payrolls", func(r chi.Router) {
				r.Get("/my", h.Payroll.ListMy)
				r.Get("/{id}", h.Payroll.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManagement)
					r.Get("/", h.Payroll.List)
					r.Get("/export", h.Payroll.Export)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/generate", h.Payroll.Generate)
					r.Post("/{id}/pay", h.Payroll.MarkPaid)
					r.Delete("/{id}", h.Payroll.Delete)
				})
			})

			r.Post("/uploads", h.Upload.Upload)
			r.Get("/uploads/*", h.Upload.Download)
			r.Delete("/uploads/*", h.Upload.Delete)

			r.Route("/jobs", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", h.Job.List)
				r.Post("/{name}/run", h.Job.Run)
			})
		})
	})
	return r
}
