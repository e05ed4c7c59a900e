package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type RouterConfig struct {
	Env            string
	AllowedOrigins []string
	// Logger receives request logs; nil builds the ECS JSON logger on stdout
	Logger *slog.Logger
}

type Handlers struct {
	Pages      PageHandler
	Dashboard  DashboardHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Theme      ThemeHandler
	Events     EventHandler
}

// NewLogger builds the ECS-formatted JSON logger shared by the access log
// and the application.
func NewLogger(env string, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-lite-console"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)
}

func NewRouter(cfg RouterConfig, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := cfg.Logger
	if logger == nil {
		logger = NewLogger(cfg.Env, slog.LevelInfo)
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	// Screens
	r.Get("/", h.Pages.Dashboard)
	r.Get("/employees", h.Pages.Employees)
	r.Get("/attendance", h.Pages.Attendance)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/views", func(r chi.Router) {
			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/", h.Dashboard.Snapshot)
				r.Post("/refresh", h.Dashboard.Refresh)
				r.Post("/detail/{bucket}", h.Dashboard.OpenDetail)
				r.Delete("/detail", h.Dashboard.CloseDetail)
				r.Post("/escape", h.Dashboard.Escape)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.Snapshot)
				r.Post("/refresh", h.Employee.Refresh)
				r.Route("/add", func(r chi.Router) {
					r.Post("/", h.Employee.SubmitAdd)
					r.Post("/open", h.Employee.OpenAdd)
					r.Post("/close", h.Employee.CloseAdd)
				})
				r.Route("/delete", func(r chi.Router) {
					r.Post("/confirm", h.Employee.ConfirmDelete)
					r.Post("/cancel", h.Employee.CancelDelete)
					r.Post("/{employeeID}", h.Employee.RequestDelete)
				})
				r.Post("/notification/dismiss", h.Employee.DismissNotification)
				r.Post("/escape", h.Employee.Escape)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", h.Attendance.Snapshot)
				r.Post("/refresh", h.Attendance.Refresh)
				r.Post("/employees/refresh", h.Attendance.RefreshEmployees)
				r.Put("/filter", h.Attendance.SetFilter)
				r.Route("/mark", func(r chi.Router) {
					r.Post("/", h.Attendance.Mark)
					r.Post("/open", h.Attendance.OpenMark)
					r.Post("/close", h.Attendance.CloseMark)
				})
				r.Route("/toggle", func(r chi.Router) {
					r.Post("/", h.Attendance.RequestToggle)
					r.Post("/confirm", h.Attendance.ConfirmToggle)
					r.Post("/cancel", h.Attendance.CancelToggle)
				})
				r.Get("/export", h.Attendance.Export)
				r.Post("/notification/dismiss", h.Attendance.DismissNotification)
				r.Post("/escape", h.Attendance.Escape)
			})
		})

		r.Route("/theme", func(r chi.Router) {
			r.Get("/", h.Theme.Get)
			r.Put("/", h.Theme.Set)
			r.Post("/toggle", h.Theme.Toggle)
		})

		r.Get("/events", h.Events.Stream)
	})

	return r
}
