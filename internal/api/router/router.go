// Package router wires the dashboard's HTTP surface: public auth and health
// endpoints plus the session-guarded resource pages.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/medidesk/hospital-admin-bff/internal/http/handlers"
	httpmiddleware "github.com/medidesk/hospital-admin-bff/internal/http/middleware"
	"github.com/medidesk/hospital-admin-bff/internal/session"
	"github.com/medidesk/hospital-admin-bff/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger   *logging.Logger
	Sessions *session.Manager

	Auth         *handlers.AuthHandler
	Dashboard    *handlers.DashboardHandler
	Patients     *handlers.PatientsHandler
	Doctors      *handlers.DoctorsHandler
	Appointments *handlers.AppointmentsHandler
	Records      *handlers.RecordsHandler
	Users        *handlers.UsersHandler
	Activities   *handlers.ActivitiesHandler

	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// LoginRatePerSecond throttles credential guessing on the login endpoint.
	// Zero disables the limiter.
	LoginRatePerSecond float64
	LoginBurst         int
}

// New creates a new chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints.
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Group(func(public chi.Router) {
		if cfg.LoginRatePerSecond > 0 {
			public.Use(httpmiddleware.RateLimit(cfg.LoginRatePerSecond, cfg.LoginBurst))
		}
		public.Get("/api/auth/login", cfg.Auth.LoginForm)
		public.Post("/api/auth/login", cfg.Auth.Login)
	})

	// Everything else requires a session.
	r.Group(func(guarded chi.Router) {
		guarded.Use(httpmiddleware.SessionAuth(cfg.Sessions))

		guarded.Post("/api/auth/logout", cfg.Auth.Logout)
		guarded.Get("/api/auth/me", cfg.Auth.Me)

		guarded.Get("/api/dashboard", cfg.Dashboard.Overview)
		guarded.Get("/api/activities", cfg.Activities.List)

		guarded.Route("/api/patients", func(r chi.Router) {
			r.Get("/", cfg.Patients.List)
			r.Get("/new", cfg.Patients.NewForm)
			r.Post("/", cfg.Patients.Create)
			r.Get("/{id}", cfg.Patients.Detail)
			r.Get("/{id}/edit", cfg.Patients.EditForm)
			r.Put("/{id}", cfg.Patients.Update)
			r.Delete("/{id}", cfg.Patients.Delete)
		})

		guarded.Route("/api/doctors", func(r chi.Router) {
			r.Get("/", cfg.Doctors.List)
			r.Get("/new", cfg.Doctors.NewForm)
			r.Post("/", cfg.Doctors.Create)
			r.Get("/{id}", cfg.Doctors.Detail)
			r.Get("/{id}/edit", cfg.Doctors.EditForm)
			r.Put("/{id}", cfg.Doctors.Update)
			r.Delete("/{id}", cfg.Doctors.Delete)
		})

		guarded.Route("/api/appointments", func(r chi.Router) {
			r.Get("/", cfg.Appointments.List)
			r.Get("/new", cfg.Appointments.NewForm)
			r.Post("/", cfg.Appointments.Create)
			r.Get("/{id}", cfg.Appointments.Detail)
			r.Get("/{id}/edit", cfg.Appointments.EditForm)
			r.Put("/{id}", cfg.Appointments.Update)
			r.Put("/{id}/status", cfg.Appointments.UpdateStatus)
			r.Delete("/{id}", cfg.Appointments.Delete)
		})

		guarded.Route("/api/records", func(r chi.Router) {
			r.Get("/", cfg.Records.List)
			r.Get("/new", cfg.Records.NewForm)
			r.Post("/", cfg.Records.Create)
			r.Get("/{id}", cfg.Records.Detail)
			r.Get("/{id}/edit", cfg.Records.EditForm)
			r.Put("/{id}", cfg.Records.Update)
			r.Delete("/{id}", cfg.Records.Delete)
		})

		guarded.Route("/api/users", func(r chi.Router) {
			r.Get("/", cfg.Users.List)
			r.Get("/new", cfg.Users.NewForm)
			r.Post("/", cfg.Users.Create)
			r.Get("/{id}/edit", cfg.Users.EditForm)
			r.Put("/{id}", cfg.Users.Update)
			r.Put("/{id}/password", cfg.Users.ChangePassword)
			r.Put("/{id}/active", cfg.Users.SetActive)
		})
	})

	return r
}
