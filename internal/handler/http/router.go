package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/liff-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/liff-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Env         string
	FrontendURL string
}

type Handlers struct {
	Auth         AuthHandler
	Sheet        SheetHandler
	Attendance   AttendanceHandler
	Leave        LeaveHandler
	Member       MemberHandler
	Notification NotificationHandler
	Bootstrap    BootstrapHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "liff-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/liff", h.Auth.LoginWithLiff)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/logout", h.Auth.Logout)
			r.Get("/me/bootstrap", h.Bootstrap.Bootstrap)

			r.Route("/sheets", func(r chi.Router) {
				r.Post("/get", h.Sheet.Get)
				r.Post("/add", h.Sheet.Add)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/checkout", h.Attendance.CheckOut)
				r.Route("/me", func(r chi.Router) {
					r.Get("/", h.Attendance.Timeline)
					r.Post("/check-in", h.Attendance.CheckIn)
					r.Post("/check-out", h.Attendance.CheckOutToday)
					r.Get("/export", h.Attendance.Export)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/me", h.Leave.History)
				r.Post("/me", h.Leave.Request)
				r.Get("/upcoming", h.Leave.Upcoming)
			})

			r.Route("/members", func(r chi.Router) {
				r.Post("/", h.Member.Signup)
				r.Get("/me", h.Member.Me)
				r.Get("/me/history", h.Member.History)
			})

			r.Post("/notifications/push", h.Notification.Push)
		})
	})
	return r
}
