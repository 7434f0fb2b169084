package main

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ademgunay/nest-api-sandbox/internal/auth"
	"github.com/ademgunay/nest-api-sandbox/internal/config"
	"github.com/ademgunay/nest-api-sandbox/internal/handlers"
	"github.com/ademgunay/nest-api-sandbox/internal/middleware"
	"github.com/ademgunay/nest-api-sandbox/internal/repo"
)

// newRouter wires repositories, the auth service and handlers onto a chi router.
func newRouter(db *sql.DB, cfg config.Config, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	userRepo := repo.NewUserRepo(db)
	bookmarkRepo := repo.NewBookmarkRepo(db)

	authService := auth.NewService(
		userRepo,
		auth.NewArgon2Hasher(auth.DefaultArgon2Params),
		auth.NewTokenService([]byte(cfg.JWTSecret), nil),
		cfg.JWTTTL,
		log,
	)

	authHandler := &handlers.AuthHandler{Service: authService, Log: log}
	userHandler := &handlers.UserHandler{Repo: userRepo, Log: log}
	bookmarkHandler := &handlers.BookmarkHandler{Repo: bookmarkRepo, Log: log}
	healthHandler := &handlers.HealthHandler{DB: db, Log: log}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recoverer(log))
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSEnabled()))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(cfg.MaxBodyBytes))

	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/signin", authHandler.Signin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(authService, log))

		r.Get("/users/me", userHandler.GetMe)
		r.Patch("/users/edit", userHandler.EditMe)

		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", bookmarkHandler.List)
			r.Post("/", bookmarkHandler.Create)
			r.Get("/{id}", bookmarkHandler.Get)
			r.Patch("/{id}", bookmarkHandler.Update)
			r.Delete("/{id}", bookmarkHandler.Delete)
		})
	})

	return r
}
