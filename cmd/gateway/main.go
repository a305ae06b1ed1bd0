package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	api "github.com/acadflow/acadflow-backend/internal/api/http"
	auth "github.com/acadflow/acadflow-backend/internal/auth/middleware"
	"github.com/acadflow/acadflow-backend/internal/config"
	"github.com/acadflow/acadflow-backend/internal/correction"
	"github.com/acadflow/acadflow-backend/internal/db"
	"github.com/acadflow/acadflow-backend/internal/notify"
	"github.com/acadflow/acadflow-backend/internal/quiz"
	rbac "github.com/acadflow/acadflow-backend/internal/rbac"
	"github.com/acadflow/acadflow-backend/internal/task"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := quiz.NewSQLStore(dbh)
	events := notify.NewEventRepo(dbh)

	// --- Correction core ---
	registry := task.NewRegistry()
	grader := correction.NewGrader(
		correction.WithWeights(cfg.SemanticWeight, cfg.KeywordWeight),
		correction.WithPassThreshold(cfg.PassThreshold),
	)
	svc := correction.NewService(store, grader, registry, events)

	// Bounded memory: drop finished and stale task records periodically.
	go func() {
		t := time.NewTicker(cfg.TaskCleanupInterval)
		defer t.Stop()
		for range t.C {
			if n := registry.CleanupOlderThan(cfg.TaskTTL); n > 0 {
				log.Printf("task cleanup: removed %d records", n)
			}
		}
	}()

	// --- Auth (local JWT for offline/dev) ---
	authSvc := auth.NewAuthService(cfg.AuthHMACSecret)
	authSvc.AddLocalUser(cfg.AdminUser, cfg.AdminPassHash, "admin")

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.EnableLocalAuth {
		r.Post("/auth/login", auth.LoginHandler(authSvc))
	}

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("quiz:create")).
			Post("/quizzes", api.UploadQuizHandler(store))
		pr.With(rbac.Require("quiz:view")).
			Get("/quizzes/{quizID}", api.GetQuizHandler(store))

		pr.With(rbac.Require("correction:submit")).
			Post("/corrections/answers", api.SubmitAnswerHandler(svc))
		pr.With(rbac.Require("correction:submit")).
			Post("/corrections/batches", api.SubmitBatchHandler(svc))
		pr.With(rbac.Require("correction:status")).
			Get("/corrections/tasks/{taskID}", api.TaskStatusHandler(svc))
	})

	addr := cfg.HTTPAddr
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}
	log.Printf("gateway listening on %s (mode=%s, db=%s)", addr, cfg.Mode, cfg.DBDriver)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
