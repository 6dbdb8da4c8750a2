package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/pannonhealth/lifeline/internal/ai"
	"github.com/pannonhealth/lifeline/internal/audit"
	"github.com/pannonhealth/lifeline/internal/challenge"
	"github.com/pannonhealth/lifeline/internal/mood"
	"github.com/pannonhealth/lifeline/internal/profile"
	"github.com/pannonhealth/lifeline/internal/referral"
	"github.com/pannonhealth/lifeline/internal/shared/auth"
	"github.com/pannonhealth/lifeline/internal/shared/config"
	"github.com/pannonhealth/lifeline/internal/shared/database"
	"github.com/pannonhealth/lifeline/internal/shared/events"
	"github.com/pannonhealth/lifeline/internal/shared/metrics"
	"github.com/pannonhealth/lifeline/internal/shared/middleware"
	"github.com/pannonhealth/lifeline/internal/triage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Postgres is optional: without it the service still triages and
	// generates plans, but referral sources, profiles and the audit trail
	// are disabled.
	var db *database.DB
	if d, err := database.New(ctx, cfg.Database); err != nil {
		log.Printf("WARNING: database unavailable, running in limited mode: %v", err)
	} else {
		db = d
		defer db.Close()
		if err := database.Migrate(ctx, db.Pool); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// KurrentDB is optional as well; without it no events are published
	// and the audit trail stays empty.
	var bus *events.Bus
	if b, err := events.NewBus(ctx, cfg.KurrentDB); err != nil {
		log.Printf("WARNING: event bus unavailable, events disabled: %v", err)
	} else {
		bus = b
		defer bus.Close()
	}

	aiClient := ai.NewClient(cfg.AI)
	if aiClient == nil {
		log.Println("AI deployment not configured; using deterministic fallbacks")
	}

	// Doctor record sources: the Postgres tables plus, when enabled, the
	// legacy clinic registry.
	var sources []referral.Source
	if db != nil {
		sources = referral.NewTableSources(db.Pool)
	}
	if cfg.Registry.Enabled {
		registry, err := referral.OpenClinicRegistry(cfg.Registry)
		if err != nil {
			log.Printf("WARNING: clinic registry unavailable: %v", err)
		} else {
			defer registry.Close()
			sources = append(sources, registry)
		}
	}

	var matcher *referral.Matcher
	if len(sources) > 0 {
		matcher = referral.NewMatcher(sources...)
	}

	triageHandler := triage.NewHandler(triage.NewService(aiClient, cfg.AI.Timeout), matcher, bus)
	challengeHandler := challenge.NewHandler(challenge.NewGenerator(aiClient, cfg.AI.Timeout), bus)
	moodHandler := mood.NewHandler(mood.NewService(aiClient, cfg.AI.Timeout))

	var profileHandler *profile.Handler
	var auditHandler *audit.Handler
	if db != nil {
		profileHandler = profile.NewHandler(profile.NewRepository(db.Pool), bus)

		auditRepo := audit.NewRepository(db.Pool)
		auditHandler = audit.NewHandler(auditRepo)
		if bus != nil {
			if err := audit.NewSubscriber(auditRepo).Start(ctx, bus); err != nil {
				log.Printf("WARNING: audit subscriber failed to start: %v", err)
			}
		}
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.BodyLimit(1 << 20))
	r.Use(metrics.Middleware)
	r.Use(corsMiddleware)

	rateLimiter := middleware.NewIPRateLimiter(20, 40)
	r.Use(rateLimiter.Middleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/ready", func(w http.ResponseWriter, req *http.Request) {
		if db != nil {
			if err := db.Health(req.Context()); err != nil {
				http.Error(w, `{"status":"database unavailable"}`, http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// symptom triage and mood check-ins are reachable without an account
		r.Mount("/triage", triageHandler.Routes())
		r.Mount("/mood", moodHandler.Routes())

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(cfg.Auth))
			r.Mount("/challenges", challengeHandler.Routes())
			if profileHandler != nil {
				r.Mount("/profile", profileHandler.Routes())
			}
			if auditHandler != nil {
				r.Mount("/audit", auditHandler.Routes())
			}
		})
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Lifeline API listening on :%d (env=%s)", cfg.Server.Port, cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// corsMiddleware allows browser clients to call the API directly
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
