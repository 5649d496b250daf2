// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
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

	"github.com/campusevents/backend/internal/config"
	"github.com/campusevents/backend/internal/database"
	"github.com/campusevents/backend/internal/discovery"
	"github.com/campusevents/backend/internal/handler"
	"github.com/campusevents/backend/internal/model"
	"github.com/campusevents/backend/internal/repository"
	"github.com/campusevents/backend/internal/service"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// ── 1. Connect to PostgreSQL and prepare the schema ──────────────────
	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()
	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("connected to PostgreSQL")

	// ── 2. Wire up layers ────────────────────────────────────────────────
	eventRepo := repository.NewEventRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	venueRepo := repository.NewVenueRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	regRepo := repository.NewRegistrationRepository(pool)

	discoverySvc := discovery.NewService(eventRepo, categoryRepo, userRepo)
	authSvc := service.NewAuthService(userRepo, cfg.Auth)
	eventSvc := service.NewEventService(eventRepo, categoryRepo)
	regSvc := service.NewRegistrationService(regRepo)

	eventHandler := handler.NewEventHandler(discoverySvc, eventSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	regHandler := handler.NewRegistrationHandler(regSvc)
	refHandler := handler.NewReferenceHandler(categoryRepo, venueRepo)

	authenticate := handler.Authenticator([]byte(cfg.Auth.JWTSecret), authSvc)

	// ── 3. Build the router ───────────────────────────────────────────────
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(handler.Logger)          // structured access log
	r.Use(handler.CORS)            // permissive CORS for the web client

	// Health
	r.Get("/health", handler.HealthCheck)

	// API routes
	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(a chi.Router) {
			a.Post("/register", authHandler.Register)
			a.Post("/login", authHandler.Login)
			a.With(authenticate).Get("/me", authHandler.Me)
		})

		api.Get("/events", eventHandler.ListEvents)
		api.Get("/events/{id}", eventHandler.GetEvent)
		api.With(authenticate, handler.RequireRole(model.RoleOrganizer, model.RoleAdmin)).
			Post("/events", eventHandler.CreateEvent)
		api.With(authenticate, handler.RequireRole(model.RoleAdmin)).
			Post("/events/{id}/publish", eventHandler.PublishEvent)
		api.With(authenticate, handler.RequireRole(model.RoleOrganizer, model.RoleAdmin)).
			Post("/events/{id}/cancel", eventHandler.CancelEvent)
		api.With(authenticate, handler.RequireRole(model.RoleOrganizer, model.RoleAdmin)).
			Get("/organizer/events", eventHandler.OrganizerEvents)

		api.With(authenticate).Post("/events/{id}/register", regHandler.Register)
		api.With(authenticate).Delete("/events/{id}/register", regHandler.Cancel)

		api.Get("/categories", refHandler.Categories)
		api.Get("/venues", refHandler.Venues)
	})

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	go func() {
		log.Printf("server listening on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
	log.Println("server stopped")
}
