package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gridhook-systems/gridhook/internal/config"
	"github.com/gridhook-systems/gridhook/internal/dispatch"
	"github.com/gridhook-systems/gridhook/internal/handlers"
	"github.com/gridhook-systems/gridhook/internal/logging"
	"github.com/gridhook-systems/gridhook/internal/ratelimit"
	"github.com/gridhook-systems/gridhook/internal/server"
	"github.com/gridhook-systems/gridhook/internal/service"
	"github.com/gridhook-systems/gridhook/internal/trigger"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize structured logging
	logger := logging.New(
		logging.ParseLevel(cfg.Logging.Level),
		cfg.Logging.Format,
	).With(logging.Service("gridhook"))
	logging.SetDefault(logger)

	slog.Info("Starting gridhook",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Logging.Level),
		slog.String("log_format", cfg.Logging.Format),
	)
	if *configPath != "" {
		slog.Info("Loaded configuration", slog.String("config_path", *configPath))
	}

	// Initialize rate limiter
	var rateLimiter ratelimit.RateLimiter
	if cfg.Redis.Enabled && cfg.Webhook.RateLimitEnabled {
		log.Printf("Initializing Redis rate limiter: %s", cfg.Redis.URL)
		limiter, err := ratelimit.NewRedisRateLimiter(
			cfg.Redis.URL,
			cfg.Webhook.RateLimitRequests,
			cfg.Webhook.RateLimitWindow,
		)
		if err != nil {
			log.Printf("WARNING: Failed to initialize Redis rate limiter: %v", err)
			log.Println("Continuing without rate limiting")
			rateLimiter = &ratelimit.NoOpRateLimiter{}
		} else {
			rateLimiter = limiter
			log.Printf("Rate limiting enabled: %d requests per %s", cfg.Webhook.RateLimitRequests, cfg.Webhook.RateLimitWindow)
		}
	} else {
		rateLimiter = &ratelimit.NoOpRateLimiter{}
		log.Println("Rate limiting disabled")
	}
	defer rateLimiter.Close()

	// Build the processing pipeline: envelope -> blob extraction -> dispatch
	router := dispatch.NewRouter(dispatch.DefaultProcessors(logger)...)
	eventService := service.NewEventService(router, logger)

	// Initialize HTTP handlers
	handler := handlers.NewCloudEventsHandler(eventService, rateLimiter, logger, cfg.Webhook.MaxBodySize)
	mux := server.NewRouter(handler)

	// Start the push-trigger subscriber if configured
	if cfg.NATS.Enabled {
		triggerHandler := trigger.NewHandler(eventService, logger)
		subscriber, err := trigger.NewSubscriber(trigger.SubscriberConfig{
			URL:     cfg.NATS.URL,
			Subject: cfg.NATS.Subject,
			Queue:   cfg.NATS.Queue,
		}, triggerHandler, logger)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		if err := subscriber.Start(); err != nil {
			log.Fatalf("Failed to subscribe to push events: %v", err)
		}
		log.Printf("Push trigger enabled (subject: %s, queue: %s)", cfg.NATS.Subject, cfg.NATS.Queue)
		defer subscriber.Close()
	} else {
		log.Println("Push trigger disabled - webhook delivery only")
	}

	// Create server with config values
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("gridhook listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
