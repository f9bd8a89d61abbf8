package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skilllink/skilllink/internal/config"
	"github.com/skilllink/skilllink/internal/database"
	"github.com/skilllink/skilllink/internal/handlers"
	"github.com/skilllink/skilllink/internal/logging"
	"github.com/skilllink/skilllink/internal/middleware"
	"github.com/skilllink/skilllink/internal/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	logger := logging.New()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		parsed := logging.ParseLevel(level)
		logger.SetLevel(parsed)
		logging.SetDefaultLevel(parsed)
	}

	logger.Info("Starting SkillLink server...")

	logger.Info("Connecting to PostgreSQL", map[string]interface{}{
		"host": cfg.Database.Host,
		"port": cfg.Database.Port,
	})
	db, err := database.NewPostgresDB(cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL")

	logger.Info("Running database migrations...")
	migrator, err := database.NewMigrator(cfg.Database.DSN(), "migrations")
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		return fmt.Errorf("running migrations: %w", err)
	}
	_ = migrator.Close()
	logger.Info("Migrations completed")

	logger.Info("Connecting to Redis", map[string]interface{}{
		"addr": cfg.Redis.Addr(),
	})
	redisDB, err := database.NewRedisDB(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisDB.Close() }()
	logger.Info("Connected to Redis")

	// Initialize services
	dbAdapter := services.NewPoolAdapter(db.Pool)
	redisAdapter := services.NewRedisAdapter(redisDB.Client)

	userService := services.NewUserService(dbAdapter)
	authService := services.NewAuthService(dbAdapter, redisAdapter)
	emailService := services.NewEmailService(&cfg.Email)
	notificationService := services.NewNotificationService(userService, emailService, logger)
	connectionStore := services.NewPostgresConnectionStore(dbAdapter)
	connectionService := services.NewConnectionService(connectionStore, userService, notificationService, logger)
	eventService := services.NewEventService(dbAdapter)
	messageService := services.NewMessageService(dbAdapter, connectionService)
	reflectionService := services.NewReflectionService(dbAdapter)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, redisDB)
	authHandler := handlers.NewAuthHandler(userService, authService, emailService, cfg.Server.Secure)
	profileHandler := handlers.NewProfileHandler(userService)
	connectionHandler := handlers.NewConnectionHandler(connectionService)
	eventHandler := handlers.NewEventHandler(eventService)
	messageHandler := handlers.NewMessageHandler(messageService)
	reflectionHandler := handlers.NewReflectionHandler(reflectionService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)
	csrfMiddleware := middleware.NewCSRFMiddleware(cfg.Server.Secure)
	securityHeaders := middleware.NewSecurityHeaders(cfg.Server.Secure)
	compress := middleware.NewCompress()
	requestLogger := middleware.NewRequestLogger(logger)

	authRateLimiter := middleware.NewAuthRateLimiter(redisDB.Client)
	messageRateLimiter := middleware.NewMessageRateLimiter(redisDB.Client)

	requireAuth := authMiddleware.RequireAuth

	mux := http.NewServeMux()

	// Health endpoints (no auth, no rate limit)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /live", healthHandler.Live)

	// CSRF token endpoint
	mux.HandleFunc("GET /api/csrf", csrfMiddleware.GetToken)

	// Auth endpoints
	mux.Handle("POST /api/auth/register", authRateLimiter.Limit(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /api/auth/login", authRateLimiter.Limit(http.HandlerFunc(authHandler.Login)))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.Handle("GET /api/auth/me", requireAuth(http.HandlerFunc(authHandler.Me)))

	// Profile directory
	mux.Handle("GET /api/profiles", requireAuth(http.HandlerFunc(profileHandler.List)))
	mux.Handle("GET /api/profiles/{id}", requireAuth(http.HandlerFunc(profileHandler.Get)))

	// Connection endpoints
	mux.Handle("GET /api/connections", requireAuth(http.HandlerFunc(connectionHandler.Overview)))
	mux.Handle("POST /api/connections/requests", requireAuth(http.HandlerFunc(connectionHandler.Request)))
	mux.Handle("PUT /api/connections/requests/{id}/accept", requireAuth(http.HandlerFunc(connectionHandler.Accept)))
	mux.Handle("PUT /api/connections/requests/{id}/decline", requireAuth(http.HandlerFunc(connectionHandler.Decline)))
	mux.Handle("DELETE /api/connections/requests/{id}", requireAuth(http.HandlerFunc(connectionHandler.Cancel)))

	// Event endpoints
	mux.Handle("POST /api/events", requireAuth(http.HandlerFunc(eventHandler.Create)))
	mux.Handle("GET /api/events", requireAuth(http.HandlerFunc(eventHandler.List)))
	mux.Handle("POST /api/events/{id}/join", requireAuth(http.HandlerFunc(eventHandler.Join)))
	mux.Handle("DELETE /api/events/{id}/join", requireAuth(http.HandlerFunc(eventHandler.Leave)))
	mux.Handle("DELETE /api/events/{id}", requireAuth(http.HandlerFunc(eventHandler.Delete)))
	mux.Handle("GET /api/events/{id}/attendees", requireAuth(http.HandlerFunc(eventHandler.Attendees)))

	// Message endpoints
	mux.Handle("POST /api/conversations/{id}/messages", requireAuth(messageRateLimiter.Limit(http.HandlerFunc(messageHandler.Send))))
	mux.Handle("GET /api/conversations/{id}/messages", requireAuth(http.HandlerFunc(messageHandler.Conversation)))

	// Reflection endpoints
	mux.Handle("POST /api/reflections", requireAuth(http.HandlerFunc(reflectionHandler.Create)))
	mux.Handle("GET /api/reflections", requireAuth(http.HandlerFunc(reflectionHandler.List)))

	// Build middleware chain (order matters: outermost first)
	var handler http.Handler = mux
	handler = authMiddleware.Authenticate(handler)
	handler = csrfMiddleware.Protect(handler)
	handler = compress.Apply(handler)
	handler = securityHeaders.Apply(handler)
	handler = requestLogger.Apply(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{
		"addr": addr,
	})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}
