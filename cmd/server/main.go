// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/2witstudios/pagespace.team/internal/config"
	"github.com/2witstudios/pagespace.team/internal/domain"
	"github.com/2witstudios/pagespace.team/internal/handlers"
	"github.com/2witstudios/pagespace.team/internal/middleware"
	"github.com/2witstudios/pagespace.team/internal/ratelimit"
	"github.com/2witstudios/pagespace.team/internal/repository/aichat"
	"github.com/2witstudios/pagespace.team/internal/repository/chatmessage"
	"github.com/2witstudios/pagespace.team/internal/repository/conversation"
	"github.com/2witstudios/pagespace.team/internal/repository/credential"
	"github.com/2witstudios/pagespace.team/internal/repository/page"
	"github.com/2witstudios/pagespace.team/internal/repository/permission"
	"github.com/2witstudios/pagespace.team/internal/repository/user"
	"github.com/2witstudios/pagespace.team/internal/services"
	"github.com/2witstudios/pagespace.team/internal/services/access"
	"github.com/2witstudios/pagespace.team/internal/services/ai"
	"github.com/2witstudios/pagespace.team/internal/services/chat"
	"github.com/2witstudios/pagespace.team/internal/services/mention"
	"github.com/2witstudios/pagespace.team/internal/services/mentionctx"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg := config.Load()
	logger := services.NewLogger("pagespace")

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Page{},
		&domain.PagePermission{},
		&domain.AiChat{},
		&domain.ChatMessage{},
		&domain.AssistantConversation{},
		&domain.ProviderCredential{},
	); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	userRepo := user.NewUserRepository(db)
	pageRepo := page.NewPageRepository(db)
	permissionRepo := permission.NewPermissionRepository(db)
	aiChatRepo := aichat.NewAiChatRepository(db)
	messageRepo := chatmessage.NewMessageRepository(db)
	conversationRepo := conversation.NewConversationRepository(db)
	credentialRepo := credential.NewCredentialRepository(db)

	// --- Services ---
	gate := access.NewGate(permissionRepo, logger)

	aiConfig := ai.DefaultConfig()
	aiConfig.ProviderBaseURLs["openai"] = cfg.OpenAIBaseURL
	aiConfig.ProviderBaseURLs["openrouter"] = cfg.OpenRouterBaseURL
	modelResolver, err := ai.NewResolver(aiConfig, credentialRepo, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize model resolver: %v", err)
	}

	mentionResolver := mentionctx.NewResolver(pageRepo, gate, logger)

	orchestrator, err := chat.NewOrchestrator(
		chat.DefaultConfig(),
		pageRepo,
		aiChatRepo,
		messageRepo,
		gate,
		modelResolver,
		mentionResolver,
		logger,
	)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize turn orchestrator: %v", err)
	}

	mentionEngine := mention.NewEngine(pageRepo, userRepo, conversationRepo, gate, logger)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(userRepo, []byte(cfg.JWTSecretKey), logger)
	chatHandler := handlers.NewChatHandler(orchestrator, logger)
	mentionHandler := handlers.NewMentionHandler(mentionEngine, logger)

	// --- Rate limiters ---
	authLimiter := ratelimit.NewMemoryRateLimiter(ratelimit.DefaultAuthConfig())
	defer authLimiter.Close()
	turnConfig := ratelimit.DefaultTurnConfig()
	turnConfig.MaxAttempts = cfg.TurnRateLimit
	turnLimiter := ratelimit.NewMemoryRateLimiter(turnConfig)
	defer turnLimiter.Close()

	// --- Router Setup ---
	r := mux.NewRouter()
	authMiddleware := middleware.NewJWTMiddleware([]byte(cfg.JWTSecretKey), logger)

	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic(logger))
	r.Use(middleware.LoggingMiddleware(logger))

	// --- Public Routes ---
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")

	login := r.PathPrefix("/api/auth/login").Subrouter()
	login.Use(middleware.RateLimitMiddleware(authLimiter, "login", logger))
	login.HandleFunc("", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/logout", authHandler.Logout).Methods("POST")

	// --- Protected Routes ---
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware)
	api.HandleFunc("/mentions/search", mentionHandler.Search).Methods("GET")

	turns := api.PathPrefix("/ai/ai-page/messages").Subrouter()
	turns.Use(middleware.RateLimitMiddleware(turnLimiter, "turn", logger))
	turns.HandleFunc("/{pageId}", chatHandler.StreamMessages).Methods("POST")

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
		// No WriteTimeout: AI turns stream for longer than any sane value.
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.ServerPort, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
	logger.Info("server stopped")
}
