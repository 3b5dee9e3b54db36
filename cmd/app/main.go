// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"cuisine-chat/internal/config"
	"cuisine-chat/internal/domain/ports/adapter"
	aiAdapters "cuisine-chat/internal/infra/adapters/ai"
	"cuisine-chat/internal/infra/api"
	"cuisine-chat/internal/infra/logging"
	"cuisine-chat/internal/infra/metrics"
	"cuisine-chat/internal/infra/ratelimit"
	red "cuisine-chat/internal/infra/redis"
	"cuisine-chat/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_ = godotenv.Load()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file (optional)")
	devMode := flag.Bool("dev", false, "development mode (console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- Rate limit store ----
	var store ratelimit.Store
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer redisClient.Close()
		store = ratelimit.NewRedisStore(redisClient)
		logger.Info().Str("url", cfg.Redis.URL).Msg("rate limiter: redis store")
	} else {
		mem := ratelimit.NewMemoryStore(time.Now)
		go mem.StartCleanup(ctx, cfg.RateLimit.Window(), cfg.RateLimit.Window())
		store = mem
		logger.Info().Msg("rate limiter: in-memory store")
	}
	limiter := ratelimit.NewLimiter(store, cfg.RateLimit.Max, cfg.RateLimit.Window())

	// ---- AI adapter ----
	var ai adapter.AIServiceAdapter
	provider := "openai"
	if cfg.AI.MockMode() {
		provider = "mock"
		if cfg.AI.OpenAIKey == config.MockModeSentinel {
			logger.Warn().Msg("API key equals the test sentinel; running in mock mode")
		}
		ai = aiAdapters.NewMockAdapter()
		logger.Info().Str("model", cfg.AI.Model).Msg("AI adapter: mock (no provider calls)")
	} else {
		ai, err = aiAdapters.NewOpenAIAdapter(cfg.AI.OpenAIKey, cfg.AI.Model)
		if err != nil {
			log.Fatalf("openai adapter: %v", err)
		}
		logger.Info().Str("model", cfg.AI.Model).Msg("AI adapter: OpenAI")
	}
	ai = aiAdapters.NewLimitedAI(ai, cfg.AI.ConcurrentLimit)

	// ---- Use case + HTTP server ----
	chatUC := usecase.NewChatUseCase(ai, usecase.NewPromptSanitizer(), provider, cfg.AI.Model, logger)
	srv := api.NewServer(chatUC, limiter, cfg.Server.CORSOrigins, logger)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Routes(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}
