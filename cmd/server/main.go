package main

import (
	"context"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ordo-core/internal/adapter/api"
	"ordo-core/internal/adapter/client"
	"ordo-core/internal/adapter/store"
	"ordo-core/internal/domain/repository"
	"ordo-core/internal/usecase"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := godotenv.Load(".env"); err != nil {
		log.Warn().Msg(".env file not found, using system environment variables")
	}
	ctx := context.Background()

	apiKey := os.Getenv("GEMINI_API_KEY")
	redisAddr := os.Getenv("REDIS_ADDR")
	tokenLimit, _ := strconv.Atoi(os.Getenv("DAILY_TOKEN_LIMIT"))
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// With no credential the orchestrator still starts and answers every
	// generation request with the missing-credential error.
	var gemini *client.GeminiClient
	if apiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY not configured, generation requests will be rejected")
	} else {
		var err error
		gemini, err = client.NewGeminiClient(ctx, apiKey)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to init genai client")
		}
	}

	var limiter repository.TokenLimiter
	if redisAddr != "" && tokenLimit > 0 {
		rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
		limiter = store.NewRedisLimiter(rdb, tokenLimit)
		log.Info().Str("addr", redisAddr).Int("daily_tokens", tokenLimit).Msg("quota limiter enabled")
	}

	cache := store.NewMemoryCache()
	files := store.NewMemoryMediaStore()
	orchestrator := usecase.NewOrchestrator(apiKey, gemini, gemini, cache, files, limiter)

	app := fiber.New(fiber.Config{
		AppName:   "OrdoMaroc Core",
		BodyLimit: 64 * 1024 * 1024, // video uploads
	})

	handler := api.NewGenerateHandler(orchestrator, files)
	api.SetupRouter(app, handler)

	log.Info().Str("port", port).Msg("OrdoMaroc Core running")
	if err := app.Listen(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
