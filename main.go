package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/kochi-guide/bot/internal/agent/graph"
	"github.com/kochi-guide/bot/internal/agent/graph/tools"
	"github.com/kochi-guide/bot/internal/agent/model"
	"github.com/kochi-guide/bot/internal/agent/repo"
	"github.com/kochi-guide/bot/internal/bot"
	"github.com/kochi-guide/bot/internal/clients"
	"github.com/kochi-guide/bot/internal/core"
	logx "github.com/kochi-guide/bot/pkg/logger"
	pkgredis "github.com/kochi-guide/bot/pkg/redis"
)

// AppConfig defines all configurable parameters for the guide bot,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Chat transport
	TelegramToken string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`

	// Tool providers
	Weather model.WeatherConfig
	Places  model.PlacesConfig

	// Agent configs
	Response     model.ResponseModelConfig
	Prompt       model.GuidePromptConfig
	Conversation model.ConversationConfig
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env; missing required keys are fatal here
	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})

	rdb, err := envCfg.Redis.New()
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to initialise Redis client")
	}
	defer rdb.Close()

	logx.Info().Msg("Connected to Redis successfully")

	ttl, err := time.ParseDuration(envCfg.Conversation.TTL)
	if err != nil {
		logx.Fatal().Err(err).Str("ttl", envCfg.Conversation.TTL).Msg("Invalid CONVERSATION_TTL")
	}

	conversationRepo := repo.NewRedisConversationRepository(rdb, ttl)
	locationRepo := repo.NewRedisLocationRepository(rdb, ttl)

	weatherClient := clients.NewWeatherClient(envCfg.Weather)
	placesClient := clients.NewPlacesClient(envCfg.Places)

	runner, err := graph.BuildResponseGraph(ctx, graph.Config{
		APIKey:           envCfg.APIKey,
		BaseURL:          envCfg.BaseURL,
		ResponseModel:    envCfg.Response,
		GuidePrompt:      envCfg.Prompt,
		Conversation:     envCfg.Conversation,
		ConversationRepo: conversationRepo,
		Tools:            tools.GetGuideTools(weatherClient, placesClient),
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to build response graph")
	}

	b, err := bot.New(envCfg.TelegramToken, bot.Deps{
		Runner:        runner,
		Conversations: conversationRepo,
		Locations:     locationRepo,
		CityName:      envCfg.Prompt.CityName,
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to create Telegram bot")
	}

	logx.Info().Str("city", envCfg.Prompt.CityName).Msg("Guide bot is starting up")

	// Blocks until the context is cancelled; the library owns long polling.
	b.Start(ctx)

	logx.Info().Msg("Guide bot stopped")
}
