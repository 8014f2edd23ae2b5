package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/kwhite/mailagent/assistant"
	"github.com/kwhite/mailagent/compose"
	"github.com/kwhite/mailagent/dialogue"
	"github.com/kwhite/mailagent/extract"
	"github.com/kwhite/mailagent/server"
	"github.com/kwhite/mailagent/store"
	"github.com/kwhite/mailagent/template"
	"github.com/kwhite/mailagent/types"
)

// Config is assembled once at startup and injected everywhere; no package
// reads the environment on its own.
type Config struct {
	ListenAddr    string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	RedisAddr     string
	RecordTTL     time.Duration
}

func loadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:    envOr("LISTEN_ADDR", ":8080"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:   envOr("OPENAI_MODEL", "gpt-4o-mini"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RecordTTL:     30 * 24 * time.Hour,
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is required")
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	})
	if err != nil {
		slog.Error("init chat model", "error", err)
		os.Exit(1)
	}

	extractor, err := extract.NewToolBasedExtractor(chatModel)
	if err != nil {
		slog.Error("init extractor", "error", err)
		os.Exit(1)
	}
	followUps, err := dialogue.NewToolBasedGenerator(chatModel)
	if err != nil {
		slog.Error("init follow-up generator", "error", err)
		os.Exit(1)
	}
	composer, err := compose.NewToolBasedComposer(chatModel)
	if err != nil {
		slog.Error("init composer", "error", err)
		os.Exit(1)
	}

	var (
		stateCache  store.Cache[assistant.ConversationState]
		ledgerCache store.Cache[[]types.Turn]
	)
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			slog.Error("connect redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		stateCache = store.NewRedisCache[assistant.ConversationState](client, cfg.RecordTTL)
		ledgerCache = store.NewRedisCache[[]types.Turn](client, cfg.RecordTTL)
		slog.Info("using redis state store", "addr", cfg.RedisAddr)
	} else {
		stateCache = store.NewMemoryCache[assistant.ConversationState]()
		ledgerCache = store.NewMemoryCache[[]types.Turn]()
		slog.Info("using in-memory state store")
	}

	assistantSvc, err := assistant.NewService(
		extractor,
		dialogue.NewFailbackGenerator(followUps, &dialogue.LocalGenerator{}),
		composer,
		composer,
		assistant.NewStateStore(stateCache),
		store.NewLedger(ledgerCache),
	)
	if err != nil {
		slog.Error("init assistant service", "error", err)
		os.Exit(1)
	}

	tplSvc, err := template.NewService(composer, composer)
	if err != nil {
		slog.Error("init template service", "error", err)
		os.Exit(1)
	}

	srv, err := server.New(assistantSvc, template.NewMemoryStore(), tplSvc)
	if err != nil {
		slog.Error("init server", "error", err)
		os.Exit(1)
	}

	slog.Info("listening", "addr", cfg.ListenAddr)
	if err := srv.Router().Run(cfg.ListenAddr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
