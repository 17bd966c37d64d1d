package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xaenox/mudhumeni/internal/advisor"
	"github.com/xaenox/mudhumeni/internal/bot"
	"github.com/xaenox/mudhumeni/internal/classifier"
	"github.com/xaenox/mudhumeni/internal/completion"
	"github.com/xaenox/mudhumeni/internal/models"
	"github.com/xaenox/mudhumeni/internal/profile"
	"github.com/xaenox/mudhumeni/internal/recommend"
	"github.com/xaenox/mudhumeni/internal/server"
	"github.com/xaenox/mudhumeni/internal/storage"
	"github.com/xaenox/mudhumeni/internal/weather"
	"github.com/xaenox/mudhumeni/pkg/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config %s: %v\n", *configPath, err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Logging.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Service stopped with error", zap.Error(err))
	}
	logger.Info("Service stopped")
}

func newLogger(mode string) (*zap.Logger, error) {
	if mode == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	store, err := openStorage(ctx, cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	client, err := completion.NewClient(completion.Config{
		APIKey:      cfg.Completion.APIKey,
		BaseURL:     cfg.Completion.BaseURL,
		Model:       cfg.Completion.Model,
		MaxTokens:   cfg.Completion.MaxTokens,
		Temperature: cfg.Completion.Temperature,
		TopP:        cfg.Completion.TopP,
		Timeout:     cfg.Completion.Timeout,
	}, logger.Named("completion"))
	if err != nil {
		return fmt.Errorf("failed to create completion client: %w", err)
	}

	adv := advisor.New(client, classifier.NewTracker(classifier.NewKeywordClassifier()), logger.Named("advisor"))
	recommender := recommend.NewService(client, cfg.Completion.StructuredOutput, logger.Named("recommend"))
	weatherProvider := weather.NewMockProvider(nil)
	weatherAdvisor := weather.NewAdvisor(client, logger.Named("weather"))

	g, ctx := errgroup.WithContext(ctx)

	router := server.NewRouter(server.Deps{
		Advisor:        adv,
		Session:        advisor.NewSession(adv, models.Intermediate, logger.Named("session")),
		Recommender:    recommender,
		Weather:        weatherProvider,
		WeatherAdvisor: weatherAdvisor,
		Profiles:       profile.NewService(store, cfg.Profile.StorageKey, logger.Named("profile")),
		Status:         client,
	}, cfg.Server.AllowedOrigins, logger.Named("http"))
	srv := server.New(cfg.Server.Addr, router, logger.Named("http"))
	g.Go(func() error {
		return srv.Run(ctx)
	})

	if cfg.Telegram.Token != "" {
		b, err := bot.New(cfg.Telegram.Token, cfg.Telegram.Debug, bot.Services{
			Advisor:        adv,
			Recommender:    recommender,
			Weather:        weatherProvider,
			WeatherAdvisor: weatherAdvisor,
		}, logger.Named("bot"))
		if err != nil {
			return fmt.Errorf("failed to create bot: %w", err)
		}
		g.Go(func() error {
			return b.Start(ctx)
		})
	} else {
		logger.Info("Telegram token not set, bot disabled")
	}

	return g.Wait()
}

func openStorage(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (storage.Storage, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		logger.Info("Using PostgreSQL storage", zap.String("host", cfg.Database.Host))
		return storage.NewPostgresStorage(ctx, storage.DatabaseConfig{
			URL:      cfg.Database.URL,
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		})
	case config.BackendRedis:
		logger.Info("Using Redis storage")
		return storage.NewRedisStorage(ctx, storage.RedisConfig{
			URL:      cfg.Redis.URL,
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	default:
		logger.Info("Using in-memory storage")
		return storage.NewMemoryStorage(), nil
	}
}
