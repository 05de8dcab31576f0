// The videosearch binary serves the cached travel-video search endpoint.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"github.com/Yadaporn-l/Papakjai/pkg/cachestore"
	"github.com/Yadaporn-l/Papakjai/pkg/microservice"
	"github.com/Yadaporn-l/Papakjai/pkg/searchapi"
	"github.com/Yadaporn-l/Papakjai/pkg/searchcache"
	"github.com/Yadaporn-l/Papakjai/pkg/videofinder"
)

type appConfig struct {
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPPort        string        `env:"HTTP_PORT" envDefault:":4000"`
	ProjectID       string        `env:"GOOGLE_CLOUD_PROJECT"`
	CredentialsFile string        `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	YouTubeAPIKey   string        `env:"YOUTUBE_API_KEY,required"`
	CacheCollection string        `env:"CACHE_COLLECTION" envDefault:"videoSearchCache"`
	CacheTTL        time.Duration `env:"CACHE_TTL" envDefault:"24h"`
	DefaultQuery    string        `env:"DEFAULT_QUERY" envDefault:"travel guide"`
	// RedisAddr, when set, selects the Redis store instead of Firestore.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "videosearch").Logger()

	var cfg appConfig
	if err := env.Parse(&cfg); err != nil {
		logger.Fatal().Err(err).Msg("Failed to parse configuration from environment.")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := newEntryStore(ctx, &cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize cache store.")
	}
	defer cleanup()

	finder, err := videofinder.New(cfg.YouTubeAPIKey, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize video finder.")
	}

	search, err := searchcache.New(searchcache.Config{
		TTL:          cfg.CacheTTL,
		DefaultQuery: cfg.DefaultQuery,
	}, finder, store, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize search cache.")
	}

	server := microservice.NewBaseServer(logger, cfg.HTTPPort)
	searchapi.New(search, logger).Routes(server.Router())

	if err := server.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start HTTP server.")
	}

	<-ctx.Done()
	logger.Info().Msg("Shutdown signal received.")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown was not clean.")
	}
}

// newEntryStore selects Redis when configured, Firestore otherwise. The
// returned cleanup closes whichever client was opened.
func newEntryStore(ctx context.Context, cfg *appConfig, logger zerolog.Logger) (searchcache.EntryStore, func(), error) {
	if cfg.RedisAddr != "" {
		store, err := cachestore.NewRedis[string, searchcache.CacheEntry](ctx, &cachestore.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}

	var clientOpts []option.ClientOption
	if cfg.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := firestore.NewClient(ctx, cfg.ProjectID, clientOpts...)
	if err != nil {
		return nil, nil, err
	}
	store, err := cachestore.NewFirestore[string, searchcache.CacheEntry](&cachestore.FirestoreConfig{
		ProjectID:      cfg.ProjectID,
		CollectionName: cfg.CacheCollection,
	}, client, logger)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return store, func() { _ = client.Close() }, nil
}
