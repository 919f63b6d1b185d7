// ByteVerse platform API.
//
// @title        ByteVerse Platform API
// @version      1.0
// @description  Community platform backend: blogs, events, projects and membership.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/byteverse/platform-api/internal/abuse"
	"github.com/byteverse/platform-api/internal/api"
	"github.com/byteverse/platform-api/internal/core/service"
	"github.com/byteverse/platform-api/internal/infrastructure/config"
	mongodb "github.com/byteverse/platform-api/internal/infrastructure/db/mongo"
	redisdb "github.com/byteverse/platform-api/internal/infrastructure/db/redis"
	"github.com/byteverse/platform-api/internal/infrastructure/email"
	"github.com/byteverse/platform-api/internal/infrastructure/queue"
	"github.com/byteverse/platform-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("loading configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("disconnecting mongodb")
		}
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("creating mongodb indexes")
	}

	// --- Blocklist: redis-backed when enabled, in-memory otherwise ---
	var (
		rdb    *goredis.Client
		blocks abuse.Blocklist
	)
	if cfg.Redis.Enabled {
		rdb, err = redisdb.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("connecting to redis")
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Warn().Err(err).Msg("closing redis")
			}
		}()
		blocks = redisdb.NewBlocklist(rdb, cfg.Abuse.BlocklistTTL)
	} else {
		blocks = abuse.NewMemoryBlocklist(cfg.Abuse.BlocklistTTL)
	}

	// --- Abuse monitor ---
	monitor := abuse.NewMonitor(abuse.Config{
		RateThreshold: cfg.Abuse.RateThreshold,
		RateWindow:    cfg.Abuse.RateWindow,
		ScanThreshold: cfg.Abuse.ScanThreshold,
		ScanWindow:    cfg.Abuse.ScanWindow,
		Retention:     cfg.Abuse.Retention,
		SweepPeriod:   cfg.Abuse.SweepPeriod,
		Exempt:        cfg.Abuse.Exempt,
	}, blocks, log)
	go monitor.Run(ctx)

	// --- Outbound delivery ---
	mailer, err := email.NewSMTPMailer(cfg.SMTP, log)
	if err != nil {
		log.Fatal().Err(err).Msg("building smtp mailer")
	}
	renderer, err := email.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("parsing email templates")
	}

	delivery := service.NewDeliveryService(mailer, mongodb.NewNotificationRepository(db), log)
	dispatcher := queue.NewDispatcher(cfg.DeliveryWorkers, delivery, log)
	dispatcher.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Config:     cfg,
		Mongo:      db,
		Redis:      rdb,
		Blocklist:  blocks,
		Monitor:    monitor,
		Mailer:     mailer,
		Renderer:   renderer,
		Dispatcher: dispatcher,
		Log:        log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("starting http server")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("byteverse api up")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
}

// ensureIndexes creates every collection index up front so unique
// constraints hold from the first write.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, ensure := range []func(context.Context) error{
		mongodb.NewUserRepository(db).EnsureIndexes,
		mongodb.NewBlogRepository(db).EnsureIndexes,
		mongodb.NewCommentRepository(db).EnsureIndexes,
		mongodb.NewRegistrationRepository(db).EnsureIndexes,
		mongodb.NewCommunityRepository(db).EnsureIndexes,
		mongodb.NewNotificationRepository(db).EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return err
		}
	}
	return nil
}
