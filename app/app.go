package app

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"review-lifecycle-api/internal/auth"
	"review-lifecycle-api/internal/config"
	"review-lifecycle-api/internal/controller"
	"review-lifecycle-api/internal/repo"
	"review-lifecycle-api/internal/service"
	"review-lifecycle-api/pkg/http_server"
	"review-lifecycle-api/pkg/logger"
	"review-lifecycle-api/pkg/postgres"
	"review-lifecycle-api/pkg/redis_client"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/labstack/echo"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Backend holds the connections and services shared by the API server and
// the admin CLI.
type Backend struct {
	Config   *config.Config
	Services *service.Services
	Tokens   *auth.Tokens

	postgres *postgres.Postgres
	redis    *redis.Client
}

// Connect loads the configuration, sets up logging and opens the store and
// the cache.
func Connect() (*Backend, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Setup(cfg.Env)

	log.Info("Connecting database...")
	postgresDB, err := postgres.NewDB(cfg.PostgresConn)
	if err != nil {
		return nil, err
	}

	log.WithField("addr", cfg.RedisAddr).Info("Connecting redis...")
	redisClient, err := redis_client.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		_ = postgresDB.Close()
		return nil, err
	}

	repositories := repo.NewRepositories(postgresDB, redisClient, cfg.ReviewCacheTTL)

	return &Backend{
		Config:   cfg,
		Services: service.NewServices(repositories),
		Tokens:   auth.NewTokens(cfg.JWTSecret),
		postgres: postgresDB,
		redis:    redisClient,
	}, nil
}

func (b *Backend) Close() {
	if err := b.redis.Close(); err != nil {
		log.WithError(err).Warn("failed to close redis client")
	}
	if err := b.postgres.Close(); err != nil {
		log.WithError(err).Warn("failed to close database")
	}
}

// Migrate brings the schema up to date. Running it on an up to date schema
// is a no-op.
func (b *Backend) Migrate() error {
	driver, err := pgmigrate.WithInstance(b.postgres.Database, &pgmigrate.Config{DatabaseName: b.Config.PostgresDB})
	if err != nil {
		return err
	}

	migrations, err := migrate.NewWithDatabaseInstance(b.Config.MigrationsPath, b.Config.PostgresDB, driver)
	if err != nil {
		return err
	}

	if err := migrations.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("no change made by migration scripts")
			return nil
		}

		return err
	}

	return nil
}

func Run() {
	backend, err := Connect()
	if err != nil {
		log.WithError(err).Fatal("Error occurred while starting up")
	}
	defer backend.Close()

	log.Info("Running migrations...")
	if err := backend.Migrate(); err != nil {
		log.WithError(err).Fatal("Migration error")
	}

	handler := echo.New()
	handler.HideBanner = true

	log.Info("Setup routes...")
	controller.SetupRoutesHandlers(handler, backend.Services, backend.Tokens)

	log.WithField("addr", backend.Config.ServerAddress).Info("Starting server...")
	httpServer := http_server.New(handler, backend.Config.ServerAddress)

	log.Info("Ready to process requests...")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("Got signal: " + s.String())
	case err, ok := <-httpServer.Notify():
		if ok {
			log.WithError(err).Error("Notify error")
		}
	}

	log.Info("Shutting down...")
	if err := httpServer.Shutdown(); err != nil {
		log.WithError(err).Error("Shutdown error")
		return
	}
	log.Info("Successful shutdown")
}
