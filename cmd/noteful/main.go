package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	authcache "noteful/internal/auth/adapters/cache"
	authpostgres "noteful/internal/auth/adapters/postgres"
	authservices "noteful/internal/auth/adapters/services"
	authapp "noteful/internal/auth/app"
	"noteful/internal/auth/ports/repositories"
	"noteful/internal/config"
	httpServer "noteful/internal/gateway/app/http"
	notespostgres "noteful/internal/notes/adapters/postgres"
	notesapp "noteful/internal/notes/app"
	"noteful/pkg/db/postgres"
	"noteful/pkg/db/redis"
	"noteful/pkg/logger"
	"noteful/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "LOGGER_MODE"
	EnvLoggerLevel = "LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrMigrateDB            = "failed to apply database migrations"
	ErrInitDB               = "failed to initialize database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "noteful service started"
	LogServiceShutdownDone = "noteful service shutdown complete"
	LogInitRepo            = "initializing repositories"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitLoginGuard      = "initializing login guard"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingDB           = "closing database connection"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		if err := postgres.Migrate(ctx, cfg.Postgres.URL, cfg.Postgres.MigrationsDir); err != nil {
			log.Error(ctx, ErrMigrateDB, zap.Error(err))
			exitCode = 1
			return
		}

		database, err := postgres.New(ctx, cfg.Postgres.URL, postgres.Options{
			MinConns:       cfg.Postgres.MinConn,
			MaxConns:       cfg.Postgres.MaxConn,
			ConnectTimeout: cfg.Postgres.ConnectTimeout,
		})
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		hooks := []shutdown.Hook{
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingDB)
				database.Close(ctx)
				return nil
			},
		}

		// Ограничение попыток входа включается только вместе с Redis.
		var attempts repositories.LoginAttemptRepository
		if cfg.LoginGuard.Enabled {
			log.Info(ctx, LogInitLoginGuard)
			redisClient, err := redis.NewClient(ctx, cfg.Redis.ClientConfig())
			if err != nil {
				log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
				database.Close(ctx)
				exitCode = 1
				return
			}
			attempts = authcache.NewLoginAttempts(redisClient.RawClient(),
				cfg.LoginGuard.MaxAttempts, cfg.LoginGuard.Window)
			hooks = append(hooks, redisClient.Close)
		}

		log.Info(ctx, LogInitRepo)
		userRepo := authpostgres.NewRepositoryFactory(database.Pool()).UserRepository()
		notesRepos := notespostgres.NewRepositoryFactory(database.Pool())
		folderRepo := notesRepos.FolderRepository()
		tagRepo := notesRepos.TagRepository()
		noteRepo := notesRepos.NoteRepository()

		log.Info(ctx, LogInitServices)
		serviceFactory := authservices.NewServiceFactory(
			cfg.JWT.Secret,
			cfg.JWT.GetExpiry(),
			cfg.JWT.BCryptCost,
		)

		log.Info(ctx, LogInitUseCases)
		integrity := notesapp.NewIntegrity(folderRepo, tagRepo, noteRepo)
		services := httpServer.Services{
			Auth: authapp.NewAuthUseCase(userRepo, attempts,
				serviceFactory.PasswordService(), serviceFactory.TokenService()),
			Folders: notesapp.NewFolderUseCase(folderRepo, integrity),
			Tags:    notesapp.NewTagUseCase(tagRepo, integrity),
			Notes:   notesapp.NewNoteUseCase(noteRepo, integrity),
			Store:   database,
		}

		log.Info(ctx, LogInitHTTPServer)
		app := httpServer.NewApp(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})
		httpServer.SetupRouter(app, log, services)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := app.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		// HTTP сервер останавливается до закрытия хранилищ.
		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(), func(ctx context.Context) error {
			log.Info(ctx, LogStoppingHTTP)
			if err := app.ShutdownWithContext(ctx); err != nil {
				return fmt.Errorf("%s: %w", LogStoppingHTTP, err)
			}
			shutdown.Run(ctx, cfg.Shutdown.GetTimeout(), hooks...)
			return nil
		})

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
