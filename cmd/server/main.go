package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"legalbridge-backend/config"
	"legalbridge-backend/handlers"
	"legalbridge-backend/logging"
	"legalbridge-backend/middleware"
	"legalbridge-backend/models"
	"legalbridge-backend/repository"
	"legalbridge-backend/service"
	"legalbridge-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Contributor directory
	var contributorRepo repository.ContributorRepository
	if cfg.DirectorySource == config.DirectoryPostgres {
		db, err := initPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("Failed to initialize Postgres", zap.Error(err))
		}
		defer db.Close()
		contributorRepo = repository.NewPostgresContributorRepository(db)
		logger.Info("Contributor directory backed by Postgres")
	} else {
		contributorRepo = repository.NewStaticContributorRepository(models.SeedContributors)
	}

	// Wizard sessions and consent gates
	var (
		sessions repository.SessionStore[models.CaseSession]
		gates    repository.SessionStore[models.ConsentGate]
	)
	if cfg.SessionStore == config.SessionStoreRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisSessionDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatal("Failed to connect to Redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		defer client.Close()
		sessions = repository.NewRedisStore[models.CaseSession](client, "legalbridge:case:", cfg.SessionTTL)
		gates = repository.NewRedisStore[models.ConsentGate](client, "legalbridge:gate:", cfg.SessionTTL)
		logger.Info("Sessions stored in Redis", zap.String("addr", cfg.RedisAddr))
	} else {
		sessions = repository.NewMemoryStore[models.CaseSession](cfg.SessionTTL)
		gates = repository.NewMemoryStore[models.ConsentGate](cfg.SessionTTL)
	}

	fileStorage, err := storage.NewStorage(storage.StorageConfig{
		Type:      storage.StorageType(cfg.StorageType),
		LocalPath: cfg.StorageLocalPath,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	logger.Info("Storage initialized", zap.String("type", cfg.StorageType))

	// Remote collaborators
	simulator := &service.Simulator{
		CaseDelay:        cfg.CaseSubmitDelay,
		SignInDelay:      cfg.SignInDelay,
		GoogleDelay:      cfg.GoogleSignInDelay,
		ApplicationDelay: cfg.ApplicationDelay,
	}
	var submitter service.CaseSubmitter = simulator
	if cfg.SubmissionEndpointURL != "" {
		submitter = service.NewHTTPCaseSubmitter(cfg.SubmissionEndpointURL, &http.Client{Timeout: 30 * time.Second})
		logger.Info("Case handoff enabled", zap.String("endpoint", cfg.SubmissionEndpointURL))
	}

	// Initialize services
	caseService := service.NewCaseService(
		service.CaseWithSessionStore(sessions),
		service.CaseWithGateStore(gates),
		service.CaseWithStorage(fileStorage),
		service.CaseWithSubmitter(submitter),
		service.CaseWithLogger(logger),
	)
	directoryService := service.NewDirectoryService(contributorRepo)
	consentService := service.NewConsentService(
		service.ConsentWithGateStore(gates),
		service.ConsentWithCaseService(caseService),
		service.ConsentWithDirectory(directoryService),
		service.ConsentWithLogger(logger),
	)
	accountService := service.NewAccountService(
		service.AccountWithGateway(simulator),
		service.AccountWithLogger(logger),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	limiter := middleware.NewRateLimiter(cfg.MaxRequestsPerMin, logger)
	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	defer stopCleanup()
	go limiter.Cleanup(cleanupCtx, time.Minute)
	r.Use(limiter.Middleware())

	handlers.RegisterRoutes(r, &handlers.HandlerBundle{
		Catalog:      handlers.NewCatalogHandler(),
		Cases:        handlers.NewCaseHandler(caseService, logger),
		Files:        handlers.NewFileHandler(caseService, logger),
		Contributors: handlers.NewContributorHandler(directoryService, consentService, logger),
		Consent:      handlers.NewConsentHandler(consentService, logger),
		Accounts:     handlers.NewAccountHandler(accountService, logger),
	}, cfg.AllowedOrigins())

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	logger.Info("Server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Server is shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
}

func initPostgres(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
