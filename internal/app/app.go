package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	_ "melodistic/docs"
	"melodistic/internal/config"
	"melodistic/internal/database"
	"melodistic/internal/handlers"
	"melodistic/internal/logger"
	"melodistic/internal/middleware"
	"melodistic/internal/repositories"
	"melodistic/internal/routes"
	"melodistic/internal/services"
	"melodistic/internal/storage"
	"melodistic/internal/telemetry"
	"melodistic/internal/utils"
)

// Run serves the API until ctx is cancelled or SIGINT/SIGTERM arrives.
func Run(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	shutdownTracing, traceHandler, err := telemetry.Init(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn().Err(err).Msg("tracer shutdown")
		}
	}()

	// === DB ===
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("close database")
		}
	}()
	if err := database.MigrateUp(ctx, db); err != nil {
		return err
	}

	// === Redis ===
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := buildRouter(cfg, log, db, rdb, store, reg)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           traceHandler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func buildRouter(
	cfg *config.Config,
	log zerolog.Logger,
	db *sql.DB,
	rdb *redis.Client,
	store storage.Storage,
	reg *prometheus.Registry,
) *gin.Engine {
	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	trackRepo := repositories.NewTrackRepository(db)
	favoriteRepo := repositories.NewFavoriteRepository(db)
	processedRepo := repositories.NewProcessedMusicRepository(db)
	resetRepo := repositories.NewPasswordResetRepository(rdb)

	// === Services ===
	authService := services.NewAuthService(cfg.JWT.Secret, cfg.JWT.TTL)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
		cfg.Email.DryRun,
		logger.Component(log, "email"),
	)
	google := services.NewGoogleVerifier(cfg.Google.UserinfoURL, &http.Client{Timeout: 10 * time.Second})
	processor := utils.NewProcessorClient(
		cfg.Processor.BaseURL,
		cfg.Processor.Timeout,
		cfg.Processor.MaxRedirects,
		logger.Component(log, "processor"),
	)

	userService := services.NewUserService(userRepo, authService, emailService, google, store, services.UserServiceConfig{
		PublicURL:        cfg.Server.PublicURL,
		StoragePublicURL: cfg.Storage.PublicURL,
	}, logger.Component(log, "user"))
	resetService := services.NewPasswordResetService(userRepo, resetRepo, emailService, authService, logger.Component(log, "password-reset"))
	trackService := services.NewTrackService(trackRepo, favoriteRepo, processor, store, cfg.Storage.PublicURL, logger.Component(log, "track"))
	processService := services.NewProcessService(processedRepo, processor, store, logger.Component(log, "process"))

	// === Handlers ===
	httpLog := logger.Component(log, "http")
	authHandler := handlers.NewAuthHandler(userService, resetService, httpLog)
	userHandler := handlers.NewUserHandler(userService, trackService, httpLog)
	trackHandler := handlers.NewTrackHandler(trackService, httpLog)
	processHandler := handlers.NewProcessHandler(processService, httpLog)
	healthHandler := handlers.NewHealthHandler(map[string]handlers.Pinger{
		"database": handlers.PingFunc(db.PingContext),
		"redis":    handlers.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
	})

	// === Gin ===
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.MaxMultipartMemory = 8 << 20
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(httpLog))
	router.Use(middleware.NewMetrics(reg).Handler())
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	return routes.SetupRoutes(
		router,
		authService,
		middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		reg,
		authHandler,
		userHandler,
		trackHandler,
		processHandler,
		healthHandler,
	)
}
