package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/cache"
	"storefront-service/controllers"
	"storefront-service/database"
	"storefront-service/middleware"
	aws_pkg "storefront-service/pkg/aws"
	"storefront-service/pkg/auth"
	"storefront-service/pkg/logger"
	"storefront-service/repository"
	"storefront-service/routes"
	"storefront-service/sender"
	"storefront-service/services"
	"storefront-service/session"
	"storefront-service/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	serviceName     = "storefront-service"
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 5 * time.Second
	sweepInterval   = time.Minute
)

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zapLogger := newLogger(ctx, cfg)
	defer func() { _ = zapLogger.Sync() }()

	db, err := database.ConnectPostgres(cfg.Postgres, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()
	if err := database.Migrate(db); err != nil {
		zapLogger.Fatal("Migration failed", zap.Error(err))
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			zapLogger.Warn("Redis unavailable, using in-memory sessions and no catalog cache", zap.Error(err))
			redisClient = nil
		} else {
			defer func() { _ = redisClient.Close() }()
		}
	}

	rateLimiter := middleware.DefaultRateLimiter()
	var store session.Store
	if redisClient != nil {
		store = session.NewRedisStore(redisClient, cfg.SessionTTL)
		go sweepLoop(ctx, zapLogger, func() int { return rateLimiter.Sweep() })
	} else {
		memStore := session.NewMemoryStore(cfg.SessionTTL)
		store = memStore
		go sweepLoop(ctx, zapLogger, func() int { return memStore.Sweep() + rateLimiter.Sweep() })
	}

	catalogCache := cache.NewCatalogCache(redisClient, cfg.CatalogCacheTTL, zapLogger)

	// AWS clients are optional; without credentials the storefront still
	// serves, minus events, image uploads and metrics.
	var (
		snsClient aws_pkg.SNSPublisher
		uploader  storage.Uploader
		metrics   aws_pkg.MetricsRecorder
	)
	if awsCfg, err := aws_pkg.LoadAWSConfig(ctx); err != nil {
		zapLogger.Warn("AWS config unavailable", zap.Error(err))
	} else {
		if cfg.OrderTopicArn != "" {
			snsClient = aws_pkg.NewSNSClient(awsCfg)
		}
		uploader = storage.NewS3ImageStore(
			aws_pkg.NewS3Uploader(aws_pkg.NewS3Client(awsCfg)),
			cfg.ImageBucket,
			cfg.ImageBaseURL,
		)
	}
	if mc, err := aws_pkg.NewMetricsClient(ctx); err != nil {
		zapLogger.Warn("CloudWatch metrics unavailable", zap.Error(err))
	} else {
		metrics = mc
	}

	var mailer sender.EmailSender
	if smtpSender, err := sender.NewSMTPSender(cfg.SMTP); err != nil {
		zapLogger.Info("Order confirmation emails disabled", zap.String("reason", err.Error()))
	} else {
		mailer = smtpSender
	}

	productRepo := repository.NewGormProductRepository(db)
	collectionRepo := repository.NewGormCollectionRepository(db)
	brandRepo := repository.NewGormBrandRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)

	catalogService := services.NewCatalogService(productRepo, collectionRepo, brandRepo, catalogCache, metrics, zapLogger)
	sessionService := services.NewSessionService(store, catalogService, metrics, zapLogger)
	checkoutService := services.NewCheckoutService(orderRepo, store, mailer, snsClient, cfg.OrderTopicArn, metrics, zapLogger)
	adminService := services.NewAdminService(productRepo, collectionRepo, brandRepo, catalogCache, snsClient, cfg.OrderTopicArn, zapLogger)
	orderAdminService := services.NewOrderAdminService(orderRepo, productRepo, snsClient, cfg.OrderTopicArn, metrics, zapLogger)
	authService := services.NewAuthService(services.AdminCredentials{
		Email:        cfg.AdminEmail,
		PasswordHash: cfg.AdminPasswordHash,
	}, tokens, zapLogger)
	imageService := services.NewImageService(uploader, metrics, zapLogger)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(zapLogger),
		middleware.Metrics(metrics, serviceName),
		middleware.Timeout(requestTimeout),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.AllowedOrigins),
		rateLimiter.Middleware(),
	)

	routes.RegisterRoutes(r, routes.Controllers{
		Catalog: controllers.NewCatalogController(catalogService),
		Session: controllers.NewSessionController(sessionService, checkoutService),
		Admin:   controllers.NewAdminController(adminService, authService, imageService),
		Orders:  controllers.NewOrderController(orderAdminService),
	}, routes.Options{
		Tokens:       tokens,
		SessionTTL:   cfg.SessionTTL,
		SecureCookie: cfg.SecureCookie,
		Logger:       zapLogger,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zapLogger.Info("Storefront service is running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	zapLogger.Info("Server exited")
}

// newLogger tees into CloudWatch Logs when it is enabled.
func newLogger(ctx context.Context, cfg *Config) *zap.Logger {
	if cfg.CloudWatchEnabled {
		if cw, err := aws_pkg.NewCloudWatchLogsClient(ctx, serviceName); err == nil && cw.IsEnabled() {
			if l, err := logger.NewWithWriter(cfg.Env, cw); err == nil {
				return l
			}
		} else if err != nil {
			log.Printf("CloudWatch Logs unavailable: %v", err)
		}
	}
	l, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return l
}

// sweepLoop periodically drops expired in-memory state until ctx ends.
func sweepLoop(ctx context.Context, log *zap.Logger, sweep func() int) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sweep(); n > 0 {
				log.Debug("Swept expired entries", zap.Int("count", n))
			}
		}
	}
}
