package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"storefront/internal/adapter/api"
	"storefront/internal/adapter/api/handler"
	apimiddleware "storefront/internal/adapter/api/middleware"
	"storefront/internal/adapter/api/router"
	"storefront/internal/adapter/repository"
	domainrepo "storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/infrastructure/firebase"
	"storefront/internal/infrastructure/ratelimit"
	"storefront/internal/infrastructure/storage"
	"storefront/internal/usecase"
	"storefront/pkg/config"
	"storefront/pkg/logger"
	"storefront/pkg/telemetry"
)

type stores struct {
	carts     domainrepo.CartRepository
	wishlists domainrepo.WishlistRepository
	products  domainrepo.ProductRepository
	health    domainrepo.HealthChecker
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OTLPEndpoint != "" {
		tp, err := telemetry.InitTracerProvider(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracing: %v", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				logger.Error("Error shutting down tracer provider: %v", err)
			}
		}()
		logger.Info("Exporting traces to %s", cfg.OTLPEndpoint)
	}

	opts, err := firebase.ClientOptions(cfg.FirebaseServiceAccountJSON, cfg.FirebaseServiceAccountPath)
	if err != nil {
		logger.Fatal("Failed to load credentials: %v", err)
	}

	st, err := openStores(ctx, cfg, opts)
	if err != nil {
		logger.Fatal("Failed to open %s store: %v", cfg.StoreBackend, err)
	}
	defer st.close()
	logger.Info("Using %s store", cfg.StoreBackend)

	var authMiddleware *apimiddleware.AuthMiddleware
	if cfg.FirebaseProject != "" {
		authClient, err := firebase.NewFirebaseAuthClient(ctx, cfg.FirebaseProject, opts...)
		if err != nil {
			logger.Fatal("Failed to initialize Firebase Auth: %v", err)
		}
		authMiddleware = apimiddleware.NewAuthMiddleware(authClient)
	}

	var files service.FileUploadService
	if cfg.StorageBucket != "" {
		storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, opts...)
		if err != nil {
			logger.Fatal("Failed to initialize Cloud Storage: %v", err)
		}
		defer storageClient.Close()
		files = storageClient
	}

	handler.Setup(
		usecase.NewCartUseCase(st.carts, st.products, cfg.CartMaxRetries),
		usecase.NewWishlistUseCase(st.wishlists, st.products, cfg.CartMaxRetries),
		usecase.NewProductUseCase(st.products, files),
		st.health,
	)

	limiter := ratelimit.NewRateLimiter(ratelimit.PerMinute(cfg.RateLimitPerMinute), map[string]ratelimit.Policy{
		apimiddleware.ActionCartWrite: ratelimit.PerMinute(cfg.RateLimitPerMinute / 2),
	})
	limiter.StartCleanupRoutine(ctx.Done())

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(apimiddleware.Tracing(cfg.ServiceName))

	e.Validator = api.NewValidator()

	router.Setup(e, authMiddleware, limiter)

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down server: %v", err)
	}
}

func openStores(ctx context.Context, cfg *config.Config, opts []option.ClientOption) (*stores, error) {
	switch cfg.StoreBackend {
	case config.BackendFirestore:
		client, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
		if err != nil {
			return nil, err
		}
		carts := repository.NewFirestoreCartRepository(client)
		return &stores{
			carts:     carts,
			wishlists: repository.NewFirestoreWishlistRepository(client),
			products:  repository.NewFirestoreProductRepository(client),
			health:    carts.(domainrepo.HealthChecker),
			close:     func() { client.Close() },
		}, nil

	case config.BackendRedis:
		client := repository.NewRedisClient(cfg.RedisAddr)
		carts := repository.NewRedisCartRepository(client)
		if err := carts.(domainrepo.HealthChecker).Ping(ctx); err != nil {
			client.Close()
			return nil, err
		}
		return &stores{
			carts:     carts,
			wishlists: repository.NewRedisWishlistRepository(client),
			products:  repository.NewRedisProductRepository(client),
			health:    carts.(domainrepo.HealthChecker),
			close:     func() { client.Close() },
		}, nil

	default:
		carts := repository.NewMemoryCartRepository()
		return &stores{
			carts:     carts,
			wishlists: repository.NewMemoryWishlistRepository(),
			products:  repository.NewMemoryProductRepository(),
			health:    carts.(domainrepo.HealthChecker),
			close:     func() {},
		}, nil
	}
}
