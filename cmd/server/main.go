package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	identityapp "github.com/homefinder/backend/internal/application/identity"
	listingapp "github.com/homefinder/backend/internal/application/listing"
	locationapp "github.com/homefinder/backend/internal/application/location"
	"github.com/homefinder/backend/internal/domain/listing"
	"github.com/homefinder/backend/internal/infrastructure/auth"
	"github.com/homefinder/backend/internal/infrastructure/cache"
	"github.com/homefinder/backend/internal/infrastructure/config"
	"github.com/homefinder/backend/internal/infrastructure/logger"
	"github.com/homefinder/backend/internal/infrastructure/persistence"
	"github.com/homefinder/backend/internal/infrastructure/storage"
	"github.com/homefinder/backend/internal/infrastructure/telemetry"
	"github.com/homefinder/backend/internal/interfaces/http/handler"
	"github.com/homefinder/backend/internal/interfaces/http/middleware"
	"github.com/homefinder/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/homefinder/backend/docs"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			HomeFinder API
//	@version		1.0
//	@description	Real-estate listing backend: accounts, agent invitations, listings with images and location search.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting HomeFinder",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx := context.Background()

	// OpenTelemetry providers are registered globally; no-ops when disabled
	otelProviders, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		Insecure:          cfg.Telemetry.Insecure,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		MetricsInterval:   cfg.Telemetry.MetricsInterval,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		_ = otelProviders.Shutdown(context.Background())
	}()

	meter := otelProviders.Meter(cfg.Telemetry.ServiceName)
	businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:  meter,
		Logger: log,
	})
	if err != nil {
		log.Fatal("Failed to create business metrics", zap.Error(err))
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.DefaultDBTracingConfig()
		dbTracing.Enabled = true
		if cfg.Telemetry.DBSlowQueryThresh > 0 {
			dbTracing.SlowQueryThresh = cfg.Telemetry.DBSlowQueryThresh
		}
		if err := telemetry.NewDBTracingPlugin(dbTracing, log).Register(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Cache and token revocation share the Redis connection when there is one
	store, redisClient, err := cache.NewStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore(ctx)
	if err != nil {
		log.Fatal("Failed to initialize cache", zap.Error(err))
	}
	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if redisClient != nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		defer func() {
			_ = redisClient.Close()
		}()
	}

	imageHost, err := storage.NewImageHost(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize image host", zap.Error(err))
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	profileRepo := persistence.NewGormProfileRepository(db.DB)
	inviteRepo := persistence.NewGormInviteTokenRepository(db.DB)
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	houseRepo := persistence.NewGormHouseRepository(db.DB)
	houseTypeRepo := persistence.NewGormHouseTypeRepository(db.DB)
	imageRepo := persistence.NewGormImageRepository(db.DB)

	// Reference data is read through the cache
	locationReader := cache.NewLocationCache(locationRepo, store, cache.DefaultReferenceTTL, log)
	houseTypeLister := cache.NewHouseTypeCache(houseTypeRepo, store, cache.DefaultReferenceTTL, log)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, roleRepo, profileRepo, db, jwtService, blacklist, log)
	inviteService := identityapp.NewInviteService(inviteRepo, userRepo, roleRepo, profileRepo, db,
		identityapp.InviteServiceConfig{
			Expiry:      cfg.Invite.Expiry,
			TokenBytes:  cfg.Invite.TokenBytes,
			MaxAttempts: cfg.Invite.MaxAttempts,
		},
		businessMetrics, log,
	)
	locationService := locationapp.NewService(locationReader, locationRepo, houseTypeLister, log)
	imageManager := listingapp.NewImageManager(imageHost, imageRepo,
		listing.ImagePolicy{Min: cfg.Listing.MinImages, Max: cfg.Listing.MaxImages},
		cfg.Storage.MaxFileSize, businessMetrics, log,
	)
	listingService := listingapp.NewListingService(houseRepo, houseTypeRepo, imageManager, locationService, db, businessMetrics, log)
	queryService := listingapp.NewQueryService(houseRepo, houseTypeRepo, locationService, userRepo, profileRepo, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.MaxMultipartMemory = handler.MaxMultipartMemory
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order:
	// 1. RequestID - so every later log line and span carries it
	// 2. Recovery - catch panics
	// 3. Logger - access log
	// 4. Tracing + SpanEnricher - request span
	// 5. HTTPMetrics - request counter and latency
	// 6. Security headers, CORS
	// 7. BodyLimit
	// 8. RateLimit (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	tracingConfig := middleware.DefaultTracingConfig()
	tracingConfig.ServiceName = cfg.Telemetry.ServiceName
	tracingConfig.Enabled = cfg.Telemetry.Enabled
	tracingConfig.TracerProvider = otelProviders.TracerProvider()
	engine.Use(middleware.TracingWithConfig(tracingConfig), middleware.SpanEnricher())

	httpMetrics, err := middleware.HTTPMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create HTTP metrics", zap.Error(err))
	}
	engine.Use(httpMetrics)

	securityConfig := middleware.DefaultSecurityConfig()
	securityConfig.HSTSEnabled = cfg.IsProduction()
	engine.Use(middleware.SecureWithConfig(securityConfig))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfigFromHTTP(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer rateLimiter.Stop()
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	authenticate := middleware.JWTAuthMiddlewareWithConfig(jwtConfig)

	guards := router.Guards{
		Authenticate: authenticate,
		DocsAccess:   middleware.SwaggerProtection(cfg.Swagger, authenticate),
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		defer authLimiter.Stop()
		guards.AuthRateLimit = middleware.RateLimit(authLimiter)
	}

	router.Mount(engine, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Location: handler.NewLocationHandler(locationService),
		Listing:  handler.NewListingHandler(queryService, listingService),
		Invite:   handler.NewInviteHandler(inviteService),
		System:   handler.NewSystemHandler(db, version),
	}, guards)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}
