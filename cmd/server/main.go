package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/mrtoldo/backend/internal/application/catalog"
	"github.com/mrtoldo/backend/internal/application/dashboard"
	identityapp "github.com/mrtoldo/backend/internal/application/identity"
	partnerapp "github.com/mrtoldo/backend/internal/application/partner"
	printingapp "github.com/mrtoldo/backend/internal/application/printing"
	tradeapp "github.com/mrtoldo/backend/internal/application/trade"
	"github.com/mrtoldo/backend/internal/infrastructure/auth"
	"github.com/mrtoldo/backend/internal/infrastructure/cache"
	"github.com/mrtoldo/backend/internal/infrastructure/config"
	"github.com/mrtoldo/backend/internal/infrastructure/logger"
	"github.com/mrtoldo/backend/internal/infrastructure/migration"
	"github.com/mrtoldo/backend/internal/infrastructure/persistence"
	"github.com/mrtoldo/backend/internal/infrastructure/printing"
	"github.com/mrtoldo/backend/internal/infrastructure/storage"
	"github.com/mrtoldo/backend/internal/infrastructure/telemetry"
	"github.com/mrtoldo/backend/internal/interfaces/http/handler"
	"github.com/mrtoldo/backend/internal/interfaces/http/middleware"
	"github.com/mrtoldo/backend/internal/interfaces/http/router"
	"github.com/mrtoldo/backend/migrations"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/mrtoldo/backend/docs"
)

//	@title			MrToldo Quotations API
//	@version		1.0
//	@description	Quotation dashboard backend: customers, billing details, catalog, quotations and PDF export.

//	@contact.name	MRTOLDO
//	@contact.url	https://mrtoldo.com
//	@contact.email	carlos@mrtoldo.com

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}". The session cookie is accepted as well.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx := context.Background()

	// The OTLP log core joins the zap tee once the provider is up
	bootLog, err := logger.NewForEnvironment(cfg.App.Env)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	logProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfigFrom(cfg.Telemetry), bootLog)
	if err != nil {
		panic("Failed to initialize log exporter: " + err.Error())
	}

	var extraCores []zapcore.Core
	if logProvider.IsEnabled() {
		extraCores = append(extraCores, logProvider.Core(logger.ParseLevel(cfg.Log.Level)))
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.TimeFormat,
	}, extraCores...)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting quotations backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.TracerConfigFrom(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfigFrom(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	meter := meterProvider.Meter(cfg.Telemetry.ServiceName)

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfigFrom(cfg.Telemetry), log)
	if err != nil {
		log.Warn("Continuous profiling unavailable", zap.Error(err))
	} else {
		defer func() {
			if err := profiler.Stop(); err != nil {
				log.Warn("Failed to stop profiler", zap.Error(err))
			}
		}()
		if tracerProvider.EnableSpanProfiles(profiler) {
			log.Info("Span profiles enabled")
		}
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithFullSQL(cfg.Telemetry.DBLogFullSQL))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database connection", zap.Error(err))
		}
	}()
	log.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
	)

	if err := telemetry.NewDBTracingPlugin(
		telemetry.DBTracingConfigFrom(cfg.Telemetry, cfg.Database.DBName), log,
	).Register(db.DB); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}

	if _, err := telemetry.RegisterPoolMetrics(meter, db.Stats); err != nil {
		log.Warn("Failed to register database pool metrics", zap.Error(err))
	}

	if err := migrate(db, log); err != nil {
		log.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// Redis backs the dashboard cache, revoked sessions and rate limit counters
	redisClient, err := cache.NewFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	).Client(ctx)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	opts := router.Options{
		Config: cfg,
		Logger: log,
	}
	if redisClient != nil {
		defer redisClient.Close()
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		opts.Redis = redisClient
	}
	dashboardCache := cache.CreateCache(redisClient)

	// Product image uploads
	var imageStorage catalogapp.ImageStorage
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to prepare storage bucket", zap.Error(err), zap.String("bucket", s3Storage.Bucket()))
		}
		imageStorage = s3Storage
		log.Info("Object storage ready", zap.String("bucket", s3Storage.Bucket()))
	} else {
		log.Info("Object storage disabled, product image uploads are unavailable")
	}

	// PDF export
	renderer := printing.NewChromedpRenderer(printing.ChromedpConfigFrom(cfg.PDF, log))
	defer func() {
		if err := renderer.Close(); err != nil {
			log.Warn("Failed to close PDF renderer", zap.Error(err))
		}
	}()
	company := printing.DefaultCompany()
	if cfg.PDF.LogoPath != "" {
		logo, err := printing.LoadLogo(cfg.PDF.LogoPath)
		if err != nil {
			log.Warn("Quotation logo unavailable, printing without it", zap.Error(err))
		} else {
			company.Logo = logo
		}
	}
	quotationTemplate, err := printing.NewQuotationTemplate(printing.WithCompany(company))
	if err != nil {
		log.Fatal("Failed to parse quotation template", zap.Error(err))
	}

	// Repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	billingRepo := persistence.NewGormBillingDetailsRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	quotationRepo := persistence.NewGormQuotationRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Auth
	jwtService := auth.NewJWTService(cfg.JWT)
	opts.JWTService = jwtService
	opts.Blacklist = blacklist

	// Services
	dashboardService := dashboard.NewService(quotationRepo, customerRepo, dashboardCache, dashboard.Config{
		CacheTTL:      cfg.Dashboard.CacheTTL,
		LatestLimit:   cfg.Dashboard.LatestLimit,
		RevenueMonths: cfg.Dashboard.RevenueMonths,
	}, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	customerService := partnerapp.NewCustomerService(customerRepo, dashboardService, log)
	billingService := partnerapp.NewBillingDetailsService(billingRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, imageStorage, log)
	quotationService := tradeapp.NewQuotationService(
		quotationRepo, customerRepo, billingRepo, productRepo, dashboardService, log)
	pdfService := printingapp.NewQuotationPDFService(
		quotationRepo, quotationTemplate, renderer, cfg.PDF.RenderTimeout, log)

	quotationMetrics, err := telemetry.NewQuotationMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create quotation metrics", zap.Error(err))
	}
	quotationService.SetMetrics(quotationMetrics)
	pdfService.SetMetrics(quotationMetrics)

	engine := router.NewEngine(opts, router.Handlers{
		Health:         handler.NewHealthHandler(db),
		Auth:           handler.NewAuthHandler(authService, cfg.Cookie),
		Dashboard:      handler.NewDashboardHandler(dashboardService),
		Customer:       handler.NewCustomerHandler(customerService),
		BillingDetails: handler.NewBillingDetailsHandler(billingService),
		Category:       handler.NewCategoryHandler(categoryService),
		Product:        handler.NewProductHandler(productService),
		Quotation:      handler.NewQuotationHandler(quotationService),
		PDF:            handler.NewPDFHandler(pdfService),
	})

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to flush traces", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to flush metrics", zap.Error(err))
	}
	if err := logProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to flush logs", zap.Error(err))
	}

	if stats, err := db.Stats(); err == nil {
		log.Info("Database pool at shutdown",
			zap.Int("open", stats.OpenConnections),
			zap.Int("in_use", stats.InUse),
			zap.Int64("wait_count", stats.WaitCount),
			zap.Duration("wait_duration", stats.WaitDuration),
		)
	}
	log.Info("Server exited gracefully")
}

// migrate applies the embedded schema migrations before serving
func migrate(db *persistence.Database, log *zap.Logger) error {
	sqlDB, err := db.SQL()
	if err != nil {
		return err
	}
	m, err := migration.NewFromFS(sqlDB, migrations.FS, log)
	if err != nil {
		return err
	}
	return m.Up()
}
