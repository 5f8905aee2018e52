package router

import (
	"github.com/gin-gonic/gin"
	"github.com/mrtoldo/backend/internal/infrastructure/auth"
	"github.com/mrtoldo/backend/internal/infrastructure/config"
	"github.com/mrtoldo/backend/internal/infrastructure/logger"
	"github.com/mrtoldo/backend/internal/interfaces/http/handler"
	"github.com/mrtoldo/backend/internal/interfaces/http/middleware"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handlers are the HTTP handlers served by the API
type Handlers struct {
	Health         *handler.HealthHandler
	Auth           *handler.AuthHandler
	Dashboard      *handler.DashboardHandler
	Customer       *handler.CustomerHandler
	BillingDetails *handler.BillingDetailsHandler
	Category       *handler.CategoryHandler
	Product        *handler.ProductHandler
	Quotation      *handler.QuotationHandler
	PDF            *handler.PDFHandler
}

// Options carries what the middleware stack needs
type Options struct {
	Config     *config.Config
	Logger     *zap.Logger
	JWTService *auth.JWTService
	Blacklist  auth.TokenBlacklist
	// Redis backs the rate limiters; nil keeps the counters in memory
	Redis redis.UniversalClient
}

// NewEngine builds the gin engine with the middleware stack and every route
func NewEngine(opts Options, h Handlers) *gin.Engine {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order: request id, tracing, recovery, logging, security headers, CORS, body limit, rate limit
	engine.Use(middleware.RequestID())
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName), middleware.SpanEnricher())
	}
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log, "/health"))
	engine.Use(middleware.SecureWithConfig(middleware.SecurityConfigFor(cfg.App.Env)))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfigFrom(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewLimiter(opts.Redis, cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter, log))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
			zap.Bool("redis", opts.Redis != nil))
	}

	engine.GET("/health", h.Health.Health)

	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any", middleware.SwaggerProtection(cfg.Swagger),
			ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	jwtConfig := middleware.DefaultJWTConfig(opts.JWTService)
	jwtConfig.TokenBlacklist = opts.Blacklist
	jwtConfig.Logger = log
	if cfg.Cookie.Name != "" {
		jwtConfig.CookieName = cfg.Cookie.Name
	}

	var loginLimit []gin.HandlerFunc
	if cfg.HTTP.AuthRateLimitEnabled {
		limiter := middleware.NewLimiter(opts.Redis, cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		loginLimit = append(loginLimit, middleware.AuthRateLimit(limiter, log))
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))
	for _, registrar := range Routes(h, loginLimit...) {
		r.Register(registrar)
	}
	r.Setup()

	return engine
}

// Routes returns the versioned API route groups. loginMiddleware runs before the login handler.
func Routes(h Handlers, loginMiddleware ...gin.HandlerFunc) []RouteRegistrar {
	authRoutes := NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", append(loginMiddleware, h.Auth.Login)...)
	authRoutes.POST("/logout", h.Auth.Logout)
	authRoutes.GET("/me", h.Auth.Me)

	dashboard := NewDomainGroup("dashboard", "/dashboard")
	dashboard.GET("/cards", h.Dashboard.Cards)
	dashboard.GET("/latest-quotations", h.Dashboard.LatestQuotations)
	dashboard.GET("/revenue", h.Dashboard.Revenue)

	dashboard.Resource("customers", "/customers", h.Customer)
	dashboard.Resource("billing-details", "/billing-details", h.BillingDetails)
	dashboard.Resource("categories", "/categories", h.Category)
	dashboard.Resource("products", "/products", h.Product).
		POST("/image-upload-url", h.Product.ImageUploadURL)

	quotations := dashboard.Group("quotations", "/quotations")
	quotations.GET("", h.Quotation.List)
	quotations.POST("", h.Quotation.Create)
	quotations.GET("/:id", h.Quotation.GetByID)
	quotations.PUT("/:id", h.Quotation.Update)
	quotations.PATCH("/:id/status", h.Quotation.UpdateStatus)
	quotations.POST("/:id/duplicate", h.Quotation.Duplicate)
	quotations.DELETE("/:id", h.Quotation.Delete)

	printing := NewDomainGroup("printing", "/quotations")
	printing.GET("/:id/pdf", h.PDF.QuotationPDF)

	return []RouteRegistrar{authRoutes, dashboard, printing}
}
