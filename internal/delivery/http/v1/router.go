package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"recruit-portal-api/config"
	"recruit-portal-api/internal/delivery/http/middleware"
	"recruit-portal-api/internal/delivery/http/response"
	"recruit-portal-api/internal/domain"
	"recruit-portal-api/pkg/auth"
	"recruit-portal-api/pkg/redis"
	"recruit-portal-api/pkg/validation"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	ApplicationUC domain.ApplicationUsecase
	Tokens        *auth.TokenService
	DB            *pgxpool.Pool
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	// Custom payload rules must be on the binding engine before any handler runs
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	r := gin.New()

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL, deps.Config.Environment == "production"))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		if err := deps.DB.Ping(c.Request.Context()); err != nil {
			response.Error(c, http.StatusServiceUnavailable, "Database unavailable", nil)
			return
		}
		status := gin.H{"database": "up", "redis": "up"}
		if err := redis.HealthCheck(c.Request.Context()); err != nil {
			// rate limiting degrades to its in-memory fallback, so a
			// missing Redis is reported but not a 503
			status["redis"] = "down"
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.Authenticate(deps.Tokens, deps.AuthUC))
	{
		loginLimiter := middleware.RateLimitMiddleware(middleware.LoginRateLimitConfig(deps.Config.RateLimitLoginThreshold, window))
		NewPersonHandler(v1, protected, deps.AuthUC, loginLimiter)
		NewApplicationHandler(protected, deps.ApplicationUC)
	}

	return r
}
