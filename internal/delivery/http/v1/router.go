package v1

import (
	"net/http"
	"time"

	"placewell-backend/config"
	"placewell-backend/internal/delivery/http/middleware"
	"placewell-backend/internal/delivery/http/response"
	"placewell-backend/internal/domain"
	"placewell-backend/internal/usecase"
	"placewell-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthGateway      domain.AuthGateway
	Identity         domain.IdentityProvider
	ProfileUC        domain.ProfileUsecase
	StudentProfileUC domain.StudentProfileUsecase
	CompanyProfileUC domain.CompanyProfileUsecase
	JobUC            domain.JobUsecase
	ApplicationUC    domain.ApplicationUsecase
	WellnessUC       domain.WellnessUsecase
	MatchAdvisor     usecase.MatchAdvisor
	JWKSProvider     *auth.Provider
	Config           *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Auth endpoints carry a stricter per-IP limit
	public := v1.Group("")
	public.Use(middleware.RateLimitMiddleware(middleware.AuthRateLimitConfig(deps.Config.RateLimitLoginThreshold, window)))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config, deps.AuthGateway, deps.Identity))
	{
		NewAuthHandler(public, protected, deps.AuthGateway)
		NewProfileHandler(protected, deps.ProfileUC)
		NewStudentProfileHandler(protected, deps.StudentProfileUC)
		NewCompanyProfileHandler(protected, deps.CompanyProfileUC)
		NewJobHandler(v1, protected, deps.JobUC)
		NewApplicationHandler(protected, deps.ApplicationUC)
		NewWellnessHandler(protected, deps.WellnessUC)
		NewMatchHandler(protected, deps.MatchAdvisor, deps.StudentProfileUC, deps.JobUC)
	}

	return r
}
