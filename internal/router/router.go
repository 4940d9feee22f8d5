package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/peptitrace/backend/config"
	"github.com/peptitrace/backend/internal/api"
	"github.com/peptitrace/backend/internal/middleware"
	"github.com/peptitrace/backend/internal/service"
)

// Deps holds everything the route table needs.
type Deps struct {
	DB            *gorm.DB
	Cache         *redis.Client
	Storage       *config.S3Config
	AccessSecret  string
	RefreshSecret string
}

// Setup builds the gin engine with the full route table mounted under /api.
func Setup(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), middleware.ErrorHandler())

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:    []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
	}))

	authService := service.NewAuthService(deps.DB, deps.AccessSecret, deps.RefreshSecret)
	userService := service.NewUserService(deps.DB)
	peptideService := service.NewPeptideService(deps.DB)
	experienceService := service.NewExperienceService(deps.DB)
	voteService := service.NewVoteService(deps.DB)
	effectService := service.NewEffectService(deps.DB)
	analyticsService := service.NewAnalyticsService(deps.DB, deps.Cache)
	exportService := service.NewExportService(deps.DB, analyticsService, deps.Storage)
	seedService := service.NewSeedService(deps.DB)

	authenticate := middleware.Authenticate(deps.DB, deps.AccessSecret)

	root := router.Group("/api")

	api.NewAuthHandler(authService, authenticate).RegisterRoutes(root)
	api.NewUserHandler(deps.DB, userService, authenticate).RegisterRoutes(root)
	api.NewPeptideHandler(deps.DB, peptideService, analyticsService, authenticate).RegisterRoutes(root)
	api.NewExperienceHandler(deps.DB, experienceService, voteService, authenticate).RegisterRoutes(root)
	api.NewEffectHandler(effectService).RegisterRoutes(root)
	api.NewAnalyticsHandler(deps.DB, analyticsService, exportService, authenticate).RegisterRoutes(root)
	api.NewSeedHandler(seedService).RegisterRoutes(root)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
