package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/veewoo/veewoo-prompt/config"
	_ "github.com/veewoo/veewoo-prompt/docs"
	"github.com/veewoo/veewoo-prompt/internal/api/v1/auth"
	"github.com/veewoo/veewoo-prompt/internal/api/v1/prompts"
	"github.com/veewoo/veewoo-prompt/internal/api/v1/tags"
	"github.com/veewoo/veewoo-prompt/internal/api/v1/user"
	"github.com/veewoo/veewoo-prompt/internal/middleware"
	"github.com/veewoo/veewoo-prompt/internal/services"
)

// Deps carries everything the router wires into handlers. Connections are
// opened by the caller and passed in; nothing here reaches for globals.
type Deps struct {
	Config *config.Config
	Log    *zap.Logger
	DB     *gorm.DB
	Redis  *redis.Client
}

func NewRouter(d Deps) *gin.Engine {
	users := services.NewUserService(d.DB, d.Redis)
	authSvc := services.NewAuthService(d.DB)
	denylist := services.NewDenylistService(d.Redis)
	promptSvc := services.NewPromptService(d.DB, d.Redis, d.Log)
	tagSvc := services.NewTagService(d.DB, d.Redis)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(d.Log))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	requireAuth := middleware.Auth(users, denylist, d.Config.JWTSecret)

	v1 := router.Group("/api/v1")
	{
		auth.RegisterRoutes(v1, auth.NewHandler(authSvc, denylist, d.Config.JWTSecret), requireAuth)

		authorized := v1.Group("/")
		authorized.Use(requireAuth)
		{
			user.RegisterRoutes(authorized)
			prompts.RegisterRoutes(authorized, prompts.NewHandler(promptSvc))
			tags.RegisterRoutes(authorized, tags.NewHandler(tagSvc))
		}
	}

	return router
}
