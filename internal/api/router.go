package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"shoppingapp-backend/config"
	_ "shoppingapp-backend/docs"
	"shoppingapp-backend/internal/ai"
	"shoppingapp-backend/internal/api/v1/analysis"
	"shoppingapp-backend/internal/api/v1/auth"
	"shoppingapp-backend/internal/api/v1/billing"
	"shoppingapp-backend/internal/api/v1/export"
	"shoppingapp-backend/internal/api/v1/items"
	"shoppingapp-backend/internal/api/v1/settings"
	"shoppingapp-backend/internal/api/v1/templates"
	"shoppingapp-backend/internal/database"
	"shoppingapp-backend/internal/ledger"
	"shoppingapp-backend/internal/middleware"
	"shoppingapp-backend/internal/services"
	"shoppingapp-backend/internal/utils"
	"shoppingapp-backend/pkg/logger"
)

// NewRouter is the composition root: it connects storage, builds the engine
// components once, and hands them to the handlers. Nothing below this level
// reaches for globals to construct a dispatch.
func NewRouter(cfg *config.Config) (*gin.Engine, error) {
	db, err := database.Connect(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	if err := database.ConnectRedis(cfg); err != nil {
		logger.Log.Warn("redis unavailable, cache and token denylist disabled")
	}

	registry := ai.NewRegistry()
	templateStore := ai.NewTemplateStore(db)
	settingsService := services.NewSettingsService(db, cfg)
	builder := ai.NewRequestBuilder(registry, settingsService)
	usageLedger := ledger.New(db)
	dispatcher := ai.NewDispatcher(registry, templateStore, builder, usageLedger,
		utils.NewHTTPClient(cfg.AITimeout))
	cache := services.NewAnalysisCache(database.RedisClient)
	analysisService := services.NewAnalysisService(db, dispatcher, settingsService, cache)

	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		auth.RegisterRoutes(v1)

		authorized := v1.Group("/")
		authorized.Use(middleware.AuthMiddleware())
		{
			items.RegisterRoutes(authorized)
			export.RegisterRoutes(authorized)
			analysis.RegisterRoutes(authorized, &analysis.Handler{Service: analysisService})
			billing.RegisterRoutes(authorized, &billing.Handler{Ledger: usageLedger})
			templates.RegisterRoutes(authorized, &templates.Handler{Store: templateStore})
			settings.RegisterRoutes(authorized, &settings.Handler{
				Registry: registry,
				Settings: settingsService,
			})
		}
	}

	return router, nil
}
