package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/contractdesk/contractdesk-backend/internal/handlers"
	"github.com/contractdesk/contractdesk-backend/internal/middleware"
)

type RouterConfig struct {
	RequestLogMiddleware *middleware.RequestLogMiddleware
	ContractHandler      *handlers.ContractHandler
	CategoryHandler      *handlers.CategoryHandler
	AllowedOrigins       []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.RequestLogMiddleware != nil {
		router.Use(cfg.RequestLogMiddleware.Log())
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Changed-By"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api/v1")
	{
		// Categories
		api.GET("/categories", cfg.CategoryHandler.List)
		api.POST("/categories", cfg.CategoryHandler.Create)
		api.GET("/categories/:id", cfg.CategoryHandler.Get)
		api.PUT("/categories/:id", cfg.CategoryHandler.Update)
		api.DELETE("/categories/:id", cfg.CategoryHandler.Delete)

		// Contracts
		api.GET("/contracts", cfg.ContractHandler.List)
		api.POST("/contracts", cfg.ContractHandler.Create)
		api.GET("/contracts/:id", cfg.ContractHandler.Get)
		api.PUT("/contracts/:id", cfg.ContractHandler.Update)
		api.DELETE("/contracts/:id", cfg.ContractHandler.Delete)
		api.GET("/contracts/:id/history", cfg.ContractHandler.History)
	}

	return router
}
