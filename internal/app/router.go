package app

import (
	"github.com/gin-gonic/gin"

	"github.com/contractdesk/contractdesk-backend/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		RequestLogMiddleware: middlewareset.RequestLog,
		ContractHandler:      handlerset.Contract,
		CategoryHandler:      handlerset.Category,
		AllowedOrigins:       cfg.AllowedOrigins,
	})
}
