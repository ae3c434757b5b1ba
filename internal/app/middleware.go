package app

import (
	"github.com/contractdesk/contractdesk-backend/internal/middleware"
	"github.com/contractdesk/contractdesk-backend/internal/pkg/logger"
)

type Middleware struct {
	RequestLog *middleware.RequestLogMiddleware
}

func wireMiddleware(log *logger.Logger) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		RequestLog: middleware.NewRequestLogMiddleware(log),
	}
}
