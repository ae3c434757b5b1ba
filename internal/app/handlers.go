package app

import (
	"github.com/contractdesk/contractdesk-backend/internal/handlers"
	"github.com/contractdesk/contractdesk-backend/internal/pkg/logger"
)

type Handlers struct {
	Contract *handlers.ContractHandler
	Category *handlers.CategoryHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Contract: handlers.NewContractHandler(serviceset.Contract),
		Category: handlers.NewCategoryHandler(serviceset.Category),
	}
}
