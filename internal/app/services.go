package app

import (
	"gorm.io/gorm"

	"github.com/contractdesk/contractdesk-backend/internal/pkg/logger"
	"github.com/contractdesk/contractdesk-backend/internal/services"
)

type Services struct {
	Contract services.ContractService
	Category services.CategoryService
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Contract: services.NewContractService(db, log, reposet.Contract, reposet.Category, reposet.ChangeHistory),
		Category: services.NewCategoryService(db, log, reposet.Category, reposet.Contract),
	}
}
