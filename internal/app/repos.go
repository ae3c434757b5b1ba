package app

import (
	"gorm.io/gorm"

	"github.com/contractdesk/contractdesk-backend/internal/pkg/logger"
	"github.com/contractdesk/contractdesk-backend/internal/repos"
)

type Repos struct {
	Contract      repos.ContractRepo
	Category      repos.CategoryRepo
	ChangeHistory repos.ChangeHistoryRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Contract:      repos.NewContractRepo(db, log),
		Category:      repos.NewCategoryRepo(db, log),
		ChangeHistory: repos.NewChangeHistoryRepo(db, log),
	}
}
