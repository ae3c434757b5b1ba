package repos

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/contractdesk/contractdesk-backend/internal/domain"
	"github.com/contractdesk/contractdesk-backend/internal/pkg/dbctx"
	"github.com/contractdesk/contractdesk-backend/internal/pkg/logger"
)

// ChangeHistoryRepo is append-only from the caller's perspective; rows are
// removed only by cascading contract deletion.
type ChangeHistoryRepo interface {
	Append(dbc dbctx.Context, record *domain.ChangeHistory) error
	ListByContract(dbc dbctx.Context, contractID uuid.UUID) ([]*domain.ChangeHistory, error)
	DeleteByContract(dbc dbctx.Context, contractID uuid.UUID) error
}

type changeHistoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChangeHistoryRepo(db *gorm.DB, baseLog *logger.Logger) ChangeHistoryRepo {
	repoLog := baseLog.With("repo", "ChangeHistoryRepo")
	return &changeHistoryRepo{db: db, log: repoLog}
}

func (hr *changeHistoryRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = hr.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (hr *changeHistoryRepo) Append(dbc dbctx.Context, record *domain.ChangeHistory) error {
	return hr.handle(dbc).Create(record).Error
}

func (hr *changeHistoryRepo) ListByContract(dbc dbctx.Context, contractID uuid.UUID) ([]*domain.ChangeHistory, error) {
	var results []*domain.ChangeHistory
	if err := hr.handle(dbc).
		Where("contract_id = ?", contractID).
		Order("changed_at desc, id desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (hr *changeHistoryRepo) DeleteByContract(dbc dbctx.Context, contractID uuid.UUID) error {
	return hr.handle(dbc).
		Where("contract_id = ?", contractID).
		Delete(&domain.ChangeHistory{}).Error
}
