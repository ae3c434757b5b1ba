package repos

import (
	"errors"

	"gorm.io/gorm"

	"github.com/contractdesk/contractdesk-backend/internal/domain"
	"github.com/contractdesk/contractdesk-backend/internal/pkg/dbctx"
	"github.com/contractdesk/contractdesk-backend/internal/pkg/logger"
)

type CategoryRepo interface {
	Create(dbc dbctx.Context, category *domain.Category) error
	GetByID(dbc dbctx.Context, id uint) (*domain.Category, error)
	GetByName(dbc dbctx.Context, name string) (*domain.Category, error)
	List(dbc dbctx.Context) ([]*domain.Category, error)
	UpdateColumns(dbc dbctx.Context, id uint, columns map[string]any) error
	Delete(dbc dbctx.Context, id uint) (int64, error)
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	repoLog := baseLog.With("repo", "CategoryRepo")
	return &categoryRepo{db: db, log: repoLog}
}

func (cr *categoryRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (cr *categoryRepo) Create(dbc dbctx.Context, category *domain.Category) error {
	return cr.handle(dbc).Create(category).Error
}

func (cr *categoryRepo) GetByID(dbc dbctx.Context, id uint) (*domain.Category, error) {
	var result domain.Category
	err := cr.handle(dbc).Where("id = ?", id).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *categoryRepo) GetByName(dbc dbctx.Context, name string) (*domain.Category, error) {
	var result domain.Category
	err := cr.handle(dbc).Where("name = ?", name).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *categoryRepo) List(dbc dbctx.Context) ([]*domain.Category, error) {
	var results []*domain.Category
	if err := cr.handle(dbc).Order("name asc").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *categoryRepo) UpdateColumns(dbc dbctx.Context, id uint, columns map[string]any) error {
	return cr.handle(dbc).
		Model(&domain.Category{}).
		Where("id = ?", id).
		Updates(columns).Error
}

func (cr *categoryRepo) Delete(dbc dbctx.Context, id uint) (int64, error) {
	result := cr.handle(dbc).Where("id = ?", id).Delete(&domain.Category{})
	return result.RowsAffected, result.Error
}
