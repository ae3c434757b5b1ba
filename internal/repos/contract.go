package repos

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/contractdesk/contractdesk-backend/internal/domain"
	"github.com/contractdesk/contractdesk-backend/internal/pkg/dbctx"
	"github.com/contractdesk/contractdesk-backend/internal/pkg/logger"
)

type ContractRepo interface {
	Create(dbc dbctx.Context, contract *domain.Contract) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Contract, error)
	GetByNumber(dbc dbctx.Context, number string) (*domain.Contract, error)
	UpdateColumns(dbc dbctx.Context, id uuid.UUID, columns map[string]any) error
	Delete(dbc dbctx.Context, id uuid.UUID) (int64, error)
	List(dbc dbctx.Context, filters domain.ContractFilters, page domain.Pagination) ([]*domain.Contract, int64, error)
	CountByCategory(dbc dbctx.Context, categoryID uint) (int64, error)
}

type contractRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContractRepo(db *gorm.DB, baseLog *logger.Logger) ContractRepo {
	repoLog := baseLog.With("repo", "ContractRepo")
	return &contractRepo{db: db, log: repoLog}
}

func (cr *contractRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (cr *contractRepo) Create(dbc dbctx.Context, contract *domain.Contract) error {
	return cr.handle(dbc).Create(contract).Error
}

func (cr *contractRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Contract, error) {
	var result domain.Contract
	err := cr.handle(dbc).
		Preload("Category").
		Where("id = ?", id).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *contractRepo) GetByNumber(dbc dbctx.Context, number string) (*domain.Contract, error) {
	var result domain.Contract
	err := cr.handle(dbc).
		Where("contract_number = ?", number).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *contractRepo) UpdateColumns(dbc dbctx.Context, id uuid.UUID, columns map[string]any) error {
	return cr.handle(dbc).
		Model(&domain.Contract{}).
		Where("id = ?", id).
		Updates(columns).Error
}

func (cr *contractRepo) Delete(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	result := cr.handle(dbc).Where("id = ?", id).Delete(&domain.Contract{})
	return result.RowsAffected, result.Error
}

// List applies the conjunction of active filter predicates, counts the full
// match set before pagination, then returns one sorted page with categories
// joined.
func (cr *contractRepo) List(dbc dbctx.Context, filters domain.ContractFilters, page domain.Pagination) ([]*domain.Contract, int64, error) {
	var total int64
	if err := applyContractFilters(cr.handle(dbc).Model(&domain.Contract{}), filters).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*domain.Contract
	if err := applyContractFilters(cr.handle(dbc).Model(&domain.Contract{}), filters).
		Order(page.OrderClause()).
		Offset(page.Offset()).
		Limit(page.PageSize).
		Preload("Category").
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (cr *contractRepo) CountByCategory(dbc dbctx.Context, categoryID uint) (int64, error) {
	var count int64
	err := cr.handle(dbc).
		Model(&domain.Contract{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

// applyContractFilters composes the optional predicates onto a query. The
// LOWER(...) LIKE form keeps substring matches case-insensitive on both
// Postgres and SQLite.
func applyContractFilters(query *gorm.DB, filters domain.ContractFilters) *gorm.DB {
	if filters.Supplier != nil {
		query = query.Where("LOWER(supplier) LIKE LOWER(?)", "%"+*filters.Supplier+"%")
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.MinValue != nil {
		query = query.Where("value >= ?", *filters.MinValue)
	}
	if filters.MaxValue != nil {
		query = query.Where("value <= ?", *filters.MaxValue)
	}
	if filters.StartDateFrom != nil {
		query = query.Where("start_date >= ?", *filters.StartDateFrom)
	}
	if filters.StartDateTo != nil {
		query = query.Where("start_date <= ?", *filters.StartDateTo)
	}
	if filters.EndDateFrom != nil {
		query = query.Where("end_date >= ?", *filters.EndDateFrom)
	}
	if filters.EndDateTo != nil {
		query = query.Where("end_date <= ?", *filters.EndDateTo)
	}
	if filters.Q != nil {
		pattern := "%" + *filters.Q + "%"
		query = query.Where(
			"LOWER(contract_number) LIKE LOWER(?) OR LOWER(supplier) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(responsible) LIKE LOWER(?)",
			pattern, pattern, pattern, pattern,
		)
	}
	return query
}
