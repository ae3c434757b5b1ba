package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/contractdesk/contractdesk-backend/internal/domain"
	"github.com/contractdesk/contractdesk-backend/internal/pkg/dbctx"
	apperrors "github.com/contractdesk/contractdesk-backend/internal/pkg/errors"
	"github.com/contractdesk/contractdesk-backend/internal/pkg/logger"
	"github.com/contractdesk/contractdesk-backend/internal/repos"
)

type CategoryService interface {
	List(ctx context.Context) ([]*domain.Category, error)
	Get(ctx context.Context, id uint) (*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, id uint, update domain.CategoryUpdate) (*domain.Category, error)
	Delete(ctx context.Context, id uint) error
}

type categoryService struct {
	db           *gorm.DB
	log          *logger.Logger
	categoryRepo repos.CategoryRepo
	contractRepo repos.ContractRepo
}

func NewCategoryService(db *gorm.DB, log *logger.Logger, categoryRepo repos.CategoryRepo, contractRepo repos.ContractRepo) CategoryService {
	serviceLog := log.With("service", "CategoryService")
	return &categoryService{
		db:           db,
		log:          serviceLog,
		categoryRepo: categoryRepo,
		contractRepo: contractRepo,
	}
}

func (cs *categoryService) List(ctx context.Context) ([]*domain.Category, error) {
	categories, err := cs.categoryRepo.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	return categories, nil
}

func (cs *categoryService) Get(ctx context.Context, id uint) (*domain.Category, error) {
	category, err := cs.categoryRepo.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("category %d: %w", id, apperrors.ErrNotFound)
	}
	return category, nil
}

func (cs *categoryService) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		existing, err := cs.categoryRepo.GetByName(dbc, category.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("category with name %q already exists: %w", category.Name, apperrors.ErrConflict)
		}

		if err := cs.categoryRepo.Create(dbc, category); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("category with name %q already exists: %w", category.Name, apperrors.ErrConflict)
			}
			return err
		}
		return nil
	}); err != nil {
		return nil, err
	}
	cs.log.Info("Category created", "category_id", category.ID, "name", category.Name)
	return category, nil
}

func (cs *categoryService) Update(ctx context.Context, id uint, update domain.CategoryUpdate) (*domain.Category, error) {
	var updated *domain.Category
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		existing, err := cs.categoryRepo.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("category %d: %w", id, apperrors.ErrNotFound)
		}

		columns := map[string]any{}
		if update.Name != nil {
			other, err := cs.categoryRepo.GetByName(dbc, *update.Name)
			if err != nil {
				return err
			}
			// Renaming to our own name is allowed.
			if other != nil && other.ID != id {
				return fmt.Errorf("category with name %q already exists: %w", *update.Name, apperrors.ErrConflict)
			}
			columns["name"] = *update.Name
		}
		if update.Description != nil {
			columns["description"] = *update.Description
		}

		if len(columns) > 0 {
			if err := cs.categoryRepo.UpdateColumns(dbc, id, columns); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fmt.Errorf("category name already exists: %w", apperrors.ErrConflict)
				}
				return err
			}
		}

		updated, err = cs.categoryRepo.GetByID(dbc, id)
		return err
	}); err != nil {
		return nil, err
	}
	return updated, nil
}

func (cs *categoryService) Delete(ctx context.Context, id uint) error {
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		existing, err := cs.categoryRepo.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("category %d: %w", id, apperrors.ErrNotFound)
		}

		count, err := cs.contractRepo.CountByCategory(dbc, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return &apperrors.DependentsError{Count: count}
		}

		affected, err := cs.categoryRepo.Delete(dbc, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("deleting category %d affected no rows: %w", id, apperrors.ErrInternal)
		}
		return nil
	}); err != nil {
		return err
	}
	cs.log.Info("Category deleted", "category_id", id)
	return nil
}
