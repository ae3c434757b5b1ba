package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/contractdesk/contractdesk-backend/internal/domain"
	"github.com/contractdesk/contractdesk-backend/internal/pkg/dbctx"
	apperrors "github.com/contractdesk/contractdesk-backend/internal/pkg/errors"
	"github.com/contractdesk/contractdesk-backend/internal/pkg/logger"
	"github.com/contractdesk/contractdesk-backend/internal/repos"
)

// ContractService is the facade over the query engine and the mutation
// pipeline. Every mutation runs check, diff, write and audit append inside
// one transaction.
type ContractService interface {
	List(ctx context.Context, filters domain.ContractFilters, page domain.Pagination) (*domain.ContractPage, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Contract, error)
	Create(ctx context.Context, contract *domain.Contract, actor string) (*domain.Contract, error)
	Update(ctx context.Context, id uuid.UUID, update domain.ContractUpdate, actor string) (*domain.Contract, error)
	Delete(ctx context.Context, id uuid.UUID, actor string) error
	History(ctx context.Context, id uuid.UUID) ([]*domain.ChangeHistory, error)
}

type contractService struct {
	db           *gorm.DB
	log          *logger.Logger
	contractRepo repos.ContractRepo
	categoryRepo repos.CategoryRepo
	historyRepo  repos.ChangeHistoryRepo
}

func NewContractService(db *gorm.DB, log *logger.Logger, contractRepo repos.ContractRepo, categoryRepo repos.CategoryRepo, historyRepo repos.ChangeHistoryRepo) ContractService {
	serviceLog := log.With("service", "ContractService")
	return &contractService{
		db:           db,
		log:          serviceLog,
		contractRepo: contractRepo,
		categoryRepo: categoryRepo,
		historyRepo:  historyRepo,
	}
}

func normalizeActor(actor string) string {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return "system"
	}
	return actor
}

func (cs *contractService) List(ctx context.Context, filters domain.ContractFilters, page domain.Pagination) (*domain.ContractPage, error) {
	var items []*domain.Contract
	var total int64
	// Count and page read run in one transaction so both see the same
	// snapshot.
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		var err error
		items, total, err = cs.contractRepo.List(dbc, filters, page)
		return err
	}); err != nil {
		cs.log.Error("Listing contracts failed", "error", err)
		return nil, err
	}
	if items == nil {
		items = []*domain.Contract{}
	}
	return &domain.ContractPage{
		Items:    items,
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
		Pages:    page.Pages(total),
	}, nil
}

func (cs *contractService) Get(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	contract, err := cs.contractRepo.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, fmt.Errorf("contract %q: %w", id, apperrors.ErrNotFound)
	}
	return contract, nil
}

func (cs *contractService) Create(ctx context.Context, contract *domain.Contract, actor string) (*domain.Contract, error) {
	actor = normalizeActor(actor)
	var created *domain.Contract
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		existing, err := cs.contractRepo.GetByNumber(dbc, contract.ContractNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("contract with number %q already exists: %w", contract.ContractNumber, apperrors.ErrConflict)
		}

		category, err := cs.categoryRepo.GetByID(dbc, contract.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return fmt.Errorf("category %d does not exist: %w", contract.CategoryID, apperrors.ErrInvalidReference)
		}

		if err := cs.contractRepo.Create(dbc, contract); err != nil {
			// The pre-write check is best effort; the unique index is
			// the backstop under concurrent creates.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("contract with number %q already exists: %w", contract.ContractNumber, apperrors.ErrConflict)
			}
			return err
		}

		record, err := domain.NewChangeHistory(contract.ID, actor, domain.CreatedChange())
		if err != nil {
			return err
		}
		if err := cs.historyRepo.Append(dbc, record); err != nil {
			return err
		}

		created, err = cs.contractRepo.GetByID(dbc, contract.ID)
		return err
	}); err != nil {
		return nil, err
	}
	cs.log.Info("Contract created", "contract_id", created.ID, "contract_number", created.ContractNumber, "actor", actor)
	return created, nil
}

func (cs *contractService) Update(ctx context.Context, id uuid.UUID, update domain.ContractUpdate, actor string) (*domain.Contract, error) {
	actor = normalizeActor(actor)
	var updated *domain.Contract
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		existing, err := cs.contractRepo.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("contract %q: %w", id, apperrors.ErrNotFound)
		}

		if update.ContractNumber != nil {
			other, err := cs.contractRepo.GetByNumber(dbc, *update.ContractNumber)
			if err != nil {
				return err
			}
			// Self-match is allowed.
			if other != nil && other.ID != id {
				return fmt.Errorf("contract with number %q already exists: %w", *update.ContractNumber, apperrors.ErrConflict)
			}
		}

		if update.CategoryID != nil {
			category, err := cs.categoryRepo.GetByID(dbc, *update.CategoryID)
			if err != nil {
				return err
			}
			if category == nil {
				return fmt.Errorf("category %d does not exist: %w", *update.CategoryID, apperrors.ErrInvalidReference)
			}
		}

		changes, columns := domain.DiffContract(existing, update)
		if len(changes) == 0 {
			// Pure no-op: nothing written, updated_at untouched, no
			// history record.
			updated = existing
			return nil
		}

		if err := cs.contractRepo.UpdateColumns(dbc, id, columns); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("contract number already exists: %w", apperrors.ErrConflict)
			}
			return err
		}

		record, err := domain.NewChangeHistory(id, actor, changes)
		if err != nil {
			return err
		}
		if err := cs.historyRepo.Append(dbc, record); err != nil {
			return err
		}

		updated, err = cs.contractRepo.GetByID(dbc, id)
		return err
	}); err != nil {
		return nil, err
	}
	return updated, nil
}

func (cs *contractService) Delete(ctx context.Context, id uuid.UUID, actor string) error {
	actor = normalizeActor(actor)
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		existing, err := cs.contractRepo.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("contract %q: %w", id, apperrors.ErrNotFound)
		}

		// Intent-to-delete is appended before the row goes away, for any
		// audit sink observing the transaction stream. The cascade below
		// removes it locally along with the rest of the trail.
		record, err := domain.NewChangeHistory(id, actor, domain.DeletedChange())
		if err != nil {
			return err
		}
		if err := cs.historyRepo.Append(dbc, record); err != nil {
			return err
		}

		affected, err := cs.contractRepo.Delete(dbc, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("deleting contract %q affected no rows: %w", id, apperrors.ErrInternal)
		}

		return cs.historyRepo.DeleteByContract(dbc, id)
	}); err != nil {
		return err
	}
	cs.log.Info("Contract deleted", "contract_id", id, "actor", actor)
	return nil
}

func (cs *contractService) History(ctx context.Context, id uuid.UUID) ([]*domain.ChangeHistory, error) {
	var records []*domain.ChangeHistory
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := cs.contractRepo.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("contract %q: %w", id, apperrors.ErrNotFound)
		}
		records, err = cs.historyRepo.ListByContract(dbc, id)
		return err
	}); err != nil {
		return nil, err
	}
	return records, nil
}
