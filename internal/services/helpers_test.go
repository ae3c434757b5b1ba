package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/contractdesk/contractdesk-backend/internal/domain"
	"github.com/contractdesk/contractdesk-backend/internal/pkg/logger"
	"github.com/contractdesk/contractdesk-backend/internal/repos"
)

type testEnv struct {
	db         *gorm.DB
	contracts  ContractService
	categories CategoryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Category{}, &domain.Contract{}, &domain.ChangeHistory{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
	contractRepo := repos.NewContractRepo(db, log)
	categoryRepo := repos.NewCategoryRepo(db, log)
	historyRepo := repos.NewChangeHistoryRepo(db, log)

	return &testEnv{
		db:         db,
		contracts:  NewContractService(db, log, contractRepo, categoryRepo, historyRepo),
		categories: NewCategoryService(db, log, categoryRepo, contractRepo),
	}
}

func (e *testEnv) mustCategory(t *testing.T, name string) *domain.Category {
	t.Helper()
	category, err := e.categories.Create(context.Background(), &domain.Category{Name: name})
	if err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return category
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return parsed
}

func (e *testEnv) mustContract(t *testing.T, categoryID uint, number string, value float64) *domain.Contract {
	t.Helper()
	contract := &domain.Contract{
		ContractNumber: number,
		Supplier:       "Initech",
		Description:    "Annual software licensing",
		CategoryID:     categoryID,
		Responsible:    "Pat Doyle",
		Status:         domain.StatusDraft,
		Value:          value,
		StartDate:      mustDate(t, "2024-01-01"),
		EndDate:        mustDate(t, "2024-12-31"),
	}
	created, err := e.contracts.Create(context.Background(), contract, "")
	if err != nil {
		t.Fatalf("create contract %q: %v", number, err)
	}
	return created
}

func (e *testEnv) historyCount(t *testing.T, contractID string) int64 {
	t.Helper()
	var count int64
	if err := e.db.Model(&domain.ChangeHistory{}).Where("contract_id = ?", contractID).Count(&count).Error; err != nil {
		t.Fatalf("count history: %v", err)
	}
	return count
}
