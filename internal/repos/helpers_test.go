package repos

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
	"github.com/contractdesk/contractdesk-backend/internal/pkg/dbctx"
	"github.com/contractdesk/contractdesk-backend/internal/pkg/logger"
)

func newTestLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func testCtx() dbctx.Context {
	return dbctx.Context{Ctx: context.Background()}
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return parsed
}

func seedCategory(t *testing.T, repo CategoryRepo, name string) *domain.Category {
	t.Helper()
	category := &domain.Category{Name: name}
	if err := repo.Create(testCtx(), category); err != nil {
		t.Fatalf("seed category %q: %v", name, err)
	}
	return category
}

type contractSeed struct {
	number      string
	supplier    string
	description string
	responsible string
	status      domain.ContractStatus
	value       float64
	start       string
	end         string
}

func seedContract(t *testing.T, repo ContractRepo, categoryID uint, seed contractSeed) *domain.Contract {
	t.Helper()
	if seed.supplier == "" {
		seed.supplier = "Initech"
	}
	if seed.description == "" {
		seed.description = "Vendor services"
	}
	if seed.responsible == "" {
		seed.responsible = "Pat Doyle"
	}
	if seed.status == "" {
		seed.status = domain.StatusDraft
	}
	if seed.start == "" {
		seed.start = "2024-01-01"
	}
	if seed.end == "" {
		seed.end = "2024-12-31"
	}
	contract := &domain.Contract{
		ContractNumber: seed.number,
		Supplier:       seed.supplier,
		Description:    seed.description,
		CategoryID:     categoryID,
		Responsible:    seed.responsible,
		Status:         seed.status,
		Value:          seed.value,
		StartDate:      mustDate(t, seed.start),
		EndDate:        mustDate(t, seed.end),
	}
	if err := repo.Create(testCtx(), contract); err != nil {
		t.Fatalf("seed contract %q: %v", seed.number, err)
	}
	return contract
}
