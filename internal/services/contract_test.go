package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/contractdesk/contractdesk-backend/internal/domain"
	apperrors "github.com/contractdesk/contractdesk-backend/internal/pkg/errors"
	"github.com/contractdesk/contractdesk-backend/internal/pkg/pointers"
)

func TestCreateRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	category := env.mustCategory(t, "Software")

	created := env.mustContract(t, category.ID, "SW-001", 100.00)
	if created.ID == uuid.Nil {
		t.Fatal("id was not assigned")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("timestamps were not assigned")
	}

	fetched, err := env.contracts.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fetched.ContractNumber != "SW-001" || fetched.Supplier != "Initech" || fetched.Value != 100.00 {
		t.Fatalf("round-trip mismatch: %+v", fetched)
	}
	if fetched.Status != domain.StatusDraft {
		t.Fatalf("status = %q, want draft", fetched.Status)
	}
	if fetched.Category.ID != category.ID || fetched.Category.Name != "Software" {
		t.Fatalf("category not embedded: %+v", fetched.Category)
	}

	// Creation produces exactly one audit record.
	records, err := env.contracts.History(ctx, created.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d history records, want 1", len(records))
	}
	changes, err := records[0].ChangeMap()
	if err != nil {
		t.Fatalf("decode changes: %v", err)
	}
	if changes["action"].Old != nil || changes["action"].New != "created" {
		t.Fatalf("unexpected creation change: %+v", changes)
	}
	if records[0].ChangedBy != "system" {
		t.Fatalf("changed_by = %q, want system", records[0].ChangedBy)
	}
}

func TestCreateConflictAndInvalidReference(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	category := env.mustCategory(t, "Software")
	env.mustContract(t, category.ID, "SW-001", 100.00)

	duplicate := &domain.Contract{
		ContractNumber: "SW-001",
		Supplier:       "Globex",
		Description:    "dup",
		CategoryID:     category.ID,
		Responsible:    "Sam Reyes",
		Value:          10,
		StartDate:      mustDate(t, "2024-01-01"),
		EndDate:        mustDate(t, "2024-12-31"),
	}
	if _, err := env.contracts.Create(ctx, duplicate, ""); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("duplicate number error = %v, want ErrConflict", err)
	}

	orphan := &domain.Contract{
		ContractNumber: "SW-002",
		Supplier:       "Globex",
		Description:    "orphan",
		CategoryID:     9999,
		Responsible:    "Sam Reyes",
		Value:          10,
		StartDate:      mustDate(t, "2024-01-01"),
		EndDate:        mustDate(t, "2024-12-31"),
	}
	if _, err := env.contracts.Create(ctx, orphan, ""); !errors.Is(err, apperrors.ErrInvalidReference) {
		t.Fatalf("missing category error = %v, want ErrInvalidReference", err)
	}
}

func TestUpdateDiffAndHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	category := env.mustCategory(t, "Software")
	created := env.mustContract(t, category.ID, "SW-001", 100.00)

	status := domain.StatusActive
	updated, err := env.contracts.Update(ctx, created.ID, domain.ContractUpdate{
		Status: &status,
		Value:  pointers.Float64(150.00),
	}, "auditor")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != domain.StatusActive || updated.Value != 150.00 {
		t.Fatalf("update not applied: %+v", updated)
	}

	records, err := env.contracts.History(ctx, created.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d history records, want 2 (create + update)", len(records))
	}
	changes, err := records[0].ChangeMap()
	if err != nil {
		t.Fatalf("decode changes: %v", err)
	}
	if len(changes) != 2 {
		t.Fatalf("diff has %d entries, want 2: %+v", len(changes), changes)
	}
	if *changes["status"].Old != "draft" || changes["status"].New != "active" {
		t.Fatalf("status diff = %+v", changes["status"])
	}
	if *changes["value"].Old != "100.00" || changes["value"].New != "150.00" {
		t.Fatalf("value diff = %+v", changes["value"])
	}
	if records[0].ChangedBy != "auditor" {
		t.Fatalf("changed_by = %q, want auditor", records[0].ChangedBy)
	}
}

func TestUpdateEmptyPartialIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	category := env.mustCategory(t, "Software")
	created := env.mustContract(t, category.ID, "SW-001", 100.00)

	updated, err := env.contracts.Update(ctx, created.ID, domain.ContractUpdate{}, "")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.UpdatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("updated_at refreshed on empty partial: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}
	if got := env.historyCount(t, created.ID.String()); got != 1 {
		t.Fatalf("history count = %d, want 1 (creation only)", got)
	}
}

func TestUpdateProvidedButEqualIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	category := env.mustCategory(t, "Software")
	created := env.mustContract(t, category.ID, "SW-001", 100.00)

	updated, err := env.contracts.Update(ctx, created.ID, domain.ContractUpdate{
		Supplier: pointers.String("Initech"),
		Value:    pointers.Float64(100.00),
	}, "")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.UpdatedAt.Equal(created.UpdatedAt) {
		t.Fatal("updated_at refreshed although nothing changed")
	}
	if got := env.historyCount(t, created.ID.String()); got != 1 {
		t.Fatalf("history count = %d, want 1", got)
	}
}

func TestUpdateNumberUniqueness(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	category := env.mustCategory(t, "Software")
	first := env.mustContract(t, category.ID, "SW-001", 100.00)
	second := env.mustContract(t, category.ID, "SW-002", 200.00)

	// Taking another contract's number is a conflict.
	if _, err := env.contracts.Update(ctx, second.ID, domain.ContractUpdate{
		ContractNumber: pointers.String("SW-001"),
	}, ""); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("error = %v, want ErrConflict", err)
	}

	// Re-asserting our own number is allowed and is a no-op.
	if _, err := env.contracts.Update(ctx, first.ID, domain.ContractUpdate{
		ContractNumber: pointers.String("SW-001"),
	}, ""); err != nil {
		t.Fatalf("self-match update failed: %v", err)
	}
	if got := env.historyCount(t, first.ID.String()); got != 1 {
		t.Fatalf("history count = %d, want 1", got)
	}
}

func TestUpdateInvalidCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	category := env.mustCategory(t, "Software")
	created := env.mustContract(t, category.ID, "SW-001", 100.00)

	if _, err := env.contracts.Update(ctx, created.ID, domain.ContractUpdate{
		CategoryID: pointers.Ptr(uint(9999)),
	}, ""); !errors.Is(err, apperrors.ErrInvalidReference) {
		t.Fatalf("error = %v, want ErrInvalidReference", err)
	}
}

func TestUpdateNotFound(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.contracts.Update(context.Background(), uuid.New(), domain.ContractUpdate{}, ""); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestDeleteCascadesHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	category := env.mustCategory(t, "Software")
	created := env.mustContract(t, category.ID, "SW-001", 100.00)

	status := domain.StatusActive
	if _, err := env.contracts.Update(ctx, created.ID, domain.ContractUpdate{Status: &status}, ""); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if err := env.contracts.Delete(ctx, created.ID, "janitor"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := env.contracts.Get(ctx, created.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Get after delete = %v, want ErrNotFound", err)
	}
	if got := env.historyCount(t, created.ID.String()); got != 0 {
		t.Fatalf("history count after cascade = %d, want 0", got)
	}
}

func TestDeleteNotFound(t *testing.T) {
	env := newTestEnv(t)
	if err := env.contracts.Delete(context.Background(), uuid.New(), ""); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestListFacadeMetadata(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	category := env.mustCategory(t, "Software")
	env.mustContract(t, category.ID, "SW-001", 50000)
	env.mustContract(t, category.ID, "SW-002", 100000)

	page, err := env.contracts.List(ctx, domain.ContractFilters{
		MinValue: pointers.Float64(60000),
	}, domain.DefaultPagination())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 1 || page.Pages != 1 || len(page.Items) != 1 {
		t.Fatalf("page = %+v", page)
	}
	if page.Items[0].ContractNumber != "SW-002" {
		t.Fatalf("filtered item = %q, want SW-002", page.Items[0].ContractNumber)
	}

	empty, err := env.contracts.List(ctx, domain.ContractFilters{
		MinValue: pointers.Float64(500000),
	}, domain.DefaultPagination())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if empty.Total != 0 || empty.Pages != 0 || len(empty.Items) != 0 {
		t.Fatalf("empty page = %+v", empty)
	}
}

func TestHistoryNotFound(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.contracts.History(context.Background(), uuid.New()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
