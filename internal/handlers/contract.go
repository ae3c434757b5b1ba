package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/contractdesk/contractdesk-backend/internal/domain"
	apperrors "github.com/contractdesk/contractdesk-backend/internal/pkg/errors"
	"github.com/contractdesk/contractdesk-backend/internal/services"
)

type ContractHandler struct {
	contractService services.ContractService
}

func NewContractHandler(contractService services.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

type createContractRequest struct {
	ContractNumber string   `json:"contract_number" binding:"required,max=100"`
	Supplier       string   `json:"supplier" binding:"required,max=200"`
	Description    string   `json:"description" binding:"required"`
	CategoryID     uint     `json:"category_id" binding:"required"`
	Responsible    string   `json:"responsible" binding:"required,max=200"`
	Status         string   `json:"status" binding:"omitempty,oneof=draft active suspended terminated expired"`
	Value          *float64 `json:"value" binding:"required,gte=0"`
	StartDate      string   `json:"start_date" binding:"required"`
	EndDate        string   `json:"end_date" binding:"required"`
}

type updateContractRequest struct {
	ContractNumber *string  `json:"contract_number" binding:"omitempty,max=100"`
	Supplier       *string  `json:"supplier" binding:"omitempty,max=200"`
	Description    *string  `json:"description" binding:"omitempty,min=1"`
	CategoryID     *uint    `json:"category_id"`
	Responsible    *string  `json:"responsible" binding:"omitempty,max=200"`
	Status         *string  `json:"status" binding:"omitempty,oneof=draft active suspended terminated expired"`
	Value          *float64 `json:"value" binding:"omitempty,gte=0"`
	StartDate      *string  `json:"start_date"`
	EndDate        *string  `json:"end_date"`
}

func (ch *ContractHandler) List(c *gin.Context) {
	filters, err := parseContractFilters(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_filter", err)
		return
	}
	pagination, err := parsePagination(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_pagination", err)
		return
	}
	page, err := ch.contractService.List(c.Request.Context(), filters, pagination)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, page)
}

func (ch *ContractHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("contract %q: %w", c.Param("id"), apperrors.ErrNotFound))
		return
	}
	contract, err := ch.contractService.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, contract)
}

func (ch *ContractHandler) Create(c *gin.Context) {
	var req createContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	startDate, err := time.Parse(domain.DateLayout, req.StartDate)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("start_date must be a date in %s format", domain.DateLayout))
		return
	}
	endDate, err := time.Parse(domain.DateLayout, req.EndDate)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("end_date must be a date in %s format", domain.DateLayout))
		return
	}
	if !endDate.After(startDate) {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("end_date must be after start_date"))
		return
	}

	contract := &domain.Contract{
		ContractNumber: req.ContractNumber,
		Supplier:       req.Supplier,
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		Responsible:    req.Responsible,
		Status:         domain.ContractStatus(req.Status),
		Value:          *req.Value,
		StartDate:      startDate,
		EndDate:        endDate,
	}
	created, err := ch.contractService.Create(c.Request.Context(), contract, actorFrom(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (ch *ContractHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("contract %q: %w", c.Param("id"), apperrors.ErrNotFound))
		return
	}
	var req updateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	update := domain.ContractUpdate{
		ContractNumber: req.ContractNumber,
		Supplier:       req.Supplier,
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		Responsible:    req.Responsible,
		Value:          req.Value,
	}
	if req.Status != nil {
		status := domain.ContractStatus(*req.Status)
		update.Status = &status
	}
	if req.StartDate != nil {
		t, err := time.Parse(domain.DateLayout, *req.StartDate)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("start_date must be a date in %s format", domain.DateLayout))
			return
		}
		update.StartDate = &t
	}
	if req.EndDate != nil {
		t, err := time.Parse(domain.DateLayout, *req.EndDate)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("end_date must be a date in %s format", domain.DateLayout))
			return
		}
		update.EndDate = &t
	}
	if update.StartDate != nil && update.EndDate != nil && !update.EndDate.After(*update.StartDate) {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("end_date must be after start_date"))
		return
	}

	updated, err := ch.contractService.Update(c.Request.Context(), id, update, actorFrom(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, updated)
}

func (ch *ContractHandler) Delete(c *gin.Context) {
	if !requireConfirmation(c) {
		RespondError(c, http.StatusBadRequest, "confirmation_required", fmt.Errorf("delete confirmation required, add ?confirmation=true"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("contract %q: %w", c.Param("id"), apperrors.ErrNotFound))
		return
	}
	if err := ch.contractService.Delete(c.Request.Context(), id, actorFrom(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ch *ContractHandler) History(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("contract %q: %w", c.Param("id"), apperrors.ErrNotFound))
		return
	}
	records, err := ch.contractService.History(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, records)
}
