package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/contractdesk/contractdesk-backend/internal/domain"
	apperrors "github.com/contractdesk/contractdesk-backend/internal/pkg/errors"
	"github.com/contractdesk/contractdesk-backend/internal/services"
)

type CategoryHandler struct {
	categoryService services.CategoryService
}

func NewCategoryHandler(categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type createCategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description"`
}

func parseCategoryID(c *gin.Context) (uint, error) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("category %q: %w", c.Param("id"), apperrors.ErrNotFound)
	}
	return uint(n), nil
}

func (ch *CategoryHandler) List(c *gin.Context) {
	categories, err := ch.categoryService.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, categories)
}

func (ch *CategoryHandler) Get(c *gin.Context) {
	id, err := parseCategoryID(c)
	if err != nil {
		RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	category, err := ch.categoryService.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, category)
}

func (ch *CategoryHandler) Create(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	category := &domain.Category{Name: req.Name, Description: req.Description}
	created, err := ch.categoryService.Create(c.Request.Context(), category)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (ch *CategoryHandler) Update(c *gin.Context) {
	id, err := parseCategoryID(c)
	if err != nil {
		RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	updated, err := ch.categoryService.Update(c.Request.Context(), id, domain.CategoryUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, updated)
}

func (ch *CategoryHandler) Delete(c *gin.Context) {
	if !requireConfirmation(c) {
		RespondError(c, http.StatusBadRequest, "confirmation_required", fmt.Errorf("delete confirmation required, add ?confirmation=true"))
		return
	}
	id, err := parseCategoryID(c)
	if err != nil {
		RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	if err := ch.categoryService.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
