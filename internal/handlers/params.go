package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/contractdesk/contractdesk-backend/internal/domain"
)

var validStatuses = map[domain.ContractStatus]struct{}{
	domain.StatusDraft:      {},
	domain.StatusActive:     {},
	domain.StatusSuspended:  {},
	domain.StatusTerminated: {},
	domain.StatusExpired:    {},
}

// parsePagination reads paging and sorting query parameters, applying the
// defaults and bounds the boundary layer enforces.
func parsePagination(c *gin.Context) (domain.Pagination, error) {
	page := domain.DefaultPagination()

	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page, fmt.Errorf("page must be an integer >= 1")
		}
		page.Page = n
	}
	if raw := c.Query("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > domain.MaxPageSize {
			return page, fmt.Errorf("page_size must be between 1 and %d", domain.MaxPageSize)
		}
		page.PageSize = n
	}
	if raw := c.Query("sort_by"); raw != "" {
		// Unrecognized columns fall back to start_date in the order
		// clause itself.
		page.SortBy = raw
	}
	if raw := c.Query("sort_dir"); raw != "" {
		if raw != "asc" && raw != "desc" {
			return page, fmt.Errorf("sort_dir must be asc or desc")
		}
		page.SortDir = raw
	}
	return page, nil
}

func parseContractFilters(c *gin.Context) (domain.ContractFilters, error) {
	var filters domain.ContractFilters

	if raw := c.Query("supplier"); raw != "" {
		filters.Supplier = &raw
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.ContractStatus(raw)
		if _, ok := validStatuses[status]; !ok {
			return filters, fmt.Errorf("invalid status %q", raw)
		}
		filters.Status = &status
	}
	if raw := c.Query("category_id"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return filters, fmt.Errorf("category_id must be an integer")
		}
		id := uint(n)
		filters.CategoryID = &id
	}
	if raw := c.Query("min_value"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return filters, fmt.Errorf("min_value must be a non-negative number")
		}
		filters.MinValue = &v
	}
	if raw := c.Query("max_value"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return filters, fmt.Errorf("max_value must be a non-negative number")
		}
		filters.MaxValue = &v
	}
	if filters.MinValue != nil && filters.MaxValue != nil && *filters.MaxValue < *filters.MinValue {
		return filters, fmt.Errorf("max_value must be greater than or equal to min_value")
	}

	dateParams := []struct {
		key    string
		target **time.Time
	}{
		{"start_date_from", &filters.StartDateFrom},
		{"start_date_to", &filters.StartDateTo},
		{"end_date_from", &filters.EndDateFrom},
		{"end_date_to", &filters.EndDateTo},
	}
	for _, p := range dateParams {
		raw := c.Query(p.key)
		if raw == "" {
			continue
		}
		t, err := time.Parse(domain.DateLayout, raw)
		if err != nil {
			return filters, fmt.Errorf("%s must be a date in %s format", p.key, domain.DateLayout)
		}
		*p.target = &t
	}

	if raw := c.Query("q"); raw != "" {
		filters.Q = &raw
	}
	return filters, nil
}

// actorFrom reads the opaque mutation actor from the request, defaulting to
// "system".
func actorFrom(c *gin.Context) string {
	return c.GetHeader("X-Changed-By")
}

// requireConfirmation gates destructive operations behind an explicit
// ?confirmation=true flag.
func requireConfirmation(c *gin.Context) bool {
	return c.Query("confirmation") == "true"
}
