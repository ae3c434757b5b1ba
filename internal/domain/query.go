package domain

import (
	"fmt"
	"time"
)

// MaxPageSize is a hard cap on items per page.
const MaxPageSize = 10

// ContractFilters are optional predicates combined with logical AND. The
// free-text Q matches any of contract_number, supplier, description or
// responsible, case-insensitively, and is ANDed with the rest.
type ContractFilters struct {
	Supplier      *string
	Status        *ContractStatus
	CategoryID    *uint
	MinValue      *float64
	MaxValue      *float64
	StartDateFrom *time.Time
	StartDateTo   *time.Time
	EndDateFrom   *time.Time
	EndDateTo     *time.Time
	Q             *string
}

// sortColumns is the allow-list of sortable contract columns. Anything else
// falls back to start_date.
var sortColumns = map[string]string{
	"start_date":      "start_date",
	"end_date":        "end_date",
	"created_at":      "created_at",
	"updated_at":      "updated_at",
	"contract_number": "contract_number",
	"supplier":        "supplier",
	"value":           "value",
	"status":          "status",
}

type Pagination struct {
	Page     int
	PageSize int
	SortBy   string
	SortDir  string
}

func DefaultPagination() Pagination {
	return Pagination{Page: 1, PageSize: MaxPageSize, SortBy: "start_date", SortDir: "desc"}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// OrderClause returns the ORDER BY expression for the requested sort, with
// id as secondary tie-break in the same direction so pages never lose or
// duplicate rows when the sort column has duplicate values.
func (p Pagination) OrderClause() string {
	column, ok := sortColumns[p.SortBy]
	if !ok {
		column = "start_date"
	}
	dir := "asc"
	if p.SortDir == "desc" {
		dir = "desc"
	}
	return fmt.Sprintf("%s %s, id %s", column, dir, dir)
}

// Pages computes the page count for a total, 0 when the total is 0.
func (p Pagination) Pages(total int64) int {
	if total == 0 {
		return 0
	}
	pages := int(total) / p.PageSize
	if int(total)%p.PageSize != 0 {
		pages++
	}
	return pages
}

// ContractPage is one page of joined projections plus pagination metadata.
type ContractPage struct {
	Items    []*Contract `json:"items"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Pages    int         `json:"pages"`
}
