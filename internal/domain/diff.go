package domain

import (
	"strconv"
	"time"
)

// ContractUpdate carries a sparse contract update. Nil fields are untouched.
type ContractUpdate struct {
	ContractNumber *string
	Supplier       *string
	Description    *string
	CategoryID     *uint
	Responsible    *string
	Status         *ContractStatus
	Value          *float64
	StartDate      *time.Time
	EndDate        *time.Time
}

// contractField describes one mutable contract field for the diff pipeline:
// whether the update provides it, how both sides render as strings, and the
// column value to write. The table keeps the diff exhaustive and statically
// typed instead of iterating arbitrary set fields.
type contractField struct {
	name    string
	set     func(u ContractUpdate) bool
	current func(c *Contract) string
	next    func(u ContractUpdate) string
	value   func(u ContractUpdate) any
}

var contractFields = []contractField{
	{
		name:    "contract_number",
		set:     func(u ContractUpdate) bool { return u.ContractNumber != nil },
		current: func(c *Contract) string { return c.ContractNumber },
		next:    func(u ContractUpdate) string { return *u.ContractNumber },
		value:   func(u ContractUpdate) any { return *u.ContractNumber },
	},
	{
		name:    "supplier",
		set:     func(u ContractUpdate) bool { return u.Supplier != nil },
		current: func(c *Contract) string { return c.Supplier },
		next:    func(u ContractUpdate) string { return *u.Supplier },
		value:   func(u ContractUpdate) any { return *u.Supplier },
	},
	{
		name:    "description",
		set:     func(u ContractUpdate) bool { return u.Description != nil },
		current: func(c *Contract) string { return c.Description },
		next:    func(u ContractUpdate) string { return *u.Description },
		value:   func(u ContractUpdate) any { return *u.Description },
	},
	{
		name:    "category_id",
		set:     func(u ContractUpdate) bool { return u.CategoryID != nil },
		current: func(c *Contract) string { return strconv.FormatUint(uint64(c.CategoryID), 10) },
		next:    func(u ContractUpdate) string { return strconv.FormatUint(uint64(*u.CategoryID), 10) },
		value:   func(u ContractUpdate) any { return *u.CategoryID },
	},
	{
		name:    "responsible",
		set:     func(u ContractUpdate) bool { return u.Responsible != nil },
		current: func(c *Contract) string { return c.Responsible },
		next:    func(u ContractUpdate) string { return *u.Responsible },
		value:   func(u ContractUpdate) any { return *u.Responsible },
	},
	{
		name:    "status",
		set:     func(u ContractUpdate) bool { return u.Status != nil },
		current: func(c *Contract) string { return string(c.Status) },
		next:    func(u ContractUpdate) string { return string(*u.Status) },
		value:   func(u ContractUpdate) any { return *u.Status },
	},
	{
		name:    "value",
		set:     func(u ContractUpdate) bool { return u.Value != nil },
		current: func(c *Contract) string { return FormatValue(c.Value) },
		next:    func(u ContractUpdate) string { return FormatValue(*u.Value) },
		value:   func(u ContractUpdate) any { return *u.Value },
	},
	{
		name:    "start_date",
		set:     func(u ContractUpdate) bool { return u.StartDate != nil },
		current: func(c *Contract) string { return c.StartDate.Format(DateLayout) },
		next:    func(u ContractUpdate) string { return u.StartDate.Format(DateLayout) },
		value:   func(u ContractUpdate) any { return *u.StartDate },
	},
	{
		name:    "end_date",
		set:     func(u ContractUpdate) bool { return u.EndDate != nil },
		current: func(c *Contract) string { return c.EndDate.Format(DateLayout) },
		next:    func(u ContractUpdate) string { return u.EndDate.Format(DateLayout) },
		value:   func(u ContractUpdate) any { return *u.EndDate },
	},
}

// DiffContract compares a contract against a sparse update. It returns the
// change map for fields whose rendered value actually differs, and the
// column assignments for every provided field. A field provided with its
// current value appears in columns but not in the change map.
func DiffContract(c *Contract, u ContractUpdate) (ChangeMap, map[string]any) {
	changes := ChangeMap{}
	columns := map[string]any{}
	for _, f := range contractFields {
		if !f.set(u) {
			continue
		}
		columns[f.name] = f.value(u)
		old := f.current(c)
		next := f.next(u)
		if old != next {
			changes[f.name] = FieldChange{Old: &old, New: next}
		}
	}
	return changes, columns
}

// CreatedChange is the synthetic change map recorded on contract creation.
func CreatedChange() ChangeMap {
	return ChangeMap{"action": {Old: nil, New: "created"}}
}

// DeletedChange is the synthetic change map recorded before a contract is
// removed.
func DeletedChange() ChangeMap {
	old := "active"
	return ChangeMap{"action": {Old: &old, New: "deleted"}}
}
