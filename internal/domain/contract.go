package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContractStatus string

const (
	StatusDraft      ContractStatus = "draft"
	StatusActive     ContractStatus = "active"
	StatusSuspended  ContractStatus = "suspended"
	StatusTerminated ContractStatus = "terminated"
	StatusExpired    ContractStatus = "expired"
)

// DateLayout is the rendering used for contract dates in responses and diffs.
const DateLayout = "2006-01-02"

type Contract struct {
	ID             uuid.UUID      `gorm:"type:varchar(36);primaryKey" json:"id"`
	ContractNumber string         `gorm:"type:varchar(100);uniqueIndex;not null;column:contract_number" json:"contract_number"`
	Supplier       string         `gorm:"type:varchar(200);not null;index;column:supplier" json:"supplier"`
	Description    string         `gorm:"type:text;not null;column:description" json:"description"`
	CategoryID     uint           `gorm:"not null;index;column:category_id" json:"category_id"`
	Responsible    string         `gorm:"type:varchar(200);not null;column:responsible" json:"responsible"`
	Status         ContractStatus `gorm:"type:varchar(20);not null;default:draft;index;column:status" json:"status"`
	Value          float64        `gorm:"type:numeric(15,2);not null;index;column:value" json:"value"`
	StartDate      time.Time      `gorm:"type:date;not null;index;column:start_date" json:"start_date"`
	EndDate        time.Time      `gorm:"type:date;not null;index;column:end_date" json:"end_date"`
	CreatedAt      time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
}

func (Contract) TableName() string { return "contracts" }

// BeforeCreate assigns the identity token in Go rather than relying on a
// database default, so Postgres and SQLite behave identically.
func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = StatusDraft
	}
	return nil
}

// FormatValue renders a contract value with two fractional digits, the
// precision used for diff entries and equality checks.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
