package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FieldChange is one before/after pair in an audit record. Old is nil for
// creation events.
type FieldChange struct {
	Old *string `json:"old"`
	New string  `json:"new"`
}

// ChangeMap maps field name to its before/after pair.
type ChangeMap map[string]FieldChange

type ChangeHistory struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ContractID uuid.UUID      `gorm:"type:varchar(36);not null;index;column:contract_id" json:"contract_id"`
	ChangedAt  time.Time      `gorm:"not null;index;autoCreateTime" json:"changed_at"`
	ChangedBy  string         `gorm:"type:varchar(200);not null;default:system;column:changed_by" json:"changed_by"`
	Changes    datatypes.JSON `gorm:"not null;column:changes" json:"changes"`

	Contract *Contract `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ChangeHistory) TableName() string { return "change_history" }

// NewChangeHistory builds an audit record from a change map.
func NewChangeHistory(contractID uuid.UUID, changedBy string, changes ChangeMap) (*ChangeHistory, error) {
	raw, err := json.Marshal(changes)
	if err != nil {
		return nil, err
	}
	return &ChangeHistory{
		ContractID: contractID,
		ChangedBy:  changedBy,
		Changes:    datatypes.JSON(raw),
	}, nil
}

// ChangeMap decodes the stored JSON back into a change map.
func (h *ChangeHistory) ChangeMap() (ChangeMap, error) {
	var m ChangeMap
	if err := json.Unmarshal(h.Changes, &m); err != nil {
		return nil, err
	}
	return m, nil
}
