package domain

import (
	"time"
)

type Category struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null;column:name" json:"name"`
	Description *string   `gorm:"type:text;column:description" json:"description"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (Category) TableName() string { return "categories" }

// CategoryUpdate carries a sparse category update. Nil fields are untouched.
type CategoryUpdate struct {
	Name        *string
	Description *string
}
