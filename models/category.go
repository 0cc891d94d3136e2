package models

import (
	"time"

	"gorm.io/gorm"
)

// Category categoria de transação, criada pelos próprios usuários
type Category struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"size:100;not null;index"`
	CreatedByID uint           `json:"created_by_id" gorm:"index;not null"`
	CreatedBy   *User          `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Category) TableName() string {
	return "categories"
}
