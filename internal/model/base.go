package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// swagger:model
type BaseModel struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func GenerateUUID() string {
	return uuid.New().String()
}

// UintPtr and IntPtr are small helpers for optional columns.
func UintPtr(v uint) *uint { return &v }

func IntPtr(v int) *int { return &v }

func TimePtr(t time.Time) *time.Time { return &t }
