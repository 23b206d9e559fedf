package model

import (
	"time"

	"gorm.io/gorm"
)

type Address struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Label     string         `gorm:"size:100" json:"label"` // e.g. "Home", "Office"
	Street    string         `gorm:"type:text;not null" json:"street"`
	City      string         `gorm:"size:100;not null" json:"city"`
	State     string         `gorm:"size:100;not null" json:"state"`
	Country   string         `gorm:"size:100;not null;default:'Nigeria'" json:"country"`
	ZipCode   string         `gorm:"size:20" json:"zip_code"`
	IsDefault bool           `gorm:"default:false" json:"is_default"` // only the first address a user creates is defaulted
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Address) TableName() string {
	return "addresses"
}
