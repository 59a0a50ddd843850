package models

import (
	"time"

	"gorm.io/gorm"
)

type Cabin struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name         string  `gorm:"size:255" json:"name"`
	MaxCapacity  int     `gorm:"column:max_capacity" json:"maxCapacity"`
	RegularPrice float64 `gorm:"column:regular_price" json:"regularPrice"`
	Discount     float64 `json:"discount"`
	Description  string  `gorm:"type:text" json:"description"`

	// Image is authoritative only once the object behind it was actually
	// uploaded; see CabinService.CreateOrUpdateCabin.
	Image string `gorm:"size:512" json:"image"`
}
