package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking status progresses strictly forward:
// unconfirmed -> checked-in -> checked-out.
const (
	BookingStatusUnconfirmed = "unconfirmed"
	BookingStatusCheckedIn   = "checked-in"
	BookingStatusCheckedOut  = "checked-out"
)

type Booking struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	StartDate *time.Time `gorm:"column:start_date;index" json:"startDate,omitempty"`
	EndDate   *time.Time `gorm:"column:end_date" json:"endDate,omitempty"`
	NumNights int        `gorm:"column:num_nights" json:"numNights"`
	NumGuests int        `gorm:"column:num_guests" json:"numGuests"`
	Status    string     `gorm:"size:32;index" json:"status"`

	CabinPrice   float64 `gorm:"column:cabin_price" json:"cabinPrice"`
	ExtrasPrice  float64 `gorm:"column:extras_price" json:"extrasPrice"`
	TotalPrice   float64 `gorm:"column:total_price" json:"totalPrice"`
	HasBreakfast bool    `gorm:"column:has_breakfast" json:"hasBreakfast"`
	IsPaid       bool    `gorm:"column:is_paid" json:"isPaid"`
	Observations string  `gorm:"type:text" json:"observations,omitempty"`

	CabinID *uint `gorm:"column:cabin_id;index" json:"cabinId,omitempty"`
	GuestID *uint `gorm:"column:guest_id;index" json:"guestId,omitempty"`

	Cabin Cabin `gorm:"foreignKey:CabinID;references:ID" json:"cabin,omitempty"`
	Guest Guest `gorm:"foreignKey:GuestID;references:ID" json:"guest,omitempty"`
}
