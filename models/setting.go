package models

import "time"

// Setting is a singleton: one row, read through the resource cache and
// patched column-by-column from the settings form.
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`

	MinBookingLength    int     `gorm:"column:min_booking_length" json:"minBookingLength"`
	MaxBookingLength    int     `gorm:"column:max_booking_length" json:"maxBookingLength"`
	MaxGuestsPerBooking int     `gorm:"column:max_guests_per_booking" json:"maxGuestsPerBooking"`
	BreakfastPrice      float64 `gorm:"column:breakfast_price" json:"breakfastPrice"`
}
