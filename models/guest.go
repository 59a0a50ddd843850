package models

import "time"

type Guest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`

	FullName    string `gorm:"column:full_name;size:255" json:"fullName"`
	Email       string `gorm:"size:150;index" json:"email"`
	NationalID  string `gorm:"column:national_id;size:64" json:"nationalID,omitempty"`
	Nationality string `gorm:"size:100" json:"nationality,omitempty"`
	CountryFlag string `gorm:"column:country_flag;size:255" json:"countryFlag,omitempty"`
}
