package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// UserMetadata is the profile blob carried on the user row, matching the
// shape the dashboard reads (fullName + avatar URL).
type UserMetadata struct {
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`

	Email        string         `gorm:"size:150;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;size:255" json:"-"`
	Metadata     datatypes.JSON `gorm:"column:metadata" json:"user_metadata"`
}

// Meta decodes the metadata column; a missing or malformed blob yields the
// zero value rather than an error.
func (u *User) Meta() UserMetadata {
	var m UserMetadata
	if len(u.Metadata) > 0 {
		_ = json.Unmarshal(u.Metadata, &m)
	}
	return m
}

func (u *User) SetMeta(m UserMetadata) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	u.Metadata = datatypes.JSON(b)
	return nil
}
