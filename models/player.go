package models

import "time"

type Player struct {
	ID    string `gorm:"primaryKey;size:64" json:"id"`
	Name  string `gorm:"size:255" json:"name"`
	Email string `gorm:"size:255" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
