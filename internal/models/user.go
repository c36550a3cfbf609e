package models

import "time"

// User represents a marketplace account. The ID is the identity token
// issued by the external identity gateway during registration; it is
// never generated locally and never changes.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(150);not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password  string    `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tracks   []Track   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Licenses []License `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
