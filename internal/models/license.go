package models

import "time"

// License is a purchasable usage agreement for a track. UserID is the
// purchaser and stays nil until somebody buys the license.
type License struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	TrackID       string    `json:"track_id" gorm:"type:varchar(36);not null;index"`
	UserID        *string   `json:"user_id,omitempty" gorm:"type:varchar(36)"`
	LicenseType   string    `json:"license_type" gorm:"type:varchar(100);not null"`
	Price         float64   `json:"price" gorm:"not null"`
	AgreementText string    `json:"agreement_text" gorm:"type:text"`
	FilePath      string    `json:"file_path,omitempty" gorm:"type:varchar(255)"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
