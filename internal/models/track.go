package models

import "time"

// Track is an audio track listed on the marketplace. FilePath and
// PreviewPath hold object-storage URLs and are written only by the
// upload coordinator, never from request input.
type Track struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string    `json:"user_id" gorm:"type:varchar(36);not null;index"`
	Title       string    `json:"title" gorm:"type:varchar(200);not null"`
	Genre       string    `json:"genre,omitempty" gorm:"type:varchar(100)"`
	BPM         *int      `json:"bpm,omitempty"`
	Key         string    `json:"key,omitempty" gorm:"type:varchar(50)"`
	FilePath    string    `json:"file_path" gorm:"type:varchar(255)"`
	PreviewPath string    `json:"preview_path" gorm:"type:varchar(255)"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Licenses []License `json:"-" gorm:"foreignKey:TrackID;constraint:OnDelete:CASCADE"`
}
