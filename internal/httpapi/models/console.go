package models

import "time"

type Console struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"size:100;not null"` // unique case-insensitively, index created in database package
	Manufacturer *string   `json:"manufacturer,omitempty" gorm:"size:100"`
	ReleaseYear  *int      `json:"release_year,omitempty"`
	Description  *string   `json:"description,omitempty" gorm:"type:text"`
	CoverImage   *string   `json:"cover_image,omitempty"` // object storage key
	Logo         *string   `json:"logo,omitempty"`
	OwnerID      *string   `json:"owner_id,omitempty" gorm:"type:uuid;index"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Owner *User  `json:"owner,omitempty" gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL;"`
	Games []Game `json:"games,omitempty" gorm:"many2many:game_consoles;"`
}

func (Console) TableName() string {
	return "consoles"
}
