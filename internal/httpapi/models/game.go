package models

import "time"

type Game struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"size:100;not null"` // unique case-insensitively, index created in database package
	ReleaseYear *int      `json:"release_year,omitempty"`
	Developer   *string   `json:"developer,omitempty" gorm:"size:100"`
	Genre       *string   `json:"genre,omitempty" gorm:"size:50"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	CoverImage  *string   `json:"cover_image,omitempty"` // object storage key
	OwnerID     *string   `json:"owner_id,omitempty" gorm:"type:uuid;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Owner    *User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL;"`
	Consoles []Console `json:"consoles,omitempty" gorm:"many2many:game_consoles;constraint:OnDelete:CASCADE;"`
}

func (Game) TableName() string {
	return "games"
}
