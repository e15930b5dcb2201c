package models

import "time"

// Screenshot is a user-contributed image for a game. The slug is derived from
// (game title, username, id) on first save; width/height are filled in
// asynchronously by the processing worker.
type Screenshot struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	GameID    int64     `json:"game_id" gorm:"not null;index"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index"`
	Picture   string    `json:"picture" gorm:"not null"` // object storage key
	Slug      string    `json:"slug" gorm:"uniqueIndex;size:200"`
	Width     *int      `json:"width,omitempty"`
	Height    *int      `json:"height,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Game Game `json:"game,omitempty" gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE;"`
}

func (Screenshot) TableName() string {
	return "screenshots"
}
