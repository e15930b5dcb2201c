package models

import "time"

const (
	MinRatingValue = 1
	MaxRatingValue = 5
)

// Rating is a single user's 1-5 score for one catalog entity. At most one row
// exists per (user, entity kind, entity id); writes go through an upsert.
type Rating struct {
	ID         int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     string     `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_entity"`
	EntityKind EntityKind `json:"entity_kind" gorm:"size:10;not null;uniqueIndex:idx_ratings_user_entity"`
	EntityID   int64      `json:"entity_id" gorm:"not null;uniqueIndex:idx_ratings_user_entity;index"`
	Rating     int        `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (Rating) TableName() string {
	return "ratings"
}
