package models

import "time"

// MaxCommentLength caps comment text at the storage layer as well as in the
// form layer.
const MaxCommentLength = 700

// Comment is free text attached to one catalog entity by one user. Comments
// are immutable after creation and listed newest-first.
type Comment struct {
	ID         int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     string     `json:"user_id" gorm:"type:uuid;not null;index"`
	EntityKind EntityKind `json:"entity_kind" gorm:"size:10;not null;index:idx_comments_entity"`
	EntityID   int64      `json:"entity_id" gorm:"not null;index:idx_comments_entity"`
	Comment    string     `json:"comment" gorm:"not null;type:text"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}
