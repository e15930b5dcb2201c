package models

// Supplier holds manufacturer/developer branding. It is matched against
// Game.Developer and Console.Manufacturer by case-insensitive substring, not
// by foreign key.
type Supplier struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:100;not null"`
	Logo string `json:"logo" gorm:"not null"` // object storage key
}

func (Supplier) TableName() string {
	return "suppliers"
}
