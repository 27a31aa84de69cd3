package models

import (
	"time"
)

// Post represents a published entry in the feed. Every post has exactly one
// owner; only the owner may mutate or delete it.
type Post struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Title     string `gorm:"not null" json:"title"`
	Content   string `gorm:"type:text;not null" json:"content"`
	Published bool   `gorm:"not null;default:true" json:"published"`
	UserID    uint   `gorm:"not null;index" json:"owner_id"`
	Owner     User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"owner"`
	// Votes is not persisted; computed by the aggregation query
	Votes     int       `gorm:"->;-:migration" json:"votes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
