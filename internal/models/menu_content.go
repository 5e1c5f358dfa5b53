package models

import (
	"time"

	"github.com/google/uuid"
)

// MenuContent is the editorial copy shown above the public menu. Exactly one
// row exists; it is seeded by migration and only ever updated.
type MenuContent struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Heading     string    `gorm:"not null" json:"heading"`
	Tagline     string    `json:"tagline"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"type:text" json:"image_url"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (MenuContent) TableName() string {
	return "menu_content"
}
