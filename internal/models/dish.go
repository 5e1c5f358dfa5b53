package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category groups dishes on the public menu. The set is closed; adding a
// value also needs a migration that widens the dishes_category_check constraint.
type Category string

const (
	CategoryChaat    Category = "Chaat"
	CategorySnacks   Category = "Snacks"
	CategoryDrinks   Category = "Drinks"
	CategoryDesserts Category = "Desserts"
)

// Categories lists every category in menu order
var Categories = []Category{CategoryChaat, CategorySnacks, CategoryDrinks, CategoryDesserts}

// ParseCategory matches s against the known categories, ignoring case and surrounding space
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

// SpiceLevel is how hot a dish is
type SpiceLevel string

const (
	SpiceMild     SpiceLevel = "Mild"
	SpiceMedium   SpiceLevel = "Medium"
	SpiceHot      SpiceLevel = "Hot"
	SpiceExtraHot SpiceLevel = "Extra Hot"
)

var SpiceLevels = []SpiceLevel{SpiceMild, SpiceMedium, SpiceHot, SpiceExtraHot}

// ParseSpiceLevel matches s against the known spice levels, ignoring case and surrounding space
func ParseSpiceLevel(s string) (SpiceLevel, bool) {
	s = strings.TrimSpace(s)
	for _, l := range SpiceLevels {
		if strings.EqualFold(s, string(l)) {
			return l, true
		}
	}
	return "", false
}

// Dish is a single menu item
type Dish struct {
	ID           uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"id"`
	Name         string          `gorm:"size:120;not null" json:"name"`
	Description  string          `gorm:"type:text" json:"description"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Category     Category        `gorm:"size:32;not null;index" json:"category"`
	ImageURL     string          `gorm:"type:text" json:"image_url"`
	SpiceLevel   SpiceLevel      `gorm:"size:16;not null" json:"spice_level"`
	IsVegetarian bool            `gorm:"not null" json:"is_vegetarian"`
	IsAvailable  bool            `gorm:"not null;index" json:"is_available"`
	CreatedAt    time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (Dish) TableName() string {
	return "dishes"
}

// BeforeCreate assigns a fresh id
func (d *Dish) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
