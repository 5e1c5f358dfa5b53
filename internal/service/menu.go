package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vinayakfood/website/backend/config"
	"github.com/vinayakfood/website/backend/internal/models"
)

// MenuHero is the banner copy above the menu
type MenuHero struct {
	Heading     string `json:"heading"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// MenuItem is a dish as shown to guests
type MenuItem struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Price        string            `json:"price"`
	ImageURL     string            `json:"image_url"`
	SpiceLevel   models.SpiceLevel `json:"spice_level"`
	IsVegetarian bool              `json:"is_vegetarian"`
}

// MenuSection is one category heading and its dishes
type MenuSection struct {
	Category models.Category `json:"category"`
	Dishes   []MenuItem      `json:"dishes"`
}

// PublicMenu is the whole public menu page
type PublicMenu struct {
	Hero         MenuHero      `json:"hero"`
	Sections     []MenuSection `json:"sections"`
	EmptyMessage string        `json:"empty_message,omitempty"`
}

// MenuProjector builds the public menu from available dishes and the menu copy
type MenuProjector struct {
	dishes   IDishService
	content  IMenuContentService
	currency string
	empty    string
}

// NewMenuProjector creates a new MenuProjector
func NewMenuProjector(dishes IDishService, content IMenuContentService, cfg config.ContentConfig) *MenuProjector {
	return &MenuProjector{
		dishes:   dishes,
		content:  content,
		currency: cfg.CurrencySymbol,
		empty:    cfg.EmptyMenuMessage,
	}
}

// Render groups available dishes by category. Categories appear in the order
// their first dish appears in the newest-first listing, and dishes keep that
// order within a category.
func (p *MenuProjector) Render(ctx context.Context) (*PublicMenu, error) {
	dishes, err := p.dishes.List(ctx, DishFilter{AvailableOnly: true})
	if err != nil {
		return nil, err
	}
	content, err := p.content.Get(ctx)
	if err != nil {
		return nil, err
	}

	menu := &PublicMenu{
		Hero: MenuHero{
			Heading:     content.Heading,
			Tagline:     content.Tagline,
			Description: content.Description,
			ImageURL:    content.ImageURL,
		},
		Sections: GroupByCategory(dishes, p.currency),
	}
	if len(menu.Sections) == 0 {
		menu.EmptyMessage = p.empty
	}
	return menu, nil
}

// GroupByCategory partitions dishes by category in first-seen order
func GroupByCategory(dishes []models.Dish, currency string) []MenuSection {
	sections := []MenuSection{}
	index := map[models.Category]int{}
	for _, d := range dishes {
		i, ok := index[d.Category]
		if !ok {
			i = len(sections)
			index[d.Category] = i
			sections = append(sections, MenuSection{Category: d.Category})
		}
		sections[i].Dishes = append(sections[i].Dishes, MenuItem{
			ID:           d.ID,
			Name:         d.Name,
			Description:  d.Description,
			Price:        FormatPrice(d.Price, currency),
			ImageURL:     d.ImageURL,
			SpiceLevel:   d.SpiceLevel,
			IsVegetarian: d.IsVegetarian,
		})
	}
	return sections
}

// FormatPrice renders a price with two decimals, e.g. "$8.00"
func FormatPrice(price decimal.Decimal, currency string) string {
	return currency + price.StringFixed(2)
}
