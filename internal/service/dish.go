package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vinayakfood/website/backend/internal/logger"
	"github.com/vinayakfood/website/backend/internal/models"
	"github.com/vinayakfood/website/backend/internal/types"
)

// DishFilter narrows a dish listing
type DishFilter struct {
	AvailableOnly bool
}

// DishStats summarises the catalogue for the admin dashboard
type DishStats struct {
	Total       int64                     `json:"total"`
	Available   int64                     `json:"available"`
	Unavailable int64                     `json:"unavailable"`
	ByCategory  map[models.Category]int64 `json:"by_category"`
}

// DishService manages the dish catalogue. Concurrent edits to the same dish
// are last-write-wins.
type DishService struct {
	db     *gorm.DB
	auth   Authorizer
	logger *zap.Logger
	now    func() time.Time
}

// NewDishService creates a new DishService
func NewDishService(db *gorm.DB, auth Authorizer, log *zap.Logger) *DishService {
	return &DishService{
		db:     db,
		auth:   auth,
		logger: log.Named("dishes"),
		now:    time.Now,
	}
}

// List returns dishes newest first. Only the available-only listing is
// public; the full catalogue needs an admin session.
func (s *DishService) List(ctx context.Context, filter DishFilter) ([]models.Dish, error) {
	if !filter.AvailableOnly {
		if _, err := s.auth.Authorize(ctx); err != nil {
			return nil, err
		}
	}

	query := s.db.WithContext(ctx).Order("created_at DESC").Order("id")
	if filter.AvailableOnly {
		query = query.Where("is_available = ?", true)
	}

	var dishes []models.Dish
	if err := query.Find(&dishes).Error; err != nil {
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}
	return dishes, nil
}

// Get returns a single dish to a signed-in admin
func (s *DishService) Get(ctx context.Context, id uuid.UUID) (*models.Dish, error) {
	if _, err := s.auth.Authorize(ctx); err != nil {
		return nil, err
	}
	return s.find(ctx, id)
}

func (s *DishService) find(ctx context.Context, id uuid.UUID) (*models.Dish, error) {
	var dish models.Dish
	if err := s.db.WithContext(ctx).First(&dish, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "dish", ID: id.String()}
		}
		return nil, fmt.Errorf("failed to get dish: %w", err)
	}
	return &dish, nil
}

// Create validates and inserts a dish. Nothing is written when validation fails.
func (s *DishService) Create(ctx context.Context, req *types.CreateDishRequest) (*models.Dish, error) {
	session, err := s.auth.Authorize(ctx)
	if err != nil {
		return nil, err
	}

	dish, err := newDish(req)
	if err != nil {
		return nil, err
	}
	now := s.now()
	dish.CreatedAt = now
	dish.UpdatedAt = now

	if err := s.db.WithContext(ctx).Create(dish).Error; err != nil {
		return nil, fmt.Errorf("failed to create dish: %w", err)
	}

	logger.FromContext(ctx, s.logger).Info("dish created",
		zap.String("dish_id", dish.ID.String()),
		zap.String("name", dish.Name),
		zap.String("admin_id", session.AdminID.String()),
	)
	return dish, nil
}

func newDish(req *types.CreateDishRequest) (*models.Dish, error) {
	if req == nil {
		return nil, invalid("", "dish details are required")
	}

	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}
	description, err := validateDescription(req.Description)
	if err != nil {
		return nil, err
	}
	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}
	categoryRaw := req.Category
	if strings.TrimSpace(categoryRaw) == "" {
		categoryRaw = string(models.CategoryChaat)
	}
	category, err := parseCategory(categoryRaw)
	if err != nil {
		return nil, err
	}
	spice, err := parseSpiceLevel(req.SpiceLevel)
	if err != nil {
		return nil, err
	}
	imageURL, err := validateImageURL(req.ImageURL)
	if err != nil {
		return nil, err
	}

	return &models.Dish{
		Name:         name,
		Description:  description,
		Price:        price,
		Category:     category,
		ImageURL:     imageURL,
		SpiceLevel:   spice,
		IsVegetarian: boolOr(req.IsVegetarian, true),
		IsAvailable:  boolOr(req.IsAvailable, true),
	}, nil
}

// Update applies the non-nil fields of req to the dish
func (s *DishService) Update(ctx context.Context, id uuid.UUID, req *types.UpdateDishRequest) (*models.Dish, error) {
	session, err := s.auth.Authorize(ctx)
	if err != nil {
		return nil, err
	}

	updates, err := dishUpdates(req)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return s.find(ctx, id)
	}
	updates["updated_at"] = s.now()

	result := s.db.WithContext(ctx).Model(&models.Dish{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update dish: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, &NotFoundError{Resource: "dish", ID: id.String()}
	}

	logger.FromContext(ctx, s.logger).Info("dish updated",
		zap.String("dish_id", id.String()),
		zap.String("admin_id", session.AdminID.String()),
	)
	return s.find(ctx, id)
}

func dishUpdates(req *types.UpdateDishRequest) (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if req == nil {
		return updates, nil
	}

	if req.Name != nil {
		name, err := validateName(*req.Name)
		if err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if req.Description != nil {
		description, err := validateDescription(*req.Description)
		if err != nil {
			return nil, err
		}
		updates["description"] = description
	}
	if req.Price != nil {
		price, err := parsePrice(*req.Price)
		if err != nil {
			return nil, err
		}
		updates["price"] = price
	}
	if req.Category != nil {
		category, err := parseCategory(*req.Category)
		if err != nil {
			return nil, err
		}
		updates["category"] = category
	}
	if req.SpiceLevel != nil {
		spice, err := parseSpiceLevel(*req.SpiceLevel)
		if err != nil {
			return nil, err
		}
		updates["spice_level"] = spice
	}
	if req.ImageURL != nil {
		imageURL, err := validateImageURL(*req.ImageURL)
		if err != nil {
			return nil, err
		}
		updates["image_url"] = imageURL
	}
	if req.IsVegetarian != nil {
		updates["is_vegetarian"] = *req.IsVegetarian
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}
	return updates, nil
}

// ToggleAvailability flips is_available in a single statement so two
// concurrent toggles never read the same starting value.
func (s *DishService) ToggleAvailability(ctx context.Context, id uuid.UUID) (*models.Dish, error) {
	session, err := s.auth.Authorize(ctx)
	if err != nil {
		return nil, err
	}

	result := s.db.WithContext(ctx).Model(&models.Dish{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_available": gorm.Expr("NOT is_available"),
		"updated_at":   s.now(),
	})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to toggle dish availability: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, &NotFoundError{Resource: "dish", ID: id.String()}
	}

	dish, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx, s.logger).Info("dish availability toggled",
		zap.String("dish_id", id.String()),
		zap.Bool("is_available", dish.IsAvailable),
		zap.String("admin_id", session.AdminID.String()),
	)
	return dish, nil
}

// Delete removes the dish permanently. Its image, if any, stays in storage.
func (s *DishService) Delete(ctx context.Context, id uuid.UUID) error {
	session, err := s.auth.Authorize(ctx)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Dish{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete dish: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: "dish", ID: id.String()}
	}

	logger.FromContext(ctx, s.logger).Info("dish deleted",
		zap.String("dish_id", id.String()),
		zap.String("admin_id", session.AdminID.String()),
	)
	return nil
}

// Stats counts dishes overall, by availability and by category
func (s *DishService) Stats(ctx context.Context) (*DishStats, error) {
	if _, err := s.auth.Authorize(ctx); err != nil {
		return nil, err
	}

	var rows []struct {
		Category    string
		IsAvailable bool
		N           int64
	}
	err := s.db.WithContext(ctx).Model(&models.Dish{}).
		Select("category, is_available, COUNT(*) AS n").
		Group("category, is_available").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count dishes: %w", err)
	}

	stats := &DishStats{ByCategory: make(map[models.Category]int64, len(models.Categories))}
	for _, c := range models.Categories {
		stats.ByCategory[c] = 0
	}
	for _, r := range rows {
		stats.Total += r.N
		if r.IsAvailable {
			stats.Available += r.N
		} else {
			stats.Unavailable += r.N
		}
		stats.ByCategory[models.Category(r.Category)] += r.N
	}
	return stats, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
