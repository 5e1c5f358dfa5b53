package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vinayakfood/website/backend/config"
	"github.com/vinayakfood/website/backend/internal/logger"
	"github.com/vinayakfood/website/backend/internal/models"
	"github.com/vinayakfood/website/backend/internal/types"
)

// MenuContentService reads and edits the singleton menu page copy
type MenuContentService struct {
	db       *gorm.DB
	auth     Authorizer
	defaults config.ContentConfig
	logger   *zap.Logger
	now      func() time.Time
}

// NewMenuContentService creates a new MenuContentService
func NewMenuContentService(db *gorm.DB, auth Authorizer, defaults config.ContentConfig, log *zap.Logger) *MenuContentService {
	return &MenuContentService{
		db:       db,
		auth:     auth,
		defaults: defaults,
		logger:   log.Named("menu_content"),
		now:      time.Now,
	}
}

// Get returns the stored record, or the configured default copy when the
// record has never been seeded.
func (s *MenuContentService) Get(ctx context.Context) (*models.MenuContent, error) {
	content, err := s.load(ctx)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return s.fallback(), nil
		}
		return nil, err
	}
	return content, nil
}

func (s *MenuContentService) load(ctx context.Context) (*models.MenuContent, error) {
	var content models.MenuContent
	if err := s.db.WithContext(ctx).Take(&content).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "menu content"}
		}
		return nil, fmt.Errorf("failed to get menu content: %w", err)
	}
	return &content, nil
}

func (s *MenuContentService) fallback() *models.MenuContent {
	return &models.MenuContent{
		Heading:     s.defaults.DefaultHeading,
		Tagline:     s.defaults.DefaultTagline,
		Description: s.defaults.DefaultDescription,
		ImageURL:    s.defaults.DefaultImageURL,
	}
}

// Update applies the supplied fields and stamps updated_at. The last writer wins.
func (s *MenuContentService) Update(ctx context.Context, req *types.UpdateMenuContentRequest) (*models.MenuContent, error) {
	session, err := s.auth.Authorize(ctx)
	if err != nil {
		return nil, err
	}

	updates, err := menuContentUpdates(req)
	if err != nil {
		return nil, err
	}

	content, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return content, nil
	}
	updates["updated_at"] = s.now()

	if err := s.db.WithContext(ctx).Model(content).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update menu content: %w", err)
	}

	logger.FromContext(ctx, s.logger).Info("menu content updated", zap.String("admin_id", session.AdminID.String()))
	return s.load(ctx)
}

func menuContentUpdates(req *types.UpdateMenuContentRequest) (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if req == nil {
		return updates, nil
	}

	if req.Heading != nil {
		heading := strings.TrimSpace(*req.Heading)
		if heading == "" {
			return nil, invalid("heading", "heading is required")
		}
		updates["heading"] = heading
	}
	if req.Tagline != nil {
		updates["tagline"] = strings.TrimSpace(*req.Tagline)
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.ImageURL != nil {
		imageURL, err := validateImageURL(*req.ImageURL)
		if err != nil {
			return nil, err
		}
		updates["image_url"] = imageURL
	}
	return updates, nil
}
