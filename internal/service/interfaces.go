package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vinayakfood/website/backend/internal/models"
	"github.com/vinayakfood/website/backend/internal/types"
)

// Authorizer confirms that the context carries a live admin session
type Authorizer interface {
	Authorize(ctx context.Context) (*AdminSession, error)
}

// IAuthService defines the admin session gate
type IAuthService interface {
	Authorizer
	SignIn(ctx context.Context, email, password string) (*AdminSession, error)
	CurrentSession(ctx context.Context, token string) (*AdminSession, error)
	SignOut(ctx context.Context, session *AdminSession) error
}

// IDishService defines dish catalogue operations
type IDishService interface {
	List(ctx context.Context, filter DishFilter) ([]models.Dish, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Dish, error)
	Create(ctx context.Context, req *types.CreateDishRequest) (*models.Dish, error)
	Update(ctx context.Context, id uuid.UUID, req *types.UpdateDishRequest) (*models.Dish, error)
	ToggleAvailability(ctx context.Context, id uuid.UUID) (*models.Dish, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*DishStats, error)
}

// IImageService defines image uploads
type IImageService interface {
	Upload(ctx context.Context, purpose UploadPurpose, data []byte, originalName string) (*models.UploadedImage, error)
}

// IMenuContentService defines access to the menu page copy
type IMenuContentService interface {
	Get(ctx context.Context) (*models.MenuContent, error)
	Update(ctx context.Context, req *types.UpdateMenuContentRequest) (*models.MenuContent, error)
}

// IMenuProjector renders the public menu
type IMenuProjector interface {
	Render(ctx context.Context) (*PublicMenu, error)
}

// ObjectStore persists image blobs. Put must fail rather than overwrite an existing key.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	PublicURL(key string) string
}

// TokenBlacklist records revoked session token ids until they would have expired anyway
type TokenBlacklist interface {
	AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}
