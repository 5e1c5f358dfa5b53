package testhelpers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vinayakfood/website/backend/config"
	"github.com/vinayakfood/website/backend/internal/service"
)

const (
	AdminEmail    = "owner@vinayakfood.com"
	AdminPassword = "golgappa-123"
)

// TestJWTConfig is the session token configuration shared by tests
var TestJWTConfig = config.JWTConfig{
	Secret:     "test-secret-that-is-long-enough-for-prod",
	Issuer:     "vinayak-food-test",
	Expiration: time.Hour,
}

// TestContentConfig is the default menu copy used by tests
var TestContentConfig = config.ContentConfig{
	DefaultHeading:     config.DefaultMenuHeading,
	DefaultTagline:     config.DefaultMenuTagline,
	DefaultDescription: config.DefaultMenuDescription,
	DefaultImageURL:    config.DefaultMenuImageURL,
	CurrencySymbol:     "$",
	EmptyMenuMessage:   config.DefaultEmptyMenuMessage,
}

// NewAuthService returns an auth service over db with a seeded admin account
func NewAuthService(t *testing.T, db *gorm.DB) *service.AuthService {
	t.Helper()
	auth := service.NewAuthService(db, TestJWTConfig, service.NewMemoryTokenBlacklist(), zap.NewNop())
	_, err := auth.CreateAdmin(context.Background(), AdminEmail, AdminPassword)
	require.NoError(t, err)
	return auth
}

// SignedIn signs the seeded admin in and returns a context carrying the session
func SignedIn(t *testing.T, auth *service.AuthService) (context.Context, *service.AdminSession) {
	t.Helper()
	session, err := auth.SignIn(context.Background(), AdminEmail, AdminPassword)
	require.NoError(t, err)
	return service.WithSession(context.Background(), session), session
}
