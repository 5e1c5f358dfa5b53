package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vinayakfood/website/backend/config"
	"github.com/vinayakfood/website/backend/internal/models"
	"github.com/vinayakfood/website/backend/internal/service"
	"github.com/vinayakfood/website/backend/internal/testhelpers"
	"github.com/vinayakfood/website/backend/internal/types"
)

type contentFixture struct {
	auth    *service.AuthService
	content *service.MenuContentService
	ctx     context.Context
}

func newContentFixture(t *testing.T) (*contentFixture, func()) {
	t.Helper()
	db := testhelpers.NewSQLiteDB(t)
	auth := testhelpers.NewAuthService(t, db)
	ctx, _ := testhelpers.SignedIn(t, auth)

	f := &contentFixture{
		auth:    auth,
		content: service.NewMenuContentService(db, auth, testhelpers.TestContentConfig, zap.NewNop()),
		ctx:     ctx,
	}
	clearContent := func() {
		require.NoError(t, db.Where("1 = 1").Delete(&models.MenuContent{}).Error)
	}
	return f, clearContent
}

func TestGetMenuContentSeeded(t *testing.T) {
	f, _ := newContentFixture(t)

	content, err := f.content.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultMenuHeading, content.Heading)
	assert.Equal(t, config.DefaultMenuTagline, content.Tagline)
	assert.Equal(t, config.DefaultMenuDescription, content.Description)
	assert.Equal(t, config.DefaultMenuImageURL, content.ImageURL)
}

func TestUpdateMenuContentHeading(t *testing.T) {
	f, _ := newContentFixture(t)
	stamp := time.Date(2024, 3, 1, 18, 30, 0, 0, time.UTC)
	f.content.SetClock(func() time.Time { return stamp })

	updated, err := f.content.Update(f.ctx, &types.UpdateMenuContentRequest{
		Heading: strPtr("Golgappa Specials"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Golgappa Specials", updated.Heading)
	assert.True(t, stamp.Equal(updated.UpdatedAt), "updated_at %s", updated.UpdatedAt)

	content, err := f.content.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Golgappa Specials", content.Heading)
	assert.Equal(t, config.DefaultMenuTagline, content.Tagline, "fields not supplied are kept")
}

func TestConcurrentMenuContentEditsLastWriteWins(t *testing.T) {
	f, _ := newContentFixture(t)
	otherCtx := signInSecondAdmin(t, f.auth)

	_, err := f.content.Update(f.ctx, &types.UpdateMenuContentRequest{Heading: strPtr("Golgappa Specials")})
	require.NoError(t, err)
	_, err = f.content.Update(otherCtx, &types.UpdateMenuContentRequest{Heading: strPtr("Chaat Corner")})
	require.NoError(t, err, "a later write is never rejected as a conflict")

	content, err := f.content.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Chaat Corner", content.Heading)
}

func TestUpdateMenuContentValidation(t *testing.T) {
	f, _ := newContentFixture(t)

	tests := []struct {
		name  string
		req   *types.UpdateMenuContentRequest
		field string
	}{
		{"blank heading", &types.UpdateMenuContentRequest{Heading: strPtr("  ")}, "heading"},
		{"bad image url", &types.UpdateMenuContentRequest{ImageURL: strPtr("ftp://example.com/banner.jpg")}, "image_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.content.Update(f.ctx, tt.req)
			var verr *service.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	content, err := f.content.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultMenuHeading, content.Heading)
}

func TestUpdateMenuContentRequiresSession(t *testing.T) {
	f, _ := newContentFixture(t)

	_, err := f.content.Update(context.Background(), &types.UpdateMenuContentRequest{Heading: strPtr("Hacked")})
	var authErr *service.AuthError
	require.ErrorAs(t, err, &authErr)

	content, err := f.content.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultMenuHeading, content.Heading)
}

func TestMenuContentWithoutRecord(t *testing.T) {
	f, clearContent := newContentFixture(t)
	clearContent()

	content, err := f.content.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testhelpers.TestContentConfig.DefaultHeading, content.Heading)
	assert.Equal(t, testhelpers.TestContentConfig.DefaultImageURL, content.ImageURL)

	_, err = f.content.Update(f.ctx, &types.UpdateMenuContentRequest{Heading: strPtr("Golgappa Specials")})
	var notFound *service.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
