package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vinayakfood/website/backend/internal/service"
	"github.com/vinayakfood/website/backend/internal/testhelpers"
	"github.com/vinayakfood/website/backend/internal/types"
)

// tickingClock returns a clock that advances one second per call, so rows
// created in a loop have distinct, ordered timestamps.
func tickingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	now := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

type dishFixture struct {
	db     *gorm.DB
	auth   *service.AuthService
	dishes *service.DishService
	ctx    context.Context
}

func newDishFixture(t *testing.T) *dishFixture {
	t.Helper()
	db := testhelpers.NewSQLiteDB(t)
	auth := testhelpers.NewAuthService(t, db)
	ctx, _ := testhelpers.SignedIn(t, auth)

	dishes := service.NewDishService(db, auth, zap.NewNop())
	dishes.SetClock(tickingClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))
	return &dishFixture{db: db, auth: auth, dishes: dishes, ctx: ctx}
}

// signInSecondAdmin creates another admin account and returns a context
// carrying its session.
func signInSecondAdmin(t *testing.T, auth *service.AuthService) context.Context {
	t.Helper()
	const email, password = "manager@vinayakfood.com", "bhel-puri-456"
	_, err := auth.CreateAdmin(context.Background(), email, password)
	require.NoError(t, err)
	session, err := auth.SignIn(context.Background(), email, password)
	require.NoError(t, err)
	return service.WithSession(context.Background(), session)
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func amountPtr(s string) *types.Amount {
	a := types.Amount(s)
	return &a
}

func dishRequest(name, price, category string) *types.CreateDishRequest {
	return &types.CreateDishRequest{
		Name:     name,
		Price:    types.Amount(price),
		Category: category,
	}
}
