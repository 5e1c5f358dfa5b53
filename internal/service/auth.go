package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vinayakfood/website/backend/config"
	"github.com/vinayakfood/website/backend/internal/logger"
	"github.com/vinayakfood/website/backend/internal/models"
	"github.com/vinayakfood/website/backend/internal/types"
)

const minPasswordLength = 8

// AuthService signs admins in and out and verifies their sessions
type AuthService struct {
	db        *gorm.DB
	secret    []byte
	issuer    string
	ttl       time.Duration
	blacklist TokenBlacklist
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(db *gorm.DB, cfg config.JWTConfig, blacklist TokenBlacklist, log *zap.Logger) *AuthService {
	if blacklist == nil {
		blacklist = NewMemoryTokenBlacklist()
	}
	return &AuthService{
		db:        db,
		secret:    []byte(cfg.Secret),
		issuer:    cfg.Issuer,
		ttl:       cfg.Expiration,
		blacklist: blacklist,
		logger:    log.Named("auth"),
		now:       time.Now,
	}
}

// SignIn checks the credentials and issues a new session. An unknown email
// and a wrong password produce the same error.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*AdminSession, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, &AuthError{Reason: "email and password are required"}
	}

	var admin models.AdminUser
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &AuthError{Reason: "invalid email or password"}
		}
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		logger.FromContext(ctx, s.logger).Info("sign-in rejected", zap.String("email", email))
		return nil, &AuthError{Reason: "invalid email or password"}
	}

	session, err := s.issue(&admin)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx, s.logger).Info("admin signed in", zap.String("admin_id", admin.ID.String()))
	return session, nil
}

func (s *AuthService) issue(admin *models.AdminUser) (*AdminSession, error) {
	now := s.now()
	claims := &types.AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   admin.ID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		AdminID: admin.ID,
		Email:   admin.Email,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return sessionFromClaims(token, claims), nil
}

// CurrentSession verifies token and returns the session it represents
func (s *AuthService) CurrentSession(ctx context.Context, token string) (*AdminSession, error) {
	if token == "" {
		return nil, &AuthError{Reason: "sign in required"}
	}

	claims := &types.AdminClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, &AuthError{Reason: "session expired"}
		}
		return nil, &AuthError{Reason: "invalid session token"}
	}
	if claims.ID == "" || claims.AdminID == uuid.Nil {
		return nil, &AuthError{Reason: "invalid session token"}
	}

	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		logger.FromContext(ctx, s.logger).Error("session revocation check failed", zap.Error(err))
		return nil, &AuthError{Reason: "session could not be verified"}
	}
	if revoked {
		return nil, &AuthError{Reason: "session has been signed out"}
	}

	return sessionFromClaims(token, claims), nil
}

// SignOut revokes the session for the rest of its lifetime
func (s *AuthService) SignOut(ctx context.Context, session *AdminSession) error {
	if session == nil || session.TokenID == "" {
		return &AuthError{Reason: "no active session"}
	}
	if err := s.blacklist.AddToBlacklist(ctx, session.TokenID, session.ExpiresAt.Sub(s.now())); err != nil {
		return err
	}
	logger.FromContext(ctx, s.logger).Info("admin signed out", zap.String("admin_id", session.AdminID.String()))
	return nil
}

// Authorize re-verifies the session carried by ctx. Every write path calls it
// first, so a missing, expired or revoked session never reaches the store.
func (s *AuthService) Authorize(ctx context.Context) (*AdminSession, error) {
	session, ok := SessionFromContext(ctx)
	if !ok {
		return nil, &AuthError{Reason: "sign in required"}
	}
	return s.CurrentSession(ctx, session.Token)
}

// CreateAdmin registers a new admin account
func (s *AuthService) CreateAdmin(ctx context.Context, email, password string) (*models.AdminUser, error) {
	email = normalizeEmail(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, invalid("email", "must be a valid email address")
	}
	if len(password) < minPasswordLength {
		return nil, invalid("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.AdminUser{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing admin: %w", err)
	}
	if count > 0 {
		return nil, invalid("email", "an admin with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.AdminUser{Email: email, PasswordHash: string(hash)}
	if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}

func sessionFromClaims(token string, claims *types.AdminClaims) *AdminSession {
	session := &AdminSession{
		Token:   token,
		TokenID: claims.ID,
		AdminID: claims.AdminID,
		Email:   claims.Email,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
