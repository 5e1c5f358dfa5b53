package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/mr-tron/base58"
	"go.uber.org/zap"

	"github.com/vinayakfood/website/backend/internal/logger"
	"github.com/vinayakfood/website/backend/internal/models"
)

// UploadPurpose decides which folder an uploaded image lands in
type UploadPurpose string

const (
	PurposeDish UploadPurpose = "dish"
	PurposeMenu UploadPurpose = "menu"
)

// ParseUploadPurpose accepts "dish" or "menu"
func ParseUploadPurpose(s string) (UploadPurpose, error) {
	switch p := UploadPurpose(strings.ToLower(strings.TrimSpace(s))); p {
	case PurposeDish, PurposeMenu:
		return p, nil
	default:
		return "", invalid("purpose", "purpose must be dish or menu")
	}
}

// Prefix is the object key prefix for the purpose
func (p UploadPurpose) Prefix() string {
	if p == PurposeMenu {
		return "menu/"
	}
	return "dishes/"
}

const tokenBytes = 16

// imageExtensions are the file extensions kept from the client's file name
var imageExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true,
	"avif": true, "bmp": true, "heic": true, "heif": true, "tif": true, "tiff": true,
}

// ImageService stores dish and menu images and hands back their public URLs
type ImageService struct {
	store    ObjectStore
	auth     Authorizer
	maxBytes int64
	logger   *zap.Logger
	now      func() time.Time
	random   io.Reader
}

// NewImageService creates a new ImageService
func NewImageService(store ObjectStore, auth Authorizer, maxBytes int64, log *zap.Logger) *ImageService {
	return &ImageService{
		store:    store,
		auth:     auth,
		maxBytes: maxBytes,
		logger:   log.Named("images"),
		now:      time.Now,
		random:   rand.Reader,
	}
}

// MaxBytes is the largest accepted upload
func (s *ImageService) MaxBytes() int64 {
	return s.maxBytes
}

// Upload stores data under a fresh randomized name. Two uploads of the same
// file produce two objects; an existing object is never replaced.
func (s *ImageService) Upload(ctx context.Context, purpose UploadPurpose, data []byte, originalName string) (*models.UploadedImage, error) {
	session, err := s.auth.Authorize(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := ParseUploadPurpose(string(purpose)); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, invalid("file", "file is empty")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, invalid("file", fmt.Sprintf("file is larger than %s", humanBytes(s.maxBytes)))
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") || mtype.Is("image/svg+xml") {
		return nil, invalid("file", fmt.Sprintf("file must be an image, got %s", mtype.String()))
	}

	token, err := s.token()
	if err != nil {
		return nil, fmt.Errorf("failed to generate file name: %w", err)
	}
	fileName := fmt.Sprintf("%s-%d.%s", token, s.now().UnixMilli(), extensionFor(originalName, mtype))
	key := purpose.Prefix() + fileName

	if err := s.store.Put(ctx, key, data, mtype.String()); err != nil {
		logger.FromContext(ctx, s.logger).Error("image upload failed", zap.String("key", key), zap.Error(err))
		return nil, &UploadError{Message: err.Error(), Err: err}
	}

	image := &models.UploadedImage{
		FileName: fileName,
		Path:     key,
		URL:      s.store.PublicURL(key),
	}
	logger.FromContext(ctx, s.logger).Info("image uploaded",
		zap.String("key", key),
		zap.Int("bytes", len(data)),
		zap.String("content_type", mtype.String()),
		zap.String("admin_id", session.AdminID.String()),
	)
	return image, nil
}

func (s *ImageService) token() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := io.ReadFull(s.random, buf); err != nil {
		return "", err
	}
	return base58.Encode(buf), nil
}

// extensionFor keeps the client's extension when it names an image format
// and otherwise falls back to the one implied by the detected content type.
func extensionFor(originalName string, mtype *mimetype.MIME) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalName), "."))
	if imageExtensions[ext] {
		return ext
	}
	return strings.TrimPrefix(mtype.Extension(), ".")
}

func humanBytes(n int64) string {
	const mib = 1 << 20
	if n >= mib && n%mib == 0 {
		return fmt.Sprintf("%d MB", n/mib)
	}
	return fmt.Sprintf("%d bytes", n)
}
