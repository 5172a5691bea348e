// Package storage hosts uploaded menu images on an object store.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/menuglobal/menu-admin/internal/core/domain"
	"github.com/menuglobal/menu-admin/internal/pkg/slug"
)

const (
	MaxImageBytes = 5 << 20
	DefaultFolder = "menu-global"
)

var (
	ErrImageTooLarge    = domain.NewValidationError("image must be at most 5 MiB")
	ErrUnsupportedImage = domain.NewValidationError("only JPEG, PNG, GIF and WebP images are accepted")
)

var allowedTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// ObjectStorage defines common object operations across backends.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	Bucket() string
}

// ImageStore uploads images under random keys and serves them from a public
// base URL. It satisfies the image host port.
type ImageStore struct {
	backend       ObjectStorage
	baseURL       string
	defaultFolder string
	log           zerolog.Logger
}

// NewImageStore wraps backend. Object keys are appended to baseURL to form
// the public URL.
func NewImageStore(backend ObjectStorage, baseURL, defaultFolder string, log zerolog.Logger) *ImageStore {
	if defaultFolder == "" {
		defaultFolder = DefaultFolder
	}
	return &ImageStore{
		backend:       backend,
		baseURL:       strings.TrimRight(baseURL, "/"),
		defaultFolder: defaultFolder,
		log:           log,
	}
}

// EnsureBucket ensures the configured bucket exists.
func (s *ImageStore) EnsureBucket(ctx context.Context) error {
	return s.backend.EnsureBucket(ctx)
}

// Upload stores data under folder/<uuid>.<ext> and returns its public URL.
// The content type is sniffed from the bytes, never trusted from the client.
func (s *ImageStore) Upload(ctx context.Context, data []byte, folder string) (string, error) {
	if len(data) > MaxImageBytes {
		return "", ErrImageTooLarge
	}

	mt := mimetype.Detect(data)
	if _, ok := allowedTypes[mt.String()]; !ok {
		return "", ErrUnsupportedImage
	}

	key := s.folder(folder) + "/" + uuid.NewString() + mt.Extension()
	if err := s.backend.Put(ctx, key, bytes.NewReader(data), int64(len(data)), mt.String()); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	s.log.Info().Str("key", key).Int("bytes", len(data)).Msg("image uploaded")
	return s.baseURL + "/" + key, nil
}

// Delete removes the object behind url. It never fails the caller: foreign
// URLs and backend errors are logged and reported as false.
func (s *ImageStore) Delete(ctx context.Context, url string) bool {
	key, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || key == "" {
		s.log.Warn().Str("url", url).Msg("image not hosted here, skipping delete")
		return false
	}

	if err := s.backend.Delete(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("image delete failed")
		return false
	}
	return true
}

// Owns reports whether url is hosted here under the image folder of
// restaurantID. Only such URLs may be deleted on behalf of that restaurant.
func (s *ImageStore) Owns(restaurantID, url string) bool {
	if slug.Make(restaurantID) == "" {
		return false
	}
	key, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok {
		return false
	}
	return strings.HasPrefix(key, s.folder(domain.ImageFolder(restaurantID))+"/")
}

// folder keeps each path segment to slug characters so callers cannot escape
// the bucket prefix.
func (s *ImageStore) folder(folder string) string {
	var parts []string
	for _, seg := range strings.Split(folder, "/") {
		if seg = slug.Make(seg); seg != "" {
			parts = append(parts, seg)
		}
	}
	if len(parts) == 0 {
		return s.defaultFolder
	}
	return strings.Join(parts, "/")
}
