package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/menuglobal/menu-admin/internal/infrastructure/config"
)

// New builds the ImageStore for the configured provider ("minio" or "gcs").
func New(ctx context.Context, cfg config.StorageConfig, log zerolog.Logger) (*ImageStore, error) {
	var (
		backend ObjectStorage
		baseURL string
	)

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "minio", "s3", "":
		m, err := NewMinioClient(cfg.Minio)
		if err != nil {
			return nil, fmt.Errorf("minio storage: %w", err)
		}
		backend, baseURL = m, m.PublicURL()
	case "gcs":
		g, err := NewGCSClient(ctx, cfg.GCS)
		if err != nil {
			return nil, fmt.Errorf("gcs storage: %w", err)
		}
		backend, baseURL = g, g.PublicURL()
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}

	if cfg.PublicBaseURL != "" {
		baseURL = cfg.PublicBaseURL
	}
	return NewImageStore(backend, baseURL, cfg.DefaultFolder, log.With().Str("component", "image_store").Logger()), nil
}
