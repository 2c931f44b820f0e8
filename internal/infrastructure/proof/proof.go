package proof

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
	"github.com/google/uuid"
)

// InlineStore keeps the screenshot payload itself (usually a data URI) as the reference.
type InlineStore struct{}

func NewInlineStore() *InlineStore {
	return &InlineStore{}
}

func (s *InlineStore) Save(ctx context.Context, userID int64, payload string) (string, error) {
	return payload, nil
}

// CloudinaryStore uploads payment screenshots and returns their secure URL.
// Payloads that are already http(s) URLs are stored as given.
type CloudinaryStore struct {
	uploader *uploader.API
	folder   string
}

func NewCloudinaryStore(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStore, error) {
	cfg, err := config.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	up, err := uploader.NewWithConfiguration(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary uploader: %w", err)
	}
	return &CloudinaryStore{uploader: up, folder: folder}, nil
}

func (s *CloudinaryStore) Save(ctx context.Context, userID int64, payload string) (string, error) {
	if strings.HasPrefix(payload, "https://") || strings.HasPrefix(payload, "http://") {
		return payload, nil
	}

	publicID := fmt.Sprintf("user-%d-%s", userID, uuid.NewString())
	result, err := s.uploader.Upload(ctx, payload, uploader.UploadParams{
		Folder:   s.folder,
		PublicID: publicID,
	})
	if err != nil {
		slog.Error("failed to upload payment proof", "user_id", userID, "error", err)
		return "", fmt.Errorf("failed to upload payment proof: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("failed to upload payment proof: empty url for %s", publicID)
	}

	slog.Info("payment proof uploaded", "user_id", userID, "public_id", result.PublicID)
	return result.SecureURL, nil
}
