package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/Daina40/KadenaPrdn/internal/style/entity"
	"github.com/Daina40/KadenaPrdn/internal/style/repository"
	"github.com/Daina40/KadenaPrdn/internal/style/storage"
	"github.com/google/uuid"
)

const imageURLExpiry = time.Hour

// ImageService handles reference pictures. Rows carry metadata; the bytes
// live in object storage under an object key that survives style promotion,
// so the blob is only removed once no row references it.
type ImageService struct {
	repos *repository.Repositories
	store storage.ObjectStore
}

func NewImageService(repos *repository.Repositories, store storage.ObjectStore) *ImageService {
	return &ImageService{repos: repos, store: store}
}

// ImageView is an image row with a presigned download URL.
type ImageView struct {
	entity.Image
	URL string `json:"url"`
}

// Upload stores a picture against one description of a style.
func (s *ImageService) Upload(ctx context.Context, styleID, descriptionID, filename, contentType string, r io.Reader, size int64) (*entity.Image, error) {
	if s.store == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}
	filename = filepath.Base(strings.TrimSpace(filename))
	if filename == "" || filename == "." {
		return nil, &ValidationError{Field: "file", Reason: "filename must not be blank"}
	}

	desc, err := s.repos.Description.FindByID(ctx, descriptionID)
	if err != nil {
		return nil, err
	}
	if desc.StyleID != styleID {
		return nil, repository.ErrNotFound
	}

	key := fmt.Sprintf("styles/%s/%s/%s_%s", styleID, descriptionID, uuid.New().String()[:8], filename)
	if err := s.store.Save(ctx, key, r, size, contentType); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	img := &entity.Image{
		ID:            uuid.New().String()[:32],
		StyleID:       styleID,
		DescriptionID: descriptionID,
		Name:          filename,
		ObjectKey:     key,
		ContentType:   contentType,
		Size:          size,
		CreatedAt:     time.Now(),
	}
	if err := s.repos.Image.Create(ctx, img); err != nil {
		// Row creation failed; the orphaned blob is removed best-effort.
		s.store.Delete(ctx, key)
		return nil, fmt.Errorf("create image: %w", err)
	}
	return img, nil
}

// ListByStyle returns a style's images with presigned URLs. Rows whose blob
// can no longer be signed keep an empty URL.
func (s *ImageService) ListByStyle(ctx context.Context, styleID string) ([]ImageView, error) {
	if _, err := s.repos.Style.FindByID(ctx, styleID); err != nil {
		return nil, err
	}
	images, err := s.repos.Image.ListByStyle(ctx, styleID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	views := make([]ImageView, 0, len(images))
	for _, img := range images {
		view := ImageView{Image: img}
		if s.store != nil && img.ObjectKey != "" {
			if url, err := s.store.URL(ctx, img.ObjectKey, imageURLExpiry); err == nil {
				view.URL = url
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// Delete removes an image row and, when it was the key's last reference,
// the stored blob.
func (s *ImageService) Delete(ctx context.Context, id string) error {
	img, err := s.repos.Image.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repos.Image.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}

	if s.store != nil && img.ObjectKey != "" {
		remaining, err := s.repos.Image.CountByObjectKey(ctx, img.ObjectKey)
		if err == nil && remaining == 0 {
			s.store.Delete(ctx, img.ObjectKey)
		}
	}
	return nil
}
