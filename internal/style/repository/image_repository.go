package repository

import (
	"context"

	"github.com/Daina40/KadenaPrdn/internal/style/entity"
	"gorm.io/gorm"
)

type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

// Create inserts an image row.
func (r *ImageRepository) Create(ctx context.Context, image *entity.Image) error {
	return r.db.WithContext(ctx).Create(image).Error
}

// FindByID loads one image row.
func (r *ImageRepository) FindByID(ctx context.Context, id string) (*entity.Image, error) {
	var image entity.Image
	err := r.db.WithContext(ctx).First(&image, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &image, nil
}

// ListByStyle returns a style's images in creation order.
func (r *ImageRepository) ListByStyle(ctx context.Context, styleID string) ([]entity.Image, error) {
	var images []entity.Image
	err := r.db.WithContext(ctx).
		Where("style_id = ?", styleID).
		Order("created_at ASC").
		Find(&images).Error
	return images, err
}

// ListByDescription returns one description's images in creation order.
func (r *ImageRepository) ListByDescription(ctx context.Context, descriptionID string) ([]entity.Image, error) {
	var images []entity.Image
	err := r.db.WithContext(ctx).
		Where("description_id = ?", descriptionID).
		Order("created_at ASC").
		Find(&images).Error
	return images, err
}

// CountByObjectKey counts image rows sharing one storage key. Promoted styles
// copy rows without copying blobs, so a key may back several rows.
func (r *ImageRepository) CountByObjectKey(ctx context.Context, objectKey string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Image{}).
		Where("object_key = ?", objectKey).
		Count(&count).Error
	return count, err
}

// Delete removes one image row.
func (r *ImageRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.Image{}, "id = ?", id).Error
}
