package repository

import (
	"context"

	"github.com/Daina40/KadenaPrdn/internal/style/entity"
	"gorm.io/gorm"
)

type DescriptionRepository struct {
	db *gorm.DB
}

func NewDescriptionRepository(db *gorm.DB) *DescriptionRepository {
	return &DescriptionRepository{db: db}
}

// Create inserts a description row.
func (r *DescriptionRepository) Create(ctx context.Context, desc *entity.Description) error {
	return r.db.WithContext(ctx).Create(desc).Error
}

// FindByID loads one description.
func (r *DescriptionRepository) FindByID(ctx context.Context, id string) (*entity.Description, error) {
	var desc entity.Description
	err := r.db.WithContext(ctx).First(&desc, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &desc, nil
}

// ListByStyle returns a style's descriptions in creation order.
func (r *DescriptionRepository) ListByStyle(ctx context.Context, styleID string) ([]entity.Description, error) {
	var descs []entity.Description
	err := r.db.WithContext(ctx).
		Where("style_id = ?", styleID).
		Order("created_at ASC").
		Find(&descs).Error
	return descs, err
}

// Delete removes a description together with its comments and image rows.
func (r *DescriptionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.First(&entity.Description{}, "id = ?", id)
		if res.Error != nil {
			return notFound(res.Error)
		}
		if err := tx.Delete(&entity.Comment{}, "description_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&entity.Image{}, "description_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Description{}, "id = ?", id).Error
	})
}
