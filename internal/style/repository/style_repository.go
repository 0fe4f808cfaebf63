package repository

import (
	"context"
	"fmt"

	"github.com/Daina40/KadenaPrdn/internal/style/entity"
	"gorm.io/gorm"
)

type StyleRepository struct {
	db *gorm.DB
}

func NewStyleRepository(db *gorm.DB) *StyleRepository {
	return &StyleRepository{db: db}
}

// Create inserts a style row.
func (r *StyleRepository) Create(ctx context.Context, style *entity.Style) error {
	return r.db.WithContext(ctx).Create(style).Error
}

// FindByID loads one style with all relations the view and export layers need.
func (r *StyleRepository) FindByID(ctx context.Context, id string) (*entity.Style, error) {
	var style entity.Style
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Descriptions", func(db *gorm.DB) *gorm.DB {
			return db.Order("descriptions.created_at ASC")
		}).
		Preload("Descriptions.Images").
		Preload("Comments").
		Preload("Images").
		First(&style, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &style, nil
}

// ListWithRelations returns every style row of both sources, with customer and
// descriptions preloaded, in creation order. The grouping engine depends on
// this ordering staying stable.
func (r *StyleRepository) ListWithRelations(ctx context.Context) ([]entity.Style, error) {
	var styles []entity.Style
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Descriptions", func(db *gorm.DB) *gorm.DB {
			return db.Order("descriptions.created_at ASC")
		}).
		Order("styles.created_at ASC, styles.id ASC").
		Find(&styles).Error
	return styles, err
}

// ListBySource returns styles filtered by lifecycle source, in creation order.
func (r *StyleRepository) ListBySource(ctx context.Context, source string) ([]entity.Style, error) {
	var styles []entity.Style
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Descriptions", func(db *gorm.DB) *gorm.DB {
			return db.Order("descriptions.created_at ASC")
		}).
		Where("source = ?", source).
		Order("styles.created_at ASC, styles.id ASC").
		Find(&styles).Error
	return styles, err
}

// Update saves scalar changes to a style row.
func (r *StyleRepository) Update(ctx context.Context, style *entity.Style) error {
	return r.db.WithContext(ctx).Save(style).Error
}

// Delete removes a style and all dependents in one transaction. Dependents are
// deleted explicitly so the cascade does not depend on FK constraints being
// present (test schemas migrate without them).
func (r *StyleRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.First(&entity.Style{}, "id = ?", id)
		if res.Error != nil {
			return notFound(res.Error)
		}
		if err := tx.Delete(&entity.Comment{}, "style_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&entity.Image{}, "style_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&entity.Description{}, "style_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Style{}, "id = ?", id).Error
	})
}

// distinctColumns guards DistinctValues against arbitrary column input.
var distinctColumns = map[string]bool{
	"season":          true,
	"style_no":        true,
	"production_line": true,
	"apm":             true,
	"technician":      true,
	"qc":              true,
	"qa":              true,
	"tqs":             true,
}

// DistinctValues returns the distinct non-empty values of one style column,
// for the summary filter dropdowns.
func (r *StyleRepository) DistinctValues(ctx context.Context, column string) ([]string, error) {
	if !distinctColumns[column] {
		return nil, fmt.Errorf("distinct values: unsupported column %q", column)
	}
	var values []string
	err := r.db.WithContext(ctx).
		Model(&entity.Style{}).
		Distinct(column).
		Where(column+" <> ''").
		Order(column + " ASC").
		Pluck(column, &values).Error
	return values, err
}

// DistinctCustomerNames returns the distinct customer names that own styles.
func (r *StyleRepository) DistinctCustomerNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&entity.Style{}).
		Joins("JOIN customers ON customers.id = styles.customer_id").
		Distinct("customers.name").
		Order("customers.name ASC").
		Pluck("customers.name", &names).Error
	return names, err
}
