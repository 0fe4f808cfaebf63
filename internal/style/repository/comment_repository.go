package repository

import (
	"context"

	"github.com/Daina40/KadenaPrdn/internal/style/entity"
	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a comment row.
func (r *CommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// Update saves changes to an existing comment row.
func (r *CommentRepository) Update(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// FindByKey looks a comment up by its identity key. descriptionID may be nil
// for comments written before descriptions became a separate relation.
func (r *CommentRepository) FindByKey(ctx context.Context, styleID string, descriptionID *string, process string) (*entity.Comment, error) {
	q := r.db.WithContext(ctx).Where("style_id = ? AND process = ?", styleID, process)
	if descriptionID != nil {
		q = q.Where("description_id = ?", *descriptionID)
	} else {
		q = q.Where("description_id IS NULL")
	}
	var comment entity.Comment
	if err := q.First(&comment).Error; err != nil {
		return nil, notFound(err)
	}
	return &comment, nil
}

// ListByStyle returns every comment of a style in creation order.
func (r *CommentRepository) ListByStyle(ctx context.Context, styleID string) ([]entity.Comment, error) {
	var comments []entity.Comment
	err := r.db.WithContext(ctx).
		Where("style_id = ?", styleID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// Delete removes one comment row.
func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.Comment{}, "id = ?", id).Error
}
