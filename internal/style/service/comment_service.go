package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Daina40/KadenaPrdn/internal/style/entity"
	"github.com/Daina40/KadenaPrdn/internal/style/repository"
	"github.com/google/uuid"
)

// CommentService upserts process remarks. A comment is keyed by its style,
// an optional description and a trimmed process name, so saving the same
// process twice edits the existing remark instead of stacking a second one.
type CommentService struct {
	repos *repository.Repositories
}

func NewCommentService(repos *repository.Repositories) *CommentService {
	return &CommentService{repos: repos}
}

// SaveCommentInput is the save-comment payload. DescriptionID is optional;
// style-level remarks leave it nil.
type SaveCommentInput struct {
	Process       string  `json:"process"`
	Comment       string  `json:"comment"`
	DescriptionID *string `json:"description_id"`
}

// Save creates or updates the comment under (style, description, process).
// The boolean reports whether a new row was created.
func (s *CommentService) Save(ctx context.Context, styleID string, input *SaveCommentInput) (*entity.Comment, bool, error) {
	process := strings.TrimSpace(input.Process)
	if process == "" {
		return nil, false, &ValidationError{Field: "process", Reason: "must not be blank"}
	}

	if _, err := s.repos.Style.FindByID(ctx, styleID); err != nil {
		return nil, false, err
	}
	if input.DescriptionID != nil {
		desc, err := s.repos.Description.FindByID(ctx, *input.DescriptionID)
		if err != nil {
			return nil, false, err
		}
		if desc.StyleID != styleID {
			return nil, false, repository.ErrNotFound
		}
	}

	now := time.Now()
	existing, err := s.repos.Comment.FindByKey(ctx, styleID, input.DescriptionID, process)
	switch {
	case err == nil:
		existing.Text = input.Comment
		existing.UpdatedAt = now
		if err := s.repos.Comment.Update(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("update comment: %w", err)
		}
		return existing, false, nil
	case err == repository.ErrNotFound:
		comment := &entity.Comment{
			ID:            uuid.New().String()[:32],
			StyleID:       styleID,
			DescriptionID: input.DescriptionID,
			Process:       process,
			Responsible:   responsibleForProcess(process),
			Text:          input.Comment,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.repos.Comment.Create(ctx, comment); err != nil {
			return nil, false, fmt.Errorf("create comment: %w", err)
		}
		return comment, true, nil
	default:
		return nil, false, fmt.Errorf("find comment: %w", err)
	}
}

// Delete removes the comment under (style, description, process).
func (s *CommentService) Delete(ctx context.Context, styleID string, input *SaveCommentInput) error {
	process := strings.TrimSpace(input.Process)
	if process == "" {
		return &ValidationError{Field: "process", Reason: "must not be blank"}
	}
	comment, err := s.repos.Comment.FindByKey(ctx, styleID, input.DescriptionID, process)
	if err != nil {
		return err
	}
	return s.repos.Comment.Delete(ctx, comment.ID)
}

// Index returns the style's comments grouped by description, each group
// keyed by process.
func (s *CommentService) Index(ctx context.Context, styleID string) (map[string]ProcessComments, error) {
	if _, err := s.repos.Style.FindByID(ctx, styleID); err != nil {
		return nil, err
	}
	comments, err := s.repos.Comment.ListByStyle(ctx, styleID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return IndexByDescription(comments), nil
}
