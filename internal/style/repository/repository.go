package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories aggregates the per-entity repositories.
type Repositories struct {
	Customer    *CustomerRepository
	Style       *StyleRepository
	Description *DescriptionRepository
	Comment     *CommentRepository
	Image       *ImageRepository
}

// NewRepositories creates the repository set.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Customer:    NewCustomerRepository(db),
		Style:       NewStyleRepository(db),
		Description: NewDescriptionRepository(db),
		Comment:     NewCommentRepository(db),
		Image:       NewImageRepository(db),
	}
}

// notFound maps gorm's sentinel onto the package error.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
