package service

import (
	"github.com/Daina40/KadenaPrdn/internal/style/repository"
	"github.com/Daina40/KadenaPrdn/internal/style/storage"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services aggregates the domain services.
type Services struct {
	Style   *StyleService
	Comment *CommentService
	Export  *ExportService
	Image   *ImageService
}

// NewServices creates the service set. rdb and store may be nil; the services
// degrade to uncached / metadata-only behavior.
func NewServices(db *gorm.DB, repos *repository.Repositories, rdb *redis.Client, store storage.ObjectStore) *Services {
	return &Services{
		Style:   NewStyleService(db, repos, rdb, store),
		Comment: NewCommentService(repos),
		Export:  NewExportService(repos.Style),
		Image:   NewImageService(repos, store),
	}
}
