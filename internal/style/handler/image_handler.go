package handler

import (
	"github.com/Daina40/KadenaPrdn/internal/style/service"
	"github.com/gin-gonic/gin"
)

type ImageHandler struct {
	svc *service.ImageService
}

func NewImageHandler(svc *service.ImageService) *ImageHandler {
	return &ImageHandler{svc: svc}
}

// Upload POST /styles/:id/images (multipart: file, description_id)
func (h *ImageHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		BadRequest(c, "missing file upload")
		return
	}
	defer file.Close()

	descriptionID := c.PostForm("description_id")
	if descriptionID == "" {
		BadRequest(c, "missing description_id")
		return
	}

	img, err := h.svc.Upload(
		c.Request.Context(),
		c.Param("id"),
		descriptionID,
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
		header.Size,
	)
	if err != nil {
		serviceError(c, err)
		return
	}
	Created(c, img)
}

// List GET /styles/:id/images
func (h *ImageHandler) List(c *gin.Context) {
	images, err := h.svc.ListByStyle(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, gin.H{"items": images})
}

// Delete DELETE /images/:id
func (h *ImageHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}
