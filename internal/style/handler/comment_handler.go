package handler

import (
	"github.com/Daina40/KadenaPrdn/internal/style/service"
	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc *service.CommentService
}

func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// Save POST /styles/:id/comments
func (h *CommentHandler) Save(c *gin.Context) {
	var input service.SaveCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	comment, created, err := h.svc.Save(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		serviceError(c, err)
		return
	}
	if created {
		Created(c, comment)
		return
	}
	Success(c, comment)
}

// Delete DELETE /styles/:id/comments
func (h *CommentHandler) Delete(c *gin.Context) {
	var input service.SaveCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), &input); err != nil {
		serviceError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}

// Index GET /styles/:id/comments
func (h *CommentHandler) Index(c *gin.Context) {
	index, err := h.svc.Index(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, index)
}
