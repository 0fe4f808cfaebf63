package handler

import (
	"github.com/Daina40/KadenaPrdn/internal/style/service"
	"github.com/gin-gonic/gin"
)

type StyleHandler struct {
	svc *service.StyleService
}

func NewStyleHandler(svc *service.StyleService) *StyleHandler {
	return &StyleHandler{svc: svc}
}

// Create POST /styles
func (h *StyleHandler) Create(c *gin.Context) {
	var input service.CreateStyleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	style, err := h.svc.Create(c.Request.Context(), &input)
	if err != nil {
		serviceError(c, err)
		return
	}
	Created(c, style)
}

// Overview GET /styles/overview
func (h *StyleHandler) Overview(c *gin.Context) {
	groups, err := h.svc.Overview(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, gin.H{"customers": groups})
}

// ListDetail GET /styles/detail
func (h *StyleHandler) ListDetail(c *gin.Context) {
	styles, err := h.svc.ListDetail(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, gin.H{"items": styles})
}

// Get GET /styles/:id
func (h *StyleHandler) Get(c *gin.Context) {
	style, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, style)
}

// Update PUT /styles/:id
func (h *StyleHandler) Update(c *gin.Context) {
	var input service.UpdateStyleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	style, err := h.svc.Update(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, style)
}

// Delete DELETE /styles/:id
func (h *StyleHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}

// Promote POST /styles/:id/promote
func (h *StyleHandler) Promote(c *gin.Context) {
	var input service.PromoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	clone, err := h.svc.Promote(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		serviceError(c, err)
		return
	}
	Created(c, clone)
}

// Filters GET /styles/filters
func (h *StyleHandler) Filters(c *gin.Context) {
	filters, err := h.svc.Filters(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	Success(c, filters)
}

type addDescriptionRequest struct {
	Text string `json:"text"`
}

// AddDescription POST /styles/:id/descriptions
func (h *StyleHandler) AddDescription(c *gin.Context) {
	var req addDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	desc, err := h.svc.AddDescription(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		serviceError(c, err)
		return
	}
	Created(c, desc)
}

// DeleteDescription DELETE /descriptions/:id
func (h *StyleHandler) DeleteDescription(c *gin.Context) {
	if err := h.svc.DeleteDescription(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	Success(c, gin.H{"deleted": true})
}
