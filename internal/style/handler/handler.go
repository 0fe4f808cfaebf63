package handler

import (
	"errors"

	"github.com/Daina40/KadenaPrdn/internal/style/repository"
	"github.com/Daina40/KadenaPrdn/internal/style/service"
	"github.com/gin-gonic/gin"
)

// Handlers is the handler set of the style module.
type Handlers struct {
	Style   *StyleHandler
	Comment *CommentHandler
	Export  *ExportHandler
	Image   *ImageHandler
}

func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Style:   NewStyleHandler(svc.Style),
		Comment: NewCommentHandler(svc.Comment),
		Export:  NewExportHandler(svc.Export),
		Image:   NewImageHandler(svc.Image),
	}
}

// Response is the common response envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a 200 response.
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created writes a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error writes an error response; the HTTP status is code/100.
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// serviceError maps the service layer's error kinds onto responses: missing
// entities become 404, validation failures 400, everything else 500.
func serviceError(c *gin.Context, err error) {
	var validation *service.ValidationError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, "resource not found")
	case errors.As(err, &validation):
		BadRequest(c, validation.Error())
	default:
		InternalError(c, err.Error())
	}
}

// GetUserID reads the authenticated user id from the request context.
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}
