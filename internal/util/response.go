package util

import (
	"errors"
	"net/http"

	"roadmap_learner_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// ServiceError 按错误类别映射 HTTP 状态码，未识别的错误按 500 处理
func ServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		NotFound(c)
	case errors.Is(err, ErrForbidden):
		Forbidden(c)
	case errors.Is(err, ErrUnauthorized):
		Unauthorized(c)
	case errors.Is(err, ErrInvalidState):
		Error(c, http.StatusConflict, "session is not active")
	case errors.Is(err, ErrQueueExhausted):
		Error(c, http.StatusConflict, "card queue exhausted")
	case errors.Is(err, ErrCardMismatch):
		BadRequest(c, err.Error())
	case errors.Is(err, ErrOperationFailed):
		Error(c, http.StatusInternalServerError, "operation failed")
	default:
		LogInternalError(c, err)
	}
}
