package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const StatusFailed = "FAILED"

// ErrorBody là body trả về khi request thất bại ở middleware
type ErrorBody struct {
	CorrelationID string `json:"correlationId"`
	Status        string `json:"status"`
	Severity      string `json:"severity"`
	Message       string `json:"message"`
}

// Success responses
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created trả 201 kèm Location header
func Created(c *gin.Context, location string, data interface{}) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error responses
func NotFound(c *gin.Context) {
	c.Status(http.StatusNotFound)
}

// BadRequest trả danh sách lỗi validation (hoặc lỗi parse body)
func BadRequest(c *gin.Context, failures interface{}) {
	c.JSON(http.StatusBadRequest, failures)
}

// Failed ghi error body và dừng chain
func Failed(c *gin.Context, statusCode int, body ErrorBody) {
	c.AbortWithStatusJSON(statusCode, body)
}
