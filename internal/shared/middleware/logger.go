package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"realestate-listing-api/internal/shared/apperror"
	"realestate-listing-api/internal/shared/response"
)

const (
	CorrelationIDKey    = "correlation_id"
	CorrelationIDHeader = "X-Correlation-ID"

	statusOK = "OK"
)

// requestInfo gom các field chung của mọi log entry trong một request
type requestInfo struct {
	service       string
	endpoint      string
	correlationID string
}

// ErrorLogging bọc toàn bộ request: gán correlation id, log kết quả,
// và chuyển lỗi (c.Error hoặc panic) thành error body có severity.
func ErrorLogging(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := uuid.NewString()
		c.Set(CorrelationIDKey, correlationID)
		c.Header(CorrelationIDHeader, correlationID)

		info := requestInfo{
			service:       serviceName,
			endpoint:      endpointOf(c),
			correlationID: correlationID,
		}

		defer recoverPanic(c, info)

		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			message, stack := apperror.Describe(err)
			fail(c, info, apperror.SeverityOf(err), message, stack)
			return
		}

		status := c.Writer.Status()
		event := log.Info().
			Str("service", info.service).
			Str("endpoint", info.endpoint).
			Str("correlation_id", info.correlationID)

		if status >= 400 {
			event.Str("status", response.StatusFailed).
				Int("status_code", status).
				Msg(fmt.Sprintf("Request ended with status code %d.", status))
			return
		}
		event.Str("status", statusOK).Int("status_code", status).Msg("Request completed")
	}
}

// endpointOf: route template nếu match được, không thì raw path
func endpointOf(c *gin.Context) string {
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}
	return c.Request.Method + " " + path
}

// fail log lỗi và ghi body nếu response chưa được ghi
func fail(c *gin.Context, info requestInfo, severity apperror.Severity, message, stack string) {
	status := severity.StatusCode()

	log.Error().
		Str("service", info.service).
		Str("endpoint", info.endpoint).
		Str("correlation_id", info.correlationID).
		Str("status", response.StatusFailed).
		Str("severity", string(severity)).
		Str("stack_trace", stack).
		Msg(message)

	if c.Writer.Written() {
		c.Abort()
		return
	}

	response.Failed(c, status, response.ErrorBody{
		CorrelationID: info.correlationID,
		Status:        response.StatusFailed,
		Severity:      string(severity),
		Message:       message,
	})
}
