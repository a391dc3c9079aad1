package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"realestate-listing-api/internal/shared/apperror"
)

// recoverPanic được defer trong ErrorLogging. Panic luôn là Technical (500).
func recoverPanic(c *gin.Context, info requestInfo) {
	r := recover()
	if r == nil {
		return
	}

	var message, stack string
	if err, ok := r.(error); ok {
		message, stack = apperror.Describe(err)
	} else {
		message, stack = fmt.Sprint(r), string(debug.Stack())
	}

	fail(c, info, apperror.SeverityTechnical, message, stack)
}
