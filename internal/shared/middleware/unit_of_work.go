package middleware

import (
	"github.com/gin-gonic/gin"

	"realestate-listing-api/pkg/database"
)

// UnitOfWork gắn một change set mới vào context của mỗi request.
// Repository stage thay đổi vào đó, service commit bằng SaveChanges.
func UnitOfWork() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(database.WithChangeSet(c.Request.Context()))
		c.Next()
	}
}
