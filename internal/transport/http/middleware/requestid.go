package middleware

import (
	"github.com/gin-gonic/gin"

	"go-user-admin/pkg/utils"
)

const KeyRequestID = "X-Request-ID"

// RequestID honors an inbound X-Request-ID and otherwise assigns one in the
// same dashless format as user IDs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get(KeyRequestID)
		if rid == "" {
			rid = utils.NewID()
		}
		c.Writer.Header().Set(KeyRequestID, rid)
		c.Set(KeyRequestID, rid)
		c.Next()
	}
}
