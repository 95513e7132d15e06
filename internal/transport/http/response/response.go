package response

import "github.com/gin-gonic/gin"

// Envelope is the uniform response body: {success, data, message}.
// data is null on failures.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

func OK(c *gin.Context, status int, data any, msg string) {
	c.JSON(status, Envelope{Success: true, Data: data, Message: msg})
}

func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, Envelope{Success: false, Data: nil, Message: msg})
}

// AbortFail is Fail for middleware, stopping the handler chain.
func AbortFail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Data: nil, Message: msg})
}
