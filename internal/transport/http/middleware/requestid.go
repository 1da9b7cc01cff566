package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/lunorlabs/lunor/internal/requestid"
)

// RequestID makes sure every request has a correlation ID. A client-supplied
// X-Request-ID is kept so IDs survive proxies; otherwise one is minted here.
// The ID is echoed back in the response and stored in the request context for
// the logger.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestid.Header)
		if id == "" {
			id = requestid.New()
		}

		c.Request = c.Request.WithContext(requestid.Into(c.Request.Context(), id))
		c.Header(requestid.Header, id)
		c.Next()
	}
}
