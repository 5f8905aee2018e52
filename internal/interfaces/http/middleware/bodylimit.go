package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mrtoldo/backend/internal/interfaces/http/dto"
)

// BodyLimit caps request bodies at maxBytes. Declared lengths over the cap are
// rejected with 413; streamed bodies fail on read. maxBytes <= 0 disables the cap.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRequestTooLarge,
				"Request body exceeds maximum allowed size",
				getRequestID(c),
			))
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
