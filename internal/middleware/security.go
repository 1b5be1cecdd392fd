package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders adds common security headers to all responses. The microphone
// stays available to the page itself for voice messages, and media may come from
// data URIs (profile pictures and recorded audio).
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "camera=(), microphone=(self), geolocation=()")
		c.Header("Content-Security-Policy", "default-src 'self'; img-src 'self' data: https:; media-src 'self' data: blob:; connect-src 'self' ws: wss: https:; frame-ancestors 'none'")

		// HSTS only over TLS
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
