package middleware

import (
	"github.com/gin-gonic/gin"
)

// UsernameKey is the gin context key holding the caller-supplied username.
const UsernameKey = "username"

// Caller copies the `username` query parameter into the request context.
// Nothing is verified: the value is an opaque owner string and may be empty.
func Caller() gin.HandlerFunc {
	return func(c *gin.Context) {
		if u, ok := c.GetQuery("username"); ok {
			c.Set(UsernameKey, u)
		}
		c.Next()
	}
}

// Username returns the username stored by Caller, or "" when absent.
func Username(c *gin.Context) string {
	return c.GetString(UsernameKey)
}

// clientKey picks the rate-limit key: the caller's username when present,
// otherwise the client IP.
func clientKey(c *gin.Context) string {
	if u := Username(c); u != "" {
		return "user:" + u
	}
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}
