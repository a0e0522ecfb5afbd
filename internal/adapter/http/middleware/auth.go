package middleware

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextUserIDKey is where RequireAuth stores the authenticated user id.
const ContextUserIDKey = "user_id"

const WebhookTokenHeader = "X-Webhook-Token"

// RequireAuth validates an HS256 bearer token and stores its "sub" claim under
// ContextUserIDKey. An empty secret rejects every request.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok || secret == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !tok.Valid {
			log.Printf("[auth][middleware] invalid token path=%s err=%v", c.FullPath(), err)
			abortUnauthorized(c, "invalid token")
			return
		}

		sub, err := tok.Claims.GetSubject()
		if err != nil || strings.TrimSpace(sub) == "" {
			abortUnauthorized(c, "invalid token subject")
			return
		}

		c.Set(ContextUserIDKey, sub)
		c.Next()
	}
}

// UserID returns the id stored by RequireAuth.
func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}

// RequireWebhookToken checks the shared secret providers send with notifications.
// An empty expected token disables the check.
func RequireWebhookToken(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expected == "" {
			c.Next()
			return
		}
		got := c.GetHeader(WebhookTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			log.Printf("[auth][webhook] rejected notification remote_addr=%s", c.ClientIP())
			abortUnauthorized(c, "invalid webhook token")
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	tok := strings.TrimSpace(header[len(prefix):])
	return tok, tok != ""
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": msg})
}
