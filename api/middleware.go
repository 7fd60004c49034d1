package api

import (
	"errors"
	"log"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/WashLinkHQ/washlink-go/utils"
)

// isClientDisconnectError checks if the error is a common network error
// that occurs when a client closes the connection prematurely.
func isClientDisconnectError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.EPIPE) || errors.Is(opErr.Err, syscall.ECONNRESET) {
			return true
		}
	}

	return strings.Contains(strings.ToLower(err.Error()), "broken pipe")
}

// FilteredLogger mimics gin.Default()'s logger but drops benign broken pipe
// errors so mobile clients tearing down connections do not flood the log.
func FilteredLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path = path + "?" + c.Request.URL.RawQuery
		}

		c.Next()

		lastError := c.Errors.Last()
		if lastError != nil && isClientDisconnectError(lastError.Err) {
			return
		}

		var errorMsg string
		if lastError != nil {
			errorMsg = lastError.Error()
		}

		log.Printf("[GIN] %v | %3d | %13v | %15s | %-7s %#v %s",
			time.Now().Format("2006/01/02 - 15:04:05"),
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
			c.Request.Method,
			path,
			errorMsg,
		)
	}
}

const claimsKey = "claims"

// extractToken reads the session token from the named cookie, falling back to
// an Authorization bearer header for API clients.
func extractToken(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// AuthRequired validates the session token and enforces the given role.
func AuthRequired(cookieName string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, err := getTenantContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		token := extractToken(c, cookieName)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		claims, err := utils.ValidateJWT(token, ctx.Config.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		allowed := false
		for _, role := range roles {
			if claims.Role == role {
				allowed = true
				break
			}
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// getClaims returns the validated session claims set by AuthRequired.
func getClaims(c *gin.Context) (*utils.Claims, error) {
	value, exists := c.Get(claimsKey)
	if !exists {
		return nil, errors.New("no session claims")
	}
	return value.(*utils.Claims), nil
}
