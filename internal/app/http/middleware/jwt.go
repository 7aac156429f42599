package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"school-builder/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// OwnerKey is the context key holding the tenant id taken from the token.
const OwnerKey = "owner"

// AuthMiddleware validates an HS256 bearer token and stores its user_id
// claim as the owner of every builder request.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		jwtKey := []byte(config.JWT_SECRET)
		if len(jwtKey) == 0 {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "JWT secret not configured"})
			c.Abort()
			return
		}
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Bearer token malformed"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtKey, nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}
		owner := ownerFromClaim(claims["user_id"])
		if owner == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has no user_id"})
			c.Abort()
			return
		}
		if email, ok := claims["email"].(string); ok {
			c.Set("email", email)
		}
		c.Set(OwnerKey, owner)
		c.Set("token", tokenString)
		c.Next()
	}
}

// Owner ids end up in public slugs, so only digits and letters are accepted.
func ownerFromClaim(v any) string {
	switch id := v.(type) {
	case float64:
		if id <= 0 || id != float64(uint64(id)) {
			return ""
		}
		return strconv.FormatUint(uint64(id), 10)
	case string:
		for _, r := range id {
			if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
				return ""
			}
		}
		return id
	}
	return ""
}

// Owner returns the tenant set by AuthMiddleware.
func Owner(c *gin.Context) string {
	return c.GetString(OwnerKey)
}
