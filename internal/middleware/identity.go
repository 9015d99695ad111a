package middleware

import (
	"net/http"
	"strings"

	"farmastock/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const PrincipalKey = "principal"

// PrincipalClaims are the claims this service reads from tokens issued by the
// external identity provider. Only the subject (user id) matters here.
type PrincipalClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Identity extracts an optional authentication principal from the request.
// Anonymous requests pass through untouched; a present but invalid token is
// rejected so a caller never silently loses their creator attribution.
func Identity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Encabezado Authorization invalido"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &PrincipalClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token invalido o expirado"))
			return
		}

		c.Set(PrincipalKey, claims)
		c.Next()
	}
}

// PrincipalID returns the authenticated user's id, or nil for anonymous
// requests and tokens whose subject is not a uuid.
func PrincipalID(c *gin.Context) *uuid.UUID {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*PrincipalClaims)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil
	}
	return &id
}
