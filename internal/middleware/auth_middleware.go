package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/voiceofchrist/churchsite/internal/app/models/dto"
	"github.com/voiceofchrist/churchsite/internal/pkg/auth"
)

// ClaimsKey is the gin context key holding the validated *auth.Claims
const ClaimsKey = "claims"

// AuthMiddleware guards the back-office routes
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// tokenFromRequest reads the token from the Authorization header. Swagger UI
// sometimes sends a raw token without the Bearer prefix, which is accepted.
func tokenFromRequest(c *gin.Context) (string, error) {
	authHeader := strings.Trim(c.GetHeader("Authorization"), "\"'")
	if authHeader == "" {
		return "", auth.ErrInvalidFormat
	}
	if strings.Count(authHeader, ".") == 2 && !strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader, nil
	}
	return auth.ExtractBearerToken(authHeader)
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := tokenFromRequest(c)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Authorization header missing or malformed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			errorDetails := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				errorCode = dto.ErrorCodeExpiredToken
				errorDetails = "Token has expired"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed").WithDetails(errorDetails)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set("adminID", claims.AdminID)
		c.Next()
	}
}

// GetClaims returns the claims stored by JWTAuth
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}
