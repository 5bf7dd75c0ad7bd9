package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/voiceofchrist/churchsite/internal/app/models"
)

// JWT errors
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
	ErrInvalidFormat = errors.New("invalid token format")
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey      string
	AccessTokenExp time.Duration
	TokenIssuer    string
	TokenAudience  string
}

// JWTService handles JWT operations
type JWTService struct {
	config JWTConfig
	now    func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{
		config: config,
		now:    time.Now,
	}
}

// Claims defines JWT token content
type Claims struct {
	AdminID  int64  `json:"adminId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 access token for the admin.
// It returns the token together with its expiry time.
func (s *JWTService) GenerateToken(admin *models.Admin) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.config.AccessTokenExp)

	claims := &Claims{
		AdminID:  admin.ID,
		Username: admin.Username,
		Email:    admin.Email,
		FullName: admin.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.TokenIssuer,
			Subject:   strconv.FormatInt(admin.ID, 10),
			ID:        uuid.New().String(),
		},
	}
	if s.config.TokenAudience != "" {
		claims.Audience = jwt.ClaimStrings{s.config.TokenAudience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return signed, expiresAt, nil
}

// ValidateToken validates a token
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.config.TokenIssuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.TokenIssuer))
	}
	if s.config.TokenAudience != "" {
		opts = append(opts, jwt.WithAudience(s.config.TokenAudience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// ExtractBearerToken extracts the token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrInvalidFormat
	}

	if strings.HasPrefix(authHeader, "Bearer ") {
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			return "", ErrInvalidFormat
		}
		return token, nil
	}

	// Otherwise just return the entire header value as the token
	return authHeader, nil
}

// ValidateAndExtractClaims validates and extracts claims from a token string
func (s *JWTService) ValidateAndExtractClaims(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.AdminID <= 0 || claims.Username == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
