package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"wayfarer/internal/model"
)

// SessionTokenExpiry is the duration for which session tokens are valid.
// There is no revocation mechanism; a token is valid for its full lifetime.
const SessionTokenExpiry = 7 * 24 * time.Hour

var (
	// ErrTokenExpired is returned when a session token is past its expiry.
	ErrTokenExpired = errors.New("session token expired")
	// ErrTokenInvalid is returned for any malformed or badly signed token.
	ErrTokenInvalid = errors.New("invalid session token")
)

// Claims represents the session claim embedded in a signed token.
type Claims struct {
	UserID string     `json:"user_id"`
	Email  string     `json:"email"`
	Name   string     `json:"name"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies signed session tokens.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given shared secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// Issue builds a session claim from a user snapshot and signs it.
func (s *JWTService) Issue(user *model.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates a signed token and returns its claims.
// Returns ErrTokenExpired for tokens past their expiry and ErrTokenInvalid
// for any signature or structure failure.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
