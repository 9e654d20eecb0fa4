package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

var (
	jwtSecret  []byte
	sessionTTL = 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Init imzalama anahtarını ve oturum süresini ayarlar
func Init(secret string, ttl time.Duration) {
	jwtSecret = []byte(secret)
	if ttl > 0 {
		sessionTTL = ttl
	}
}

// GenerateToken returns a signed token and its claims. Every token gets a
// unique ID so it can be revoked on sign-out.
func GenerateToken(userID, email string) (string, *Claims, error) {
	if len(jwtSecret) == 0 {
		return "", nil, errors.New("jwt secret is not configured")
	}

	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
