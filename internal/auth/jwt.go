package auth

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/polomanager/polomanager/internal/models"
)

// Claims is the full authorization state of a session. It is never
// re-derived from the database while the token is valid, so role or team
// changes only take effect after the next login.
type Claims struct {
	UserID uint        `json:"id"`
	Role   models.Role `json:"role"`
	TeamID *uint       `json:"team_id"`
	jwt.RegisteredClaims
}

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenMalformed = errors.New("token malformed")
)

var (
	jwtSecret string
	tokenTTL  = time.Hour
)

func InitJWT() error {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	ttl := tokenTTL
	if raw := os.Getenv("JWT_TTL_MINUTES"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid JWT_TTL_MINUTES %q: %w", raw, err)
		}
		ttl = time.Duration(minutes) * time.Minute
	}

	Configure(secret, ttl)
	return nil
}

// Configure sets the signing secret and token lifetime directly, bypassing
// the environment. Tests use it to issue short-lived tokens.
func Configure(secret string, ttl time.Duration) {
	jwtSecret = secret
	tokenTTL = ttl
}

func IssueToken(userID uint, role models.Role, teamID *uint) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID: userID,
		Role:   role,
		TeamID: teamID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

func VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
			return nil, ErrTokenSignature
		default:
			return nil, ErrTokenMalformed
		}
	}

	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
