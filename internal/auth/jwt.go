package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTAuthenticator signs and checks HS256 tokens presented by database triggers and the app.
type JWTAuthenticator struct {
	secret string
	iss    string
	ttl    time.Duration
}

func NewJWTAuthenticator(secret, iss string, ttl time.Duration) *JWTAuthenticator {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JWTAuthenticator{secret: secret, iss: iss, ttl: ttl}
}

// GenerateToken issues a token for subject carrying role. Used by ops tooling and tests.
func (a *JWTAuthenticator) GenerateToken(subject, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"exp":  now.Add(a.ttl).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
	}
	if a.iss != "" {
		claims["iss"] = a.iss
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.secret))
}

func (a *JWTAuthenticator) ValidateToken(token string) (*jwt.Token, error) {
	opts := []jwt.ParserOption{
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	}
	if a.iss != "" {
		opts = append(opts, jwt.WithIssuer(a.iss))
	}

	return jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(a.secret), nil
	}, opts...)
}
