package auth

import "github.com/golang-jwt/jwt/v5"

const ServiceRole = "service_role"

type Authenticator interface {
	GenerateToken(subject, role string) (string, error)
	ValidateToken(token string) (*jwt.Token, error)
}

// RoleFromToken returns the role claim of a validated token, or "" when absent.
func RoleFromToken(token *jwt.Token) string {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}
